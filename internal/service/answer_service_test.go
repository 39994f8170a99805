package service

import (
	"context"
	"errors"
	"testing"

	"nerd-math/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func practice(problemID string, answer domain.UserAnswer) CheckAnswerInput {
	return CheckAnswerInput{Mode: domain.ModePractice, ProblemID: problemID, Answer: answer}
}

func vocabAnswer(vocabID, value string) CheckAnswerInput {
	return CheckAnswerInput{Mode: domain.ModeVocabTest, VocabID: vocabID, Answer: domain.UserAnswer{Value: value}}
}

func ledgerKeys(s *memStore) []string {
	keys := make([]string, 0, len(s.ledger))
	for _, e := range s.ledger {
		keys = append(keys, e.IdempotencyKey)
	}
	return keys
}

func TestCheckAnswer_PracticeMultipleChoice(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()

	resp, err := env.answers.CheckAnswer(context.Background(), testUserID,
		practice("p1", domain.UserAnswer{SelectedOption: intPtr(2)}), "idem-1")
	require.NoError(t, err)

	assert.True(t, resp.IsCorrect)
	assert.Equal(t, "3", resp.CorrectAnswer)
	assert.Equal(t, "1 + 2 = 3", resp.Explanation)
	assert.Equal(t, 15, resp.XPGained)
	require.NotNil(t, resp.GamificationUpdate)
	assert.Equal(t, 15, resp.GamificationUpdate.TotalXP)
	require.NotNil(t, resp.UpdatedProgress)
	assert.Equal(t, "unit_1", resp.UpdatedProgress.UnitID)
	assert.Equal(t, 50, resp.UpdatedProgress.ProblemProgress)

	require.Len(t, env.store.attempts, 1)
	stored := env.store.attempts[0]
	assert.Equal(t, resp.AnswerID, stored.ID)
	assert.Equal(t, "idem-1", stored.IdempotencyKey)
	assert.Equal(t, "unit_1", stored.UnitID)
	require.NotNil(t, stored.IsCorrect)
	assert.True(t, *stored.IsCorrect)
	assert.Equal(t, []string{"answer:" + resp.AnswerID}, ledgerKeys(env.store))
}

func TestCheckAnswer_PracticeIncorrectShortAnswer(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()

	resp, err := env.answers.CheckAnswer(context.Background(), testUserID,
		practice("p2", domain.UserAnswer{Value: "5"}), "")
	require.NoError(t, err)
	assert.False(t, resp.IsCorrect)
	assert.Equal(t, "-5", resp.CorrectAnswer)
	assert.Equal(t, 10, resp.XPGained)
	assert.Equal(t, 50, resp.UpdatedProgress.ProblemProgress)
}

func TestCheckAnswer_RepeatProblemKeepsProgress(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()
	ctx := context.Background()

	_, err := env.answers.CheckAnswer(ctx, testUserID, practice("p2", domain.UserAnswer{Value: "-5"}), "a")
	require.NoError(t, err)
	again, err := env.answers.CheckAnswer(ctx, testUserID, practice("p2", domain.UserAnswer{Value: " -5 "}), "b")
	require.NoError(t, err)

	assert.True(t, again.IsCorrect)
	assert.Nil(t, again.UpdatedProgress)
	assert.Equal(t, 15, again.XPGained)
	assert.Equal(t, 50, env.store.progress[progressKey{testUserID, "unit_1", domain.CategoryUnit}].ProblemProgress)
}

func TestCheckAnswer_DuplicateIdempotencyKey(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()
	ctx := context.Background()

	first, err := env.answers.CheckAnswer(ctx, testUserID, practice("p1", domain.UserAnswer{SelectedOption: intPtr(2)}), "same")
	require.NoError(t, err)

	_, err = env.answers.CheckAnswer(ctx, testUserID, practice("p1", domain.UserAnswer{SelectedOption: intPtr(0)}), "same")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeConflict, domainErr.Code)
	assert.Equal(t, first.AnswerID, domainErr.Context["answerId"])

	assert.Len(t, env.store.attempts, 1)
	assert.Len(t, env.store.ledger, 1)
}

func TestCheckAnswer_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()
	ctx := context.Background()

	tests := []struct {
		name string
		in   CheckAnswerInput
		code domain.ErrorCode
	}{
		{"diagnostic mode", CheckAnswerInput{Mode: domain.ModeDiagnostic, ProblemID: "p1"}, domain.CodeValidation},
		{"unknown mode", CheckAnswerInput{Mode: "exam", ProblemID: "p1"}, domain.CodeValidation},
		{"missing problem id", CheckAnswerInput{Mode: domain.ModePractice}, domain.CodeValidation},
		{"unknown problem", practice("p404", domain.UserAnswer{}), domain.CodeNotFound},
		{"unknown set", CheckAnswerInput{Mode: domain.ModePractice, ProblemID: "p1", SetID: "nope"}, domain.CodeNotFound},
		{"problem outside set", CheckAnswerInput{Mode: domain.ModePractice, ProblemID: "p3", SetID: "set_practice_1"}, domain.CodeValidation},
		{"missing vocab id", CheckAnswerInput{Mode: domain.ModeVocabTest}, domain.CodeValidation},
		{"unknown vocab", vocabAnswer("v404", "x"), domain.CodeNotFound},
		{"bad direction", CheckAnswerInput{Mode: domain.ModeVocabTest, VocabID: "v1", Direction: "sideways"}, domain.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.answers.CheckAnswer(ctx, testUserID, tt.in, "")
			assert.True(t, domain.IsCode(err, tt.code), "got %v", err)
		})
	}
	assert.Empty(t, env.store.attempts)
}

func TestCheckAnswer_VocabDirections(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()
	ctx := context.Background()

	resp, err := env.answers.CheckAnswer(ctx, testUserID, vocabAnswer("v1", " whole number "), "")
	require.NoError(t, err)
	assert.True(t, resp.IsCorrect)
	assert.Equal(t, "whole number", resp.CorrectAnswer)
	assert.Equal(t, 5, resp.XPGained)

	in := vocabAnswer("v2", "ABSOLUTE VALUE")
	in.Direction = domain.MeaningToWord
	resp, err = env.answers.CheckAnswer(ctx, testUserID, in, "")
	require.NoError(t, err)
	assert.True(t, resp.IsCorrect)
	assert.Equal(t, "absolute value", resp.CorrectAnswer)
}

func TestCheckAnswer_FrequentVocabBucket(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()

	resp, err := env.answers.CheckAnswer(context.Background(), testUserID, vocabAnswer("v4", "guess"), "")
	require.NoError(t, err)
	assert.False(t, resp.IsCorrect)
	assert.Equal(t, 3, resp.XPGained)
	require.NotNil(t, resp.UpdatedProgress)
	assert.Equal(t, "frequent_vocab", resp.UpdatedProgress.UnitID)
	assert.Equal(t, 100, resp.UpdatedProgress.VocabProgress)

	row := env.store.progress[progressKey{testUserID, "", domain.CategoryFrequent}]
	assert.Equal(t, 100, row.VocabProgress)
}

func TestUnitCompletionScenario(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()
	ctx := context.Background()

	concept, err := env.answers.CompleteConcept(ctx, testUserID, "unit_1", "")
	require.NoError(t, err)
	assert.Equal(t, 20, concept.XPGained)
	assert.Equal(t, 100, concept.UpdatedProgress.ConceptProgress)

	_, err = env.answers.CheckAnswer(ctx, testUserID, practice("p1", domain.UserAnswer{SelectedOption: intPtr(2)}), "")
	require.NoError(t, err)
	_, err = env.answers.CheckAnswer(ctx, testUserID, practice("p2", domain.UserAnswer{Value: "-5"}), "")
	require.NoError(t, err)
	first, err := env.answers.CheckAnswer(ctx, testUserID, vocabAnswer("v1", "whole number"), "")
	require.NoError(t, err)
	assert.Equal(t, 50, first.UpdatedProgress.VocabProgress)
	assert.Equal(t, 5, first.XPGained)

	last, err := env.answers.CheckAnswer(ctx, testUserID, vocabAnswer("v2", "distance from zero"), "")
	require.NoError(t, err)
	assert.Equal(t, 100, last.UpdatedProgress.VocabProgress)
	assert.Equal(t, 15, last.XPGained, "vocab reward plus unit completion")

	// answering again does not re-grant the unit award
	again, err := env.answers.CheckAnswer(ctx, testUserID, vocabAnswer("v2", "distance from zero"), "")
	require.NoError(t, err)
	assert.Equal(t, 5, again.XPGained)

	unitAwards := 0
	for _, key := range ledgerKeys(env.store) {
		if key == "unit_completed:1001:unit_1" {
			unitAwards++
		}
	}
	assert.Equal(t, 1, unitAwards)

	state := env.store.states[testUserID]
	assert.Equal(t, 20+15+15+5+5+10+5, state.TotalXP)
	assert.Equal(t, 2, state.Level)

	overall, err := env.progress.Overall(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, overall.CompletedAllUnitsRatio)
}

func TestCompleteConcept_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()
	ctx := context.Background()

	first, err := env.answers.CompleteConcept(ctx, testUserID, "unit_2", "concept-key")
	require.NoError(t, err)
	assert.False(t, first.Duplicate)
	assert.NotNil(t, first.GamificationUpdate)

	second, err := env.answers.CompleteConcept(ctx, testUserID, "unit_2", "concept-key")
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Zero(t, second.XPGained)
	assert.Nil(t, second.GamificationUpdate)

	assert.Equal(t, []string{"concept-key"}, ledgerKeys(env.store))
}

func TestCompleteConcept_DefaultKey(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()

	_, err := env.answers.CompleteConcept(context.Background(), testUserID, "unit_1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"concept_completed:1001:unit_1"}, ledgerKeys(env.store))
}

func TestCompleteConcept_UnknownUnit(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()

	_, err := env.answers.CompleteConcept(context.Background(), testUserID, "unit_404", "")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.Empty(t, env.store.ledger)
}
