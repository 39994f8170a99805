package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nerd-math/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func award(key string, reason domain.XPReason, correct bool) AwardXPInput {
	return AwardXPInput{
		UserID:         testUserID,
		Reason:         reason,
		ReasonRef:      "ref",
		IdempotencyKey: key,
		IsCorrect:      correct,
	}
}

func TestAwardXP_FirstAwardCreatesState(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.gamification.AwardXP(context.Background(), award("k1", domain.ReasonProblemSolved, true))
	require.NoError(t, err)

	assert.True(t, result.Awarded)
	assert.Equal(t, 15, result.XPGained)
	assert.Equal(t, 15, result.TotalXP)
	assert.Equal(t, 1, result.Level)
	assert.Equal(t, 15, result.XP)
	assert.Equal(t, 50, result.NextLevelXP)
	assert.False(t, result.LeveledUp)
	assert.NotEmpty(t, result.TransactionID)

	require.Len(t, env.store.ledger, 1)
	assert.Equal(t, "k1", env.store.ledger[0].IdempotencyKey)
	assert.Equal(t, int64(1), env.store.states[testUserID].Version)
}

func TestAwardXP_IncorrectAnswerGrantsReducedXP(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.gamification.AwardXP(context.Background(), award("k1", domain.ReasonVocabSolved, false))
	require.NoError(t, err)
	assert.Equal(t, 3, result.XPGained)
}

func TestAwardXP_AtMostOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.gamification.AwardXP(ctx, award("answer:01", domain.ReasonProblemSolved, true))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := env.gamification.AwardXP(ctx, award("answer:01", domain.ReasonProblemSolved, true))
		require.NoError(t, err)
		assert.False(t, again.Awarded)
		assert.True(t, again.Duplicate)
		assert.Equal(t, first.TransactionID, again.TransactionID)
		assert.Equal(t, 15, again.TotalXP)
	}

	assert.Len(t, env.store.ledger, 1)
	assert.Equal(t, 15, env.store.states[testUserID].TotalXP)
}

func TestAwardXP_ZeroAmountTouchesNothing(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.gamification.AwardXP(context.Background(), award("k", domain.ReasonCorrectAnswer, true))
	require.NoError(t, err)
	assert.False(t, result.Awarded)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, env.store.ledger)
	assert.Empty(t, env.store.states)
	assert.Zero(t, env.tx.commits)
}

func TestAwardXP_UnknownReasonIsZeroAward(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.gamification.AwardXP(context.Background(), AwardXPInput{
		UserID:         testUserID,
		Reason:         "login",
		IdempotencyKey: "k1",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Awarded)
	assert.Zero(t, result.XPGained)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, env.store.ledger)
	assert.Empty(t, env.store.states)
	assert.Zero(t, env.tx.commits)
}

func TestAwardXP_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   AwardXPInput
	}{
		{"missing user", AwardXPInput{Reason: domain.ReasonProblemSolved, IdempotencyKey: "k"}},
		{"missing key", AwardXPInput{UserID: testUserID, Reason: domain.ReasonProblemSolved}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.gamification.AwardXP(ctx, tt.in)
			assert.True(t, domain.IsCode(err, domain.CodeValidation))
		})
	}
}

func TestAwardXP_LevelUpRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	env.store.states[testUserID] = domain.GamificationState{
		UserID: testUserID, Level: 1, XP: 45, TotalXP: 45, NextLevelXP: 50, EquippedTierID: domain.DefaultTierID,
	}

	result, err := env.gamification.AwardXP(context.Background(), award("k", domain.ReasonConceptCompleted, true))
	require.NoError(t, err)

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.Level)
	assert.Equal(t, 15, result.XP)
	assert.Equal(t, 65, result.TotalXP)
	assert.Equal(t, 100, result.NextLevelXP)

	require.Len(t, env.store.levelUps, 1)
	assert.Equal(t, 2, env.store.levelUps[0].Level)
	assert.Equal(t, result.TransactionID, env.store.levelUps[0].TransactionID)
	state := env.store.states[testUserID]
	assert.Equal(t, "char_default_male_lv2", state.EquippedTierID)
	require.NotNil(t, state.LastLeveledUpAt)
	assert.Equal(t, env.clock.Now(), *state.LastLeveledUpAt)
}

func TestAwardXP_CascadePolicy(t *testing.T) {
	tests := []struct {
		name         string
		cascade      bool
		wantLevel    int
		wantXP       int
		wantLevelUps int
	}{
		{"cascade", true, 3, 0, 2},
		{"single step", false, 2, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, withCascade(tt.cascade))
			env.store.states[testUserID] = domain.GamificationState{
				UserID: testUserID, Level: 1, XP: 140, TotalXP: 140, NextLevelXP: 50, EquippedTierID: domain.DefaultTierID,
			}

			result, err := env.gamification.AwardXP(context.Background(), award("k", domain.ReasonUnitCompleted, true))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, result.Level)
			assert.Equal(t, tt.wantXP, result.XP)
			assert.Equal(t, tt.wantLevelUps, result.LevelsGained)
			assert.Equal(t, 150, result.TotalXP)
			assert.Len(t, env.store.levelUps, tt.wantLevelUps)
		})
	}
}

func TestAwardXP_RetriesConcurrentUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.store.casFailures = 2

	result, err := env.gamification.AwardXP(context.Background(), award("k", domain.ReasonProblemSolved, true))
	require.NoError(t, err)
	assert.True(t, result.Awarded)
	assert.Len(t, env.store.ledger, 1, "rolled back attempts leave no ledger rows")
	assert.Equal(t, 15, env.store.states[testUserID].TotalXP)
}

func TestAwardXP_RetriesExhausted(t *testing.T) {
	env := newTestEnv(t)
	env.store.casFailures = 10

	_, err := env.gamification.AwardXP(context.Background(), award("k", domain.ReasonProblemSolved, true))
	assert.True(t, domain.IsCode(err, domain.CodeConflict))
	assert.Empty(t, env.store.ledger)
	assert.Equal(t, 7, env.store.casFailures)
}

func TestAwardXP_DistinctKeysAccumulate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := env.gamification.AwardXP(ctx, award(fmt.Sprintf("k%d", i), domain.ReasonProblemSolved, true))
		require.NoError(t, err)
	}
	state := env.store.states[testUserID]
	assert.Equal(t, 75, state.TotalXP)
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, 25, state.XP)
	assert.Equal(t, int64(5), state.Version)
}

func TestGetState_DefaultsForNewUser(t *testing.T) {
	env := newTestEnv(t)

	state, err := env.gamification.GetState(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, 0, state.TotalXP)
	assert.Equal(t, 50, state.NextLevelXP)
	assert.Equal(t, domain.DefaultTierID, state.EquippedTierID)
	assert.Nil(t, state.LastLeveledUpAt)
}

func TestGetXPHistory_PagesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reasons := []domain.XPReason{domain.ReasonProblemSolved, domain.ReasonVocabSolved, domain.ReasonProblemSolved}
	for i, reason := range reasons {
		_, err := env.gamification.AwardXP(ctx, award(fmt.Sprintf("k%d", i), reason, true))
		require.NoError(t, err)
		env.clock.Advance(time.Minute)
	}

	page, err := env.gamification.GetXPHistory(ctx, testUserID, 1, 2, "")
	require.NoError(t, err)
	require.Len(t, page.Transactions, 2)
	assert.True(t, page.Transactions[0].At.After(page.Transactions[1].At))
	assert.Equal(t, 3, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)

	filtered, err := env.gamification.GetXPHistory(ctx, testUserID, 1, 20, string(domain.ReasonVocabSolved))
	require.NoError(t, err)
	require.Len(t, filtered.Transactions, 1)
	assert.Equal(t, 5, filtered.Transactions[0].Amount)

	_, err = env.gamification.GetXPHistory(ctx, testUserID, 1, 20, "bogus")
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestGetLevelHistory(t *testing.T) {
	env := newTestEnv(t)
	env.store.states[testUserID] = domain.GamificationState{
		UserID: testUserID, Level: 1, XP: 140, TotalXP: 140, NextLevelXP: 50, EquippedTierID: domain.DefaultTierID,
	}
	_, err := env.gamification.AwardXP(context.Background(), award("k", domain.ReasonUnitCompleted, true))
	require.NoError(t, err)

	history, err := env.gamification.GetLevelHistory(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, history.LevelHistory, 2)
	assert.Equal(t, 3, history.LevelHistory[0].Level)
	assert.Equal(t, 2, history.LevelHistory[1].Level)
	assert.Equal(t, 150, history.LevelHistory[0].TotalXP)
}

func seedCharacters(env *testEnv) {
	for _, track := range []string{domain.TrackMale, domain.TrackFemale} {
		for level := 3; level >= 1; level-- {
			id := domain.TierID(track, level)
			env.store.chars[id] = domain.Character{
				ID: id, Name: fmt.Sprintf("Nerdy %s %d", track, level), ImageURL: "/img/" + id + ".png",
				Gender: track, Level: level, IsDefault: true, IsActive: true,
			}
		}
	}
	env.store.chars["char_default_male_retired"] = domain.Character{
		ID: "char_default_male_retired", Gender: domain.TrackMale, Level: 1, IsDefault: true, IsActive: false,
	}
	env.store.chars["char_event_male_lv1"] = domain.Character{
		ID: "char_event_male_lv1", Gender: domain.TrackMale, Level: 1, IsDefault: false, IsActive: true,
	}
}

func TestListDefaultCharacters(t *testing.T) {
	env := newTestEnv(t)
	seedCharacters(env)

	resp, err := env.gamification.ListDefaultCharacters(context.Background(), domain.TrackFemale)
	require.NoError(t, err)
	require.Len(t, resp.Characters, 3)
	for i, c := range resp.Characters {
		assert.Equal(t, i+1, c.Level)
		assert.Equal(t, domain.TrackFemale, c.Gender)
		assert.True(t, c.IsDefault)
		assert.True(t, c.IsActive)
	}
	assert.Equal(t, "char_default_female_lv1", resp.Characters[0].CharacterID)

	male, err := env.gamification.ListDefaultCharacters(context.Background(), domain.TrackMale)
	require.NoError(t, err)
	assert.Len(t, male.Characters, 3, "inactive and non-default characters are excluded")
}

func TestListDefaultCharacters_RejectsUnknownGender(t *testing.T) {
	env := newTestEnv(t)

	for _, gender := range []string{"", "other", "MALE"} {
		_, err := env.gamification.ListDefaultCharacters(context.Background(), gender)
		assert.True(t, domain.IsCode(err, domain.CodeValidation), "gender %q", gender)
	}
}

func TestGetMyCharacter_ResolvesEquippedTier(t *testing.T) {
	env := newTestEnv(t)
	seedCharacters(env)
	env.store.states[testUserID] = domain.GamificationState{
		UserID: testUserID, Level: 1, XP: 45, TotalXP: 45, NextLevelXP: 50, EquippedTierID: domain.DefaultTierID,
	}
	ctx := context.Background()

	mine, err := env.gamification.GetMyCharacter(ctx, testUserID)
	require.NoError(t, err)
	require.NotNil(t, mine.EquippedCharacter)
	assert.Equal(t, domain.DefaultTierID, mine.EquippedCharacter.CharacterID)
	assert.Equal(t, 45, mine.TotalXP)

	_, err = env.gamification.AwardXP(ctx, award("k", domain.ReasonConceptCompleted, true))
	require.NoError(t, err)

	mine, err = env.gamification.GetMyCharacter(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Level)
	require.NotNil(t, mine.EquippedCharacter)
	assert.Equal(t, "char_default_male_lv2", mine.EquippedCharacter.CharacterID)
	assert.Equal(t, 2, mine.EquippedCharacter.Level)
}

func TestGetMyCharacter_UnknownTierIsNull(t *testing.T) {
	env := newTestEnv(t)

	mine, err := env.gamification.GetMyCharacter(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTierID, mine.EquippedTierID)
	assert.Nil(t, mine.EquippedCharacter)
}
