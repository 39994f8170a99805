package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/logger"
	"nerd-math/internal/util"

	"go.uber.org/zap"
)

// CheckAnswerInput is a practice or vocabulary answer to score.
type CheckAnswerInput struct {
	Mode            domain.AttemptMode
	ProblemID       string
	VocabID         string
	SetID           string
	Direction       domain.VocabDirection
	Answer          domain.UserAnswer
	DurationSeconds *int
}

// AnswerService scores practice and vocabulary answers and drives the progress
// and XP updates that follow from them.
type AnswerService interface {
	CheckAnswer(ctx context.Context, userID int64, in CheckAnswerInput, idempotencyKey string) (*dto.CheckAnswerResponse, error)
	CompleteConcept(ctx context.Context, userID int64, unitID string, idempotencyKey string) (*dto.ConceptCompleteResponse, error)
}

type answerServiceImpl struct {
	problemRepo    domain.ProblemRepository
	problemSetRepo domain.ProblemSetRepository
	vocabRepo      domain.VocabularyRepository
	unitRepo       domain.UnitRepository
	attemptRepo    domain.AnswerAttemptRepository
	progress       ProgressService
	gamification   GamificationService
	now            func() time.Time
}

func NewAnswerService(
	problemRepo domain.ProblemRepository,
	problemSetRepo domain.ProblemSetRepository,
	vocabRepo domain.VocabularyRepository,
	unitRepo domain.UnitRepository,
	attemptRepo domain.AnswerAttemptRepository,
	progress ProgressService,
	gamification GamificationService,
) AnswerService {
	return &answerServiceImpl{
		problemRepo:    problemRepo,
		problemSetRepo: problemSetRepo,
		vocabRepo:      vocabRepo,
		unitRepo:       unitRepo,
		attemptRepo:    attemptRepo,
		progress:       progress,
		gamification:   gamification,
		now:            time.Now,
	}
}

func unitCompletedKey(userID int64, unitID string) string {
	return fmt.Sprintf("unit_completed:%d:%s", userID, unitID)
}

func conceptCompletedKey(userID int64, unitID string) string {
	return fmt.Sprintf("concept_completed:%d:%s", userID, unitID)
}

func answerAwardKey(attemptID string) string {
	return "answer:" + attemptID
}

func (s *answerServiceImpl) CheckAnswer(ctx context.Context, userID int64, in CheckAnswerInput, idempotencyKey string) (*dto.CheckAnswerResponse, error) {
	switch in.Mode {
	case domain.ModePractice, domain.ModeVocabTest:
	case domain.ModeDiagnostic:
		return nil, domain.NewValidationError("diagnostic answers are submitted to the diagnostic test")
	default:
		return nil, domain.NewValidationError("mode must be practice or vocab_test").WithContext("mode", string(in.Mode))
	}

	if idempotencyKey != "" {
		existing, err := s.attemptRepo.GetByIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			return nil, domain.NewInternalError("failed to look up idempotency key", err)
		}
		if existing != nil {
			return nil, duplicateAnswerError(existing.ID)
		}
	}

	if in.Mode == domain.ModePractice {
		return s.checkPractice(ctx, userID, in, idempotencyKey)
	}
	return s.checkVocab(ctx, userID, in, idempotencyKey)
}

func duplicateAnswerError(answerID string) error {
	return domain.NewConflictError("this answer was already submitted").WithContext("answerId", answerID)
}

func (s *answerServiceImpl) checkPractice(ctx context.Context, userID int64, in CheckAnswerInput, idempotencyKey string) (*dto.CheckAnswerResponse, error) {
	if in.ProblemID == "" {
		return nil, domain.NewValidationError("problemId is required for practice answers")
	}
	problem, err := s.problemRepo.GetByID(ctx, in.ProblemID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load problem", err)
	}
	if problem == nil {
		return nil, domain.NewNotFoundError("problem not found").WithContext("problemId", in.ProblemID)
	}
	if in.SetID != "" {
		set, err := s.problemSetRepo.GetByID(ctx, in.SetID)
		if err != nil {
			return nil, domain.NewInternalError("failed to load problem set", err)
		}
		if set == nil {
			return nil, domain.NewNotFoundError("problem set not found").WithContext("setId", in.SetID)
		}
		if !set.Contains(problem.ID) {
			return nil, domain.NewValidationError("problem is not part of the problem set").
				WithContext("problemId", problem.ID).WithContext("setId", set.ID)
		}
	}

	answeredBefore, err := s.attemptRepo.HasPracticeAttempt(ctx, userID, problem.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check previous attempts", err)
	}

	isCorrect := problem.IsCorrect(in.Answer)
	attempt, err := s.storeAttempt(ctx, userID, in, problem.UnitID, isCorrect, idempotencyKey)
	if err != nil {
		return nil, err
	}

	resp := &dto.CheckAnswerResponse{
		AnswerID:      attempt.ID,
		IsCorrect:     isCorrect,
		CorrectAnswer: problem.CorrectAnswer,
		Explanation:   problem.Explanation,
	}

	var row *domain.UnitProgress
	if !answeredBefore {
		row = s.refreshProgress(ctx, userID, problem.UnitID, domain.CategoryUnit, domain.AxisProblem, func() (int, int, error) {
			answered, err := s.attemptRepo.CountDistinctProblemsInUnit(ctx, userID, problem.UnitID)
			if err != nil {
				return 0, 0, err
			}
			total, err := s.problemRepo.CountByUnit(ctx, problem.UnitID)
			return answered, total, err
		})
		resp.UpdatedProgress = toUnitProgressResponse(row)
	}

	s.applyAwards(ctx, resp, userID, AwardXPInput{
		UserID:         userID,
		Reason:         domain.ReasonProblemSolved,
		ReasonRef:      problem.ID,
		IdempotencyKey: answerAwardKey(attempt.ID),
		IsCorrect:      isCorrect,
	}, row)
	return resp, nil
}

func (s *answerServiceImpl) checkVocab(ctx context.Context, userID int64, in CheckAnswerInput, idempotencyKey string) (*dto.CheckAnswerResponse, error) {
	if in.VocabID == "" {
		return nil, domain.NewValidationError("vocabId is required for vocabulary answers")
	}
	direction := in.Direction
	if direction == "" {
		direction = domain.WordToMeaning
	}
	if !direction.Valid() {
		return nil, domain.NewValidationError("direction must be word_to_meaning or meaning_to_word").
			WithContext("direction", string(direction))
	}

	vocab, err := s.vocabRepo.GetByID(ctx, in.VocabID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load vocabulary", err)
	}
	if vocab == nil {
		return nil, domain.NewNotFoundError("vocabulary not found").WithContext("vocabId", in.VocabID)
	}

	isCorrect, expected := vocab.Check(direction, in.Answer.Value)
	attempt, err := s.storeAttempt(ctx, userID, in, vocab.UnitID, isCorrect, idempotencyKey)
	if err != nil {
		return nil, err
	}

	resp := &dto.CheckAnswerResponse{
		AnswerID:      attempt.ID,
		IsCorrect:     isCorrect,
		CorrectAnswer: expected,
		Explanation:   vocab.Etymology,
	}

	var row *domain.UnitProgress
	switch {
	case vocab.Category == domain.VocabFrequent:
		row = s.refreshProgress(ctx, userID, "", domain.CategoryFrequent, domain.AxisVocab, func() (int, int, error) {
			answered, err := s.attemptRepo.CountDistinctVocabByCategory(ctx, userID, domain.VocabFrequent)
			if err != nil {
				return 0, 0, err
			}
			total, err := s.vocabRepo.CountByCategory(ctx, domain.VocabFrequent)
			return answered, total, err
		})
	case vocab.UnitID != "":
		row = s.refreshProgress(ctx, userID, vocab.UnitID, domain.CategoryUnit, domain.AxisVocab, func() (int, int, error) {
			answered, err := s.attemptRepo.CountDistinctVocabInUnit(ctx, userID, vocab.UnitID)
			if err != nil {
				return 0, 0, err
			}
			total, err := s.vocabRepo.CountByUnit(ctx, vocab.UnitID, domain.VocabMathTerm)
			return answered, total, err
		})
	}
	resp.UpdatedProgress = toUnitProgressResponse(row)

	s.applyAwards(ctx, resp, userID, AwardXPInput{
		UserID:         userID,
		Reason:         domain.ReasonVocabSolved,
		ReasonRef:      vocab.ID,
		IdempotencyKey: answerAwardKey(attempt.ID),
		IsCorrect:      isCorrect,
	}, row)
	return resp, nil
}

func (s *answerServiceImpl) storeAttempt(ctx context.Context, userID int64, in CheckAnswerInput, unitID string, isCorrect bool, idempotencyKey string) (*domain.AnswerAttempt, error) {
	now := s.now()
	correct := isCorrect
	attempt := &domain.AnswerAttempt{
		ID:              util.NewULIDAt(now),
		UserID:          userID,
		Mode:            in.Mode,
		SetID:           in.SetID,
		UnitID:          unitID,
		UserAnswer:      in.Answer,
		IsCorrect:       &correct,
		DurationSeconds: in.DurationSeconds,
		ScoredAt:        &now,
		IdempotencyKey:  idempotencyKey,
		CreatedAt:       now,
	}
	if in.Mode == domain.ModePractice {
		attempt.ProblemID = in.ProblemID
	} else {
		attempt.VocabID = in.VocabID
	}

	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			existing, lookupErr := s.attemptRepo.GetByIdempotencyKey(ctx, idempotencyKey)
			if lookupErr == nil && existing != nil {
				return nil, duplicateAnswerError(existing.ID)
			}
			return nil, domain.NewConflictError("this answer was already submitted")
		}
		return nil, domain.NewInternalError("failed to store answer", err)
	}
	return attempt, nil
}

// refreshProgress recomputes one axis from distinct answered counts. The answer is
// already stored, so failures here are logged and the scoring result still returned.
func (s *answerServiceImpl) refreshProgress(
	ctx context.Context,
	userID int64,
	unitID string,
	category domain.ProgressCategory,
	axis domain.ProgressAxis,
	counts func() (answered, total int, err error),
) *domain.UnitProgress {
	answered, total, err := counts()
	if err != nil {
		logger.Get().Error("Failed to count answered items",
			zap.Int64("userID", userID), zap.String("unitID", unitID), zap.Error(err))
		return nil
	}

	row, err := s.progress.UpdateProgress(ctx, userID, UpdateProgressInput{
		UnitID:   unitID,
		Axis:     axis,
		Value:    domain.RatioPercent(answered, total),
		Category: category,
	})
	if err != nil {
		logger.Get().Error("Failed to update progress after answer",
			zap.Int64("userID", userID), zap.String("unitID", unitID), zap.String("axis", string(axis)), zap.Error(err))
		return nil
	}
	return row
}

func (s *answerServiceImpl) applyAwards(ctx context.Context, resp *dto.CheckAnswerResponse, userID int64, award AwardXPInput, row *domain.UnitProgress) {
	result, err := s.gamification.AwardXP(ctx, award)
	if err != nil {
		logger.Get().Error("Failed to award answer XP",
			zap.Int64("userID", userID), zap.String("idempotencyKey", award.IdempotencyKey), zap.Error(err))
	} else if result.Awarded {
		resp.XPGained += result.XPGained
		resp.GamificationUpdate = toGamificationUpdate(result)
	}

	unitResult, err := s.awardUnitCompletion(ctx, userID, row)
	if err != nil {
		logger.Get().Error("Failed to award unit completion", zap.Int64("userID", userID), zap.Error(err))
		return
	}
	if unitResult != nil && unitResult.Awarded {
		resp.XPGained += unitResult.XPGained
		resp.GamificationUpdate = toGamificationUpdate(unitResult)
	}
}

// awardUnitCompletion grants unit_completed once all three axes of a unit row are
// complete. The key is per user and unit, so repeated calls grant at most once.
func (s *answerServiceImpl) awardUnitCompletion(ctx context.Context, userID int64, row *domain.UnitProgress) (*domain.AwardResult, error) {
	if row == nil || row.Category != domain.CategoryUnit || !row.FullyCompleted() {
		return nil, nil
	}
	return s.gamification.AwardXP(ctx, AwardXPInput{
		UserID:         userID,
		Reason:         domain.ReasonUnitCompleted,
		ReasonRef:      row.UnitID,
		IdempotencyKey: unitCompletedKey(userID, row.UnitID),
		IsCorrect:      true,
	})
}

func (s *answerServiceImpl) CompleteConcept(ctx context.Context, userID int64, unitID string, idempotencyKey string) (*dto.ConceptCompleteResponse, error) {
	if unitID == "" {
		return nil, domain.NewValidationError("unitId is required")
	}

	row, err := s.progress.UpdateProgress(ctx, userID, UpdateProgressInput{
		UnitID:   unitID,
		Axis:     domain.AxisConcept,
		Value:    domain.MaxProgress,
		Category: domain.CategoryUnit,
	})
	if err != nil {
		return nil, err
	}

	if idempotencyKey == "" {
		idempotencyKey = conceptCompletedKey(userID, unitID)
	}
	award, err := s.gamification.AwardXP(ctx, AwardXPInput{
		UserID:         userID,
		Reason:         domain.ReasonConceptCompleted,
		ReasonRef:      unitID,
		IdempotencyKey: idempotencyKey,
		IsCorrect:      true,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ConceptCompleteResponse{
		UnitID:             unitID,
		UpdatedProgress:    toUnitProgressResponse(row),
		Duplicate:          award.Duplicate,
		GamificationUpdate: toGamificationUpdate(award),
	}
	if award.Awarded {
		resp.XPGained = award.XPGained
	}

	unitAward, err := s.awardUnitCompletion(ctx, userID, row)
	if err != nil {
		return nil, err
	}
	if unitAward != nil && unitAward.Awarded {
		resp.XPGained += unitAward.XPGained
		resp.GamificationUpdate = toGamificationUpdate(unitAward)
	}
	return resp, nil
}
