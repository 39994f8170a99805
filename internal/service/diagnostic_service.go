package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"nerd-math/internal/config"
	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/logger"
	"nerd-math/internal/util"

	"go.uber.org/zap"
)

const (
	defaultTimeoutMinutes = 60
	defaultMaxRestarts    = 2
	// Sessions restarted this many times get a fresh problem order.
	reseedRestartCount = 2
)

// StartDiagnosticInput opens a diagnostic session for a grade range.
type StartDiagnosticInput struct {
	GradeRange domain.GradeRange
	Rule       map[string]interface{}
}

// SubmitDiagnosticInput is one unscored diagnostic answer.
type SubmitDiagnosticInput struct {
	ProblemID       string
	Answer          domain.UserAnswer
	DurationSeconds *int
}

// DiagnosticService runs the timed placement test: session lifecycle, answer
// collection, batch scoring and the hand-off to the analysis service.
type DiagnosticService interface {
	Eligibility(ctx context.Context, userID int64) (*dto.EligibilityResponse, error)
	Start(ctx context.Context, userID int64, in StartDiagnosticInput) (*dto.StartDiagnosticResponse, error)
	Status(ctx context.Context, userID int64, testID string) (*dto.DiagnosticStatusResponse, error)
	Submit(ctx context.Context, userID int64, testID string, in SubmitDiagnosticInput, idempotencyKey string) (*dto.SubmitAnswerResponse, error)
	Complete(ctx context.Context, userID int64, testID string) (*dto.CompleteDiagnosticResponse, error)
	Restart(ctx context.Context, userID int64, testID string) (*dto.RestartDiagnosticResponse, error)
	TimeoutStatus(ctx context.Context, userID int64, testID string) (*dto.TimeoutStatusResponse, error)
	Analysis(ctx context.Context, userID int64, testID string) (*dto.AnalysisResponse, error)
	LatestAnalysis(ctx context.Context, userID int64) (*dto.AnalysisResponse, error)
	IngestAnalysis(ctx context.Context, analysis *domain.DiagnosticAnalysis) error
}

type diagnosticServiceImpl struct {
	testRepo       domain.DiagnosticTestRepository
	attemptRepo    domain.AnswerAttemptRepository
	problemRepo    domain.ProblemRepository
	problemSetRepo domain.ProblemSetRepository
	analysisRepo   domain.DiagnosticAnalysisRepository
	analysisClient domain.AnalysisClient
	tracker        AnalysisTracker
	txManager      domain.TransactionManager
	cfg            config.DiagnosticConfig
	analysisCfg    config.AnalysisConfig
	now            func() time.Time
	newSeed        func() int64
}

func NewDiagnosticService(
	testRepo domain.DiagnosticTestRepository,
	attemptRepo domain.AnswerAttemptRepository,
	problemRepo domain.ProblemRepository,
	problemSetRepo domain.ProblemSetRepository,
	analysisRepo domain.DiagnosticAnalysisRepository,
	analysisClient domain.AnalysisClient,
	tracker AnalysisTracker,
	txManager domain.TransactionManager,
	cfg config.DiagnosticConfig,
	analysisCfg config.AnalysisConfig,
) DiagnosticService {
	if tracker == nil {
		tracker = noopAnalysisTracker{}
	}
	if cfg.TimeoutMinutes <= 0 {
		cfg.TimeoutMinutes = defaultTimeoutMinutes
	}
	if cfg.MaxRestarts <= 0 {
		cfg.MaxRestarts = defaultMaxRestarts
	}
	return &diagnosticServiceImpl{
		testRepo:       testRepo,
		attemptRepo:    attemptRepo,
		problemRepo:    problemRepo,
		problemSetRepo: problemSetRepo,
		analysisRepo:   analysisRepo,
		analysisClient: analysisClient,
		tracker:        tracker,
		txManager:      txManager,
		cfg:            cfg,
		analysisCfg:    analysisCfg,
		now:            time.Now,
		newSeed: func() int64 {
			return rand.Int63n(domain.MaxShuffleSeed)
		},
	}
}

func (s *diagnosticServiceImpl) Eligibility(ctx context.Context, userID int64) (*dto.EligibilityResponse, error) {
	completed, err := s.testRepo.FindCompletedByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check diagnostic eligibility", err)
	}
	if completed != nil {
		return &dto.EligibilityResponse{
			Eligible:       false,
			Reason:         "diagnostic test already completed",
			ExistingTestID: completed.ID,
		}, nil
	}
	return &dto.EligibilityResponse{Eligible: true, Reason: "no completed diagnostic test"}, nil
}

func (s *diagnosticServiceImpl) Start(ctx context.Context, userID int64, in StartDiagnosticInput) (*dto.StartDiagnosticResponse, error) {
	if in.GradeRange.Min < 1 || in.GradeRange.Max < in.GradeRange.Min {
		return nil, domain.NewValidationError("gradeRange must satisfy 1 <= min <= max").
			WithContext("gradeRange", in.GradeRange.String())
	}

	completed, err := s.testRepo.FindCompletedByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check completed diagnostic", err)
	}
	if completed != nil {
		return nil, domain.NewForbiddenError("diagnostic test already completed").WithContext("testId", completed.ID)
	}

	active, err := s.testRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to find active diagnostic", err)
	}
	if active != nil {
		restarted, err := s.restart(ctx, active)
		if err != nil {
			return nil, err
		}
		return &dto.StartDiagnosticResponse{
			TestID:         active.ID,
			UserID:         userID,
			GradeRange:     toGradeRangeDTO(active.GradeRange),
			StartedAt:      restarted.StartedAt,
			FirstProblemID: restarted.FirstProblemID,
			TotalProblems:  restarted.TotalProblems,
			TimeoutMinutes: active.TimeoutMinutes,
			IsRestart:      true,
			RestartCount:   restarted.RestartCount,
			ShuffleSeed:    restarted.ShuffleSeed,
		}, nil
	}

	unitKey := in.GradeRange.DiagnosticUnit()
	set, err := s.problemSetRepo.FindDiagnostic(ctx, unitKey)
	if err != nil {
		return nil, domain.NewInternalError("failed to load diagnostic problem set", err)
	}
	if set == nil {
		return nil, domain.NewNotFoundError("no diagnostic problem set for the grade range").
			WithContext("gradeRange", in.GradeRange.String()).WithContext("diagnosticUnit", unitKey)
	}

	rule := in.Rule
	if rule == nil {
		rule = map[string]interface{}{}
	}
	now := s.now()
	test := &domain.DiagnosticTest{
		ID:             util.NewULIDAt(now),
		UserID:         userID,
		GradeRange:     in.GradeRange,
		ProblemSetID:   set.ID,
		RuleSnapshot:   rule,
		StartedAt:      now,
		TimeoutMinutes: s.cfg.TimeoutMinutes,
		ShuffleSeed:    s.newSeed(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.testRepo.Create(ctx, test); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("failed to create diagnostic test", err)
	}

	logger.Get().Info("Diagnostic test started",
		zap.String("testID", test.ID), zap.Int64("userID", userID), zap.String("diagnosticUnit", unitKey))

	order := domain.Shuffle(set.ProblemIDs, test.ShuffleSeed)
	return &dto.StartDiagnosticResponse{
		TestID:         test.ID,
		UserID:         userID,
		GradeRange:     toGradeRangeDTO(test.GradeRange),
		StartedAt:      test.StartedAt,
		FirstProblemID: problemAt(order, 0),
		TotalProblems:  len(order),
		TimeoutMinutes: test.TimeoutMinutes,
		RestartCount:   test.RestartCount,
		ShuffleSeed:    test.ShuffleSeed,
	}, nil
}

func (s *diagnosticServiceImpl) Status(ctx context.Context, userID int64, testID string) (*dto.DiagnosticStatusResponse, error) {
	test, err := s.loadOwnedTest(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	if !test.Completed {
		if _, err := s.checkTimeout(ctx, test); err != nil {
			return nil, err
		}
	}

	set, err := s.loadSet(ctx, test)
	if err != nil {
		return nil, err
	}
	answered, err := s.attemptRepo.CountByTest(ctx, test.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to count diagnostic answers", err)
	}

	order := domain.Shuffle(set.ProblemIDs, test.ShuffleSeed)
	return &dto.DiagnosticStatusResponse{
		TestID:           test.ID,
		UserID:           test.UserID,
		Completed:        test.Completed,
		TimedOut:         test.TimedOut,
		AnsweredCount:    answered,
		RemainingCount:   remaining(len(order), answered),
		CurrentProblemID: problemAt(order, answered),
		StartedAt:        test.StartedAt,
		TimeoutMinutes:   test.TimeoutMinutes,
	}, nil
}

func (s *diagnosticServiceImpl) Submit(ctx context.Context, userID int64, testID string, in SubmitDiagnosticInput, idempotencyKey string) (*dto.SubmitAnswerResponse, error) {
	if in.ProblemID == "" {
		return nil, domain.NewValidationError("problemId is required")
	}
	test, err := s.loadOwnedTest(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOpen(ctx, test); err != nil {
		return nil, err
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

	problem, err := s.problemRepo.GetByID(ctx, in.ProblemID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load problem", err)
	}
	if problem == nil {
		return nil, domain.NewNotFoundError("problem not found").WithContext("problemId", in.ProblemID)
	}
	set, err := s.loadSet(ctx, test)
	if err != nil {
		return nil, err
	}
	if !set.Contains(problem.ID) {
		return nil, domain.NewValidationError("problem is not part of this diagnostic test").
			WithContext("problemId", problem.ID)
	}

	now := s.now()
	attempt := &domain.AnswerAttempt{
		ID:              util.NewULIDAt(now),
		UserID:          userID,
		Mode:            domain.ModeDiagnostic,
		ProblemID:       problem.ID,
		SetID:           set.ID,
		TestID:          test.ID,
		UnitID:          problem.UnitID,
		UserAnswer:      in.Answer,
		DurationSeconds: in.DurationSeconds,
		IdempotencyKey:  idempotencyKey,
		CreatedAt:       now,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			return nil, domain.NewConflictError("problem already answered in this diagnostic test").
				WithContext("problemId", problem.ID)
		}
		return nil, domain.NewInternalError("failed to store diagnostic answer", err)
	}

	answered, err := s.attemptRepo.CountByTest(ctx, test.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to count diagnostic answers", err)
	}

	order := domain.Shuffle(set.ProblemIDs, test.ShuffleSeed)
	var next *string
	if id := domain.NextProblemID(order, problem.ID); id != "" {
		next = &id
	}
	return &dto.SubmitAnswerResponse{
		AnswerID:       attempt.ID,
		IsCorrect:      nil,
		NextProblemID:  next,
		AnsweredCount:  answered,
		RemainingCount: remaining(len(order), answered),
	}, nil
}

func (s *diagnosticServiceImpl) Complete(ctx context.Context, userID int64, testID string) (*dto.CompleteDiagnosticResponse, error) {
	test, err := s.loadOwnedTest(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOpen(ctx, test); err != nil {
		return nil, err
	}

	now := s.now()
	durationSec := test.ElapsedSeconds(now)
	var (
		answers      []domain.AnalysisAnswer
		correctCount int
	)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.testRepo.MarkCompleted(txCtx, test.ID, now, durationSec, false)
		if err != nil {
			return domain.NewInternalError("failed to complete diagnostic test", err)
		}
		if !ok {
			return domain.NewConflictError("diagnostic test already completed").WithContext("testId", test.ID)
		}

		answers, correctCount, err = s.scoreAttempts(txCtx, test.ID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	test.Completed = true
	test.EndedAt = &now
	test.DurationSec = &durationSec

	delivered := s.requestAnalysis(ctx, test, answers, durationSec, now)

	logger.Get().Info("Diagnostic test completed",
		zap.String("testID", test.ID),
		zap.Int64("userID", userID),
		zap.Int("answered", len(answers)),
		zap.Int("correct", correctCount),
		zap.Bool("analysisRequested", delivered),
	)

	return &dto.CompleteDiagnosticResponse{
		TestID:                test.ID,
		Completed:             true,
		DurationSec:           durationSec,
		TotalProblems:         len(answers),
		AnsweredProblems:      len(answers),
		Score:                 domain.ScorePercent(correctCount, len(answers)),
		CorrectCount:          correctCount,
		AnalysisRequested:     delivered,
		EstimatedAnalysisTime: s.analysisCfg.EstimatedTimeLabel,
	}, nil
}

// scoreAttempts grades every stored answer of the test against its problem.
func (s *diagnosticServiceImpl) scoreAttempts(ctx context.Context, testID string, now time.Time) ([]domain.AnalysisAnswer, int, error) {
	attempts, err := s.attemptRepo.ListByTest(ctx, testID)
	if err != nil {
		return nil, 0, domain.NewInternalError("failed to list diagnostic answers", err)
	}

	ids := make([]string, 0, len(attempts))
	for _, a := range attempts {
		ids = append(ids, a.ProblemID)
	}
	problems, err := s.problemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, domain.NewInternalError("failed to load diagnostic problems", err)
	}
	byID := make(map[string]domain.Problem, len(problems))
	for _, p := range problems {
		byID[p.ID] = p
	}

	answers := make([]domain.AnalysisAnswer, 0, len(attempts))
	correct := 0
	for _, a := range attempts {
		isCorrect := false
		if p, ok := byID[a.ProblemID]; ok {
			isCorrect = p.IsCorrect(a.UserAnswer)
		}
		if err := s.attemptRepo.MarkScored(ctx, a.ID, isCorrect, now); err != nil {
			return nil, 0, domain.NewInternalError("failed to store diagnostic score", err)
		}
		if isCorrect {
			correct++
		}

		duration := int(now.Sub(a.CreatedAt) / time.Second)
		if a.DurationSeconds != nil {
			duration = *a.DurationSeconds
		}
		answers = append(answers, domain.AnalysisAnswer{
			ProblemID:       a.ProblemID,
			UserAnswer:      a.UserAnswer,
			IsCorrect:       isCorrect,
			DurationSeconds: duration,
		})
	}
	return answers, correct, nil
}

// requestAnalysis hands the transcript to the analysis service. Failures are
// logged and reported as false; completion has already been committed.
func (s *diagnosticServiceImpl) requestAnalysis(ctx context.Context, test *domain.DiagnosticTest, answers []domain.AnalysisAnswer, durationSec int, now time.Time) bool {
	if s.analysisClient == nil {
		logger.Get().Warn("Analysis client not configured, skipping analysis request", zap.String("testID", test.ID))
		return false
	}

	req := &domain.AnalysisRequest{
		TestID:        test.ID,
		UserID:        test.UserID,
		GradeRange:    test.GradeRange,
		Answers:       answers,
		TotalProblems: len(answers),
		DurationSec:   durationSec,
	}
	delivered := true
	if err := s.analysisClient.RequestAnalysis(ctx, req); err != nil {
		delivered = false
		logger.Get().Error("Failed to request diagnostic analysis", zap.String("testID", test.ID), zap.Error(err))
	}

	if err := s.tracker.MarkRequested(ctx, test.ID, now, delivered); err != nil {
		logger.Get().Warn("Failed to record analysis request", zap.String("testID", test.ID), zap.Error(err))
	}
	return delivered
}

func (s *diagnosticServiceImpl) Restart(ctx context.Context, userID int64, testID string) (*dto.RestartDiagnosticResponse, error) {
	test, err := s.loadOwnedTest(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	return s.restart(ctx, test)
}

func (s *diagnosticServiceImpl) restart(ctx context.Context, test *domain.DiagnosticTest) (*dto.RestartDiagnosticResponse, error) {
	if test.Completed {
		return nil, domain.NewConflictError("a completed diagnostic test cannot be restarted").WithContext("testId", test.ID)
	}
	if test.RestartCount >= s.cfg.MaxRestarts {
		return nil, domain.NewForbiddenError("restart limit reached").
			WithContext("testId", test.ID).WithContext("restartCount", test.RestartCount)
	}

	set, err := s.loadSet(ctx, test)
	if err != nil {
		return nil, err
	}

	now := s.now()
	restartCount := test.RestartCount + 1
	seed := test.ShuffleSeed
	if restartCount >= reseedRestartCount {
		seed = s.newSeed()
	}

	var deleted int64
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.testRepo.Restart(txCtx, test.ID, test.RestartCount, now, seed)
		if err != nil {
			return domain.NewInternalError("failed to restart diagnostic test", err)
		}
		if !ok {
			return domain.NewConflictError("diagnostic test changed while restarting").WithContext("testId", test.ID)
		}
		deleted, err = s.attemptRepo.DeleteByTest(txCtx, test.ID)
		if err != nil {
			return domain.NewInternalError("failed to clear diagnostic answers", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	test.RestartCount = restartCount
	test.StartedAt = now
	test.ShuffleSeed = seed

	logger.Get().Info("Diagnostic test restarted",
		zap.String("testID", test.ID), zap.Int("restartCount", restartCount), zap.Int64("deletedAnswers", deleted))

	order := domain.Shuffle(set.ProblemIDs, seed)
	return &dto.RestartDiagnosticResponse{
		TestID:         test.ID,
		RestartCount:   restartCount,
		StartedAt:      now,
		FirstProblemID: problemAt(order, 0),
		TotalProblems:  len(order),
		ShuffleSeed:    seed,
		DeletedAnswers: deleted,
	}, nil
}

func (s *diagnosticServiceImpl) TimeoutStatus(ctx context.Context, userID int64, testID string) (*dto.TimeoutStatusResponse, error) {
	test, err := s.loadOwnedTest(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	if test.Completed {
		return nil, domain.NewConflictError("diagnostic test already completed").WithContext("testId", test.ID)
	}

	timedOut, err := s.checkTimeout(ctx, test)
	if err != nil {
		return nil, err
	}
	resp := &dto.TimeoutStatusResponse{
		TestID:              test.ID,
		TimedOut:            timedOut,
		TotalTimeoutMinutes: test.TimeoutMinutes,
		StartedAt:           test.StartedAt,
	}
	if timedOut {
		resp.DurationSec = test.DurationSec
		return resp, nil
	}
	resp.RemainingMinutes = test.RemainingMinutes(s.now())
	return resp, nil
}

func (s *diagnosticServiceImpl) Analysis(ctx context.Context, userID int64, testID string) (*dto.AnalysisResponse, error) {
	test, err := s.loadOwnedTest(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	return s.analysisFor(ctx, test)
}

func (s *diagnosticServiceImpl) LatestAnalysis(ctx context.Context, userID int64) (*dto.AnalysisResponse, error) {
	test, err := s.testRepo.FindCompletedByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to find completed diagnostic", err)
	}
	if test == nil {
		return nil, domain.NewNotFoundError("no completed diagnostic test").WithContext("userId", userID)
	}
	return s.analysisFor(ctx, test)
}

// analysisFor returns the stored analysis, or the analyzing status with an
// estimate based on when the hand-off happened.
func (s *diagnosticServiceImpl) analysisFor(ctx context.Context, test *domain.DiagnosticTest) (*dto.AnalysisResponse, error) {
	analysis, err := s.analysisRepo.GetByTestID(ctx, test.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load diagnostic analysis", err)
	}
	if analysis != nil {
		generatedAt := analysis.GeneratedAt
		return &dto.AnalysisResponse{
			TestID:          test.ID,
			Status:          dto.AnalysisStatusCompleted,
			AIComment:       analysis.AIComment,
			RecommendedPath: toRecommendedUnitDTOs(analysis.RecommendedPath),
			Class:           analysis.Class,
			GeneratedAt:     &generatedAt,
		}, nil
	}

	base := s.now()
	requestedAt, err := s.tracker.RequestedAt(ctx, test.ID)
	switch {
	case err != nil:
		logger.Get().Warn("Failed to read analysis request time", zap.String("testID", test.ID), zap.Error(err))
		if test.EndedAt != nil {
			base = *test.EndedAt
		}
	case requestedAt != nil:
		base = *requestedAt
	case test.EndedAt != nil:
		base = *test.EndedAt
	}
	estimated := base.Add(s.analysisCfg.EstimatedDelay)
	return &dto.AnalysisResponse{
		TestID:                  test.ID,
		Status:                  dto.AnalysisStatusAnalyzing,
		EstimatedCompletionTime: &estimated,
	}, nil
}

func (s *diagnosticServiceImpl) IngestAnalysis(ctx context.Context, analysis *domain.DiagnosticAnalysis) error {
	if analysis == nil || analysis.TestID == "" {
		return domain.NewValidationError("testId is required")
	}
	test, err := s.testRepo.GetByID(ctx, analysis.TestID)
	if err != nil {
		return domain.NewInternalError("failed to load diagnostic test", err)
	}
	if test == nil {
		return domain.NewNotFoundError("diagnostic test not found").WithContext("testId", analysis.TestID)
	}
	if analysis.UserID == 0 {
		analysis.UserID = test.UserID
	}
	if analysis.UserID != test.UserID {
		return domain.NewValidationError("userId does not match the diagnostic test").
			WithContext("testId", test.ID)
	}
	if analysis.GeneratedAt.IsZero() {
		analysis.GeneratedAt = s.now()
	}

	if err := s.analysisRepo.Upsert(ctx, analysis); err != nil {
		return domain.NewInternalError("failed to store diagnostic analysis", err)
	}
	logger.Get().Info("Diagnostic analysis stored", zap.String("testID", test.ID), zap.String("class", analysis.Class))
	return nil
}

func (s *diagnosticServiceImpl) loadOwnedTest(ctx context.Context, userID int64, testID string) (*domain.DiagnosticTest, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load diagnostic test", err)
	}
	if test == nil {
		return nil, domain.NewNotFoundError("diagnostic test not found").WithContext("testId", testID)
	}
	if test.UserID != userID {
		return nil, domain.NewForbiddenError("diagnostic test belongs to another user").WithContext("testId", testID)
	}
	return test, nil
}

func (s *diagnosticServiceImpl) loadSet(ctx context.Context, test *domain.DiagnosticTest) (*domain.ProblemSet, error) {
	set, err := s.problemSetRepo.GetByID(ctx, test.ProblemSetID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load diagnostic problem set", err)
	}
	if set == nil {
		return nil, domain.NewNotFoundError("diagnostic problem set not found").WithContext("setId", test.ProblemSetID)
	}
	return set, nil
}

// ensureOpen rejects completed sessions and expires overdue ones.
func (s *diagnosticServiceImpl) ensureOpen(ctx context.Context, test *domain.DiagnosticTest) error {
	if test.Completed {
		return domain.NewConflictError("diagnostic test already completed").WithContext("testId", test.ID)
	}
	timedOut, err := s.checkTimeout(ctx, test)
	if err != nil {
		return err
	}
	if timedOut {
		return domain.NewTimeoutError("diagnostic test timed out").WithContext("testId", test.ID)
	}
	return nil
}

// checkTimeout completes an overdue session as timed out. The transition is
// committed before the caller reports the timeout, and repeating it is harmless.
func (s *diagnosticServiceImpl) checkTimeout(ctx context.Context, test *domain.DiagnosticTest) (bool, error) {
	now := s.now()
	if !test.Expired(now) {
		return false, nil
	}

	durationSec := test.ElapsedSeconds(now)
	if _, err := s.testRepo.MarkCompleted(ctx, test.ID, now, durationSec, true); err != nil {
		return false, domain.NewInternalError("failed to time out diagnostic test", err)
	}
	test.Completed = true
	test.TimedOut = true
	test.EndedAt = &now
	test.DurationSec = &durationSec

	logger.Get().Info("Diagnostic test timed out", zap.String("testID", test.ID), zap.Int("durationSec", durationSec))
	return true, nil
}

func problemAt(order []string, i int) *string {
	if i < 0 || i >= len(order) {
		return nil
	}
	id := order[i]
	return &id
}

func remaining(total, answered int) int {
	if answered >= total {
		return 0
	}
	return total - answered
}

func toGradeRangeDTO(g domain.GradeRange) dto.GradeRange {
	return dto.GradeRange{Min: g.Min, Max: g.Max}
}

func toRecommendedUnitDTOs(path []domain.RecommendedUnit) []dto.RecommendedUnit {
	out := make([]dto.RecommendedUnit, 0, len(path))
	for _, u := range path {
		out = append(out, dto.RecommendedUnit{
			UnitID:    u.UnitID,
			UnitTitle: u.UnitTitle,
			Priority:  u.Priority,
			Reason:    u.Reason,
		})
	}
	return out
}
