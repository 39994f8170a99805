package handler_test

import (
	"context"
	"time"

	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/service"
)

// --- Manual Mocks ---

type MockGamificationService struct {
	GetStateFunc              func(ctx context.Context, userID int64) (*dto.GamificationStateResponse, error)
	GetXPHistoryFunc          func(ctx context.Context, userID int64, page, limit int, reason string) (*dto.XPHistoryResponse, error)
	GetLevelHistoryFunc       func(ctx context.Context, userID int64) (*dto.LevelHistoryResponse, error)
	ListDefaultCharactersFunc func(ctx context.Context, gender string) (*dto.DefaultCharactersResponse, error)
	GetMyCharacterFunc        func(ctx context.Context, userID int64) (*dto.MyCharacterResponse, error)
}

func (m *MockGamificationService) AwardXP(ctx context.Context, in service.AwardXPInput) (*domain.AwardResult, error) {
	panic("MockGamificationService.AwardXP not implemented")
}
func (m *MockGamificationService) GetState(ctx context.Context, userID int64) (*dto.GamificationStateResponse, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx, userID)
	}
	panic("MockGamificationService.GetStateFunc not implemented")
}
func (m *MockGamificationService) GetXPHistory(ctx context.Context, userID int64, page, limit int, reason string) (*dto.XPHistoryResponse, error) {
	if m.GetXPHistoryFunc != nil {
		return m.GetXPHistoryFunc(ctx, userID, page, limit, reason)
	}
	panic("MockGamificationService.GetXPHistoryFunc not implemented")
}
func (m *MockGamificationService) GetLevelHistory(ctx context.Context, userID int64) (*dto.LevelHistoryResponse, error) {
	if m.GetLevelHistoryFunc != nil {
		return m.GetLevelHistoryFunc(ctx, userID)
	}
	panic("MockGamificationService.GetLevelHistoryFunc not implemented")
}
func (m *MockGamificationService) ListDefaultCharacters(ctx context.Context, gender string) (*dto.DefaultCharactersResponse, error) {
	if m.ListDefaultCharactersFunc != nil {
		return m.ListDefaultCharactersFunc(ctx, gender)
	}
	panic("MockGamificationService.ListDefaultCharactersFunc not implemented")
}
func (m *MockGamificationService) GetMyCharacter(ctx context.Context, userID int64) (*dto.MyCharacterResponse, error) {
	if m.GetMyCharacterFunc != nil {
		return m.GetMyCharacterFunc(ctx, userID)
	}
	panic("MockGamificationService.GetMyCharacterFunc not implemented")
}

type MockProgressService struct {
	UpdateProgressFunc func(ctx context.Context, userID int64, in service.UpdateProgressInput) (*domain.UnitProgress, error)
	OverallFunc        func(ctx context.Context, userID int64) (*domain.OverallProgress, error)
	ListAxisFunc       func(ctx context.Context, userID int64, axis domain.ProgressAxis) (*dto.AxisProgressResponse, error)
}

func (m *MockProgressService) UpdateProgress(ctx context.Context, userID int64, in service.UpdateProgressInput) (*domain.UnitProgress, error) {
	if m.UpdateProgressFunc != nil {
		return m.UpdateProgressFunc(ctx, userID, in)
	}
	panic("MockProgressService.UpdateProgressFunc not implemented")
}
func (m *MockProgressService) Overall(ctx context.Context, userID int64) (*domain.OverallProgress, error) {
	if m.OverallFunc != nil {
		return m.OverallFunc(ctx, userID)
	}
	panic("MockProgressService.OverallFunc not implemented")
}
func (m *MockProgressService) ListAxis(ctx context.Context, userID int64, axis domain.ProgressAxis) (*dto.AxisProgressResponse, error) {
	if m.ListAxisFunc != nil {
		return m.ListAxisFunc(ctx, userID, axis)
	}
	panic("MockProgressService.ListAxisFunc not implemented")
}
func (m *MockProgressService) Get(ctx context.Context, userID int64, unitID string, category domain.ProgressCategory) (*domain.UnitProgress, error) {
	panic("MockProgressService.Get not implemented")
}

type MockAnswerService struct {
	CheckAnswerFunc     func(ctx context.Context, userID int64, in service.CheckAnswerInput, key string) (*dto.CheckAnswerResponse, error)
	CompleteConceptFunc func(ctx context.Context, userID int64, unitID, key string) (*dto.ConceptCompleteResponse, error)
}

func (m *MockAnswerService) CheckAnswer(ctx context.Context, userID int64, in service.CheckAnswerInput, key string) (*dto.CheckAnswerResponse, error) {
	if m.CheckAnswerFunc != nil {
		return m.CheckAnswerFunc(ctx, userID, in, key)
	}
	panic("MockAnswerService.CheckAnswerFunc not implemented")
}
func (m *MockAnswerService) CompleteConcept(ctx context.Context, userID int64, unitID, key string) (*dto.ConceptCompleteResponse, error) {
	if m.CompleteConceptFunc != nil {
		return m.CompleteConceptFunc(ctx, userID, unitID, key)
	}
	panic("MockAnswerService.CompleteConceptFunc not implemented")
}

type MockDiagnosticService struct {
	EligibilityFunc    func(ctx context.Context, userID int64) (*dto.EligibilityResponse, error)
	StartFunc          func(ctx context.Context, userID int64, in service.StartDiagnosticInput) (*dto.StartDiagnosticResponse, error)
	StatusFunc         func(ctx context.Context, userID int64, testID string) (*dto.DiagnosticStatusResponse, error)
	SubmitFunc         func(ctx context.Context, userID int64, testID string, in service.SubmitDiagnosticInput, key string) (*dto.SubmitAnswerResponse, error)
	CompleteFunc       func(ctx context.Context, userID int64, testID string) (*dto.CompleteDiagnosticResponse, error)
	RestartFunc        func(ctx context.Context, userID int64, testID string) (*dto.RestartDiagnosticResponse, error)
	TimeoutStatusFunc  func(ctx context.Context, userID int64, testID string) (*dto.TimeoutStatusResponse, error)
	AnalysisFunc       func(ctx context.Context, userID int64, testID string) (*dto.AnalysisResponse, error)
	LatestAnalysisFunc func(ctx context.Context, userID int64) (*dto.AnalysisResponse, error)
	IngestAnalysisFunc func(ctx context.Context, analysis *domain.DiagnosticAnalysis) error
}

func (m *MockDiagnosticService) Eligibility(ctx context.Context, userID int64) (*dto.EligibilityResponse, error) {
	if m.EligibilityFunc != nil {
		return m.EligibilityFunc(ctx, userID)
	}
	panic("MockDiagnosticService.EligibilityFunc not implemented")
}
func (m *MockDiagnosticService) Start(ctx context.Context, userID int64, in service.StartDiagnosticInput) (*dto.StartDiagnosticResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID, in)
	}
	panic("MockDiagnosticService.StartFunc not implemented")
}
func (m *MockDiagnosticService) Status(ctx context.Context, userID int64, testID string) (*dto.DiagnosticStatusResponse, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, userID, testID)
	}
	panic("MockDiagnosticService.StatusFunc not implemented")
}
func (m *MockDiagnosticService) Submit(ctx context.Context, userID int64, testID string, in service.SubmitDiagnosticInput, key string) (*dto.SubmitAnswerResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, testID, in, key)
	}
	panic("MockDiagnosticService.SubmitFunc not implemented")
}
func (m *MockDiagnosticService) Complete(ctx context.Context, userID int64, testID string) (*dto.CompleteDiagnosticResponse, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, userID, testID)
	}
	panic("MockDiagnosticService.CompleteFunc not implemented")
}
func (m *MockDiagnosticService) Restart(ctx context.Context, userID int64, testID string) (*dto.RestartDiagnosticResponse, error) {
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx, userID, testID)
	}
	panic("MockDiagnosticService.RestartFunc not implemented")
}
func (m *MockDiagnosticService) TimeoutStatus(ctx context.Context, userID int64, testID string) (*dto.TimeoutStatusResponse, error) {
	if m.TimeoutStatusFunc != nil {
		return m.TimeoutStatusFunc(ctx, userID, testID)
	}
	panic("MockDiagnosticService.TimeoutStatusFunc not implemented")
}
func (m *MockDiagnosticService) Analysis(ctx context.Context, userID int64, testID string) (*dto.AnalysisResponse, error) {
	if m.AnalysisFunc != nil {
		return m.AnalysisFunc(ctx, userID, testID)
	}
	panic("MockDiagnosticService.AnalysisFunc not implemented")
}
func (m *MockDiagnosticService) LatestAnalysis(ctx context.Context, userID int64) (*dto.AnalysisResponse, error) {
	if m.LatestAnalysisFunc != nil {
		return m.LatestAnalysisFunc(ctx, userID)
	}
	panic("MockDiagnosticService.LatestAnalysisFunc not implemented")
}
func (m *MockDiagnosticService) IngestAnalysis(ctx context.Context, analysis *domain.DiagnosticAnalysis) error {
	if m.IngestAnalysisFunc != nil {
		return m.IngestAnalysisFunc(ctx, analysis)
	}
	panic("MockDiagnosticService.IngestAnalysisFunc not implemented")
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

type stubCache struct{ pingErr error }

func (c stubCache) Get(context.Context, string) (string, error)              { return "", domain.ErrCacheMiss }
func (c stubCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (c stubCache) Delete(context.Context, string) error                     { return nil }
func (c stubCache) Ping(context.Context) error                               { return c.pingErr }
func (c stubCache) HGet(context.Context, string, string) (string, error) {
	return "", domain.ErrCacheMiss
}
func (c stubCache) HSet(context.Context, string, string, string) error  { return nil }
func (c stubCache) Expire(context.Context, string, time.Duration) error { return nil }
func (c stubCache) Incr(context.Context, string) (int64, error)         { return 1, nil }
