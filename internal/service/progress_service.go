package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"nerd-math/internal/config"
	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// UpdateProgressInput sets one axis of one unit. An empty Category means unit.
type UpdateProgressInput struct {
	UnitID   string
	Axis     domain.ProgressAxis
	Value    int
	Category domain.ProgressCategory
}

// ProgressService maintains per-unit completion and the catalog-wide summary.
type ProgressService interface {
	UpdateProgress(ctx context.Context, userID int64, in UpdateProgressInput) (*domain.UnitProgress, error)
	Overall(ctx context.Context, userID int64) (*domain.OverallProgress, error)
	ListAxis(ctx context.Context, userID int64, axis domain.ProgressAxis) (*dto.AxisProgressResponse, error)
	Get(ctx context.Context, userID int64, unitID string, category domain.ProgressCategory) (*domain.UnitProgress, error)
}

type progressServiceImpl struct {
	progressRepo domain.UnitProgressRepository
	unitRepo     domain.UnitRepository
	summaries    ProgressSummaryCache
	cfg          config.ProgressConfig
	group        singleflight.Group
	now          func() time.Time
}

func NewProgressService(
	progressRepo domain.UnitProgressRepository,
	unitRepo domain.UnitRepository,
	summaries ProgressSummaryCache,
	cfg config.ProgressConfig,
) ProgressService {
	if summaries == nil {
		summaries = noopProgressSummaryCache{}
	}
	return &progressServiceImpl{
		progressRepo: progressRepo,
		unitRepo:     unitRepo,
		summaries:    summaries,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *progressServiceImpl) UpdateProgress(ctx context.Context, userID int64, in UpdateProgressInput) (*domain.UnitProgress, error) {
	if !in.Axis.Valid() {
		return nil, domain.NewValidationError("axis must be one of concept, problem, vocab").WithContext("axis", string(in.Axis))
	}
	if in.Category == "" {
		in.Category = domain.CategoryUnit
	}
	if !in.Category.Valid() {
		return nil, domain.NewValidationError("category must be unit or frequent").WithContext("category", string(in.Category))
	}

	unitID := in.UnitID
	if in.Category == domain.CategoryFrequent {
		unitID = ""
	} else {
		if unitID == "" {
			return nil, domain.NewValidationError("unitId is required")
		}
		unit, err := s.unitRepo.GetByID(ctx, unitID)
		if err != nil {
			return nil, domain.NewInternalError("failed to load unit", err)
		}
		if unit == nil {
			return nil, domain.NewNotFoundError("unit not found").WithContext("unitId", unitID)
		}
	}

	value := domain.ClampProgress(in.Value)
	row, err := s.progressRepo.UpsertAxis(ctx, userID, unitID, in.Category, in.Axis, value, s.cfg.Monotonic, s.now())
	if err != nil {
		return nil, domain.NewInternalError("failed to update progress", err)
	}

	if err := s.summaries.Invalidate(ctx, userID); err != nil {
		logger.Get().Warn("Failed to invalidate progress summary", zap.Int64("userID", userID), zap.Error(err))
	}
	return row, nil
}

func (s *progressServiceImpl) Get(ctx context.Context, userID int64, unitID string, category domain.ProgressCategory) (*domain.UnitProgress, error) {
	row, err := s.progressRepo.Get(ctx, userID, unitID, category)
	if err != nil {
		return nil, domain.NewInternalError("failed to load progress", err)
	}
	return row, nil
}

// Overall serves the cached summary; concurrent misses for one user and
// generation share a single computation. When the generation cannot be read the
// summary is computed without touching the cache.
func (s *progressServiceImpl) Overall(ctx context.Context, userID int64) (*domain.OverallProgress, error) {
	generation, err := s.summaries.Generation(ctx, userID)
	cacheable := err == nil
	if err != nil {
		logger.Get().Warn("Progress generation read failed", zap.Int64("userID", userID), zap.Error(err))
		generation = -1
	}

	if cacheable {
		cached, err := s.summaries.Get(ctx, userID, generation)
		if err != nil {
			logger.Get().Warn("Progress summary cache read failed", zap.Int64("userID", userID), zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	// The fill is shared by every waiter, so it must outlive any single caller.
	fillCtx := context.WithoutCancel(ctx)
	flightKey := strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(generation, 10)
	v, err, _ := s.group.Do(flightKey, func() (interface{}, error) {
		rows, err := s.progressRepo.ListByUser(fillCtx, userID)
		if err != nil {
			return nil, err
		}
		summary := domain.ComputeOverall(rows, s.cfg.TotalUnits)
		if cacheable {
			if err := s.summaries.Put(fillCtx, userID, generation, &summary); err != nil {
				logger.Get().Warn("Failed to cache progress summary", zap.Int64("userID", userID), zap.Error(err))
			}
		}
		return &summary, nil
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to compute overall progress", err)
	}
	return v.(*domain.OverallProgress), nil
}

func (s *progressServiceImpl) ListAxis(ctx context.Context, userID int64, axis domain.ProgressAxis) (*dto.AxisProgressResponse, error) {
	if !axis.Valid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown progress axis %q", axis))
	}

	units, err := s.unitRepo.ListActive(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to load unit catalog", err)
	}
	rows, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load progress", err)
	}

	byUnit := make(map[string]domain.UnitProgress, len(rows))
	var frequent domain.UnitProgress
	for _, row := range rows {
		if row.Category == domain.CategoryFrequent {
			frequent = row
			continue
		}
		byUnit[row.UnitID] = row
	}

	items := make([]dto.AxisProgressItem, 0, len(units)+1)
	for _, unit := range units {
		value := byUnit[unit.ID].Value(axis)
		items = append(items, axisItem(unit.ID, unit.Title, axis, value))
	}
	if axis == domain.AxisVocab {
		items = append(items, axisItem(domain.FrequentVocabUnitID, "", axis, frequent.VocabProgress))
	}

	return &dto.AxisProgressResponse{Axis: string(axis), Units: items}, nil
}

func axisItem(unitID, title string, axis domain.ProgressAxis, value int) dto.AxisProgressItem {
	item := dto.AxisProgressItem{
		UnitID:    unitID,
		UnitTitle: title,
		Status:    string(domain.StatusOf(value)),
	}
	v := value
	switch axis {
	case domain.AxisConcept:
		item.ConceptProgress = &v
	case domain.AxisProblem:
		item.ProblemProgress = &v
	case domain.AxisVocab:
		item.VocabProgress = &v
	}
	return item
}

func toUnitProgressResponse(row *domain.UnitProgress) *dto.UnitProgressResponse {
	if row == nil {
		return nil
	}
	unitID := row.UnitID
	if row.Category == domain.CategoryFrequent {
		unitID = domain.FrequentVocabUnitID
	}
	return &dto.UnitProgressResponse{
		UnitID:          unitID,
		Category:        string(row.Category),
		ConceptProgress: row.ConceptProgress,
		ProblemProgress: row.ProblemProgress,
		VocabProgress:   row.VocabProgress,
	}
}
