package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"nerd-math/internal/cache"
	"nerd-math/internal/domain"
	"nerd-math/internal/logger"

	"go.uber.org/zap"
)

const defaultSummaryTTL = 5 * time.Minute

// ProgressSummaryCache keeps the computed overall progress of each user. Summaries
// are stored per generation; Invalidate moves the user to a new generation, so a
// summary computed before a write can never be served after it.
type ProgressSummaryCache interface {
	// Generation returns the user's current summary generation.
	Generation(ctx context.Context, userID int64) (int64, error)
	// Get returns nil on a miss.
	Get(ctx context.Context, userID, generation int64) (*domain.OverallProgress, error)
	Put(ctx context.Context, userID, generation int64, summary *domain.OverallProgress) error
	Invalidate(ctx context.Context, userID int64) error
}

type progressSummaryCacheImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewProgressSummaryCache returns a no-op cache when c is nil.
func NewProgressSummaryCache(c domain.Cache, ttl time.Duration) ProgressSummaryCache {
	if c == nil {
		logger.Get().Warn("ProgressSummaryCache initialized with nil cache. Summaries are computed on every request.")
		return noopProgressSummaryCache{}
	}
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &progressSummaryCacheImpl{cache: c, ttl: ttl}
}

func (s *progressSummaryCacheImpl) Generation(ctx context.Context, userID int64) (int64, error) {
	key := cache.ProgressGenerationKey(userID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return 0, nil
		}
		return 0, domain.NewInternalError("failed to read progress generation from cache", err)
	}
	generation, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, domain.NewInternalError("unreadable progress generation", err).WithContext("key", key)
	}
	return generation, nil
}

func (s *progressSummaryCacheImpl) Get(ctx context.Context, userID, generation int64) (*domain.OverallProgress, error) {
	key := cache.OverallProgressKey(userID, generation)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, domain.NewInternalError("failed to read progress summary from cache", err)
	}

	var summary domain.OverallProgress
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		logger.Get().Warn("Discarding unreadable progress summary", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return &summary, nil
}

func (s *progressSummaryCacheImpl) Put(ctx context.Context, userID, generation int64, summary *domain.OverallProgress) error {
	if summary == nil {
		return domain.NewValidationError("cannot cache nil progress summary")
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return domain.NewInternalError("failed to encode progress summary", err)
	}
	if err := s.cache.Set(ctx, cache.OverallProgressKey(userID, generation), string(data), s.ttl); err != nil {
		return domain.NewInternalError("failed to write progress summary to cache", err)
	}
	return nil
}

// Invalidate bumps the generation. Summaries of older generations expire on their own.
func (s *progressSummaryCacheImpl) Invalidate(ctx context.Context, userID int64) error {
	if _, err := s.cache.Incr(ctx, cache.ProgressGenerationKey(userID)); err != nil {
		return domain.NewInternalError("failed to invalidate progress summary", err)
	}
	return nil
}

type noopProgressSummaryCache struct{}

func (noopProgressSummaryCache) Generation(context.Context, int64) (int64, error) { return 0, nil }

func (noopProgressSummaryCache) Get(context.Context, int64, int64) (*domain.OverallProgress, error) {
	return nil, nil
}

func (noopProgressSummaryCache) Put(context.Context, int64, int64, *domain.OverallProgress) error {
	return nil
}

func (noopProgressSummaryCache) Invalidate(context.Context, int64) error { return nil }
