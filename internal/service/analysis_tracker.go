package service

import (
	"context"
	"errors"
	"time"

	"nerd-math/internal/cache"
	"nerd-math/internal/domain"
	"nerd-math/internal/logger"

	"go.uber.org/zap"
)

const (
	trackerFieldRequestedAt = "requestedAt"
	trackerFieldStatus      = "status"

	trackerStatusRequested = "requested"
	trackerStatusFailed    = "failed"

	defaultTrackerTTL = 24 * time.Hour
)

// AnalysisTracker remembers when the analysis of a test was handed off, so the
// polling endpoints can estimate a completion time.
type AnalysisTracker interface {
	MarkRequested(ctx context.Context, testID string, at time.Time, delivered bool) error
	// RequestedAt returns nil when no hand-off is known.
	RequestedAt(ctx context.Context, testID string) (*time.Time, error)
}

type analysisTrackerImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

func NewAnalysisTracker(c domain.Cache, ttl time.Duration) AnalysisTracker {
	if c == nil {
		logger.Get().Warn("AnalysisTracker initialized with nil cache. Service will be no-op.")
		return noopAnalysisTracker{}
	}
	if ttl <= 0 {
		ttl = defaultTrackerTTL
	}
	return &analysisTrackerImpl{cache: c, ttl: ttl}
}

func (t *analysisTrackerImpl) MarkRequested(ctx context.Context, testID string, at time.Time, delivered bool) error {
	key := cache.AnalysisTrackerKey(testID)
	status := trackerStatusRequested
	if !delivered {
		status = trackerStatusFailed
	}

	if err := t.cache.HSet(ctx, key, trackerFieldRequestedAt, at.UTC().Format(time.RFC3339Nano)); err != nil {
		return domain.NewInternalError("failed to record analysis request", err)
	}
	if err := t.cache.HSet(ctx, key, trackerFieldStatus, status); err != nil {
		return domain.NewInternalError("failed to record analysis request status", err)
	}
	if err := t.cache.Expire(ctx, key, t.ttl); err != nil {
		return domain.NewInternalError("failed to set analysis tracker expiration", err)
	}
	return nil
}

func (t *analysisTrackerImpl) RequestedAt(ctx context.Context, testID string) (*time.Time, error) {
	key := cache.AnalysisTrackerKey(testID)
	raw, err := t.cache.HGet(ctx, key, trackerFieldRequestedAt)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, domain.NewInternalError("failed to read analysis tracker", err)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		logger.Get().Warn("Unreadable analysis request time", zap.String("key", key), zap.String("value", raw))
		return nil, nil
	}
	return &at, nil
}

type noopAnalysisTracker struct{}

func (noopAnalysisTracker) MarkRequested(context.Context, string, time.Time, bool) error { return nil }

func (noopAnalysisTracker) RequestedAt(context.Context, string) (*time.Time, error) { return nil, nil }
