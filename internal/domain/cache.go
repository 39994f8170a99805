package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the port for the shared cache. Every read returns ErrCacheMiss for absent
// keys or fields.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set stores value; an expiration of 0 keeps it until deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key string, field string, value string) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
	// Incr atomically adds one to an integer value, starting from 0, and returns the result.
	Incr(ctx context.Context, key string) (int64, error)
}
