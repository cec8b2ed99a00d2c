// Package cache provides the shared TTL cache used by every source tool.
// Entries go stale on their own schedule and are overwritten on the next
// miss; there is no invalidation surface.
package cache

import (
	"context"
	"time"
)

// CacheService defines the cache contract shared by all source tools.
type CacheService interface {
	// Get retrieves a value from cache.
	// Returns: value, whether a fresh entry exists
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value in cache with a per-entry TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Stats reports hit/miss counters for a cache.
type Stats struct {
	Size    int     `json:"size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}
