package cache

import "context"

// Sizer reports the memory footprint of a cached value in bytes.
type Sizer[V any] func(v V) int64

// Cache is a size-bounded key/value cache. Cached values must be treated as
// immutable by callers.
type Cache[V any] interface {
	// Get returns a cached value. ok=false if missing.
	Get(ctx context.Context, key string) (v V, ok bool)
	// Set caches a value. Values larger than the capacity are not cached.
	Set(ctx context.Context, key string, v V)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key string) bool)
	// Stats returns cache statistics.
	Stats() Stats
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
	Bytes   int64
}
