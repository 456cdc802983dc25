package cache

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"github.com/kimeguida/ProCare/resource"
)

const numShards = 16

// Sharded spreads keys over independent LRUs to reduce lock contention
// between batch workers.
type Sharded[V any] struct {
	shards [numShards]*LRU[V]
}

var _ Cache[int] = (*Sharded[int])(nil)

// NewSharded creates a sharded cache. The capacity is divided evenly across
// shards.
func NewSharded[V any](capacity int64, sizer Sizer[V], rc *resource.Controller) *Sharded[V] {
	shardCapacity := max(capacity/numShards, 1)

	s := &Sharded[V]{}
	for i := range numShards {
		s.shards[i] = NewLRU(shardCapacity, sizer, rc)
	}
	return s
}

func (s *Sharded[V]) shard(key string) *LRU[V] {
	return s.shards[xxhash.Sum64String(key)%numShards]
}

// Get returns a cached value.
func (s *Sharded[V]) Get(ctx context.Context, key string) (V, bool) {
	return s.shard(key).Get(ctx, key)
}

// Set caches a value.
func (s *Sharded[V]) Set(ctx context.Context, key string, v V) {
	s.shard(key).Set(ctx, key, v)
}

// Invalidate removes entries matching the predicate from every shard.
func (s *Sharded[V]) Invalidate(predicate func(key string) bool) {
	for _, sh := range s.shards {
		sh.Invalidate(predicate)
	}
}

// Stats returns counters aggregated over all shards.
func (s *Sharded[V]) Stats() Stats {
	var total Stats
	for _, sh := range s.shards {
		st := sh.Stats()
		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Entries += st.Entries
		total.Bytes += st.Bytes
	}
	return total
}
