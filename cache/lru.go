package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/kimeguida/ProCare/resource"
)

// LRU is a byte-bounded least-recently-used cache.
type LRU[V any] struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	sizer     Sizer[V]
	items     map[string]*list.Element
	evictList *list.List
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[V any] struct {
	key   string
	value V
	size  int64
}

var _ Cache[int] = (*LRU[int])(nil)

// NewLRU creates an LRU holding at most capacity bytes as measured by sizer.
// If rc is provided, cached bytes are also charged to it.
func NewLRU[V any](capacity int64, sizer Sizer[V], rc *resource.Controller) *LRU[V] {
	return &LRU[V]{
		capacity:  capacity,
		sizer:     sizer,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Get returns a cached value.
func (c *LRU[V]) Get(_ context.Context, key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*entry[V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set caches a value.
func (c *LRU[V]) Set(_ context.Context, key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	itemSize := c.sizer(v)
	if itemSize > c.capacity {
		return
	}

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}

	// Evict locally first so the bytes go back to the controller before we
	// ask for them again.
	for c.size+itemSize > c.capacity {
		el := c.evictList.Back()
		if el == nil {
			break
		}
		c.removeElement(el)
	}

	if !c.rc.TryAcquireMemory(itemSize) {
		return
	}

	el := c.evictList.PushFront(&entry[V]{key: key, value: v, size: itemSize})
	c.items[key] = el
	c.size += itemSize
}

// Invalidate removes entries matching the predicate.
func (c *LRU[V]) Invalidate(predicate func(key string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for key, el := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, el)
		}
	}
	for _, el := range toRemove {
		c.removeElement(el)
	}
}

// Stats returns the cache counters.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: len(c.items),
		Bytes:   c.size,
	}
}

// Size returns the current size of the cache in bytes.
func (c *LRU[V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *LRU[V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	e := el.Value.(*entry[V])
	delete(c.items, e.key)
	c.size -= e.size
	c.rc.ReleaseMemory(e.size)
}
