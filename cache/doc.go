// Package cache provides byte-bounded LRU caches, used to keep parsed
// cavities in memory across the pairs of a batch.
package cache
