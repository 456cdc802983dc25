package procare

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational measurements.
// Implement it to feed a monitoring system.
type MetricsCollector interface {
	// RecordCompare is called after each pair comparison.
	RecordCompare(duration time.Duration, err error)

	// RecordBatch is called after each batch run with the number of
	// pairs attempted and the number that failed.
	RecordBatch(count, failed int, duration time.Duration)

	// RecordLoad is called after each cavity load. bytes is zero for
	// cache hits.
	RecordLoad(bytes int64, cached bool, err error)
}

// NoopMetricsCollector discards all measurements.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCompare(time.Duration, error)   {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordLoad(int64, bool, error)       {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	CompareCount      atomic.Int64
	CompareErrors     atomic.Int64
	CompareTotalNanos atomic.Int64
	BatchCount        atomic.Int64
	BatchPairs        atomic.Int64
	BatchFailed       atomic.Int64
	LoadCount         atomic.Int64
	LoadCacheHits     atomic.Int64
	LoadErrors        atomic.Int64
	LoadBytes         atomic.Int64
}

// RecordCompare implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompare(duration time.Duration, err error) {
	b.CompareCount.Add(1)
	b.CompareTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CompareErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchPairs.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int64, cached bool, err error) {
	b.LoadCount.Add(1)
	b.LoadBytes.Add(bytes)
	if cached {
		b.LoadCacheHits.Add(1)
	}
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// AverageCompareLatency returns the mean comparison time.
func (b *BasicMetricsCollector) AverageCompareLatency() time.Duration {
	n := b.CompareCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(b.CompareTotalNanos.Load() / n)
}
