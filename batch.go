package procare

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kimeguida/ProCare/blobstore"
	"github.com/kimeguida/ProCare/cache"
	"github.com/kimeguida/ProCare/model"
	"github.com/kimeguida/ProCare/mol2"
	"github.com/kimeguida/ProCare/resource"
)

// DefaultLoaderCacheBytes is the parsed-cavity cache budget of a StoreLoader.
const DefaultLoaderCacheBytes = 64 << 20

// Pair names a source and a target cavity.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func (p Pair) String() string { return p.Source + " " + p.Target }

// PairResult is delivered for every pair of a batch. Exactly one of
// Result and Err is set.
type PairResult struct {
	Pair
	Result *Result
	Err    error
}

// BatchStats summarizes a batch run.
type BatchStats struct {
	Total     int
	Succeeded int
	Failed    int
	// Skipped counts pairs never started because the batch was stopped.
	Skipped int
	Elapsed time.Duration
}

// Loader resolves a cavity name to its point set.
type Loader interface {
	Load(ctx context.Context, name string) (model.PointSet, error)
}

// StoreLoader reads mol2 cavities from a BlobStore and caches parsed sets.
type StoreLoader struct {
	store    blobstore.BlobStore
	cache    cache.Cache[model.PointSet]
	cacheSet bool
	rc       *resource.Controller
	logger   *Logger
	metrics  MetricsCollector
}

// LoaderOption configures a StoreLoader.
type LoaderOption func(*StoreLoader)

// WithLoaderCache sets the cache. Pass nil to disable caching.
func WithLoaderCache(c cache.Cache[model.PointSet]) LoaderOption {
	return func(l *StoreLoader) {
		l.cache = c
		l.cacheSet = true
	}
}

// WithLoaderResourceController throttles blob reads and accounts cache memory.
func WithLoaderResourceController(rc *resource.Controller) LoaderOption {
	return func(l *StoreLoader) {
		l.rc = rc
	}
}

// WithLoaderLogger sets the loader's logger.
func WithLoaderLogger(logger *Logger) LoaderOption {
	return func(l *StoreLoader) {
		if logger == nil {
			logger = NoopLogger()
		}
		l.logger = logger
	}
}

// WithLoaderMetrics sets the loader's metrics collector.
func WithLoaderMetrics(mc MetricsCollector) LoaderOption {
	return func(l *StoreLoader) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		l.metrics = mc
	}
}

// PointSetSize estimates the memory held by a parsed set.
func PointSetSize(ps model.PointSet) int64 {
	const perPoint = 8 + 1 + 3*8 + 7 // ordinal, label, coords, padding
	return int64(ps.Len())*perPoint + int64(len(ps.Name())) + 64
}

// NewStoreLoader creates a loader over store with a sharded LRU of
// DefaultLoaderCacheBytes unless WithLoaderCache says otherwise.
func NewStoreLoader(store blobstore.BlobStore, opts ...LoaderOption) *StoreLoader {
	l := &StoreLoader{
		store:   store,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(l)
	}
	if !l.cacheSet {
		l.cache = cache.NewSharded[model.PointSet](DefaultLoaderCacheBytes, PointSetSize, l.rc)
	}
	return l
}

// Load returns the named cavity, parsing it on a cache miss.
func (l *StoreLoader) Load(ctx context.Context, name string) (model.PointSet, error) {
	if l.cache != nil {
		if ps, ok := l.cache.Get(ctx, name); ok {
			l.metrics.RecordLoad(0, true, nil)
			l.logger.LogLoad(ctx, name, ps.Len(), true, nil)
			return ps, nil
		}
	}

	data, err := blobstore.ReadAll(ctx, l.store, name)
	if err != nil {
		err = fmt.Errorf("load %s: %w", name, err)
		l.metrics.RecordLoad(0, false, err)
		l.logger.LogLoad(ctx, name, 0, false, err)
		return model.PointSet{}, err
	}

	ps, err := mol2.Parse(name, resource.NewRateLimitedReader(ctx, bytes.NewReader(data), l.rc))
	if err != nil {
		err = translateError(err)
		l.metrics.RecordLoad(int64(len(data)), false, err)
		l.logger.LogLoad(ctx, name, 0, false, err)
		return model.PointSet{}, err
	}

	if l.cache != nil {
		l.cache.Set(ctx, name, ps)
	}
	l.metrics.RecordLoad(int64(len(data)), false, nil)
	l.logger.LogLoad(ctx, name, ps.Len(), false, nil)
	return ps, nil
}

// Batch scores pairs concurrently and delivers each outcome to fn.
//
// A pair that fails to load or score is reported through PairResult.Err
// and counted; it never stops the batch. Batch stops early only when ctx
// is done or fn returns an error, which is then returned. fn is called
// from one goroutine at a time.
func (s *Scorer) Batch(ctx context.Context, loader Loader, pairs []Pair, fn func(PairResult) error) (BatchStats, error) {
	start := time.Now()
	stats := BatchStats{Total: len(pairs)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.workers)

	var (
		mu      sync.Mutex
		started int
	)
	for _, pair := range pairs {
		if gctx.Err() != nil {
			break
		}
		started++
		g.Go(func() error {
			if err := s.opts.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			res, err := s.scorePair(gctx, loader, pair)
			s.opts.rc.ReleaseWorker()

			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
			} else {
				stats.Succeeded++
			}
			return fn(PairResult{Pair: pair, Result: res, Err: err})
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	stats.Skipped = stats.Total - stats.Succeeded - stats.Failed
	stats.Elapsed = time.Since(start)

	s.opts.metricsCollector.RecordBatch(started, stats.Failed, stats.Elapsed)
	s.opts.logger.LogBatch(ctx, started, stats.Failed, stats.Elapsed)

	return stats, err
}

func (s *Scorer) scorePair(ctx context.Context, loader Loader, pair Pair) (*Result, error) {
	source, err := loader.Load(ctx, pair.Source)
	if err != nil {
		return nil, err
	}
	target, err := loader.Load(ctx, pair.Target)
	if err != nil {
		return nil, err
	}
	return s.Compare(ctx, source, target)
}
