package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/blobstore"
	"github.com/kimeguida/ProCare/cache"
	"github.com/kimeguida/ProCare/model"
	"github.com/kimeguida/ProCare/report"
)

const defaultFlushEvery = 500

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Score many cavity pairs concurrently",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "pairs", Aliases: []string{"p"}, Usage: "Blob listing 'source target' per line"},
			&cli.StringFlag{Name: "source-glob", Usage: "Pattern of source blobs, e.g. 'cavities/**/*.mol2'"},
			&cli.StringSliceFlag{Name: "target", Aliases: []string{"t"}, Usage: "Target blob for --source-glob; repeatable"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Pairs scored concurrently (default: GOMAXPROCS)"},
			&cli.BoolFlag{Name: "resume", Usage: "Skip pairs already scored in the report"},
			&cli.IntFlag{Name: "flush-every", Usage: "Rows buffered before each report flush", Value: defaultFlushEvery},
		}, scoringFlags()...),
		Action: runBatch,
	}
}

func runBatch(c *cli.Context) error {
	ctx := c.Context
	e := getEnv(c)

	sc := e.cfg.Scoring
	if err := applyScoringFlags(c, &sc); err != nil {
		return err
	}
	pairs, err := batchPairs(c, e.store)
	if err != nil {
		return err
	}

	metrics := &procare.BasicMetricsCollector{}
	scorer, rc, err := newScorer(e, sc, metrics)
	if err != nil {
		return err
	}

	w := report.NewWriter(e.store, c.String("output"),
		report.WithLogger(e.logger),
		report.WithResourceController(rc),
	)
	if c.Bool("resume") {
		rows, err := w.Load(ctx)
		if err != nil {
			return err
		}
		before := len(pairs)
		pairs = unseen(pairs, w.Seen)
		e.logger.InfoContext(ctx, "resuming",
			"report", w.Name(),
			"rows", rows,
			"skipped", before-len(pairs),
		)
	}

	loader := procare.NewStoreLoader(e.store,
		procare.WithLoaderCache(cache.NewSharded[model.PointSet](sc.CacheBytes, procare.PointSetSize, rc)),
		procare.WithLoaderResourceController(rc),
		procare.WithLoaderLogger(e.logger),
		procare.WithLoaderMetrics(metrics),
	)

	flushEvery := max(c.Int("flush-every"), 1)
	pid := paramID(e, sc)
	stats, err := scorer.Batch(ctx, loader, pairs, func(r procare.PairResult) error {
		w.Add(report.FromPairResult(r, pid, sc.Class))
		if w.Pending() >= flushEvery {
			return w.Flush(ctx)
		}
		return nil
	})
	// Rows scored before a cancellation are still written.
	flushErr := w.Flush(context.WithoutCancel(ctx))

	fmt.Fprintf(c.App.Writer, "pairs %d  scored %d  failed %d  skipped %d  elapsed %s\n",
		stats.Total, stats.Succeeded, stats.Failed, stats.Skipped, stats.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(c.App.Writer, "loads %d  cache hits %d  bytes %d  mean compare %s\n",
		metrics.LoadCount.Load(), metrics.LoadCacheHits.Load(), metrics.LoadBytes.Load(), metrics.AverageCompareLatency())

	return errors.Join(err, flushErr)
}

func batchPairs(c *cli.Context, store blobstore.BlobStore) ([]procare.Pair, error) {
	ctx := c.Context
	switch name, pattern := c.String("pairs"), c.String("source-glob"); {
	case name != "" && pattern != "":
		return nil, fmt.Errorf("--pairs and --source-glob are exclusive")
	case name != "":
		data, err := blobstore.ReadAll(ctx, store, name)
		if err != nil {
			return nil, err
		}
		return parsePairs(data)
	case pattern != "":
		return globPairs(ctx, store, pattern, c.StringSlice("target"))
	default:
		return nil, fmt.Errorf("one of --pairs or --source-glob is required")
	}
}
