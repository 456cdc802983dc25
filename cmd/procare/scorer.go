package main

import (
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/resource"
)

// scoringFlags are shared by score and batch.
func scoringFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:    "distance",
			Aliases: []string{"d"},
			Usage:   "Correspondence distance threshold in angstroms",
			Value:   match.DefaultThreshold,
		},
		&cli.BoolFlag{
			Name:  "partial",
			Usage: "Weight near misses by distance instead of all-or-nothing",
		},
		&cli.StringSliceFlag{
			Name:  "policy",
			Usage: "Matching policies to report (strict, ext, soft, rules); default all",
		},
		&cli.StringFlag{
			Name:  "rule",
			Usage: "Fingerprint aggregation rule: all, q3 or q2",
			Value: "all",
		},
		&cli.BoolFlag{
			Name:  "no-fingerprint",
			Usage: "Skip the fingerprint distance",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Report blob; .jsonl selects JSON lines, .zst or .lz4 compresses",
			Value:   "procare_rescoring.tsv",
		},
		&cli.StringFlag{
			Name:  "param-id",
			Usage: "Parameter set identifier recorded in the report (default: run id)",
		},
		&cli.StringFlag{
			Name:  "class",
			Usage: "Class label recorded in the report",
		},
	}
}

// newScorer builds a Scorer and the controller that bounds its run.
func newScorer(e *env, sc ScoringConfig, mc procare.MetricsCollector) (*procare.Scorer, *resource.Controller, error) {
	workers := sc.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   sc.CacheBytes,
		MaxWorkers:         int64(workers),
		IOLimitBytesPerSec: sc.IOLimit,
	})

	opts := []procare.Option{
		procare.WithThreshold(sc.Distance),
		procare.WithPartialCredit(sc.Partial),
		procare.WithFingerprintRule(sc.Rule),
		procare.WithWorkers(workers),
		procare.WithResourceController(rc),
		procare.WithLogger(e.logger),
	}
	if len(sc.Policies) > 0 {
		opts = append(opts, procare.WithPolicies(sc.Policies...))
	}
	if sc.NoFP {
		opts = append(opts, procare.WithoutFingerprint())
	}
	if mc != nil {
		opts = append(opts, procare.WithMetricsCollector(mc))
	}

	s, err := procare.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return s, rc, nil
}

func paramID(e *env, sc ScoringConfig) string {
	if sc.ParamID != "" {
		return sc.ParamID
	}
	return e.runID
}
