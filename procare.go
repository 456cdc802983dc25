package procare

import (
	"context"
	"fmt"
	"time"

	"github.com/kimeguida/ProCare/fingerprint"
	"github.com/kimeguida/ProCare/index"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/metric"
	"github.com/kimeguida/ProCare/model"
)

// Scorer compares cavity pairs under a fixed configuration.
// It holds no per-comparison state and is safe for concurrent use.
type Scorer struct {
	opts options
}

// New creates a Scorer.
func New(optFns ...Option) (*Scorer, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Scorer{opts: o}, nil
}

// Threshold returns the configured distance threshold.
func (s *Scorer) Threshold() float64 { return s.opts.threshold }

// Policies returns the configured policies in evaluation order.
func (s *Scorer) Policies() []match.Policy {
	return append([]match.Policy(nil), s.opts.policies...)
}

// PolicyResult is the outcome of one policy.
type PolicyResult struct {
	Policy match.Policy     `json:"policy"`
	Stats  match.Statistics `json:"-"`
	Ratios match.Ratios     `json:"ratios"`
	Scores metric.Scores    `json:"scores"`
}

// Result is the outcome of comparing a source and a target cavity.
type Result struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	FitSize int    `json:"fit_size"`
	RefSize int    `json:"ref_size"`
	// Swapped is true when the source was larger and became the ref set.
	Swapped  bool           `json:"swapped"`
	Policies []PolicyResult `json:"policies"`
	// HasFingerprint is false when fingerprints were skipped.
	HasFingerprint      bool          `json:"has_fingerprint"`
	FingerprintDistance float64       `json:"fingerprint_distance"`
	Elapsed             time.Duration `json:"elapsed_ns"`
}

// Policy returns the result for p, if it was run.
func (r *Result) Policy(p match.Policy) (PolicyResult, bool) {
	for _, pr := range r.Policies {
		if pr.Policy == p {
			return pr, true
		}
	}
	return PolicyResult{}, false
}

// Compare scores source against target with every configured policy.
func (s *Scorer) Compare(ctx context.Context, source, target model.PointSet) (*Result, error) {
	start := time.Now()
	res, err := s.compare(ctx, source, target)
	elapsed := time.Since(start)

	s.opts.metricsCollector.RecordCompare(elapsed, err)
	s.opts.logger.LogCompare(ctx, source.Name(), target.Name(), elapsed, err)

	if err != nil {
		return nil, err
	}
	res.Elapsed = elapsed
	return res, nil
}

func (s *Scorer) compare(ctx context.Context, source, target model.PointSet) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source.Empty() || target.Empty() {
		return nil, fmt.Errorf("%s vs %s: %w", source.Name(), target.Name(), ErrEmptySet)
	}

	fit, ref, swapped := model.Assign(source, target)
	tree, err := index.NewFromPointSet(ref)
	if err != nil {
		return nil, translateError(err)
	}

	res := &Result{
		Source:   source.Name(),
		Target:   target.Name(),
		FitSize:  fit.Len(),
		RefSize:  ref.Len(),
		Swapped:  swapped,
		Policies: make([]PolicyResult, 0, len(s.opts.policies)),
	}

	cfg := s.opts.matchConfig()
	for _, p := range s.opts.policies {
		stats, err := match.Match(p, fit, ref, tree, cfg)
		if err != nil {
			return nil, translateError(fmt.Errorf("%s: %w", p, err))
		}
		scores, err := metric.Compute(stats, s.opts.alpha, s.opts.beta)
		if err != nil {
			return nil, translateError(fmt.Errorf("%s: %w", p, err))
		}
		res.Policies = append(res.Policies, PolicyResult{
			Policy: p,
			Stats:  stats,
			Ratios: stats.Ratios(),
			Scores: scores,
		})
	}

	if s.opts.skipFingerprint {
		return res, nil
	}
	d, err := s.fingerprintDistance(fit, ref, tree)
	if err != nil {
		return nil, translateError(fmt.Errorf("fingerprint: %w", err))
	}
	res.HasFingerprint = true
	res.FingerprintDistance = d
	return res, nil
}

// fingerprintDistance reuses the ref tree built for matching.
func (s *Scorer) fingerprintDistance(fit, ref model.PointSet, refTree *index.Tree) (float64, error) {
	radius := s.opts.radius()
	refVectors, err := fingerprint.Compute(ref, refTree, radius)
	if err != nil {
		return 0, err
	}
	fitVectors, err := fingerprint.ComputeSet(fit, radius)
	if err != nil {
		return 0, err
	}
	return fingerprint.Distance(refVectors, fitVectors, s.opts.rule)
}
