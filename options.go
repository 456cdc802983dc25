package procare

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/kimeguida/ProCare/fingerprint"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/metric"
	"github.com/kimeguida/ProCare/resource"
)

type options struct {
	threshold         float64
	partialCredit     bool
	policies          []match.Policy
	alpha, beta       float64
	rule              fingerprint.Rule
	fingerprintRadius float64 // 0 means use threshold
	skipFingerprint   bool
	workers           int
	rc                *resource.Controller
	metricsCollector  MetricsCollector
	logger            *Logger
}

// Option configures a Scorer.
type Option func(*options)

// WithThreshold sets the correspondence distance threshold D.
func WithThreshold(d float64) Option {
	return func(o *options) {
		o.threshold = d
	}
}

// WithPartialCredit weights accepted correspondences by their distance.
// SoftNearest ignores it.
func WithPartialCredit(enabled bool) Option {
	return func(o *options) {
		o.partialCredit = enabled
	}
}

// WithPolicies selects the policies to run, in order.
// The default runs all four in report column order.
func WithPolicies(policies ...match.Policy) Option {
	return func(o *options) {
		o.policies = append([]match.Policy(nil), policies...)
	}
}

// WithTversky sets the Tversky weights for the fit and ref sets.
func WithTversky(alpha, beta float64) Option {
	return func(o *options) {
		o.alpha, o.beta = alpha, beta
	}
}

// WithFingerprintRule sets how per-point fingerprint distances are aggregated.
func WithFingerprintRule(rule fingerprint.Rule) Option {
	return func(o *options) {
		o.rule = rule
	}
}

// WithFingerprintRadius sets the neighbourhood radius for fingerprints.
// By default the correspondence threshold is used.
func WithFingerprintRadius(r float64) Option {
	return func(o *options) {
		o.fingerprintRadius = r
	}
}

// WithoutFingerprint skips the fingerprint distance.
func WithoutFingerprint() Option {
	return func(o *options) {
		o.skipFingerprint = true
	}
}

// WithWorkers bounds the number of pairs Batch scores concurrently.
// Values < 1 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResourceController shares a resource budget with the batch runner.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithMetricsCollector configures a metrics collector.
//
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures the logger.
//
// If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel replaces the logger with a text logger at level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threshold:        match.DefaultThreshold,
		policies:         append([]match.Policy(nil), match.Policies...),
		alpha:            metric.DefaultTverskyAlpha,
		beta:             metric.DefaultTverskyBeta,
		rule:             fingerprint.RuleAll,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

func (o options) validate() error {
	if math.IsNaN(o.threshold) || o.threshold < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, o.threshold)
	}
	if math.IsNaN(o.fingerprintRadius) || o.fingerprintRadius < 0 {
		return fmt.Errorf("%w: fingerprint radius %v", ErrInvalidThreshold, o.fingerprintRadius)
	}
	if len(o.policies) == 0 {
		return fmt.Errorf("%w: no policies selected", ErrUnknownPolicy)
	}
	for _, p := range o.policies {
		if !p.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownPolicy, p)
		}
	}
	if o.alpha < 0 || o.beta < 0 || math.IsNaN(o.alpha) || math.IsNaN(o.beta) {
		return fmt.Errorf("%w: alpha=%v beta=%v", ErrInvalidWeights, o.alpha, o.beta)
	}
	if _, err := o.rule.MarshalText(); err != nil {
		return err
	}
	return nil
}

func (o options) radius() float64 {
	if o.fingerprintRadius > 0 {
		return o.fingerprintRadius
	}
	return o.threshold
}

func (o options) matchConfig() match.Config {
	return match.Config{Threshold: o.threshold, PartialCredit: o.partialCredit}
}
