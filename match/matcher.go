package match

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kimeguida/ProCare/distance"
	"github.com/kimeguida/ProCare/index"
	"github.com/kimeguida/ProCare/internal/conv"
	"github.com/kimeguida/ProCare/model"
)

// DefaultThreshold is the distance threshold D, in Ångström.
const DefaultThreshold = 1.5

var (
	// ErrInvalidThreshold is returned for negative or NaN thresholds.
	ErrInvalidThreshold = errors.New("distance threshold must be non-negative")

	// ErrIndexMismatch is returned when the ref index was not built over the
	// ref set.
	ErrIndexMismatch = errors.New("ref index does not match ref set")
)

// Config parameterizes a matcher run.
type Config struct {
	// Threshold is the distance threshold D.
	Threshold float64

	// PartialCredit weights each accepted correspondence by the
	// piecewise-linear function of its nearest-neighbour distance.
	PartialCredit bool
}

// DefaultConfig returns the configuration used by the original rescoring
// tool: D = 1.5 without partial credit.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Threshold < 0 || math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.Threshold)
	}
	return nil
}

// candidate is what a fit point is tested against.
type candidate struct {
	nearest model.LabeledPoint
	dist    float64
	within  []index.Neighbor
}

type acceptFunc func(pos int, p model.LabeledPoint, c candidate) bool

func acceptor(policy Policy, ref model.PointSet, threshold float64) (acceptFunc, error) {
	switch policy {
	case Strict:
		return func(pos int, p model.LabeledPoint, c candidate) bool {
			return c.dist <= threshold && p.Label == c.nearest.Label && p.Ordinal == pos+1
		}, nil
	case SoftNearest:
		return func(_ int, p model.LabeledPoint, c candidate) bool {
			return p.Label == c.nearest.Label
		}, nil
	case RulesCompatible:
		return func(_ int, p model.LabeledPoint, c candidate) bool {
			return c.dist <= threshold && Compatible(p.Label, c.nearest.Label)
		}, nil
	case RadiusAny:
		return func(_ int, p model.LabeledPoint, c candidate) bool {
			for _, nb := range c.within {
				if ref.At(nb.Ordinal).Label == p.Label {
					return true
				}
			}
			return false
		}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
	}
}

// Match runs policy for every fit point against ref. refIndex must have been
// built over ref's coordinates; if nil it is built here.
func Match(policy Policy, fit, ref model.PointSet, refIndex *index.Tree, cfg Config) (Statistics, error) {
	if fit.Empty() || ref.Empty() {
		return Statistics{}, model.ErrEmptySet
	}
	if err := cfg.Validate(); err != nil {
		return Statistics{}, err
	}

	accept, err := acceptor(policy, ref, cfg.Threshold)
	if err != nil {
		return Statistics{}, err
	}

	if refIndex == nil {
		refIndex, err = index.NewFromPointSet(ref)
		if err != nil {
			return Statistics{}, err
		}
	} else if refIndex.Len() != ref.Len() || refIndex.Dimension() != 3 {
		return Statistics{}, ErrIndexMismatch
	}

	queries := fit.Coords()
	nearest, err := refIndex.KNearest(queries, 1)
	if err != nil {
		return Statistics{}, err
	}

	var within [][]index.Neighbor
	if policy == RadiusAny {
		within, err = refIndex.WithinRadius(queries, cfg.Threshold)
		if err != nil {
			return Statistics{}, err
		}
	}

	weighting := distance.WeightBinary
	if cfg.PartialCredit && policy.usesThreshold() {
		weighting = distance.WeightPiecewiseLinear
	}
	weight, err := distance.Provider(weighting)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		FitSize: fit.Len(),
		RefSize: ref.Len(),
		Matched: roaring.New(),
	}

	for i := 0; i < fit.Len(); i++ {
		p := fit.At(i)
		nn := nearest[i][0]
		c := candidate{nearest: ref.At(nn.Ordinal), dist: nn.Distance}
		if within != nil {
			c.within = within[i]
		}
		if !accept(i, p, c) {
			continue
		}

		pos, err := conv.Member(i)
		if err != nil {
			return Statistics{}, err
		}
		stats.Identity += weight(nn.Distance, cfg.Threshold)
		stats.Counts[p.Label]++
		stats.Matched.Add(pos)
	}

	return stats, nil
}

// Compare assigns fit and ref roles to source and target and runs policy.
func Compare(policy Policy, source, target model.PointSet, cfg Config) (Statistics, error) {
	if source.Empty() || target.Empty() {
		return Statistics{}, model.ErrEmptySet
	}
	fit, ref, _ := model.Assign(source, target)
	return Match(policy, fit, ref, nil, cfg)
}
