package fingerprint

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kimeguida/ProCare/index"
	"github.com/kimeguida/ProCare/model"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownRule is returned by ParseRule.
var ErrUnknownRule = errors.New("unknown fingerprint rule")

// Rule selects which nearest-neighbour distances enter the mean.
type Rule int

const (
	// RuleAll averages every distance.
	RuleAll Rule = iota
	// RuleQ3 averages the distances at or above the 75th percentile.
	RuleQ3
	// RuleQ2 averages the distances at or above the median.
	RuleQ2
)

func (r Rule) String() string {
	switch r {
	case RuleAll:
		return "all"
	case RuleQ3:
		return "q3"
	case RuleQ2:
		return "q2"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// ParseRule parses "all", "q3" or "q2".
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return RuleAll, nil
	case "q3":
		return RuleQ3, nil
	case "q2":
		return RuleQ2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	if r < RuleAll || r > RuleQ2 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(b []byte) error {
	v, err := ParseRule(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r Rule) quantile() (float64, bool) {
	switch r {
	case RuleQ3:
		return 0.75, true
	case RuleQ2:
		return 0.5, true
	default:
		return 0, false
	}
}

// NearestDistances returns, for every fit vector, the Euclidean distance to
// its nearest ref vector.
func NearestDistances(ref, fit []Vector) ([]float64, error) {
	if len(ref) == 0 || len(fit) == 0 {
		return nil, model.ErrEmptySet
	}

	refPoints := make([][]float64, len(ref))
	for i, v := range ref {
		refPoints[i] = v.Slice()
	}
	searcher, err := index.Build(refPoints)
	if err != nil {
		return nil, err
	}

	queries := make([][]float64, len(fit))
	for i, v := range fit {
		queries[i] = v.Slice()
	}
	nearest, err := searcher.KNearest(queries, 1)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(fit))
	for i, nbs := range nearest {
		out[i] = nbs[0].Distance
	}
	return out, nil
}

// Aggregate reduces nearest-neighbour distances according to rule.
func Aggregate(distances []float64, rule Rule) (float64, error) {
	if len(distances) == 0 {
		return 0, model.ErrEmptySet
	}
	switch rule {
	case RuleAll:
		return stat.Mean(distances, nil), nil
	case RuleQ3, RuleQ2:
		q, _ := rule.quantile()
		cut := quantile(distances, q)
		var kept []float64
		for _, d := range distances {
			if d >= cut {
				kept = append(kept, d)
			}
		}
		if len(kept) == 0 {
			return cut, nil
		}
		return stat.Mean(kept, nil), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownRule, rule)
	}
}

// Distance is the aggregated nearest-neighbour distance from fit to ref.
func Distance(ref, fit []Vector, rule Rule) (float64, error) {
	if _, err := rule.MarshalText(); err != nil {
		return 0, err
	}
	distances, err := NearestDistances(ref, fit)
	if err != nil {
		return 0, err
	}
	return Aggregate(distances, rule)
}

// Compare assigns fit and ref roles, fingerprints both sets with the given
// radius and returns their distance.
func Compare(source, target model.PointSet, radius float64, rule Rule) (float64, error) {
	if source.Empty() || target.Empty() {
		return 0, model.ErrEmptySet
	}
	fit, ref, _ := model.Assign(source, target)

	refVectors, err := ComputeSet(ref, radius)
	if err != nil {
		return 0, err
	}
	fitVectors, err := ComputeSet(fit, radius)
	if err != nil {
		return 0, err
	}
	return Distance(refVectors, fitVectors, rule)
}

// quantile interpolates linearly between the closest order statistics at
// position q*(n-1).
func quantile(x []float64, q float64) float64 {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	h := q * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
