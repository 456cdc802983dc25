package distance

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Euclidean returns the L2 distance between a and b.
// Assumes vectors are the same length (caller's responsibility).
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// SquaredEuclidean returns the squared L2 distance between a and b.
// Assumes vectors are the same length (caller's responsibility).
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// PiecewiseLinear returns the partial-credit weight of a correspondence at
// distance d under threshold D:
//
//	1         for 0 <= d < D/2
//	1 - d/D   for D/2 <= d < D
//	0         for d >= D
//
// Negative distances are treated as zero.
func PiecewiseLinear(d, threshold float64) float64 {
	switch {
	case d < threshold/2:
		return 1
	case d < threshold:
		return 1 - d/threshold
	default:
		return 0
	}
}

// Binary returns 1 for every distance. It is the weight of a correspondence
// when partial credit is disabled.
func Binary(float64, float64) float64 {
	return 1
}

// Weighting selects how an accepted correspondence contributes to the
// identity count.
type Weighting int

const (
	WeightBinary Weighting = iota
	WeightPiecewiseLinear
)

func (w Weighting) String() string {
	switch w {
	case WeightBinary:
		return "Binary"
	case WeightPiecewiseLinear:
		return "PiecewiseLinear"
	default:
		return fmt.Sprintf("Unknown(%d)", w)
	}
}

// WeightFunc maps a correspondence distance and threshold to a weight.
type WeightFunc func(d, threshold float64) float64

// Provider returns the weight function for the given weighting.
func Provider(w Weighting) (WeightFunc, error) {
	switch w {
	case WeightBinary:
		return Binary, nil
	case WeightPiecewiseLinear:
		return PiecewiseLinear, nil
	default:
		return nil, fmt.Errorf("unsupported weighting: %v", w)
	}
}
