package metric

import (
	"errors"
	"fmt"
	"math"

	"github.com/kimeguida/ProCare/internal/conv"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/model"
)

// Default Tversky weights; they favour the fit set.
const (
	DefaultTverskyAlpha = 0.95
	DefaultTverskyBeta  = 0.05
)

// ErrDivisionUndefined is returned when a score's denominator is zero, which
// always happens for statistics with an empty fit set.
var ErrDivisionUndefined = errors.New("score undefined: zero denominator")

func sizes(s match.Statistics) (n, fit, ref float64, err error) {
	if s.FitSize <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: fit size %d", ErrDivisionUndefined, s.FitSize)
	}
	return s.Identity, float64(s.FitSize), float64(s.RefSize), nil
}

func ratio(num, den float64) (float64, error) {
	if den == 0 || math.IsNaN(den) {
		return 0, ErrDivisionUndefined
	}
	return conv.Round4(num / den), nil
}

// Tanimoto returns n / (fit + ref - n).
func Tanimoto(s match.Statistics) (float64, error) {
	n, fit, ref, err := sizes(s)
	if err != nil {
		return 0, err
	}
	return ratio(n, fit+ref-n)
}

// Tversky returns n / (alpha(fit - n) + beta(ref - n) + n).
func Tversky(s match.Statistics, alpha, beta float64) (float64, error) {
	n, fit, ref, err := sizes(s)
	if err != nil {
		return 0, err
	}
	return ratio(n, alpha*(fit-n)+beta*(ref-n)+n)
}

// Cosine returns n / (sqrt(fit) sqrt(ref)).
func Cosine(s match.Statistics) (float64, error) {
	n, fit, ref, err := sizes(s)
	if err != nil {
		return 0, err
	}
	return ratio(n, math.Sqrt(fit)*math.Sqrt(ref))
}

// Dice returns 2n / (fit + ref).
func Dice(s match.Statistics) (float64, error) {
	n, fit, ref, err := sizes(s)
	if err != nil {
		return 0, err
	}
	return ratio(2*n, fit+ref)
}

// PerScore returns n / fit.
func PerScore(s match.Statistics) (float64, error) {
	n, fit, _, err := sizes(s)
	if err != nil {
		return 0, err
	}
	return ratio(n, fit)
}

// WeightedScore sums, over labels, count / fit divided by the label's
// background frequency, so rare features weigh more.
func WeightedScore(s match.Statistics) (float64, error) {
	_, fit, _, err := sizes(s)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, l := range model.Labels {
		sum += float64(s.Counts[l]) / fit * 1 / l.Frequency()
	}
	return conv.Round4(sum), nil
}

// Hamming returns fit + ref - 2n.
func Hamming(s match.Statistics) (float64, error) {
	n, fit, ref, err := sizes(s)
	if err != nil {
		return 0, err
	}
	return conv.Round4(fit + ref - 2*n), nil
}

// Soergel returns (fit + ref - 2n) / (fit + ref - n).
func Soergel(s match.Statistics) (float64, error) {
	n, fit, ref, err := sizes(s)
	if err != nil {
		return 0, err
	}
	return ratio(fit+ref-2*n, fit+ref-n)
}
