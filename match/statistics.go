package match

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kimeguida/ProCare/internal/conv"
	"github.com/kimeguida/ProCare/model"
)

// Statistics is the outcome of one matcher run. It is produced fresh per run
// and must be treated as read-only.
type Statistics struct {
	// Identity is the number of accepted correspondences, or the sum of
	// their weights when partial credit is enabled.
	Identity float64

	FitSize int
	RefSize int

	// Counts holds accepted correspondences per fit label, in category
	// order. Counts always grow by exactly 1 per acceptance.
	Counts [model.NumLabels]int

	// Matched holds the 0-based positions of accepted fit points.
	Matched *roaring.Bitmap
}

// Count returns the number of accepted correspondences for label l.
func (s Statistics) Count(l model.Label) int {
	if !l.Valid() {
		return 0
	}
	return s.Counts[l]
}

// Accepted returns the number of accepted correspondences regardless of
// their weight.
func (s Statistics) Accepted() int {
	var n int
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// IsMatched reports whether the fit point at position i was accepted.
func (s Statistics) IsMatched(i int) bool {
	if s.Matched == nil {
		return false
	}
	u, err := conv.Member(i)
	if err != nil {
		return false
	}
	return s.Matched.Contains(u)
}

// MatchedPositions returns the accepted fit positions in ascending order.
func (s Statistics) MatchedPositions() []int {
	if s.Matched == nil {
		return nil
	}
	out := make([]int, 0, s.Matched.GetCardinality())
	it := s.Matched.Iterator()
	for it.HasNext() {
		v, err := conv.Position(it.Next())
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s Statistics) String() string {
	return fmt.Sprintf("identity=%.4f fit=%d ref=%d counts=%v", s.Identity, s.FitSize, s.RefSize, s.Counts)
}

// Ratios are the normalized statistics, rounded to four decimals.
type Ratios struct {
	// Aligned is Identity / FitSize.
	Aligned float64

	// Categories holds Count / Identity per label in category order; all
	// zero when Identity is zero.
	Categories [model.NumLabels]float64
}

// Ratios normalizes the statistics.
func (s Statistics) Ratios() Ratios {
	var r Ratios
	if s.FitSize > 0 {
		r.Aligned = conv.Round4(s.Identity / float64(s.FitSize))
	}
	if s.Identity == 0 {
		return r
	}
	for _, l := range model.Labels {
		r.Categories[l] = conv.Round4(float64(s.Counts[l]) / s.Identity)
	}
	return r
}

// Category returns the ratio of label l.
func (r Ratios) Category(l model.Label) float64 {
	if !l.Valid() {
		return 0
	}
	return r.Categories[l]
}

// tupleOrder is the label order of the reported 9-tuple.
var tupleOrder = [model.NumLabels]model.Label{
	model.CA, model.CZ, model.N, model.NZ, model.O, model.OD1, model.OG, model.DU,
}

// Tuple returns (aligned, CA, CZ, N, NZ, O, OD1, OG, DU).
func (r Ratios) Tuple() [9]float64 {
	var t [9]float64
	t[0] = r.Aligned
	for i, l := range tupleOrder {
		t[i+1] = r.Categories[l]
	}
	return t
}
