package match

import (
	"github.com/kimeguida/ProCare/index"
	"github.com/kimeguida/ProCare/internal/conv"
	"github.com/kimeguida/ProCare/model"
)

// Alignment holds the points of two sets that lie within a radius of a
// same-labelled point of the other set.
type Alignment struct {
	// A and B keep the points in their original set order.
	A, B model.PointSet

	sizeA, sizeB int
}

// Align collects every pair (p in a, q in b) with equal labels and
// distance <= radius and returns the distinct points taking part.
func Align(a, b model.PointSet, radius float64) (Alignment, error) {
	if a.Empty() || b.Empty() {
		return Alignment{}, model.ErrEmptySet
	}
	if err := (Config{Threshold: radius}).Validate(); err != nil {
		return Alignment{}, err
	}

	tree, err := index.NewFromPointSet(a)
	if err != nil {
		return Alignment{}, err
	}
	within, err := tree.WithinRadius(b.Coords(), radius)
	if err != nil {
		return Alignment{}, err
	}

	inA := make([]bool, a.Len())
	inB := make([]bool, b.Len())
	for i, nbs := range within {
		q := b.At(i)
		for _, nb := range nbs {
			if a.At(nb.Ordinal).Label == q.Label {
				inA[nb.Ordinal] = true
				inB[i] = true
			}
		}
	}

	alignedA, err := model.NewPointSet(a.Name(), selectPoints(a, inA))
	if err != nil {
		return Alignment{}, err
	}
	alignedB, err := model.NewPointSet(b.Name(), selectPoints(b, inB))
	if err != nil {
		return Alignment{}, err
	}
	return Alignment{A: alignedA, B: alignedB, sizeA: a.Len(), sizeB: b.Len()}, nil
}

func selectPoints(ps model.PointSet, keep []bool) []model.LabeledPoint {
	var out []model.LabeledPoint
	for i, ok := range keep {
		if ok {
			out = append(out, ps.At(i))
		}
	}
	return out
}

// Contribution returns the share of the fit set that is aligned and, per
// label, the share of aligned fit points carrying it. The fit set is the
// strictly smaller of A and B; on a tie it is B.
func (al Alignment) Contribution() Ratios {
	aligned, size := al.A, al.sizeA
	if al.sizeA >= al.sizeB {
		aligned, size = al.B, al.sizeB
	}

	var r Ratios
	if size == 0 {
		return r
	}
	r.Aligned = conv.Round4(float64(aligned.Len()) / float64(size))
	if aligned.Empty() {
		return r
	}
	comp := aligned.Composition()
	for _, l := range model.Labels {
		r.Categories[l] = conv.Round4(float64(comp[l]) / float64(aligned.Len()))
	}
	return r
}
