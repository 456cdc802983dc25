package fingerprint

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kimeguida/ProCare/index"
	"github.com/kimeguida/ProCare/model"
)

// Vector is a per-point label composition in percent, in category order.
type Vector [model.NumLabels]float64

// Slice returns the vector as a query point.
func (v Vector) Slice() []float64 {
	out := make([]float64, len(v))
	copy(out, v[:])
	return out
}

// Sum returns the sum of the bins; 100 for every computed fingerprint.
func (v Vector) Sum() float64 {
	return floats.Sum(v[:])
}

// Bin returns the percentage of label l.
func (v Vector) Bin(l model.Label) float64 {
	if !l.Valid() {
		return 0
	}
	return v[l]
}

// Compute returns one fingerprint per point of ps, in set order. tree must
// index ps's coordinates.
func Compute(ps model.PointSet, tree *index.Tree, radius float64) ([]Vector, error) {
	if ps.Empty() {
		return nil, model.ErrEmptySet
	}
	if tree == nil || tree.Len() != ps.Len() {
		return nil, fmt.Errorf("fingerprint: tree holds %d points, set %q has %d", treeLen(tree), ps.Name(), ps.Len())
	}

	neighbours, err := tree.WithinRadius(ps.Coords(), radius)
	if err != nil {
		return nil, err
	}

	out := make([]Vector, ps.Len())
	for i, nbs := range neighbours {
		// A radius self-query always returns the point itself.
		if len(nbs) == 0 {
			continue
		}
		var counts [model.NumLabels]int
		for _, nb := range nbs {
			counts[ps.At(nb.Ordinal).Label]++
		}
		n := float64(len(nbs))
		for l, c := range counts {
			out[i][l] = float64(c) / n * 100
		}
	}
	return out, nil
}

// ComputeSet builds the tree over ps and computes its fingerprints.
func ComputeSet(ps model.PointSet, radius float64) ([]Vector, error) {
	if ps.Empty() {
		return nil, model.ErrEmptySet
	}
	tree, err := index.NewFromPointSet(ps)
	if err != nil {
		return nil, err
	}
	return Compute(ps, tree, radius)
}

func treeLen(t *index.Tree) int {
	if t == nil {
		return 0
	}
	return t.Len()
}
