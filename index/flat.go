package index

import (
	"container/heap"
	"math"

	"github.com/kimeguida/ProCare/distance"
	"github.com/kimeguida/ProCare/model"
)

// Flat answers queries by scanning every indexed point. It returns the
// same results as Tree; Build picks it for sets of at most FlatLimit points.
type Flat struct {
	points [][]float64
	dim    int
}

var _ Searcher = (*Flat)(nil)

// NewFlat indexes points. The input slices are copied.
func NewFlat(points [][]float64) (*Flat, error) {
	if len(points) == 0 {
		return nil, model.ErrEmptySet
	}
	dim := len(points[0])
	if dim == 0 {
		return nil, &ErrDimensionMismatch{Expected: 1, Actual: 0}
	}

	cp := make([][]float64, len(points))
	for i, p := range points {
		if len(p) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(p)}
		}
		cp[i] = append([]float64(nil), p...)
	}
	return &Flat{points: cp, dim: dim}, nil
}

func (f *Flat) Len() int       { return len(f.points) }
func (f *Flat) Dimension() int { return f.dim }

// KNearest returns, for each query, the min(k, Len()) closest points
// ascending by distance, ties broken by ascending ordinal.
func (f *Flat) KNearest(queries [][]float64, k int) ([][]Neighbor, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(queries) == 0 {
		return nil, model.ErrEmptySet
	}

	out := make([][]Neighbor, len(queries))
	for i, q := range queries {
		if err := f.checkQuery(q); err != nil {
			return nil, err
		}
		out[i] = f.kNearest(q, min(k, len(f.points)))
	}
	return out, nil
}

// WithinRadius returns, for each query, all points at distance <= r
// sorted by distance then ordinal.
func (f *Flat) WithinRadius(queries [][]float64, r float64) ([][]Neighbor, error) {
	if r < 0 || math.IsNaN(r) {
		return nil, ErrInvalidRadius
	}
	if len(queries) == 0 {
		return nil, model.ErrEmptySet
	}

	out := make([][]Neighbor, len(queries))
	for i, q := range queries {
		if err := f.checkQuery(q); err != nil {
			return nil, err
		}
		var nbs []Neighbor
		for j, p := range f.points {
			if d := distance.Euclidean(p, q); d <= r {
				nbs = append(nbs, Neighbor{Ordinal: j, Distance: d})
			}
		}
		sortNeighbors(nbs)
		out[i] = nbs
	}
	return out, nil
}

func (f *Flat) checkQuery(q []float64) error {
	if f == nil || len(f.points) == 0 {
		return model.ErrEmptySet
	}
	if len(q) != f.dim {
		return &ErrDimensionMismatch{Expected: f.dim, Actual: len(q)}
	}
	return nil
}

func (f *Flat) kNearest(q []float64, k int) []Neighbor {
	h := make(worstFirst, 0, k)
	for j, p := range f.points {
		nb := Neighbor{Ordinal: j, Distance: distance.Euclidean(p, q)}
		if h.Len() < k {
			heap.Push(&h, nb)
			continue
		}
		if worse(h[0], nb) {
			h[0] = nb
			heap.Fix(&h, 0)
		}
	}

	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Neighbor)
	}
	return out
}

// worse orders neighbours by distance, then ordinal.
func worse(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Ordinal > b.Ordinal
}

// worstFirst is a max-heap keeping the current k best candidates.
type worstFirst []Neighbor

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirst) Push(x any)        { *h = append(*h, x.(Neighbor)) }
func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
