package index

import (
	"math"
	"sort"

	"github.com/kimeguida/ProCare/distance"
	"github.com/kimeguida/ProCare/model"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Tree is an immutable k-d tree over points of one dimension.
// It is safe for concurrent queries.
type Tree struct {
	tree *kdtree.Tree
	dim  int
	n    int
}

var _ Searcher = (*Tree)(nil)

// New builds a tree over points. The input slices are copied.
func New(points [][]float64) (*Tree, error) {
	if len(points) == 0 {
		return nil, model.ErrEmptySet
	}

	dim := len(points[0])
	if dim == 0 {
		return nil, &ErrDimensionMismatch{Expected: 1, Actual: 0}
	}

	items := make(entries, len(points))
	for i, p := range points {
		if len(p) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(p)}
		}
		c := make([]float64, dim)
		copy(c, p)
		items[i] = entry{coords: c, ordinal: i}
	}

	return &Tree{
		tree: kdtree.New(items, false),
		dim:  dim,
		n:    len(points),
	}, nil
}

// NewFromPointSet builds a 3-D tree over the coordinates of ps.
func NewFromPointSet(ps model.PointSet) (*Tree, error) {
	if ps.Empty() {
		return nil, model.ErrEmptySet
	}
	return New(ps.Coords())
}

// Len returns the number of indexed points.
func (t *Tree) Len() int { return t.n }

// Dimension returns the dimensionality of the indexed points.
func (t *Tree) Dimension() int { return t.dim }

// Nearest returns the closest indexed point to q.
// Among equidistant points the lowest ordinal wins.
func (t *Tree) Nearest(q []float64) (Neighbor, error) {
	if err := t.checkQuery(q); err != nil {
		return Neighbor{}, err
	}
	return t.kNearest(q, 1)[0], nil
}

// KNearest returns, for each query, the min(k, Len()) closest points
// ascending by distance, ties broken by ascending ordinal.
func (t *Tree) KNearest(queries [][]float64, k int) ([][]Neighbor, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(queries) == 0 {
		return nil, model.ErrEmptySet
	}

	out := make([][]Neighbor, len(queries))
	for i, q := range queries {
		if err := t.checkQuery(q); err != nil {
			return nil, err
		}
		out[i] = t.kNearest(q, k)
	}
	return out, nil
}

// WithinRadius returns, for each query, all points at distance <= r.
// Results are sorted by distance then ordinal.
func (t *Tree) WithinRadius(queries [][]float64, r float64) ([][]Neighbor, error) {
	if r < 0 || math.IsNaN(r) {
		return nil, ErrInvalidRadius
	}
	if len(queries) == 0 {
		return nil, model.ErrEmptySet
	}

	out := make([][]Neighbor, len(queries))
	for i, q := range queries {
		if err := t.checkQuery(q); err != nil {
			return nil, err
		}
		out[i] = t.withinRadius(q, r)
	}
	return out, nil
}

func (t *Tree) checkQuery(q []float64) error {
	if t == nil || t.n == 0 {
		return model.ErrEmptySet
	}
	if len(q) != t.dim {
		return &ErrDimensionMismatch{Expected: t.dim, Actual: len(q)}
	}
	return nil
}

func (t *Tree) kNearest(q []float64, k int) []Neighbor {
	if k > t.n {
		k = t.n
	}
	query := entry{coords: q, ordinal: -1}

	keep := kdtree.NewNKeeper(k)
	t.tree.NearestSet(keep, query)
	found := collect(keep.Heap)

	// The keeper settles ties at the k-th distance arbitrarily. Gather every
	// point up to that distance and order them ourselves.
	var kth float64
	for _, nb := range found {
		kth = math.Max(kth, nb.Distance)
	}
	ties := kdtree.NewDistKeeper(kth)
	t.tree.NearestSet(ties, query)
	all := collect(ties.Heap)
	sortNeighbors(all)

	if len(all) > k {
		all = all[:k]
	}
	for i := range all {
		all[i].Distance = math.Sqrt(all[i].Distance)
	}
	return all
}

func (t *Tree) withinRadius(q []float64, r float64) []Neighbor {
	keep := kdtree.NewDistKeeper(math.Nextafter(r*r, math.Inf(1)))
	t.tree.NearestSet(keep, entry{coords: q, ordinal: -1})
	found := collect(keep.Heap)

	out := found[:0]
	for _, nb := range found {
		d := math.Sqrt(nb.Distance)
		if d <= r {
			out = append(out, Neighbor{Ordinal: nb.Ordinal, Distance: d})
		}
	}
	sortNeighbors(out)
	return out
}

// collect converts keeper contents to neighbours with squared distances,
// dropping the keeper's sentinel.
func collect(h kdtree.Heap) []Neighbor {
	out := make([]Neighbor, 0, len(h))
	for _, c := range h {
		if c.Comparable == nil {
			continue
		}
		out = append(out, Neighbor{Ordinal: c.Comparable.(entry).ordinal, Distance: c.Dist})
	}
	return out
}

func sortNeighbors(nbs []Neighbor) {
	sort.Slice(nbs, func(i, j int) bool {
		if nbs[i].Distance != nbs[j].Distance {
			return nbs[i].Distance < nbs[j].Distance
		}
		return nbs[i].Ordinal < nbs[j].Ordinal
	})
}

// entry is an indexed point. It implements kdtree.Comparable with squared
// Euclidean distance, which is what the tree's pruning expects.
type entry struct {
	coords  []float64
	ordinal int
}

func (e entry) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return e.coords[d] - c.(entry).coords[d]
}

func (e entry) Dims() int { return len(e.coords) }

func (e entry) Distance(c kdtree.Comparable) float64 {
	return distance.SquaredEuclidean(e.coords, c.(entry).coords)
}

// entries implements kdtree.Interface.
type entries []entry

func (p entries) Index(i int) kdtree.Comparable { return p[i] }
func (p entries) Len() int                      { return len(p) }
func (p entries) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

func (p entries) Pivot(d kdtree.Dim) int {
	pl := plane{items: p, dim: d}
	return kdtree.Partition(pl, kdtree.MedianOfMedians(pl))
}

// plane orders entries along one dimension; it implements kdtree.SortSlicer.
type plane struct {
	items entries
	dim   kdtree.Dim
}

func (p plane) Len() int { return len(p.items) }
func (p plane) Less(i, j int) bool {
	return p.items[i].coords[p.dim] < p.items[j].coords[p.dim]
}
func (p plane) Swap(i, j int) { p.items[i], p.items[j] = p.items[j], p.items[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{items: p.items[start:end], dim: p.dim}
}
