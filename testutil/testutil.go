package testutil

import (
	"bytes"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/kimeguida/ProCare/model"
	"github.com/kimeguida/ProCare/mol2"
)

// RNG is a seeded, mutex-guarded random source.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset rewinds the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Label returns a label drawn uniformly from the eight categories.
func (r *RNG) Label() model.Label {
	return model.Labels[r.Intn(model.NumLabels)]
}

// Cavity returns n points with uniform labels inside a cube of the given
// edge length centred on the origin. Ordinals run from 1.
func (r *RNG) Cavity(name string, n int, edge float64) model.PointSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]model.LabeledPoint, n)
	for i := range pts {
		pts[i] = model.LabeledPoint{
			Ordinal: i + 1,
			Label:   model.Labels[r.rand.Intn(model.NumLabels)],
			Coords: [3]float64{
				(r.rand.Float64() - 0.5) * edge,
				(r.rand.Float64() - 0.5) * edge,
				(r.rand.Float64() - 0.5) * edge,
			},
		}
	}
	return model.MustPointSet(name, pts)
}

// Jitter copies ps under a new name with Gaussian noise of the given
// standard deviation added to each coordinate. Labels and ordinals are kept.
func (r *RNG) Jitter(ps model.PointSet, name string, sigma float64) model.PointSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := ps.Points()
	for i := range pts {
		for d := range pts[i].Coords {
			pts[i].Coords[d] += r.rand.NormFloat64() * sigma
		}
	}
	return model.MustPointSet(name, pts)
}

// Subset returns the first n points of ps under a new name.
func Subset(ps model.PointSet, name string, n int) model.PointSet {
	pts := ps.Points()
	if n < len(pts) {
		pts = pts[:n]
	}
	return model.MustPointSet(name, pts)
}

// Translate shifts every point of ps by (dx, dy, dz).
func Translate(ps model.PointSet, name string, dx, dy, dz float64) model.PointSet {
	pts := ps.Points()
	for i := range pts {
		pts[i].Coords[0] += dx
		pts[i].Coords[1] += dy
		pts[i].Coords[2] += dz
	}
	return model.MustPointSet(name, pts)
}

// Mol2 renders ps as a TRIPOS mol2 document.
func Mol2(tb testing.TB, ps model.PointSet) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if err := mol2.Write(&buf, ps); err != nil {
		tb.Fatalf("write mol2: %v", err)
	}
	return buf.Bytes()
}

// BruteForceNearest returns the position in ps closest to (x, y, z) and
// its distance. Ties resolve to the lowest position. It returns -1 for
// an empty set.
func BruteForceNearest(ps model.PointSet, x, y, z float64) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i := 0; i < ps.Len(); i++ {
		c := ps.At(i).Coords
		d := math.Sqrt((c[0]-x)*(c[0]-x) + (c[1]-y)*(c[1]-y) + (c[2]-z)*(c[2]-z))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
