package model

import (
	"errors"
	"fmt"
)

// ErrEmptySet is returned by every operation that is handed a point set
// without points.
var ErrEmptySet = errors.New("empty point set")

// LabeledPoint is a pharmacophoric point.
type LabeledPoint struct {
	// Ordinal is the 1-based position the point had in its source record.
	Ordinal int
	Label   Label
	Coords  [3]float64
}

// String returns a compact representation of the point.
func (p LabeledPoint) String() string {
	return fmt.Sprintf("%d:%s(%.4f,%.4f,%.4f)", p.Ordinal, p.Label, p.Coords[0], p.Coords[1], p.Coords[2])
}

// PointSet is an ordered, immutable collection of labeled points.
// The zero value is an empty set.
type PointSet struct {
	name   string
	points []LabeledPoint
}

// NewPointSet copies points into a new set.
// Labels outside the vocabulary are rejected.
func NewPointSet(name string, points []LabeledPoint) (PointSet, error) {
	for i, p := range points {
		if !p.Label.Valid() {
			return PointSet{}, fmt.Errorf("point %d: %w: %d", i, ErrUnknownLabel, uint8(p.Label))
		}
	}
	cp := make([]LabeledPoint, len(points))
	copy(cp, points)
	return PointSet{name: name, points: cp}, nil
}

// MustPointSet is like NewPointSet but panics on error.
// Intended for tests and fixtures.
func MustPointSet(name string, points []LabeledPoint) PointSet {
	ps, err := NewPointSet(name, points)
	if err != nil {
		panic(err)
	}
	return ps
}

// Name returns the set's name (usually the file it was read from).
func (s PointSet) Name() string { return s.name }

// Len returns the number of points.
func (s PointSet) Len() int { return len(s.points) }

// Empty reports whether the set has no points.
func (s PointSet) Empty() bool { return len(s.points) == 0 }

// At returns the i-th point.
func (s PointSet) At(i int) LabeledPoint { return s.points[i] }

// Points returns a copy of the points.
func (s PointSet) Points() []LabeledPoint {
	cp := make([]LabeledPoint, len(s.points))
	copy(cp, s.points)
	return cp
}

// Coords returns the coordinates as query vectors, in set order.
func (s PointSet) Coords() [][]float64 {
	out := make([][]float64, len(s.points))
	for i := range s.points {
		c := s.points[i].Coords
		out[i] = []float64{c[0], c[1], c[2]}
	}
	return out
}

// Labels returns the label of every point, in set order.
func (s PointSet) Labels() []Label {
	out := make([]Label, len(s.points))
	for i := range s.points {
		out[i] = s.points[i].Label
	}
	return out
}

// Composition returns the number of points carrying each label.
func (s PointSet) Composition() [NumLabels]int {
	var c [NumLabels]int
	for i := range s.points {
		c[s.points[i].Label]++
	}
	return c
}

// Assign splits source and target into the fit and ref roles.
//
// The ref set is whichever is strictly larger. On equal size target is ref
// and source is fit. swapped is true when source became the ref set.
func Assign(source, target PointSet) (fit, ref PointSet, swapped bool) {
	if source.Len() > target.Len() {
		return target, source, true
	}
	return source, target, false
}
