package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when a radius query is given a negative
	// or NaN radius.
	ErrInvalidRadius = errors.New("radius must be non-negative")
)

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Neighbor is a single query result.
type Neighbor struct {
	// Ordinal is the 0-based position of the point in the indexed set.
	Ordinal int

	// Distance is the Euclidean distance between the query and the point.
	Distance float64
}

// Searcher is implemented by neighbour indexes.
type Searcher interface {
	// Len returns the number of indexed points.
	Len() int

	// Dimension returns the dimensionality of the indexed points.
	Dimension() int

	// KNearest returns, for each query, the k closest indexed points in
	// ascending distance order.
	KNearest(queries [][]float64, k int) ([][]Neighbor, error)

	// WithinRadius returns, for each query, every indexed point at distance
	// <= r.
	WithinRadius(queries [][]float64, r float64) ([][]Neighbor, error)
}

// FlatLimit is the largest set Build serves with a Flat scan.
const FlatLimit = 32

// Build returns a Flat for sets of at most FlatLimit points and a Tree for
// larger ones.
func Build(points [][]float64) (Searcher, error) {
	if len(points) <= FlatLimit {
		return NewFlat(points)
	}
	return New(points)
}
