// Package index provides exact nearest-neighbour search over small point
// clouds and fingerprint collections.
//
// A Tree is a k-d tree (gonum.org/v1/gonum/spatial/kdtree) over points of a
// single dimension: 3 for cavity coordinates, 8 for composition
// fingerprints. It answers two kinds of query:
//
//   - KNearest: the k closest points, ascending by distance, ties broken by
//     ascending ordinal so results are deterministic
//   - WithinRadius: every point at distance <= r, no upper bound on count
//
// Ordinals in results are 0-based positions in the slice the tree was built
// from.
//
// # Usage
//
//	tree, err := index.NewFromPointSet(ref)
//	if err != nil { ... }
//	nn, err := tree.KNearest(fit.Coords(), 1)
package index
