// Package distance provides the Euclidean helpers and correspondence
// weightings used by the matching and fingerprint packages.
//
// # Weightings
//
//   - WeightBinary: every accepted correspondence counts 1
//   - WeightPiecewiseLinear: full credit up to half the threshold, then a
//     linear ramp down to zero at the threshold
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	w := distance.PiecewiseLinear(d, 1.5)
package distance
