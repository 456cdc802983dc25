// Package testutil provides deterministic cavity generators for tests.
//
//	rng := testutil.NewRNG(4711)
//	a := rng.Cavity("a", 50, 10)
//	b := rng.Jitter(a, "b", 0.2)
//	data := testutil.Mol2(t, b)
//
// BruteForceNearest gives the exact nearest neighbour for checking
// index-backed results.
package testutil
