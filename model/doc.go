// Package model defines the data types shared by the scoring packages.
//
// # Labels
//
// Every pharmacophoric point carries one of eight chemical-feature labels.
// The fixed category order is:
//
//	CA CZ O OD1 OG N NZ DU
//
// Histograms, counters and fingerprints are indexed by this order.
//
// # Point Sets
//
// A PointSet is an ordered, immutable sequence of LabeledPoint values.
// Insertion order carries meaning: the Strict matching policy checks that
// each point's ordinal equals its 1-based position in the set.
//
//	ps, err := model.NewPointSet("cavity.mol2", []model.LabeledPoint{
//	    {Ordinal: 1, Label: model.CA, Coords: [3]float64{0, 0, 0}},
//	    {Ordinal: 2, Label: model.DU, Coords: [3]float64{5, 5, 5}},
//	})
//
// # Fit and Ref
//
// When two sets are compared, the strictly larger one is the ref set and
// the other is the fit set. On equal size the target is ref. See Assign.
package model
