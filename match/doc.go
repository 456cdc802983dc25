// Package match decides which points of a fit set correspond to points of a
// ref set and folds the accepted correspondences into Statistics.
//
// Four policies share one kernel; they differ only in the query they need
// (nearest neighbour or radius set) and in the acceptance predicate:
//
//   - Strict: nearest ref point within the threshold, same label, and the fit
//     point's ordinal equal to its 1-based position.
//   - SoftNearest: nearest ref point has the same label, at any distance.
//   - RulesCompatible: nearest ref point within the threshold, with a
//     compatible label (see Compatible).
//   - RadiusAny: some ref point within the threshold has the same label.
//
// With partial credit enabled an accepted correspondence adds the
// piecewise-linear weight of its nearest-neighbour distance to Identity
// instead of 1. SoftNearest always counts 1. Per-label counters always
// increment by 1 and are keyed by the fit point's label.
package match
