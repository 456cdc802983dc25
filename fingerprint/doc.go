// Package fingerprint describes each point of a set by the label
// composition of its spatial neighbourhood and compares two sets through
// those descriptors.
//
// A fingerprint Vector has one bin per label in category order; bin i is the
// percentage of neighbours (the point itself included) within the radius
// that carry label i. Distance indexes the ref vectors in 8-D, takes the
// nearest-neighbour distance of every fit vector and aggregates them with a
// Rule.
package fingerprint
