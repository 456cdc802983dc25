// Package mol2 reads and writes cavity point sets in the TRIPOS mol2 format.
//
// Only the ATOM records are used. Each record starts with
//
//	ordinal label x y z
//
// and any further columns are ignored. When a file holds several ATOM
// sections only the last one is read.
package mol2
