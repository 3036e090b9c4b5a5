// Package datatype provides the immutable registry that maps opaque datatype
// identifiers to a BIDS modality and to the set of files each datatype
// installs.
//
// Per-datatype behavior is declared as data: adding a new datatype means
// adding a table entry, not a new code path. Unknown identifiers are never
// an error; they resolve to the derivatives modality.
package datatype
