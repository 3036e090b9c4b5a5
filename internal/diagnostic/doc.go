// Package diagnostic provides structured errors, warnings and infos
// collected while placing inputs into a BIDS tree.
//
// Every entry names the input record it belongs to and, when relevant,
// the path it concerns, so a partially populated tree can be traced back
// to the manifest entries that need fixing upstream.
package diagnostic
