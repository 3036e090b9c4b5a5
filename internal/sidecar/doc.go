// Package sidecar builds, reads and writes the JSON documents that accompany
// BIDS files.
package sidecar
