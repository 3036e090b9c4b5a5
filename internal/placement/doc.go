// Package placement turns a resolved manifest into a BIDS tree.
//
// Run makes two passes over the inputs. The first places every record: it
// computes the destination, installs the datatype's files, writes the sidecar
// and collects the images fieldmaps apply to. The second patches the fieldmap
// sidecars with that list. Problems with one record or file are reported as
// diagnostics and never stop the run.
package placement
