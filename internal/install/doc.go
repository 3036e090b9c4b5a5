// Package install places source files into the BIDS tree.
//
// In link mode regular files are hard-linked and directories (such as CTF
// .ds bundles) are symlinked with a path relative to the link. In copy mode
// everything is copied recursively, and CTF bundles get their internal files
// renamed after the bundle. A missing source is skipped, not an error.
package install
