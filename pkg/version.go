// Package gnmatch resolves taxonomic names against a name matching service.
// It keeps version information; the functionality lives in subpackages.
package gnmatch

var (
	// Version of gnmatch, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
