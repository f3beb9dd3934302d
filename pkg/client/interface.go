// Package client provides MatchClient, the entry point for name matching.
// The client normalizes requests, serves repeated requests from a
// response cache, and turns lookup failures into the shared failure
// result, so callers never get transport errors from match methods.
package client

import (
	"context"

	"github.com/gnames/gnmatch/pkg/match"
	"github.com/google/uuid"
)

// Client resolves taxonomic names.
type Client interface {
	// Match resolves one query. Failures of any kind give match.Fail().
	Match(ctx context.Context, q match.NameQuery) match.Result

	// MatchAll resolves queries in bulk. The result has the same length as
	// the input, nil queries give nil results.
	MatchAll(ctx context.Context, qs []*match.NameQuery) []*match.Result

	// MatchByClassification resolves a Linnaean classification using the
	// search style.
	MatchByClassification(
		ctx context.Context,
		c match.Classification,
		style match.SearchStyle,
	) match.Result

	// MatchVernacular resolves a common name.
	MatchVernacular(ctx context.Context, name string) match.Result

	// GetByTaxonID finds a taxon by its ID. With follow, synonym IDs
	// resolve to accepted taxa.
	GetByTaxonID(ctx context.Context, id string, follow bool) match.Result

	// GetAllByTaxonID finds taxa by IDs in bulk. Nil IDs give nil results.
	GetAllByTaxonID(ctx context.Context, ids []*string, follow bool) []*match.Result

	// Close releases the cache. A cache owned by the client is removed
	// from disk. Only the first call does the work.
	Close() error
}

// Cache stores results by request signature.
type Cache interface {
	// Get returns a stored result, false if there is none.
	Get(sig uuid.UUID) (match.Result, bool)
	// Put stores a result.
	Put(sig uuid.UUID, r match.Result) error
	// Close closes the cache keeping its data.
	Close() error
	// Clear closes the cache and removes its data.
	Clear() error
}
