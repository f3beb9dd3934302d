package match

import "context"

// Lookup resolves one request. It might be a remote web-service, a local
// index or a test double. Errors mean the lookup could not be performed;
// an unresolved name is a failed Result, not an error.
type Lookup interface {
	// Match resolves a name query, using any fields it has.
	Match(ctx context.Context, q NameQuery) (Result, error)

	// MatchVernacular resolves a common name.
	MatchVernacular(ctx context.Context, name string) (Result, error)

	// MatchByTaxonID finds a taxon by its identifier. If follow is true,
	// identifiers of synonyms resolve to their accepted taxon.
	MatchByTaxonID(ctx context.Context, id string, follow bool) (Result, error)
}
