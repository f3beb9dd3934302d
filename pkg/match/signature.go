package match

import (
	"github.com/gnames/gnmatch/pkg/normalize"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// Scope separates cache signatures of different kinds of requests that
// might share the same query fields.
type Scope string

const (
	ScopeMatch       Scope = "match"
	ScopeVernacular  Scope = "vernacular"
	ScopeTaxon       Scope = "taxon"
	ScopeTaxonFollow Scope = "taxon+follow"
)

// NewSignature returns a deterministic UUID v5 for a request. Textual
// fields of the query are normalized by n, so queries that differ only in
// spacing, punctuation, accents or case share the same signature.
func NewSignature(scope Scope, q NameQuery, n *normalize.Normalizer) uuid.UUID {
	key := string(scope) + "|" + q.Normalize(n).Key()
	return gnuuid.New(key)
}
