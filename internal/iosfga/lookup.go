package iosfga

import (
	"context"
	"slices"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnmatch/pkg/match"
)

// Match finds a taxon by the scientific name of the query. Without a
// scientific name it uses genus and epithets, and then the lowest given
// higher rank. Other classification fields and rank narrow the
// candidates down. SearchStyle is ignored.
func (idx *Index) Match(ctx context.Context, q match.NameQuery) (match.Result, error) {
	if err := ctx.Err(); err != nil {
		return match.Fail(), err
	}

	key := idx.nameKey(q)
	if key == "" {
		return match.Fail(), nil
	}
	q = q.Normalize(idx.norm)

	var cands []*record
	for _, r := range idx.names[key] {
		if idx.fits(r, q) {
			cands = append(cands, r)
		}
	}
	return idx.resolve(cands), nil
}

// MatchVernacular finds a taxon by its common name.
func (idx *Index) MatchVernacular(ctx context.Context, name string) (match.Result, error) {
	if err := ctx.Err(); err != nil {
		return match.Fail(), err
	}

	ids := idx.vernaculars[idx.norm.Normalize(name)]
	switch len(ids) {
	case 0:
		return match.Fail(), nil
	case 1:
		res := idx.result(idx.taxa[ids[0]])
		res.VernacularName = strings.TrimSpace(name)
		return res, nil
	default:
		return match.Failure(match.IssueHomonym), nil
	}
}

// MatchByTaxonID finds a taxon by the ID of the taxon or of one of its
// synonyms. A synonym ID resolves to its accepted taxon only if follow is
// true.
func (idx *Index) MatchByTaxonID(
	ctx context.Context,
	id string,
	follow bool,
) (match.Result, error) {
	if err := ctx.Err(); err != nil {
		return match.Fail(), err
	}

	id = strings.TrimSpace(id)
	if t, ok := idx.taxa[id]; ok {
		return idx.result(t), nil
	}

	s, ok := idx.synonyms[id]
	if !ok {
		return match.Fail(), nil
	}
	if !follow {
		return match.Failure(synonymIssue(s)), nil
	}
	t, ok := idx.taxa[s.taxonID]
	if !ok {
		return match.Fail(), nil
	}
	res := idx.result(t)
	res.Issues = []string{synonymIssue(s)}
	return res, nil
}

// nameKey returns the normalized canonical form to search for.
func (idx *Index) nameKey(q match.NameQuery) string {
	if strings.TrimSpace(q.ScientificName) != "" {
		code := nomcode.Botanical
		if strings.EqualFold(strings.TrimSpace(q.Kingdom), "animalia") {
			code = nomcode.Zoological
		}
		if c, ok := idx.pool.Canonical(q.ScientificName, code); ok {
			return idx.norm.Normalize(c)
		}
		return idx.norm.Normalize(q.ScientificName)
	}

	if q.Genus != "" && q.SpecificEpithet != "" {
		parts := []string{q.Genus, q.SpecificEpithet}
		if q.InfraspecificEpithet != "" {
			parts = append(parts, q.InfraspecificEpithet)
		}
		return idx.norm.Normalize(strings.Join(parts, " "))
	}

	for _, v := range []string{
		q.Genus, q.Family, q.Order, q.Class, q.Phylum, q.Kingdom,
	} {
		if v != "" {
			return idx.norm.Normalize(v)
		}
	}
	return ""
}

// fits checks a candidate against higher classification and rank given
// in the query.
func (idx *Index) fits(r *record, q match.NameQuery) bool {
	pairs := [][2]string{
		{q.Kingdom, r.kingdom},
		{q.Phylum, r.phylum},
		{q.Class, r.class},
		{q.Order, r.order},
		{q.Family, r.family},
	}
	if q.ScientificName != "" || q.SpecificEpithet != "" {
		pairs = append(pairs, [2]string{q.Genus, r.genus})
	}
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" {
			continue
		}
		if p[0] != idx.norm.Normalize(p[1]) {
			return false
		}
	}
	if q.Rank != "" && r.rank != "" && q.Rank != r.rank {
		return false
	}
	return true
}

// resolve turns candidates into a result. Candidates that point to
// different accepted taxa are homonyms.
func (idx *Index) resolve(cands []*record) match.Result {
	var ids []string
	synonymOnly := true
	var syn *record
	for _, r := range cands {
		if !slices.Contains(ids, r.taxonID) {
			ids = append(ids, r.taxonID)
		}
		if r.isSynonym() {
			syn = r
		} else {
			synonymOnly = false
		}
	}

	switch len(ids) {
	case 0:
		return match.Fail()
	case 1:
	default:
		return match.Failure(match.IssueHomonym)
	}

	t, ok := idx.taxa[ids[0]]
	if !ok {
		return match.Fail()
	}
	res := idx.result(t)
	if synonymOnly && syn != nil {
		res.Issues = []string{synonymIssue(syn)}
	}
	return res
}

func (idx *Index) result(t *record) match.Result {
	if t == nil {
		return match.Fail()
	}
	return match.Result{
		Success:                  true,
		ScientificName:           t.canonical,
		ScientificNameAuthorship: t.authorship,
		TaxonConceptID:           t.id,
		Rank:                     t.rank,
		RankID:                   match.RankID(t.rank),
		Kingdom:                  t.kingdom,
		KingdomID:                t.kingdomID,
		Phylum:                   t.phylum,
		PhylumID:                 t.phylumID,
		Class:                    t.class,
		ClassID:                  t.classID,
		Order:                    t.order,
		OrderID:                  t.orderID,
		Family:                   t.family,
		FamilyID:                 t.familyID,
		Genus:                    t.genus,
		GenusID:                  t.genusID,
		VernacularName:           idx.common[t.id],
		Issues:                   []string{match.IssueNone},
	}
}

func synonymIssue(r *record) string {
	if strings.Contains(r.status, "misapplied") {
		return match.IssueMisapplied
	}
	return match.IssueSynonym
}
