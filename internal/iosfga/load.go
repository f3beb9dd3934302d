package iosfga

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"sync"

	"github.com/gnames/gnmatch/pkg/parserpool"
	"golang.org/x/sync/errgroup"
)

const taxaQuery = `
SELECT
  t.col__id, t.col__id, t.col__status_id,
  n.gn__scientific_name_string, n.col__code_id, n.col__rank_id,
  t.col__kingdom, t.sf__kingdom_id, t.col__phylum, t.sf__phylum_id,
  t.col__class, t.sf__class_id, t.col__order, t.sf__order_id,
  t.col__family, t.sf__family_id, t.col__genus, t.sf__genus_id
FROM taxon t
  JOIN name n ON n.col__id = t.col__name_id
`

const synonymsQuery = `
SELECT
  s.col__id, s.col__taxon_id, s.col__status_id,
  n.gn__scientific_name_string, n.col__code_id, n.col__rank_id,
  t.col__kingdom, t.sf__kingdom_id, t.col__phylum, t.sf__phylum_id,
  t.col__class, t.sf__class_id, t.col__order, t.sf__order_id,
  t.col__family, t.sf__family_id, t.col__genus, t.sf__genus_id
FROM synonym s
  JOIN name n ON n.col__id = s.col__name_id
  JOIN taxon t ON t.col__id = s.col__taxon_id
`

// loadNames reads taxa and synonyms, parses their names with concurrent
// workers and adds them to the index.
func (idx *Index) loadNames(
	ctx context.Context,
	db *sql.DB,
	jobs int,
) error {
	if jobs < 1 {
		jobs = 1
	}
	chIn := make(chan *record)
	chOut := make(chan *record)

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return idx.parseWorker(ctx, chIn, chOut)
		})
	}

	g.Go(func() error {
		for r := range chOut {
			idx.add(r)
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		defer close(chIn)
		err := readRecords(ctx, db, "taxon", taxaQuery, chIn)
		if err != nil {
			return err
		}
		return readRecords(ctx, db, "synonym", synonymsQuery, chIn)
	})

	return g.Wait()
}

func readRecords(
	ctx context.Context,
	db *sql.DB,
	table, query string,
	chIn chan<- *record,
) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return ReadError(table, err)
	}
	defer rows.Close()

	for rows.Next() {
		r := &record{}
		var status, code, rank sql.NullString
		var cls [12]sql.NullString
		err = rows.Scan(
			&r.id, &r.taxonID, &status,
			&r.nameString, &code, &rank,
			&cls[0], &cls[1], &cls[2], &cls[3],
			&cls[4], &cls[5], &cls[6], &cls[7],
			&cls[8], &cls[9], &cls[10], &cls[11],
		)
		if err != nil {
			return ReadError(table, err)
		}
		r.status = strings.ToLower(status.String)
		r.code = code.String
		r.rank = strings.ToLower(rank.String)
		r.kingdom, r.kingdomID = cls[0].String, cls[1].String
		r.phylum, r.phylumID = cls[2].String, cls[3].String
		r.class, r.classID = cls[4].String, cls[5].String
		r.order, r.orderID = cls[6].String, cls[7].String
		r.family, r.familyID = cls[8].String, cls[9].String
		r.genus, r.genusID = cls[10].String, cls[11].String

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- r:
		}
	}
	if err = rows.Err(); err != nil {
		return ReadError(table, err)
	}
	return nil
}

func (idx *Index) parseWorker(
	ctx context.Context,
	chIn <-chan *record,
	chOut chan<- *record,
) error {
	for r := range chIn {
		p := idx.pool.Parse(r.nameString, parserpool.Code(r.code))
		if p.Parsed && p.Canonical != nil {
			r.canonical = p.Canonical.Full
			r.key = idx.norm.Normalize(p.Canonical.Simple)
			if p.Authorship != nil {
				r.authorship = p.Authorship.Normalized
			}
		} else {
			r.canonical = r.nameString
			r.key = idx.norm.Normalize(r.nameString)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- r:
		}
	}
	return nil
}

// add puts a parsed record into the index. Only the collector goroutine
// calls it.
func (idx *Index) add(r *record) {
	if r.id == "" {
		return
	}
	if r.isSynonym() {
		idx.synonyms[r.id] = r
	} else {
		idx.taxa[r.id] = r
	}
	if r.key != "" {
		idx.names[r.key] = append(idx.names[r.key], r)
	}
}

// loadVernaculars reads common names of accepted taxa. English names are
// preferred as the vernacular name of a taxon.
func (idx *Index) loadVernaculars(ctx context.Context, db *sql.DB) error {
	q := `SELECT col__taxon_id, col__name, col__language FROM vernacular`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return ReadError("vernacular", err)
	}
	defer rows.Close()

	english := make(map[string]bool)
	for rows.Next() {
		var taxonID, name string
		var lang sql.NullString
		if err = rows.Scan(&taxonID, &name, &lang); err != nil {
			return ReadError("vernacular", err)
		}
		if _, ok := idx.taxa[taxonID]; !ok {
			continue
		}

		key := idx.norm.Normalize(name)
		if key == "" {
			continue
		}
		ids := idx.vernaculars[key]
		if !slices.Contains(ids, taxonID) {
			idx.vernaculars[key] = append(ids, taxonID)
		}

		l := strings.ToLower(lang.String)
		isEn := l == "en" || l == "eng"
		if _, ok := idx.common[taxonID]; !ok || (isEn && !english[taxonID]) {
			idx.common[taxonID] = name
			english[taxonID] = isEn
		}
	}
	if err = rows.Err(); err != nil {
		return ReadError("vernacular", err)
	}
	return nil
}
