// Package iosfga implements match.Lookup with an in-memory index built
// from an SFGA archive. The index finds names by exact canonical form, it
// does not rank fuzzy matches.
package iosfga

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/gnames/gnmatch/pkg/normalize"
	"github.com/gnames/gnmatch/pkg/parserpool"
	"github.com/sfborg/sflib"
	_ "modernc.org/sqlite"
)

// record is a taxon or a synonym from the archive.
type record struct {
	id      string
	taxonID string
	status  string
	code    string
	rank    string

	nameString string
	canonical  string
	authorship string
	// key is the normalized canonical form.
	key string

	kingdom, kingdomID string
	phylum, phylumID   string
	class, classID     string
	order, orderID     string
	family, familyID   string
	genus, genusID     string
}

func (r *record) isSynonym() bool {
	return r.id != r.taxonID
}

// Index is a local name matching index.
type Index struct {
	norm *normalize.Normalizer
	pool parserpool.Pool

	// taxa are accepted taxa by their ID.
	taxa map[string]*record
	// synonyms by their ID.
	synonyms map[string]*record
	// names are taxa and synonyms by normalized canonical form.
	names map[string][]*record
	// vernaculars are accepted taxon IDs by normalized vernacular name.
	vernaculars map[string][]string
	// common is the preferred vernacular name of a taxon.
	common map[string]string
}

// Open builds the index from an SFGA archive. The path can be a local
// SQLite file, or a local or remote archive in any format sflib supports
// (.sql, .sqlite, .zip). Archives are extracted into cacheDir. Names are
// parsed by jobs concurrent workers.
func Open(ctx context.Context, path, cacheDir string, jobs int) (*Index, error) {
	dbPath, err := fetch(path, cacheDir)
	if err != nil {
		return nil, err
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	err = checkVersion(db)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		norm:        normalize.All(),
		taxa:        make(map[string]*record),
		synonyms:    make(map[string]*record),
		names:       make(map[string][]*record),
		vernaculars: make(map[string][]string),
		common:      make(map[string]string),
	}

	start := time.Now()
	idx.pool = parserpool.NewPool(jobs)

	if err = idx.loadNames(ctx, db, jobs); err != nil {
		idx.Close()
		return nil, err
	}
	if err = idx.loadVernaculars(ctx, db); err != nil {
		idx.Close()
		return nil, err
	}

	msg := fmt.Sprintf(
		"Indexed %s taxa, %s synonyms and %s vernacular names in %s",
		humanize.Comma(int64(len(idx.taxa))),
		humanize.Comma(int64(len(idx.synonyms))),
		humanize.Comma(int64(len(idx.vernaculars))),
		time.Since(start).Round(time.Millisecond),
	)
	gn.Info(msg)
	slog.Info("Local index is ready",
		"taxa", len(idx.taxa), "synonyms", len(idx.synonyms),
	)
	return idx, nil
}

// fetch returns the path of a SQLite database for the archive.
func fetch(path, cacheDir string) (string, error) {
	if strings.HasSuffix(path, ".sqlite") {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	arc := sflib.NewSfga()
	err := arc.Fetch(path, cacheDir)
	if err != nil {
		return "", FetchError(path, err)
	}

	dbPath := arc.DbPath()
	if dbPath == "" {
		return "", FetchError(path, errors.New("archive has no database"))
	}
	return dbPath, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, OpenError(dbPath, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, OpenError(dbPath, err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, OpenError(dbPath, err)
	}
	return db, nil
}

func checkVersion(db *sql.DB) error {
	var version string
	row := db.QueryRow("SELECT ID FROM VERSION LIMIT 1")
	err := row.Scan(&version)
	if err != nil {
		return VersionError(version, err)
	}
	if !gnlib.IsVersion(version) {
		return VersionError(version, errors.New("not a version string"))
	}
	if gnlib.CmpVersion(version, minVersion()) < 0 {
		return VersionError(version, errors.New("version is too old"))
	}
	return nil
}

func minVersion() string {
	return config.MinVersionSFGA
}

// Close releases name parsers of the index.
func (idx *Index) Close() {
	if idx.pool != nil {
		idx.pool.Close()
		idx.pool = nil
	}
}

// Len returns the number of accepted taxa in the index.
func (idx *Index) Len() int {
	return len(idx.taxa)
}

var _ match.Lookup = (*Index)(nil)
