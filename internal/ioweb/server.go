// Package ioweb exposes a match.Lookup as a REST service. Its endpoints
// follow the ALA namematching-ws shape, so the service can be used by
// gnmatch clients as their base URL.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gnames/gnfmt"
	gnmatch "github.com/gnames/gnmatch/pkg"
	"github.com/gnames/gnmatch/pkg/bulk"
	"github.com/gnames/gnmatch/pkg/match"
)

const (
	shutdownTimeout = 5 * time.Second
	// maxBody limits the size of request bodies.
	maxBody = 10 << 20
)

// Server answers name matching requests with a Lookup.
type Server struct {
	lk      match.Lookup
	enc     gnfmt.GNjson
	queries *bulk.Coordinator[match.NameQuery, match.Result]
	ids     *bulk.Coordinator[string, match.Result]
	mux     *http.ServeMux
}

// New creates a server. The jobs number limits concurrent lookups of one
// bulk request.
func New(lk match.Lookup, jobs int) *Server {
	s := &Server{
		lk:      lk,
		queries: bulk.New[match.NameQuery](match.Fail, bulk.OptJobs(jobs)),
		ids:     bulk.New[string](match.Fail, bulk.OptJobs(jobs)),
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/ping", s.ping)
	s.mux.HandleFunc("GET /api/version", s.version)
	s.mux.HandleFunc("GET /api/search", s.search)
	s.mux.HandleFunc("GET /api/searchByClassification", s.classificationGet)
	s.mux.HandleFunc("POST /api/searchByClassification", s.classificationPost)
	s.mux.HandleFunc("POST /api/searchAllByClassification", s.classificationAll)
	s.mux.HandleFunc("GET /api/searchByVernacularName", s.vernacular)
	s.mux.HandleFunc("GET /api/getByTaxonID", s.taxonID)
	s.mux.HandleFunc("POST /api/getAllByTaxonID", s.taxonIDAll)
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves on the port until ctx is cancelled, then shuts the server
// down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Name matching server starting", "address", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return ServerStartError(addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("Shutting down name matching server")
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		return err
	}
	return nil
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "pong")
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, map[string]string{
		"version": gnmatch.Version,
		"build":   gnmatch.Build,
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	name := params.Get("q")
	if name == "" {
		s.badRequest(w, r, errors.New("parameter 'q' is required"))
		return
	}
	q := match.NameQuery{
		ScientificName: name,
		SearchStyle:    match.SearchStyle(params.Get("style")),
	}
	s.matchOne(w, r, q)
}

func (s *Server) classificationGet(w http.ResponseWriter, r *http.Request) {
	q := match.QueryFromParams(r.URL.Query().Get)
	s.matchOne(w, r, q)
}

func (s *Server) classificationPost(w http.ResponseWriter, r *http.Request) {
	var q match.NameQuery
	if err := s.read(r, &q); err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.matchOne(w, r, q)
}

func (s *Server) classificationAll(w http.ResponseWriter, r *http.Request) {
	var qs []*match.NameQuery
	if err := s.read(r, &qs); err != nil {
		s.badRequest(w, r, err)
		return
	}
	res := s.queries.Align(r.Context(), qs, s.lk.Match)
	s.write(w, http.StatusOK, res)
}

func (s *Server) vernacular(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("vernacularName")
	if name == "" {
		s.badRequest(w, r, errors.New("parameter 'vernacularName' is required"))
		return
	}
	res, err := s.lk.MatchVernacular(r.Context(), name)
	s.answer(w, r, res, err)
}

func (s *Server) taxonID(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	id := params.Get("taxonID")
	if id == "" {
		s.badRequest(w, r, errors.New("parameter 'taxonID' is required"))
		return
	}
	follow, err := parseFollow(params.Get("follow"))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	res, err := s.lk.MatchByTaxonID(r.Context(), id, follow)
	s.answer(w, r, res, err)
}

func (s *Server) taxonIDAll(w http.ResponseWriter, r *http.Request) {
	follow, err := parseFollow(r.URL.Query().Get("follow"))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	var ids []*string
	if err = s.read(r, &ids); err != nil {
		s.badRequest(w, r, err)
		return
	}
	lookup := func(ctx context.Context, id string) (match.Result, error) {
		return s.lk.MatchByTaxonID(ctx, id, follow)
	}
	res := s.ids.Align(r.Context(), ids, lookup)
	s.write(w, http.StatusOK, res)
}

func (s *Server) matchOne(w http.ResponseWriter, r *http.Request, q match.NameQuery) {
	if q.IsEmpty() {
		s.badRequest(w, r, errors.New("query has no fields"))
		return
	}
	res, err := s.lk.Match(r.Context(), q)
	s.answer(w, r, res, err)
}

// answer writes the lookup result, lookup errors are answered with FAIL.
func (s *Server) answer(w http.ResponseWriter, r *http.Request, res match.Result, err error) {
	if err != nil {
		slog.Warn("Lookup failed", "path", r.URL.Path, "error", err)
		res = match.Fail()
	}
	s.write(w, http.StatusOK, res)
}

func (s *Server) read(r *http.Request, v any) error {
	defer r.Body.Close()
	buf, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		return errors.New("request body is empty")
	}
	return s.enc.Decode(buf, v)
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	bs, err := s.enc.Encode(v)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		http.Error(w, "cannot encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	slog.Info("Bad request", "path", r.URL.Path, "error", err)
	s.write(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func parseFollow(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	res, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("parameter 'follow' must be true or false: %w", err)
	}
	return res, nil
}
