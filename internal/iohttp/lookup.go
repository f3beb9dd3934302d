// Package iohttp implements match.Lookup on top of a remote name matching
// web-service with ALA namematching-ws endpoints.
package iohttp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/pkg/match"
)

const (
	pathClassification = "/api/searchByClassification"
	pathVernacular     = "/api/searchByVernacularName"
	pathTaxonID        = "/api/getByTaxonID"
)

type lookup struct {
	baseURL string
	client  *http.Client
	enc     gnfmt.GNjson
}

// New creates a remote lookup. The baseURL must be an absolute http or
// https URL. The timeout limits every request, zero means no limit.
func New(baseURL string, timeout time.Duration) (match.Lookup, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, BaseURLError(baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, BaseURLError(baseURL, errors.New("needs http(s) scheme and host"))
	}

	res := lookup{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
	return &res, nil
}

// Match sends the query as JSON to searchByClassification.
func (l *lookup) Match(ctx context.Context, q match.NameQuery) (match.Result, error) {
	body, err := l.enc.Encode(q)
	if err != nil {
		return match.Fail(), err
	}

	reqURL := l.baseURL + pathClassification
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, reqURL, bytes.NewReader(body),
	)
	if err != nil {
		return match.Fail(), RequestError(reqURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return l.do(req)
}

func (l *lookup) MatchVernacular(ctx context.Context, name string) (match.Result, error) {
	params := url.Values{}
	params.Set("vernacularName", name)
	return l.get(ctx, pathVernacular, params)
}

func (l *lookup) MatchByTaxonID(
	ctx context.Context,
	id string,
	follow bool,
) (match.Result, error) {
	params := url.Values{}
	params.Set("taxonID", id)
	params.Set("follow", strconv.FormatBool(follow))
	return l.get(ctx, pathTaxonID, params)
}

func (l *lookup) get(
	ctx context.Context,
	path string,
	params url.Values,
) (match.Result, error) {
	reqURL := l.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return match.Fail(), RequestError(reqURL, err)
	}
	return l.do(req)
}

func (l *lookup) do(req *http.Request) (match.Result, error) {
	reqURL := req.URL.String()
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return match.Fail(), RequestError(reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return match.Fail(), StatusError(reqURL, resp.StatusCode)
	}

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return match.Fail(), RequestError(reqURL, err)
	}

	var res match.Result
	err = l.enc.Decode(bs, &res)
	if err != nil {
		return match.Fail(), DecodeError(reqURL, err)
	}

	slog.Debug("Lookup response", "url", reqURL, "success", res.Success)
	return res.Sanitize(), nil
}
