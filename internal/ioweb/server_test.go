package ioweb_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/internal/ioweb"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apniID = "https://id.biodiversity.org.au/taxon/apni/51286863"

type stub struct{}

func acacia() match.Result {
	return match.Result{
		Success:        true,
		ScientificName: "Acacia dealbata",
		TaxonConceptID: apniID,
		Rank:           "species",
		RankID:         7000,
		Issues:         []string{match.IssueNone},
	}
}

func (stub) Match(_ context.Context, q match.NameQuery) (match.Result, error) {
	switch q.ScientificName {
	case "Acacia dealbata":
		return acacia(), nil
	case "Macropus":
		return match.Failure(match.IssueHomonym), nil
	case "boom":
		return match.Result{}, errors.New("boom")
	}
	if q.Genus == "Acacia" && q.SpecificEpithet == "dealbata" {
		return acacia(), nil
	}
	return match.Fail(), nil
}

func (stub) MatchVernacular(_ context.Context, name string) (match.Result, error) {
	if name == "Silver Wattle" {
		return acacia(), nil
	}
	return match.Fail(), nil
}

func (stub) MatchByTaxonID(_ context.Context, id string, follow bool) (match.Result, error) {
	switch id {
	case apniID:
		return acacia(), nil
	case "synonym":
		if follow {
			return acacia(), nil
		}
		return match.Failure(match.IssueSynonym), nil
	}
	return match.Fail(), nil
}

func request(t *testing.T, method, target, body string) (int, string) {
	srv := ioweb.New(stub{}, 2)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

func TestSearch(t *testing.T) {
	code, body := request(t, "GET", "/api/search?q=Acacia+dealbata", "")
	assert.Equal(t, http.StatusOK, code)
	var res match.Result
	require.NoError(t, gnfmt.GNjson{}.Decode([]byte(body), &res))
	assert.True(t, res.Success)
	assert.Equal(t, apniID, res.TaxonConceptID)

	code, _ = request(t, "GET", "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSearchByClassification(t *testing.T) {
	tests := []struct {
		msg, method, target, body string
		code                      int
		success                   bool
	}{
		{"get", "GET", "/api/searchByClassification?genus=Acacia&specificEpithet=dealbata", "", 200, true},
		{"post", "POST", "/api/searchByClassification", `{"scientificName":"Acacia dealbata"}`, 200, true},
		{"homonym", "POST", "/api/searchByClassification", `{"scientificName":"Macropus"}`, 200, false},
		{"lookup error", "POST", "/api/searchByClassification", `{"scientificName":"boom"}`, 200, false},
		{"bad json", "POST", "/api/searchByClassification", `{"scientificName":`, 400, false},
		{"empty", "GET", "/api/searchByClassification", "", 400, false},
	}

	for _, v := range tests {
		code, body := request(t, v.method, v.target, v.body)
		assert.Equal(t, v.code, code, v.msg)
		if code != http.StatusOK {
			continue
		}
		var res match.Result
		require.NoError(t, gnfmt.GNjson{}.Decode([]byte(body), &res), v.msg)
		assert.Equal(t, v.success, res.Success, v.msg)
		assert.True(t, res.Valid(), v.msg)
	}

	_, body := request(t, "POST", "/api/searchByClassification", `{"scientificName":"boom"}`)
	assert.JSONEq(t, `{"success":false,"issues":["noMatch"]}`, body)
}

func TestSearchAllByClassification(t *testing.T) {
	body := `[{"scientificName":"Acacia dealbata"}, null, {"scientificName":"Macropus"}, null]`
	code, res := request(t, "POST", "/api/searchAllByClassification", body)
	require.Equal(t, http.StatusOK, code)

	var rs []*match.Result
	require.NoError(t, gnfmt.GNjson{}.Decode([]byte(res), &rs))
	require.Len(t, rs, 4)
	assert.True(t, rs[0].Success)
	assert.Nil(t, rs[1])
	assert.True(t, rs[2].HasIssue(match.IssueHomonym))
	assert.Nil(t, rs[3])

	code, _ = request(t, "POST", "/api/searchAllByClassification", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestVernacular(t *testing.T) {
	code, body := request(t, "GET", "/api/searchByVernacularName?vernacularName=Silver+Wattle", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"success":true`)

	code, _ = request(t, "GET", "/api/searchByVernacularName", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTaxonID(t *testing.T) {
	tests := []struct {
		msg, target string
		code        int
		success     bool
	}{
		{"accepted", "/api/getByTaxonID?taxonID=" + apniID, 200, true},
		{"synonym", "/api/getByTaxonID?taxonID=synonym", 200, false},
		{"synonym followed", "/api/getByTaxonID?taxonID=synonym&follow=true", 200, true},
		{"bad follow", "/api/getByTaxonID?taxonID=synonym&follow=maybe", 400, false},
		{"no id", "/api/getByTaxonID", 400, false},
	}

	for _, v := range tests {
		code, body := request(t, "GET", v.target, "")
		assert.Equal(t, v.code, code, v.msg)
		if code == http.StatusOK {
			assert.Contains(t, body, fmt.Sprintf(`"success":%t`, v.success), v.msg)
		}
	}
}

func TestGetAllByTaxonID(t *testing.T) {
	body := `["synonym", null, "unknown"]`
	code, res := request(t, "POST", "/api/getAllByTaxonID?follow=true", body)
	require.Equal(t, http.StatusOK, code)

	var rs []*match.Result
	require.NoError(t, gnfmt.GNjson{}.Decode([]byte(res), &rs))
	require.Len(t, rs, 3)
	assert.True(t, rs[0].Success)
	assert.Nil(t, rs[1])
	assert.True(t, rs[2].IsFail())
}

func TestVersion(t *testing.T) {
	code, body := request(t, "GET", "/api/version", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"version"`)

	code, body = request(t, "GET", "/api/ping", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong\n", body)
}

func TestRun(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	srv := ioweb.New(stub{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, port) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/ping", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunPortBusy(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	srv := ioweb.New(stub{}, 1)
	err = srv.Run(context.Background(), port)
	assert.Error(t, err)
}
