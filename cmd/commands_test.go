package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/ioweb"
	"github.com/gnames/gnmatch/pkg/errcode"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acaciaID = "https://id.biodiversity.org.au/taxon/apni/51286863"

type stub struct {
	mu    sync.Mutex
	query match.NameQuery
}

func (s *stub) Match(_ context.Context, q match.NameQuery) (match.Result, error) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
	if q.ScientificName == "Acacia dealbata" ||
		(q.Genus == "Acacia" && q.SpecificEpithet == "dealbata") {
		return acacia(), nil
	}
	if q.Genus == "Macropus" && q.SpecificEpithet == "" {
		return match.Failure(match.IssueHomonym), nil
	}
	return match.Fail(), nil
}

func (s *stub) MatchVernacular(_ context.Context, name string) (match.Result, error) {
	if name == "Silver Wattle" {
		return acacia(), nil
	}
	return match.Fail(), nil
}

func (s *stub) MatchByTaxonID(_ context.Context, id string, follow bool) (match.Result, error) {
	if id == acaciaID {
		return acacia(), nil
	}
	return match.Fail(), nil
}

func acacia() match.Result {
	return match.Result{
		Success:        true,
		ScientificName: "Acacia dealbata",
		TaxonConceptID: acaciaID,
		Rank:           "species",
		Issues:         []string{match.IssueNone},
	}
}

// run executes the command line in a temporary home directory against a
// stub service.
func run(t *testing.T, args ...string) (string, *stub, error) {
	t.Setenv("HOME", t.TempDir())
	lk := &stub{}
	ts := httptest.NewServer(ioweb.New(lk, 1).Handler())
	t.Cleanup(ts.Close)

	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append(args, "--base-url", ts.URL))
	err := cmd.Execute()
	return buf.String(), lk, err
}

func TestMatchCmd(t *testing.T) {
	out, _, err := run(t, "match", "Acacia dealbata")
	require.NoError(t, err)

	var res match.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, acaciaID, res.TaxonConceptID)

	out, lk, err := run(t, "match", "--genus", "Macropus", "--style", "fuzzy")
	require.NoError(t, err)
	assert.Equal(t, match.Fuzzy, lk.query.SearchStyle)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Success)
	assert.Contains(t, res.Issues, match.IssueHomonym)
}

func TestMatchCmdBadStyle(t *testing.T) {
	_, _, err := run(t, "match", "Acacia dealbata", "--style", "loose")
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.SearchStyleError, gnErr.Code)
}

func TestTaxonAndVernacularCmd(t *testing.T) {
	out, _, err := run(t, "taxon", acaciaID, "--follow")
	require.NoError(t, err)
	assert.Contains(t, out, `"scientificName": "Acacia dealbata"`)

	out, _, err = run(t, "vernacular", "Silver Wattle")
	require.NoError(t, err)
	assert.Contains(t, out, acaciaID)
}

func TestBulkCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.yaml")
	data := "- scientificName: Acacia dealbata\n- null\n- genus: Macropus\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	out, _, err := run(t, "bulk", path, "--quiet", "-j", "2")
	require.NoError(t, err)

	var res []*match.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 3)
	assert.True(t, res[0].Success)
	assert.Nil(t, res[1])
	assert.False(t, res[2].Success)

	ids := filepath.Join(t.TempDir(), "ids.json")
	require.NoError(t, os.WriteFile(ids, []byte(`["`+acaciaID+`", null]`), 0644))
	out, _, err = run(t, "bulk", ids, "--ids", "--quiet")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 2)
	assert.True(t, res[0].Success)
	assert.Nil(t, res[1])
}

func TestBulkCmdBadFile(t *testing.T) {
	_, _, err := run(t, "bulk", filepath.Join(t.TempDir(), "none.yaml"), "--quiet")
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}

func TestNormalizeCmd(t *testing.T) {
	out, _, err := run(t, "normalize", "ßomething good α", "Acacia  DÉALBATA")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"ssomething good alpha", "acacia dealbata"}, lines)

	out, _, err = run(t, "normalize", "--lower", "Acacia  DÉALBATA")
	require.NoError(t, err)
	assert.Equal(t, "acacia  déalbata\n", out)
}

func TestServeCmdNoSFGA(t *testing.T) {
	_, _, err := run(t, "serve")
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ServerConfigError, gnErr.Code)
}
