package ioclient_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/ioclient"
	"github.com/gnames/gnmatch/internal/ioweb"
	"github.com/gnames/gnmatch/pkg/client"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/errcode"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	calls atomic.Int32
}

func (c *counter) Match(_ context.Context, q match.NameQuery) (match.Result, error) {
	c.calls.Add(1)
	if q.ScientificName == "Acacia dealbata" {
		return match.Result{
			Success:        true,
			ScientificName: "Acacia dealbata",
			Rank:           "species",
			Issues:         []string{match.IssueNone},
		}, nil
	}
	return match.Fail(), nil
}

func (c *counter) MatchVernacular(context.Context, string) (match.Result, error) {
	c.calls.Add(1)
	return match.Fail(), nil
}

func (c *counter) MatchByTaxonID(context.Context, string, bool) (match.Result, error) {
	c.calls.Add(1)
	return match.Fail(), nil
}

func setup(t *testing.T, opts ...config.Option) (*config.Config, *counter) {
	lk := &counter{}
	ts := httptest.NewServer(ioweb.New(lk, 1).Handler())
	t.Cleanup(ts.Close)

	cfg := config.New()
	cfg.Update(append([]config.Option{config.OptClientBaseURL(ts.URL)}, opts...))
	return cfg, lk
}

func tempCaches(t *testing.T) []string {
	res, err := filepath.Glob(filepath.Join(os.TempDir(), ioclient.TempPrefix+"*"))
	require.NoError(t, err)
	return res
}

func TestTempCache(t *testing.T) {
	cfg, lk := setup(t)
	before := len(tempCaches(t))

	cl, err := ioclient.New(cfg)
	require.NoError(t, err)
	assert.Len(t, tempCaches(t), before+1)

	q := match.NameQuery{ScientificName: "Acacia dealbata"}
	for range 3 {
		res := cl.Match(context.Background(), q)
		assert.True(t, res.Success)
	}
	assert.Equal(t, int32(1), lk.calls.Load())

	require.NoError(t, cl.Close())
	assert.Len(t, tempCaches(t), before)
}

func TestUserCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cfg, lk := setup(t, config.OptCacheDir(dir))

	cl, err := ioclient.New(cfg)
	require.NoError(t, err)
	q := match.NameQuery{ScientificName: "Acacia dealbata"}
	cl.Match(context.Background(), q)
	require.NoError(t, cl.Close())

	_, err = os.Stat(dir)
	assert.NoError(t, err)

	// the second client reuses stored answers
	cl, err = ioclient.New(cfg)
	require.NoError(t, err)
	defer cl.Close()
	cl.Match(context.Background(), q)
	assert.Equal(t, int32(1), lk.calls.Load())
}

func TestNoCache(t *testing.T) {
	off := false
	cfg, lk := setup(t, config.OptCacheEnabled(&off))

	var progress atomic.Int32
	cl, err := ioclient.New(cfg, client.OptProgress(func() { progress.Add(1) }))
	require.NoError(t, err)
	defer cl.Close()

	q := &match.NameQuery{ScientificName: "Acacia dealbata"}
	res := cl.MatchAll(context.Background(), []*match.NameQuery{q, q})
	require.Len(t, res, 2)
	assert.Equal(t, int32(2), lk.calls.Load())
	assert.Equal(t, int32(2), progress.Load())
}

func TestNewErrors(t *testing.T) {
	cfg := config.New()
	cfg.Client.BaseURL = "ftp://example.org"
	_, err := ioclient.New(cfg)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ClientBaseURLError, gnErr.Code)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	cfg = config.New()
	cfg.Cache.Dir = filepath.Join(file, "cache")
	_, err = ioclient.New(cfg)
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CacheOpenError, gnErr.Code)
}
