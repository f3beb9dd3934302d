package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gnames/gnmatch/pkg/bulk"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/gnames/gnmatch/pkg/normalize"
	"github.com/google/uuid"
)

type client struct {
	lk        match.Lookup
	cache     Cache
	ownsCache bool
	// reqNorm prepares requests before they are sent.
	reqNorm *normalize.Normalizer
	// sigNorm makes signatures of requests.
	sigNorm  *normalize.Normalizer
	jobs     int
	timeout  time.Duration
	progress func()

	queries *bulk.Coordinator[match.NameQuery, match.Result]
	ids     *bulk.Coordinator[string, match.Result]

	closeOnce sync.Once
	closed    atomic.Bool
}

// New creates a client on top of a lookup. Without OptCache every request
// goes to the lookup.
func New(lk match.Lookup, opts ...Option) Client {
	res := &client{
		lk: lk,
		reqNorm: normalize.New(
			normalize.OptCollapseSpaces(true),
			normalize.OptPunctuation(true),
		),
		sigNorm: normalize.All(),
		jobs:    1,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(res)
	}

	bulkOpts := []bulk.Option{bulk.OptJobs(res.jobs)}
	if res.progress != nil {
		bulkOpts = append(bulkOpts, bulk.OptProgress(res.progress))
	}
	res.queries = bulk.New[match.NameQuery](match.Fail, bulkOpts...)
	res.ids = bulk.New[string](match.Fail, bulkOpts...)
	return res
}

func (c *client) Match(ctx context.Context, q match.NameQuery) match.Result {
	q = q.Normalize(c.reqNorm)
	sig := match.NewSignature(match.ScopeMatch, q, c.sigNorm)
	return c.resolve(ctx, sig, func(ctx context.Context) (match.Result, error) {
		return c.lk.Match(ctx, q)
	})
}

func (c *client) MatchAll(ctx context.Context, qs []*match.NameQuery) []*match.Result {
	return c.queries.Align(ctx, qs,
		func(ctx context.Context, q match.NameQuery) (match.Result, error) {
			return c.Match(ctx, q), nil
		},
	)
}

func (c *client) MatchByClassification(
	ctx context.Context,
	cl match.Classification,
	style match.SearchStyle,
) match.Result {
	return c.Match(ctx, cl.Query(style))
}

func (c *client) MatchVernacular(ctx context.Context, name string) match.Result {
	name = c.reqNorm.Normalize(name)
	q := match.NameQuery{VernacularName: name}
	sig := match.NewSignature(match.ScopeVernacular, q, c.sigNorm)
	return c.resolve(ctx, sig, func(ctx context.Context) (match.Result, error) {
		return c.lk.MatchVernacular(ctx, name)
	})
}

func (c *client) GetByTaxonID(ctx context.Context, id string, follow bool) match.Result {
	id = strings.TrimSpace(id)
	scope := match.ScopeTaxon
	if follow {
		scope = match.ScopeTaxonFollow
	}
	sig := match.NewSignature(scope, match.NameQuery{TaxonID: id}, c.sigNorm)
	return c.resolve(ctx, sig, func(ctx context.Context) (match.Result, error) {
		return c.lk.MatchByTaxonID(ctx, id, follow)
	})
}

func (c *client) GetAllByTaxonID(
	ctx context.Context,
	ids []*string,
	follow bool,
) []*match.Result {
	return c.ids.Align(ctx, ids,
		func(ctx context.Context, id string) (match.Result, error) {
			return c.GetByTaxonID(ctx, id, follow), nil
		},
	)
}

func (c *client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.cache == nil {
			return
		}
		if c.ownsCache {
			err = c.cache.Clear()
			return
		}
		err = c.cache.Close()
	})
	return err
}

// resolve serves a request from the cache or from the lookup. Results of
// successful lookups are cached, lookup errors give match.Fail() and are
// not cached.
func (c *client) resolve(
	ctx context.Context,
	sig uuid.UUID,
	lookup func(context.Context) (match.Result, error),
) match.Result {
	useCache := c.cache != nil && !c.closed.Load()
	if useCache {
		if res, ok := c.cache.Get(sig); ok {
			return res
		}
	}

	res, err := c.call(ctx, lookup)
	if err != nil {
		slog.Warn("Lookup failed", "signature", sig, "error", err)
		return match.Fail()
	}
	res = res.Sanitize()

	if useCache && !c.closed.Load() {
		if err = c.cache.Put(sig, res); err != nil {
			slog.Warn("Cannot cache result", "signature", sig, "error", err)
		}
	}
	return res
}

func (c *client) call(
	ctx context.Context,
	lookup func(context.Context) (match.Result, error),
) (res match.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lookup panicked: %v", r)
		}
	}()

	if err = ctx.Err(); err != nil {
		return match.Fail(), err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, err = lookup(ctx)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return res, err
}
