package bulk_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnames/gnmatch/pkg/bulk"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func upper(_ context.Context, s string) (string, error) {
	return strings.ToUpper(s), nil
}

func failStr() string {
	return "FAIL"
}

func TestAlignOrder(t *testing.T) {
	c := bulk.New[string, string](failStr)
	res := c.Align(context.Background(), []*string{ptr("a"), nil, ptr("b")}, upper)

	require.Len(t, res, 3)
	require.NotNil(t, res[0])
	assert.Equal(t, "A", *res[0])
	assert.Nil(t, res[1])
	require.NotNil(t, res[2])
	assert.Equal(t, "B", *res[2])
}

func TestAlignNullPatterns(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))

	for _, jobs := range []int{1, 4, 16} {
		for n := range 40 {
			keys := make([]*string, n)
			var nonNil int
			for i := range keys {
				if rnd.IntN(3) == 0 {
					continue
				}
				keys[i] = ptr(string(rune('a' + i%26)))
				nonNil++
			}

			var calls atomic.Int64
			lookup := func(ctx context.Context, s string) (string, error) {
				calls.Add(1)
				time.Sleep(time.Duration(rand.IntN(50)) * time.Microsecond)
				return upper(ctx, s)
			}

			c := bulk.New[string, string](failStr, bulk.OptJobs(jobs))
			res := c.Align(context.Background(), keys, lookup)

			require.Len(t, res, n)
			assert.Equal(t, int64(nonNil), calls.Load())
			for i := range keys {
				if keys[i] == nil {
					assert.Nil(t, res[i])
					continue
				}
				require.NotNil(t, res[i])
				assert.Equal(t, strings.ToUpper(*keys[i]), *res[i])
			}
		}
	}
}

func TestAlignEmpty(t *testing.T) {
	c := bulk.New[string, string](failStr)
	assert.Empty(t, c.Align(context.Background(), nil, upper))

	res := c.Align(context.Background(), []*string{nil, nil}, upper)
	assert.Equal(t, []*string{nil, nil}, res)
}

func TestAlignDuplicates(t *testing.T) {
	var calls atomic.Int64
	lookup := func(ctx context.Context, s string) (string, error) {
		calls.Add(1)
		return upper(ctx, s)
	}
	c := bulk.New[string, string](failStr, bulk.OptJobs(2))
	res := c.Align(context.Background(), []*string{ptr("a"), ptr("a"), ptr("a")}, lookup)
	assert.Len(t, res, 3)
	assert.Equal(t, int64(3), calls.Load())
}

func TestAlignFailures(t *testing.T) {
	lookup := func(_ context.Context, s string) (string, error) {
		switch s {
		case "err":
			return "", errors.New("boom")
		case "panic":
			panic("lookup panicked")
		}
		return strings.ToUpper(s), nil
	}

	c := bulk.New[string, string](failStr, bulk.OptJobs(3))
	keys := []*string{ptr("a"), ptr("err"), nil, ptr("panic"), ptr("b")}
	res := c.Align(context.Background(), keys, lookup)

	require.Len(t, res, 5)
	assert.Equal(t, "A", *res[0])
	assert.Equal(t, "FAIL", *res[1])
	assert.Nil(t, res[2])
	assert.Equal(t, "FAIL", *res[3])
	assert.Equal(t, "B", *res[4])
}

func TestAlignCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	lookup := func(ctx context.Context, s string) (string, error) {
		calls.Add(1)
		return upper(ctx, s)
	}
	c := bulk.New[string, string](failStr)
	res := c.Align(ctx, []*string{ptr("a"), nil}, lookup)

	require.Len(t, res, 2)
	assert.Equal(t, "FAIL", *res[0])
	assert.Nil(t, res[1])
	assert.Equal(t, int64(0), calls.Load())
}

func TestAlignMatchResults(t *testing.T) {
	ra := match.Result{Success: true, ScientificName: "Acacia dealbata"}
	rb := match.Result{Success: true, ScientificName: "Macropus giganteus"}
	lookup := func(_ context.Context, q match.NameQuery) (match.Result, error) {
		if q.ScientificName == "A" {
			return ra, nil
		}
		return rb, nil
	}

	c := bulk.New[match.NameQuery, match.Result](match.Fail, bulk.OptJobs(2))
	keys := []*match.NameQuery{
		{ScientificName: "A"}, nil, {ScientificName: "B"},
	}
	res := c.Align(context.Background(), keys, lookup)

	assert.Equal(t, []*match.Result{&ra, nil, &rb}, res)
}

func TestItems(t *testing.T) {
	keys := []*string{ptr("a"), nil}
	items := bulk.Items[string, string](keys)
	require.Len(t, items, 2)
	assert.False(t, items[0].IsSet())
	assert.False(t, items[1].IsSet())

	var progress atomic.Int64
	c := bulk.New[string, string](failStr, bulk.OptProgress(func() {
		progress.Add(1)
	}))
	c.Resolve(context.Background(), items, upper)

	assert.True(t, items[0].IsSet())
	assert.Equal(t, "A", *items[0].Value())
	assert.True(t, items[1].IsSet())
	assert.Nil(t, items[1].Value())
	assert.Equal(t, int64(1), progress.Load())

	// resolved items are never changed again
	c.Resolve(context.Background(), items, func(context.Context, string) (string, error) {
		return "other", nil
	})
	assert.Equal(t, "A", *items[0].Value())
}
