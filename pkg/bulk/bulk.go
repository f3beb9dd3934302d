// Package bulk aligns a batch of optional keys with their optional results.
//
// A nil key produces a nil result and is never looked up. A non-nil key is
// resolved by a single-item lookup function; when the lookup returns an
// error or panics, the result is the failure value supplied to the
// Coordinator. The output always has the length and order of the input,
// duplicates are looked up as many times as they appear.
package bulk

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// LookupFunc resolves one key.
type LookupFunc[K, V any] func(ctx context.Context, key K) (V, error)

// Item pairs an input key with a value slot. The slot is set exactly once
// by the Coordinator.
type Item[K, V any] struct {
	Key   *K
	value *V
	set   bool
}

// IsSet reports if the item was resolved.
func (it *Item[K, V]) IsSet() bool {
	return it.set
}

// Value returns the resolved value, nil for unset items and for items
// with a nil key.
func (it *Item[K, V]) Value() *V {
	return it.value
}

func (it *Item[K, V]) resolve(v *V) {
	if it.set {
		return
	}
	it.value = v
	it.set = true
}

// Coordinator resolves batches of keys.
type Coordinator[K, V any] struct {
	fail     func() V
	jobs     int
	progress func()
}

// New creates a Coordinator. The fail function creates the value used for
// keys whose lookup failed.
func New[K, V any](fail func() V, opts ...Option) *Coordinator[K, V] {
	var s settings
	s.jobs = 1
	for _, opt := range opts {
		opt(&s)
	}
	return &Coordinator[K, V]{
		fail:     fail,
		jobs:     s.jobs,
		progress: s.progress,
	}
}

// Items wraps keys into unresolved items.
func Items[K, V any](keys []*K) []*Item[K, V] {
	res := make([]*Item[K, V], len(keys))
	for i := range keys {
		res[i] = &Item[K, V]{Key: keys[i]}
	}
	return res
}

// Resolve sets the value of every unset item. Items with nil keys get a
// nil value without a lookup. The method returns when all items are set.
func (c *Coordinator[K, V]) Resolve(
	ctx context.Context,
	items []*Item[K, V],
	lookup LookupFunc[K, V],
) {
	var g errgroup.Group
	g.SetLimit(c.jobs)

	for i := range items {
		it := items[i]
		if it.set {
			continue
		}
		if it.Key == nil {
			it.resolve(nil)
			continue
		}
		g.Go(func() error {
			v := c.lookupOne(ctx, i, *it.Key, lookup)
			it.resolve(&v)
			if c.progress != nil {
				c.progress()
			}
			return nil
		})
	}

	// goroutines never return errors, failures are already turned into
	// fail values.
	_ = g.Wait()
}

// Align resolves keys and returns results in the same positions.
// len(result) == len(keys), keys[i] == nil <=> result[i] == nil.
func (c *Coordinator[K, V]) Align(
	ctx context.Context,
	keys []*K,
	lookup LookupFunc[K, V],
) []*V {
	items := Items[K, V](keys)
	c.Resolve(ctx, items, lookup)

	res := make([]*V, len(items))
	for i := range items {
		res[i] = items[i].Value()
	}
	return res
}

func (c *Coordinator[K, V]) lookupOne(
	ctx context.Context,
	idx int,
	key K,
	lookup LookupFunc[K, V],
) (res V) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Bulk lookup panicked", "index", idx, "panic", fmt.Sprint(r))
			res = c.fail()
		}
	}()

	if err := ctx.Err(); err != nil {
		slog.Warn("Bulk lookup cancelled", "index", idx, "error", err)
		return c.fail()
	}

	v, err := lookup(ctx, key)
	if err != nil {
		slog.Warn("Bulk lookup failed", "index", idx, "error", err)
		return c.fail()
	}
	return v
}
