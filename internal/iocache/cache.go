// Package iocache keeps match results on disk, keyed by request
// signatures. The total size of stored entries is bounded, the oldest
// entries are evicted first when a new entry does not fit.
package iocache

import (
	"cmp"
	"container/list"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/gnames/gnsys"
	"github.com/google/uuid"
)

// entry is the value stored in badger.
type entry struct {
	StoredAt int64
	Result   match.Result
}

// meta describes a stored entry for eviction.
type meta struct {
	key      string
	size     uint64
	storedAt int64
}

// Cache is a size-bounded response cache backed by badger.
type Cache struct {
	dir      string
	maxBytes uint64
	enc      gnfmt.GNgob

	mu sync.Mutex
	db *badger.DB
	// update writes a transaction, it is db.Update outside of tests.
	update func(fn func(txn *badger.Txn) error) error
	total uint64
	// order keeps entries from the oldest to the newest.
	order *list.List
	index map[string]*list.Element
}

// Open creates the directory if needed and opens the cache there. Entries
// left by a previous session are kept and counted against maxBytes.
func Open(dir string, maxBytes uint64) (*Cache, error) {
	err := gnsys.MakeDir(dir)
	if err != nil {
		return nil, OpenError(dir, err)
	}

	options := badger.DefaultOptions(dir)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		return nil, OpenError(dir, err)
	}

	c := &Cache{
		dir:      dir,
		maxBytes: maxBytes,
		db:       db,
		update:   db.Update,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}

	err = c.loadIndex()
	if err != nil {
		_ = db.Close()
		return nil, OpenError(dir, err)
	}

	c.mu.Lock()
	victims := c.victims("", c.total)
	if len(victims) > 0 {
		err = c.update(func(txn *badger.Txn) error {
			return deleteKeys(txn, victims)
		})
		if err != nil {
			slog.Warn("Cannot evict cache entries", "dir", dir, "error", err)
		} else {
			c.untrackAll(victims)
		}
	}
	c.mu.Unlock()

	slog.Info("Response cache opened",
		"dir", dir, "entries", c.order.Len(), "bytes", c.total,
	)
	return c, nil
}

// Dir returns the root directory of the cache.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns a stored result. The boolean is false when there is no
// entry for the signature or when the cache is closed.
func (c *Cache) Get(sig uuid.UUID) (match.Result, bool) {
	var res match.Result
	key := sig[:]

	c.mu.Lock()
	db := c.db
	c.mu.Unlock()
	if db == nil {
		return res, false
	}

	var val []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		slog.Warn("Cannot read cache entry", "signature", sig, "error", err)
		return res, false
	}
	if val == nil {
		return res, false
	}

	var e entry
	err = c.enc.Decode(val, &e)
	if err != nil {
		slog.Warn("Dropping undecodable cache entry",
			"signature", sig, "error", err,
		)
		c.drop(key)
		return res, false
	}
	return e.Result, true
}

// Put stores a result under the signature, replacing an older value.
// Oldest entries are evicted until the total size fits into the bound.
// An entry larger than the whole bound is not stored.
func (c *Cache) Put(sig uuid.UUID, r match.Result) error {
	key := sig[:]
	e := entry{StoredAt: time.Now().UnixNano(), Result: r}
	val, err := c.enc.Encode(e)
	if err != nil {
		return EncodeError(err)
	}
	size := uint64(len(key) + len(val))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return NotOpenError()
	}

	if size > c.maxBytes {
		slog.Warn("Result is too large for the cache",
			"signature", sig, "bytes", size, "max", c.maxBytes,
		)
		return nil
	}

	total := c.total + size
	if el, ok := c.index[string(key)]; ok {
		total -= el.Value.(meta).size
	}
	victims := c.victims(string(key), total)

	// the index changes only after the write succeeds
	err = c.update(func(txn *badger.Txn) error {
		err := txn.Set(key, val)
		if err != nil {
			return err
		}
		return deleteKeys(txn, victims)
	})
	if err != nil {
		return WriteError(err)
	}

	c.track(meta{key: string(key), size: size, storedAt: e.StoredAt})
	c.untrackAll(victims)
	return nil
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Size returns the total size of stored entries in bytes.
func (c *Cache) Size() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Close closes the database and keeps its files. Closing a closed cache
// does nothing.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err != nil {
		slog.Error("Cannot close response cache", "error", err)
		return err
	}
	slog.Info("Response cache closed", "dir", c.dir)
	return nil
}

// Clear closes the database and removes all its files together with the
// root directory. Every file is attempted, the first failure is returned
// after the sweep. Clear on a nil, never opened or already removed cache
// does nothing.
func (c *Cache) Clear() error {
	if c == nil || c.dir == "" {
		return nil
	}
	if err := c.Close(); err != nil {
		slog.Warn("Clearing cache after failed close", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	var firstErr error
	var failed int
	var dirs []string
	record := func(err error) {
		failed++
		if firstErr == nil {
			firstErr = err
		}
	}

	_ = filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			record(err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if err = os.Remove(path); err != nil {
			record(err)
		}
		return nil
	})

	// deepest directories come last in walk order
	for _, dir := range slices.Backward(dirs) {
		err := os.Remove(dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			record(err)
		}
	}

	c.total = 0
	c.order.Init()
	clear(c.index)

	if firstErr != nil {
		slog.Error("Cannot clear response cache",
			"dir", c.dir, "failed", failed, "error", firstErr,
		)
		return ClearError(c.dir, failed, firstErr)
	}
	slog.Info("Response cache removed", "dir", c.dir)
	return nil
}

// loadIndex reads metadata of existing entries.
func (c *Cache) loadIndex() error {
	var metas []meta
	err := c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var e entry
			if err = c.enc.Decode(val, &e); err != nil {
				slog.Warn("Undecodable cache entry goes first to eviction", "error", err)
				e.StoredAt = 0
			}
			metas = append(metas, meta{
				key:      string(key),
				size:     uint64(len(key) + len(val)),
				storedAt: e.StoredAt,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	slices.SortStableFunc(metas, func(a, b meta) int {
		return cmp.Compare(a.storedAt, b.storedAt)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range metas {
		c.track(m)
	}
	return nil
}

// track adds or replaces an entry as the newest one. Caller holds mu.
func (c *Cache) track(m meta) {
	c.untrack(m.key)
	c.index[m.key] = c.order.PushBack(m)
	c.total += m.size
}

// untrack forgets an entry. Caller holds mu.
func (c *Cache) untrack(key string) {
	el, ok := c.index[key]
	if !ok {
		return
	}
	c.total -= el.Value.(meta).size
	c.order.Remove(el)
	delete(c.index, key)
}

// victims returns keys of the oldest entries that have to go for total
// to fit into maxBytes. The entry with the keep key is never chosen. The
// index is not changed. Caller holds mu.
func (c *Cache) victims(keep string, total uint64) [][]byte {
	var res [][]byte
	for el := c.order.Front(); total > c.maxBytes && el != nil; el = el.Next() {
		m := el.Value.(meta)
		if m.key == keep {
			continue
		}
		total -= m.size
		res = append(res, []byte(m.key))
	}
	return res
}

// untrackAll forgets entries. Caller holds mu.
func (c *Cache) untrackAll(keys [][]byte) {
	for _, k := range keys {
		c.untrack(string(k))
	}
}

func (c *Cache) drop(key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return
	}
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		slog.Warn("Cannot delete cache entry", "error", err)
		return
	}
	c.untrack(string(key))
}

func deleteKeys(txn *badger.Txn, keys [][]byte) error {
	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
