package iocache

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(name string) match.Result {
	return match.Result{
		Success:        true,
		ScientificName: name,
		Rank:           "species",
		Issues:         []string{match.IssueNone},
	}
}

// TestFailedWriteKeepsIndex checks that a failed badger write leaves the
// index describing exactly what is stored.
func TestFailedWriteKeepsIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := Open(dir, 1<<20)
	require.NoError(t, err)
	require.NoError(t, c.Put(gnuuid.New("q0"), result("Acacia dealbata")))
	one := c.Size()
	require.NoError(t, c.Clear())

	// room for three entries
	c, err = Open(dir, 3*one+one/2)
	require.NoError(t, err)
	defer c.Clear()

	for i := range 3 {
		sig := gnuuid.New(fmt.Sprintf("q%d", i))
		require.NoError(t, c.Put(sig, result("Acacia dealbata")))
	}
	require.Equal(t, 3, c.Len())
	size := c.Size()

	c.update = func(func(txn *badger.Txn) error) error {
		return errors.New("disk is full")
	}

	tests := []struct {
		msg string
		sig string
	}{
		{"new entry with eviction", "q3"},
		{"replacement", "q1"},
	}
	for _, v := range tests {
		err = c.Put(gnuuid.New(v.sig), result("Acacia dealbata"))
		assert.Error(t, err, v.msg)
		assert.Equal(t, 3, c.Len(), v.msg)
		assert.Equal(t, size, c.Size(), v.msg)
		for i := range 3 {
			sig := gnuuid.New(fmt.Sprintf("q%d", i))
			_, ok := c.index[string(sig[:])]
			assert.True(t, ok, v.msg)
		}
	}

	// after recovery eviction still sees the oldest entry
	c.update = c.db.Update
	require.NoError(t, c.Put(gnuuid.New("q3"), result("Acacia dealbata")))
	assert.Equal(t, 3, c.Len())
	_, ok := c.Get(gnuuid.New("q0"))
	assert.False(t, ok)
	_, ok = c.Get(gnuuid.New("q3"))
	assert.True(t, ok)
}
