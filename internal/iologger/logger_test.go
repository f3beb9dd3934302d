package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnmatch/internal/iologger"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	def := slog.Default()
	defer slog.SetDefault(def)

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "file"}
	closer, err := iologger.Init(dir, cfg)
	require.NoError(t, err)

	slog.Info("hidden")
	slog.Warn("shown", "name", "Acacia dealbata")
	require.NoError(t, closer.Close())

	bs, err := os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(bs), "hidden")
	assert.Contains(t, string(bs), `"msg":"shown"`)
	assert.Contains(t, string(bs), `"name":"Acacia dealbata"`)
}

func TestInitError(t *testing.T) {
	def := slog.Default()
	defer slog.SetDefault(def)

	cfg := config.LogConfig{Destination: "file"}
	_, err := iologger.Init(filepath.Join(t.TempDir(), "missing"), cfg)
	assert.Error(t, err)
}
