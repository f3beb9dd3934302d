// Package ioclient assembles a name matching client from configuration:
// the web-service transport, the response cache and bulk settings.
package ioclient

import (
	"log/slog"
	"os"

	"github.com/gnames/gnmatch/internal/iocache"
	"github.com/gnames/gnmatch/internal/iohttp"
	"github.com/gnames/gnmatch/pkg/client"
	"github.com/gnames/gnmatch/pkg/config"
)

// TempPrefix starts names of temporary cache directories.
const TempPrefix = "gnmatch-cache-"

// New creates a client for the web-service at cfg.Client.BaseURL. Without
// cfg.Cache.Dir the cache lives in a temporary directory that is removed
// when the client is closed. Extra options are applied after the ones
// made from cfg.
func New(cfg *config.Config, extra ...client.Option) (client.Client, error) {
	lk, err := iohttp.New(cfg.Client.BaseURL, cfg.Timeout())
	if err != nil {
		return nil, err
	}

	opts := []client.Option{
		client.OptJobs(cfg.JobsNumber),
		client.OptTimeout(cfg.Timeout()),
	}

	if !cfg.CacheEnabled() {
		slog.Info("Response cache is disabled")
		return client.New(lk, append(opts, extra...)...), nil
	}

	dir := cfg.Cache.Dir
	owned := dir == ""
	if owned {
		dir, err = os.MkdirTemp("", TempPrefix)
		if err != nil {
			return nil, ConfigError("cannot create cache directory", err)
		}
	}

	cache, err := iocache.Open(dir, cfg.Cache.MaxBytes)
	if err != nil {
		if owned {
			_ = os.RemoveAll(dir)
		}
		return nil, err
	}
	opts = append(opts, client.OptCache(cache, owned))
	return client.New(lk, append(opts, extra...)...), nil
}
