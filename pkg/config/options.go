package config

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptClientBaseURL sets the root URL of the name matching service.
// Only absolute http(s) URLs are accepted, a trailing slash is removed.
func OptClientBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	return func(c *Config) {
		if isValidURL("Client Base URL", s) {
			c.Client.BaseURL = s
		}
	}
}

// OptClientTimeoutMs sets the timeout of one lookup in milliseconds.
func OptClientTimeoutMs(i int) Option {
	return func(c *Config) {
		if isValidInt("Client Timeout", i) {
			c.Client.TimeoutMs = i
		}
	}
}

// OptCacheEnabled turns the response cache on or off.
// Uses pointer to distinguish between unset (nil) and false.
func OptCacheEnabled(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Cache.Enabled = b
		}
	}
}

// OptCacheDir sets a persistent cache directory. Empty string means
// a temporary directory that is removed on close.
func OptCacheDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Cache Directory", s) {
			c.Cache.Dir = s
		}
	}
}

// OptCacheSize sets the maximal size of the cache, like "50 MiB".
func OptCacheSize(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if !isValidString("Cache Size", s) {
			return
		}
		bs, err := humanize.ParseBytes(s)
		if err != nil || bs == 0 {
			gn.Warn("<em>Cache Size</em> cannot parse '%s', ignoring", s)
			return
		}
		c.Cache.Size = s
		c.Cache.MaxBytes = bs
	}
}

// OptServerPort sets the port of the local name matching server.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerSFGA sets the path or URL to SFGA archive for the local index.
func OptServerSFGA(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server SFGA", s) {
			c.Server.SFGA = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent lookups in bulk requests.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
