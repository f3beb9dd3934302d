// Package config provides configuration management for gnmatch.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Client: base_url, timeout_ms
//   - Cache: enabled, dir, size
//   - Server: port, sfga
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNMATCH_ prefix with underscores for nesting:
//
//	GNMATCH_CLIENT_BASE_URL=https://namematching-ws.ala.org.au
//	GNMATCH_CLIENT_TIMEOUT_MS=30000
//	GNMATCH_CACHE_ENABLED=true
//	GNMATCH_CACHE_SIZE="50 MiB"
//	GNMATCH_LOG_LEVEL=info
//	GNMATCH_JOBS_NUMBER=8
package config

import (
	"runtime"
	"time"
)

// Config represents the complete gnmatch configuration.
type Config struct {
	// Client contains settings of the name matching web-service client.
	Client ClientConfig `mapstructure:"client" yaml:"client"`

	// Cache contains settings of the on-disk response cache.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Server contains settings for the 'serve' command.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent lookups for bulk requests.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ClientConfig contains connection settings of the name matching service.
type ClientConfig struct {
	// BaseURL is the root URL of the name matching web-service.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutMs is the timeout of one lookup in milliseconds.
	TimeoutMs int `mapstructure:"timeout_ms" yaml:"timeout_ms"`
}

// CacheConfig contains settings of the client response cache.
type CacheConfig struct {
	// Enabled turns the response cache on or off.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`

	// Dir is the cache location. When empty, a fresh temporary directory
	// is created for every client and removed when the client is closed.
	// A directory given here is kept between runs.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Size is the maximal total size of cached entries, for example
	// "50 MiB" or "200MB".
	Size string `mapstructure:"size" yaml:"size"`

	// MaxBytes is Size converted to bytes.
	MaxBytes uint64 `mapstructure:"-" yaml:"-"`
}

// ServerConfig contains settings of the local name matching server.
type ServerConfig struct {
	// Port the server listens to.
	Port int `mapstructure:"port" yaml:"port"`

	// SFGA is a path or URL to an SFGA archive used as the local index.
	SFGA string `mapstructure:"sfga" yaml:"sfga"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	enabled := true
	res := &Config{
		Client: ClientConfig{
			BaseURL:   "https://namematching-ws.ala.org.au",
			TimeoutMs: 30_000,
		},
		Cache: CacheConfig{
			Enabled:  &enabled,
			Size:     "50 MiB",
			MaxBytes: 50 * 1024 * 1024,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}

// Timeout returns the client timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Client.TimeoutMs) * time.Millisecond
}

// CacheEnabled reports if the response cache should be used.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}
