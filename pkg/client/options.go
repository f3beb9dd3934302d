package client

import (
	"time"

	"github.com/gnames/gnmatch/pkg/normalize"
)

// Option configures a client.
type Option func(*client)

// OptCache sets the response cache. An owned cache is removed on Close,
// a shared one is only closed.
func OptCache(c Cache, owned bool) Option {
	return func(cl *client) {
		cl.cache = c
		cl.ownsCache = owned
	}
}

// OptNormalizer sets the normalizer applied to outgoing requests.
func OptNormalizer(n *normalize.Normalizer) Option {
	return func(cl *client) {
		if n != nil {
			cl.reqNorm = n
		}
	}
}

// OptJobs sets the number of concurrent lookups for bulk methods.
func OptJobs(i int) Option {
	return func(cl *client) {
		if i > 0 {
			cl.jobs = i
		}
	}
}

// OptTimeout limits the time of one lookup. Zero means no limit.
func OptTimeout(d time.Duration) Option {
	return func(cl *client) {
		if d >= 0 {
			cl.timeout = d
		}
	}
}

// OptProgress sets a function called after every resolved item of bulk
// methods.
func OptProgress(fn func()) Option {
	return func(cl *client) {
		cl.progress = fn
	}
}
