package bulk

type settings struct {
	jobs     int
	progress func()
}

// Option configures a Coordinator.
type Option func(*settings)

// OptJobs sets how many lookups run concurrently. Values below 1 are
// ignored, the default is 1 (sequential).
func OptJobs(i int) Option {
	return func(s *settings) {
		if i > 0 {
			s.jobs = i
		}
	}
}

// OptProgress sets a function called after each non-nil key is resolved.
// It might be called from several goroutines at once.
func OptProgress(fn func()) Option {
	return func(s *settings) {
		s.progress = fn
	}
}
