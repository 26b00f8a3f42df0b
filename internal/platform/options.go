package platform

import (
	"log/slog"
	"time"
)

// options holds the internal configuration used when opening a journal.
type options struct {
	logger *slog.Logger
	now    func() time.Time
	seed   bool
}

// Option defines a functional option for Open.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger: nil,
		now:    time.Now,
		seed:   true,
	}
}

// WithLogger sets the logger handed to the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time stamped on new entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithAutoSeed controls whether the configured seed file is loaded into an
// empty database on open. Enabled by default.
func WithAutoSeed(enabled bool) Option {
	return func(o *options) {
		o.seed = enabled
	}
}
