package fetcher

import (
	"context"
	"time"

	"github.com/okian/pitwall/pkg/logger"
)

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithEntrantDelay sets the pause between one entrant finishing and the next starting.
func WithEntrantDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.entrantDelay = d
		}
	}
}

// WithRetryDelay sets the pause before each retry sweep.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.retryDelay = d
		}
	}
}

// WithMaxRetries bounds the number of retry sweeps. Zero retries until every
// entrant succeeds.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRetries = n
		}
	}
}

// WithQueueCapacity bounds the entrants queued per run. By default the queue
// is sized to the roster; a roster larger than the bound fails with ErrEnqueue.
func WithQueueCapacity(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.queueCap = n
		}
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithSleep replaces the wait used between retry sweeps.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}
