package worker

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/pitwall/pkg/logger"
)

// Option applies a configuration option to the Sequential worker.
type Option func(*Sequential)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Sequential) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Sequential) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDelay sets the pause between the end of one job and the start of the
// next. Zero or negative disables pacing.
func WithDelay(d time.Duration) Option {
	return func(w *Sequential) {
		if d <= 0 {
			w.every = rate.Inf
			return
		}
		w.every = rate.Every(d)
	}
}
