package credential

import (
	"time"

	"github.com/okian/pitwall/pkg/logger"
)

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithTTL sets the freshness window of a cached token.
func WithTTL(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock replaces the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
