package repository

import (
	"os"

	"github.com/okian/pitwall/pkg/logger"
)

// Option applies a configuration option to the JSONStore.
type Option func(*JSONStore)

// WithFileMode sets the permission bits of written snapshots.
func WithFileMode(mode os.FileMode) Option {
	return func(s *JSONStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *JSONStore) {
		if l != nil {
			s.logger = l
		}
	}
}
