package service

import (
	"github.com/okian/pitwall/internal/adapters/progress"
	"github.com/okian/pitwall/internal/adapters/repository"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLeagues registers leagues under their keys.
func WithLeagues(leagues ...model.League) Option {
	return func(s *Service) {
		for _, l := range leagues {
			s.leagues[l.Key] = l
		}
	}
}

// WithLookup sets the driver and team name table.
func WithLookup(lookup model.Lookup) Option {
	return func(s *Service) {
		if lookup != nil {
			s.lookup = lookup
		}
	}
}

// WithCredentials sets the fantasy login.
func WithCredentials(creds model.Credentials) Option {
	return func(s *Service) {
		s.creds = creds
	}
}

// WithSession sets the session token source.
func WithSession(ts TokenSource) Option {
	return func(s *Service) {
		if ts != nil {
			s.session = ts
		}
	}
}

// WithFetcher sets the league crawler.
func WithFetcher(f LeagueFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithStore sets the snapshot store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithBoard sets the progress board read by Status.
func WithBoard(b *progress.Board) Option {
	return func(s *Service) {
		if b != nil {
			s.board = b
		}
	}
}
