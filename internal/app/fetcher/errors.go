package fetcher

import "errors"

var (
	// ErrLeagueLookup is fatal to a run: the roster could not be retrieved.
	ErrLeagueLookup = errors.New("league lookup failed")

	// ErrEnqueue means an entrant could not be queued for fetching. The run
	// is aborted rather than persisting an entrant that was never fetched.
	ErrEnqueue = errors.New("entrant queue rejected job")
)
