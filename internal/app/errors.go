package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNotStarted is returned by background operations before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrNotConfigured means a run was attempted without session, fetcher or store.
	ErrNotConfigured = errors.New("service pipeline not configured")
)
