package model

import "errors"

// Sentinel errors shared by the service and its adapters.
var (
	ErrUnknownLeague      = errors.New("league not registered")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNoSnapshot         = errors.New("league snapshot not found")
	ErrRunInProgress      = errors.New("league update already running")
	ErrMissingCredentials = errors.New("fantasy credentials missing")
)
