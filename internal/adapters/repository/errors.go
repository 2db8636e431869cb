package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound   = errors.New("snapshot not found")
	ErrInvalidTag = errors.New("invalid league tag")
	ErrWrite      = errors.New("snapshot write failed")
)
