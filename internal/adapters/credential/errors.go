package credential

import "errors"

// Sentinel kinds for session token errors.
var (
	// ErrAuthRejected is fatal to a sync run: the platform refused the login.
	ErrAuthRejected = errors.New("fantasy login rejected")
	// ErrNoToken is returned by a TokenCache that holds nothing yet.
	ErrNoToken = errors.New("no cached token")
	ErrCache   = errors.New("token cache failure")
)
