package fantasy

import (
	"errors"
	"fmt"
)

// Sentinel kinds for remote API errors.
var (
	ErrUnexpectedStatus  = errors.New("unexpected status from fantasy api")
	ErrMalformedResponse = errors.New("malformed fantasy api response")
	ErrNoHistoricalPicks = errors.New("entrant has no historical picks")
)

// StatusError is returned when the remote API answers with a status other
// than 200 or 304.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Op, e.Code)
}

// Unwrap lets callers match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
