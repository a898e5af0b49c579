package books

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned before any request is sent when the query or
// limit cannot be forwarded upstream.
var ErrInvalidParams = errors.New("invalid search parameters")

// TransportError covers every way the upstream round-trip can fail: network
// errors, timeouts, non-2xx statuses and undecodable bodies.
type TransportError struct {
	// StatusCode is the upstream HTTP status, 0 when no response was received.
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("books upstream (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
		}
		return fmt.Sprintf("books upstream (status %d): %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("books upstream: %s: %v", e.Message, e.Err)
	}
	return "books upstream: " + e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
