package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey  = errors.New("upstream api key is not configured")
	ErrMissingSecret  = errors.New("upstream api secret is not configured")
	ErrMissingBaseURL = errors.New("upstream base url is not configured")
)

// UpstreamError is returned when the upstream answered with a non-2xx status.
// Body holds the response bytes exactly as received.
type UpstreamError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// TransportError is returned when no response reached the gateway at all:
// DNS, connection refused, timeout, or an unreadable body.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsUpstreamError is a shorthand for errors.As with *UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// IsTransportError reports whether err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	var trErr *TransportError
	return errors.As(err, &trErr)
}
