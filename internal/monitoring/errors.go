package monitoring

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUpdateFailed is returned by Refresh when a cycle fails fatally and no
// cached snapshot exists to fall back to.
var ErrUpdateFailed = errors.New("refresh failed and no cached snapshot is available")

// MalformedInputError indicates a caller bug: invalid station, indicator list
// or date range. It is never retried and propagates immediately.
type MalformedInputError struct {
	Field  string
	Detail string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: %s", e.Field, e.Detail)
}

// StatusError indicates a non-200 response from the upstream API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// TransportError indicates a network-level failure (connection refused, reset,
// circuit open).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "upstream transport failure: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError indicates the request exceeded the configured timeout.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return "upstream request timed out: " + e.Err.Error() }
func (e *TimeoutError) Unwrap() error { return e.Err }

// DecodeError indicates the response body could not be decoded even after
// charset fallback.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode upstream response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// retryable reports whether an error is transient and worth another attempt.
func retryable(err error) bool {
	var malformed *MalformedInputError
	return err != nil && !errors.As(err, &malformed)
}
