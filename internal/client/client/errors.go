package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnavailable wraps transport failures other than timeouts
	// (connection refused, DNS, TLS).
	ErrUnavailable = errors.New("server unavailable")
	// ErrNotLoggedIn is returned by authenticated calls made while no
	// bearer token is installed. No request is sent in that case.
	ErrNotLoggedIn = errors.New("not logged in")
)

// ServerError is a non-2xx response. Body is the raw response text, which
// the API uses for diagnostics.
//
//	var se *client.ServerError
//	if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized { ... }
type ServerError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s error (%d): %s", e.Op, e.StatusCode, e.Body)
}

// ProtocolError is a 2xx response whose body lacks an expected field or
// cannot be decoded.
type ProtocolError struct {
	Op     string
	Field  string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	msg := e.Op + ": invalid response"
	if e.Field != "" {
		msg += fmt.Sprintf(": %s %s", e.Field, e.Reason)
	} else if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TimeoutError means no complete response arrived in time. Timeout is the
// per-request ceiling, or the shorter time left on the caller's deadline.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no response within %s", e.Op, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 ServerError, i.e. the
// installed token was rejected.
func IsUnauthorized(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}
