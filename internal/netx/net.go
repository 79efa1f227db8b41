// Package netx holds small HTTP helpers shared by the API client and the
// development server.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// MaxResponseSize caps how much of a response body is read into memory.
const MaxResponseSize = 8 << 20

// ErrResponseTooLarge is returned by ReadResponse for bodies over
// MaxResponseSize.
var ErrResponseTooLarge = fmt.Errorf("response body exceeds %d bytes", MaxResponseSize)

// ReadResponse reads the whole body, failing if it exceeds MaxResponseSize.
func ReadResponse(body io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(b) > MaxResponseSize {
		return nil, ErrResponseTooLarge
	}
	return b, nil
}

// IsTimeout reports whether err came from a deadline: a context deadline,
// an http.Client timeout or a network-level timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. ok is false for any other scheme or an empty token.
func BearerToken(header string) (token string, ok bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token = strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
