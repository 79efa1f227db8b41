// Package common contains shared constants and sentinel errors used across
// dndadmin components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the token value inside AuthorizationHeaderName.
const BearerScheme = "Bearer"

// RequestIDHeaderName is the HTTP header used to correlate client log lines
// with server-side request logs.
const RequestIDHeaderName = "X-Request-ID"

// AppName names the per-user application data directory.
const AppName = "DnDToolAdmin"
