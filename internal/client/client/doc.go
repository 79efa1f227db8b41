// Package client talks to the administration API.
//
// HTTPClient is the session object: it is built from a ClientConfig (base
// URL, per-request timeout, client hash encoding), holds at most one bearer
// token and exposes one method per endpoint. Login performs the salt
// handshake:
//
//	GET  /api/auth/salt?email=...              -> {"salt": "..."}
//	POST /api/auth/login?email=...&password=H  -> {"token": "..."}
//
// where H = encode(SHA-256(password || salt)). Login returns the token; the
// caller decides whether to persist and install it with SetBearerToken.
//
// Failures are returned, never retried: *ServerError for non-2xx responses,
// *ProtocolError for 2xx responses with a missing or malformed field,
// *TimeoutError when the per-request ceiling is hit, ErrUnavailable for other
// transport failures and ErrNotLoggedIn for authenticated calls made without
// a token.
//
// InitDatabase and RunMigrations bootstrap the local SQLite database used by
// the credential store.
package client
