// Package metadata is a small key/value table in the local client
// database. The credential store keeps the sealed bearer token and the last
// used login email here.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyToken     = "token"
	KeyLastEmail = "last_email"
)

type Repository interface {
	// Get returns the stored value and true, or nil and false when the key
	// is absent. Absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set inserts or overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
}
