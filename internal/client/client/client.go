package client

import (
	"context"

	"github.com/dmitrijs2005/dndadmin/internal/client/models"
)

// Client is the admin API contract used by the services layer.
type Client interface {
	// SetBearerToken installs the token attached to authenticated calls.
	// An empty or whitespace-only token clears it.
	SetBearerToken(token string)
	HasBearerToken() bool

	GetSalt(ctx context.Context, email string) (string, error)
	// Login runs the salt -> client hash -> token exchange handshake and
	// returns the issued token. It does not install the token.
	Login(ctx context.Context, email string, password []byte) (string, error)

	CurrentProfile(ctx context.Context) (*models.Profile, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID int, role string) error
	UpdateUserStatus(ctx context.Context, userID int, isActive bool) error
}
