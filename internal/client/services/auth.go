// Package services contains the application services behind the admin
// front end: session handling (login, restore, logout) and the user
// administration calls.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/client/client"
	"github.com/dmitrijs2005/dndadmin/internal/client/credstore"
	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// TokenStore is the part of credstore.Store the session logic needs.
type TokenStore interface {
	SaveSession(ctx context.Context, token, email string) error
	Load(ctx context.Context) (token string, ok bool, err error)
	Clear(ctx context.Context) error
	LastEmail(ctx context.Context) (string, error)
}

var _ TokenStore = (*credstore.Store)(nil)

// AuthService owns the bearer token lifecycle.
//
// Contract:
//   - Login: handshake with the server, persist the token, install it.
//   - Restore: install a previously persisted token; ok == false means the
//     user has to log in.
//   - Logout: forget the token locally and in the client.
//   - LastEmail: the email of the last successful login, for prompting.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Restore(ctx context.Context) (ok bool, err error)
	Logout(ctx context.Context) error
	LastEmail(ctx context.Context) string
}

type authService struct {
	client client.Client
	store  TokenStore
	logger logging.Logger
	now    func() time.Time
}

func NewAuthService(c client.Client, store TokenStore, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, store: store, logger: logger, now: time.Now}
}

// Login trims email, requires both credentials to be non-blank and wipes
// password before returning.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(strings.TrimSpace(string(password))) == 0 {
		return fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.client.SetBearerToken(token)

	// A session that could not be persisted still works until exit.
	if err := a.store.SaveSession(ctx, token, email); err != nil {
		a.logger.Warn(ctx, "token not persisted", "error", err)
	}

	a.logger.Info(ctx, "logged in", "email", email)
	return nil
}

// Restore installs the stored token. Missing, undecryptable or expired
// tokens mean "not logged in"; the latter two are cleared from the store.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	token, ok, err := a.store.Load(ctx)
	if err != nil {
		var se *credstore.StorageError
		if !errors.As(err, &se) || se.Op != "decrypt" {
			return false, err
		}
		a.logger.Warn(ctx, "stored token unreadable, clearing", "error", err)
		return false, a.store.Clear(ctx)
	}
	if !ok {
		return false, nil
	}

	if tokenExpired(token, a.now()) {
		a.logger.Info(ctx, "stored token expired, clearing")
		return false, a.store.Clear(ctx)
	}

	a.client.SetBearerToken(token)
	return true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetBearerToken("")
	return a.store.Clear(ctx)
}

func (a *authService) LastEmail(ctx context.Context) string {
	email, err := a.store.LastEmail(ctx)
	if err != nil {
		a.logger.Warn(ctx, "last email unavailable", "error", err)
		return ""
	}
	return email
}

// tokenExpired reports whether token is a JWT whose exp claim lies before
// now. The signature is not checked; opaque tokens never expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
