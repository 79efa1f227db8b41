// Package devserver is an in-memory implementation of the admin API for
// local development and end-to-end tests.
//
// It serves the salt/login handshake, issues HS256 JWTs, and exposes the
// profile and user administration endpoints behind bearer authentication
// and an Admin role check.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *Config
	logger  logging.Logger
	users   *UserStore
	handler http.Handler
}

// NewApp builds the user table, seeds it and mounts the router. An empty
// JWT secret is replaced by a random one, so tokens do not survive a
// restart.
func NewApp(cfg *Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("module", "devserver")

	enc, err := cryptox.ParseHashEncoding(cfg.HashEncoding)
	if err != nil {
		return nil, err
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = common.GenerateRandByteArray(32)
		logger.Warn(context.Background(), "no jwt secret configured, using a random one")
	}

	users := NewUserStore(enc, cfg.RoleOptions)
	if err := Seed(users, cfg); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	svc := NewService(users, secret, cfg.TokenTTL, logger)
	return &App{
		config:  cfg,
		logger:  logger,
		users:   users,
		handler: NewRouter(svc, logger),
	}, nil
}

// Seed adds the configured admin and, optionally, a few demo accounts.
func Seed(users *UserStore, cfg *Config) error {
	if _, err := users.Add(cfg.AdminEmail, cfg.AdminUsername, RoleAdmin, cfg.AdminPassword, true); err != nil {
		return err
	}
	if !cfg.SeedDemoUsers {
		return nil
	}

	demo := []struct {
		email, username, role string
		active                bool
	}{
		{"dm@example.com", "dungeonmaster", "DM", true},
		{"player@example.com", "player", "User", true},
		{"banned@example.com", "banned", "User", false},
	}
	for _, d := range demo {
		role := d.role
		if !users.validRole(role) {
			role = cfg.RoleOptions[0]
		}
		if _, err := users.Add(d.email, d.username, role, "password", d.active); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) Handler() http.Handler { return a.handler }

func (a *App) Users() *UserStore { return a.users }

// Run serves until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		a.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
