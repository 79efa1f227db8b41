package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/dndadmin/internal/client/client"
	"github.com/dmitrijs2005/dndadmin/internal/client/config"
	"github.com/dmitrijs2005/dndadmin/internal/client/credstore"
	"github.com/dmitrijs2005/dndadmin/internal/client/models"
	"github.com/dmitrijs2005/dndadmin/internal/client/services"
	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
)

type App struct {
	config       *config.Config
	authService  services.AuthService
	adminService services.AdminService
	logger       logging.Logger
	reader       *bufio.Reader
	out          io.Writer
	notify       NoticeSink
	closer       io.Closer

	busy atomic.Bool

	loggedIn bool
	profile  *models.Profile
	// users is replaced wholesale on every successful fetch.
	users    []models.User
	selected int
}

// NewApp wires the local credential store, the API client and the services
// for cfg. Close releases the store.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	store, err := credstore.Open(ctx, cfg.DataDir, cfg.TokenSealer, logger)
	if err != nil {
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(client.ClientConfig{
		BaseURL:      cfg.ServerBaseURL,
		Timeout:      cfg.RequestTimeout,
		HashEncoding: cryptox.HashEncoding(cfg.HashEncoding),
		Logger:       logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := newApp(cfg,
		services.NewAuthService(apiClient, store, logger),
		services.NewAdminService(apiClient),
		bufio.NewReader(os.Stdin), os.Stdout, logger)
	a.closer = store
	return a, nil
}

func newApp(cfg *config.Config, as services.AuthService, ads services.AdminService, r *bufio.Reader, out io.Writer, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		config:       cfg,
		authService:  as,
		adminService: ads,
		logger:       logger,
		reader:       r,
		out:          out,
		notify:       printNotice,
	}
}

// SetNoticeSink replaces the terminal notice printer.
func (a *App) SetNoticeSink(sink NoticeSink) {
	a.notify = sink
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// dropSession forgets everything tied to the current token.
func (a *App) dropSession() {
	a.loggedIn = false
	a.profile = nil
	a.users = nil
	a.selected = 0
}

// reportError turns err into an error notice. A rejected token also ends
// the local session.
func (a *App) reportError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		a.notify(errorNotice(msgMissingToken))
	case errors.Is(err, common.ErrorValidation):
		a.notify(errorNotice("Please enter email and password."))
	case client.IsUnauthorized(err) && a.loggedIn:
		a.notify(errorNotice(err.Error()))
		if lerr := a.authService.Logout(ctx); lerr != nil {
			a.logger.Warn(ctx, "logout after rejected token failed", "error", lerr)
		}
		a.dropSession()
		a.notify(errorNotice("Session expired. Please log in again."))
	default:
		a.notify(errorNotice(err.Error()))
	}
}

const msgMissingToken = "Missing token. Please log in again."

func (a *App) getStatus() string {
	if !a.loggedIn {
		return ""
	}
	s := "logged in"
	if a.profile != nil {
		s = a.profile.Username
	}
	if a.selected != 0 {
		s += fmt.Sprintf(" #%d", a.selected)
	}
	return "(" + s + ")"
}
