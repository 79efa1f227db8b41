package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dndadmin/internal/client/client"
	"github.com/dmitrijs2005/dndadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials (offering the last used email) and runs
// the handshake. On success the profile and the user list are loaded.
func (a *App) Login(ctx context.Context) error {
	last := a.authService.LastEmail(ctx)

	prompt := "Enter email"
	if last != "" {
		prompt = fmt.Sprintf("Enter email [%s]", last)
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.exclusive(func() error {
		if err := a.authService.Login(ctx, email, password); err != nil {
			return err
		}
		a.dropSession()
		a.loggedIn = true
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBusy) {
			a.reportError(ctx, err)
		}
		return err
	}

	return a.loadSession(ctx)
}

// Restore resumes a stored session. Without one the user is asked to log
// in.
func (a *App) Restore(ctx context.Context) error {
	ok, err := a.authService.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "restore session failed", "error", err)
	}
	if !ok {
		a.notify(errorNotice(msgMissingToken))
		return client.ErrNotLoggedIn
	}

	a.loggedIn = true
	return a.loadSession(ctx)
}

// loadSession fetches the profile, then the user list. A profile failure is
// reported but the list is still loaded, unless the token was rejected and
// the session is gone.
func (a *App) loadSession(ctx context.Context) error {
	meErr := a.Me(ctx)
	if !a.loggedIn {
		return meErr
	}
	return errors.Join(meErr, a.Refresh(ctx))
}

// Logout forgets the token locally and drops the cached data.
func (a *App) Logout(ctx context.Context) error {
	return a.exclusive(func() error {
		err := a.authService.Logout(ctx)
		a.dropSession()
		if err != nil {
			a.reportError(ctx, err)
			return err
		}
		a.notify(statusNotice("Logged out."))
		return nil
	})
}
