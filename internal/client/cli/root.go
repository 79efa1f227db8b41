package cli

import (
	"context"
)

// Root greets the user, resumes the stored session or asks for a login,
// then runs the command loop until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the DnD admin CLI (type 'help' for commands)")

	if err := a.Restore(ctx); err != nil && !a.loggedIn {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
