package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/dndadmin/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

// Me prints the administrator label, fetching the profile on first use.
func (a *App) Me(ctx context.Context) error {
	if a.profile != nil {
		printlnFn(a.profile.Label())
		return nil
	}

	err := a.exclusive(func() error {
		p, err := a.adminService.Profile(ctx)
		if err != nil {
			return err
		}
		a.profile = p
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBusy) {
			a.reportError(ctx, err)
		}
		return err
	}

	printlnFn(a.profile.Label())
	return nil
}

// Refresh replaces the cached user list and prints it. On failure the
// previous list is kept.
func (a *App) Refresh(ctx context.Context) error {
	err := a.exclusive(func() error {
		users, err := a.adminService.Users(ctx)
		if err != nil {
			return err
		}
		a.users = users
		if _, ok := models.FindByID(users, a.selected); !ok {
			a.selected = 0
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBusy) {
			a.reportError(ctx, err)
		}
		return err
	}

	a.printUsers()
	return nil
}

func (a *App) printUsers() {
	if len(a.users) == 0 {
		printlnFn("No users.")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tSTATUS\tCREATED\tLAST LOGIN")
	for _, u := range a.users {
		last := "never"
		if u.LastLoginAt != nil && !u.LastLoginAt.IsZero() {
			last = u.LastLoginAt.Local().Format(timeLayout)
		}
		created := "-"
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Local().Format(timeLayout)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.StatusLabel(), created, last)
	}
	_ = w.Flush()
	printlnFn(strings.TrimRight(b.String(), "\n"))
}

// Select marks a cached user as the target of role and status commands.
//
//	select <id>
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: select <id>")
		return errUsage
	}
	u, err := a.lookupUser(args[0])
	if err != nil {
		return a.badArgs(err, "Usage: select <id>")
	}
	a.selected = u.ID
	printlnFn(fmt.Sprintf("Selected #%d %s <%s>: role %s, %s", u.ID, u.Username, u.Email, u.Role, u.StatusLabel()))
	return nil
}

// SetRole assigns one of the configured role options.
//
//	role [<id>] <role>
func (a *App) SetRole(ctx context.Context, args []string) error {
	id, rest, err := a.targetUser(args)
	if err != nil {
		return a.badArgs(err, "Usage: role [<id>] <"+strings.Join(a.config.RoleOptions, "|")+">")
	}

	role, ok := a.matchRole(rest[0])
	if !ok {
		a.notify(errorNotice(fmt.Sprintf("Unknown role %q. Available: %s.", rest[0], strings.Join(a.config.RoleOptions, ", "))))
		return errUsage
	}

	err = a.exclusive(func() error { return a.adminService.UpdateRole(ctx, id, role) })
	if err != nil {
		if !errors.Is(err, ErrBusy) {
			a.reportError(ctx, err)
		}
		return err
	}
	a.notify(statusNotice("Role updated successfully."))
	return nil
}

// SetStatus activates or deactivates an account.
//
//	status [<id>] <active|inactive>
func (a *App) SetStatus(ctx context.Context, args []string) error {
	id, rest, err := a.targetUser(args)
	if err == nil && !validStatus(rest[0]) {
		err = errUsage
	}
	if err != nil {
		return a.badArgs(err, "Usage: status [<id>] <active|inactive>")
	}
	active, _ := parseStatus(rest[0])

	err = a.exclusive(func() error { return a.adminService.UpdateStatus(ctx, id, active) })
	if err != nil {
		if !errors.Is(err, ErrBusy) {
			a.reportError(ctx, err)
		}
		return err
	}
	a.notify(statusNotice("Status updated successfully."))
	return nil
}

// Roles prints the assignable roles.
func (a *App) Roles(ctx context.Context) error {
	printlnFn("Roles: " + strings.Join(a.config.RoleOptions, ", "))
	return nil
}

var errUsage = errors.New("usage")

// badArgs prints usage for malformed input and a notice for anything else.
func (a *App) badArgs(err error, usage string) error {
	if errors.Is(err, errUsage) {
		printlnFn(usage)
	} else {
		a.notify(errorNotice(err.Error()))
	}
	return err
}

// targetUser resolves the user id from args, or from the selection when
// args holds just the value.
func (a *App) targetUser(args []string) (int, []string, error) {
	switch len(args) {
	case 1:
		if a.selected == 0 {
			return 0, nil, errUsage
		}
		return a.selected, args, nil
	case 2:
		u, err := a.lookupUser(args[0])
		if err != nil {
			return 0, nil, err
		}
		return u.ID, args[1:], nil
	default:
		return 0, nil, errUsage
	}
}

func (a *App) lookupUser(arg string) (models.User, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id <= 0 {
		return models.User{}, fmt.Errorf("invalid user id %q", arg)
	}
	u, ok := models.FindByID(a.users, id)
	if !ok {
		return models.User{}, fmt.Errorf("unknown user id %d, run 'users' to refresh", id)
	}
	return u, nil
}

func (a *App) matchRole(s string) (string, bool) {
	for _, r := range a.config.RoleOptions {
		if strings.EqualFold(r, s) {
			return r, true
		}
	}
	return "", false
}

func validStatus(s string) bool {
	_, ok := parseStatus(s)
	return ok
}

func parseStatus(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "active", "true", "on":
		return true, true
	case "inactive", "false", "off":
		return false, true
	default:
		return false, false
	}
}
