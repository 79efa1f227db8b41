package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Refresh(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	SetRole(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	Roles(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: me, users (refresh), select <id>, role [<id>] <role>, status [<id>] <active|inactive>, roles, logout, help, exit"
)

// runREPL reads commands from in until EOF, "exit" or "quit".
//
// Commands that need a session are refused with a login hint while logged
// out. Errors returned by handlers are ignored here; handlers report their
// own failures as notices.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dnd> %s > ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "logout", "me", "users", "refresh", "select", "role", "status", "roles":
			if !a.isLoggedIn() {
				printlnFn("Please log in first (type 'login').")
				continue
			}
			dispatch(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "logout":
		_ = a.Logout(ctx)
	case "me":
		_ = a.Me(ctx)
	case "users", "refresh":
		_ = a.Refresh(ctx)
	case "select":
		_ = a.Select(ctx, args)
	case "role":
		_ = a.SetRole(ctx, args)
	case "status":
		_ = a.SetStatus(ctx, args)
	case "roles":
		_ = a.Roles(ctx)
	}
}
