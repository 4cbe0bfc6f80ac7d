package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands from r and dispatches them to a, writing
// prompts and messages to w. The loop exits on EOF, on "exit"/"quit", or
// when ctx is cancelled.
//
//	Not logged in:
//	  - help, login, status, exit | quit
//
//	Logged in:
//	  - help, login (switch account), logout, status, exit | quit
//
// Commands share r with the prompts they issue, so lines are read straight
// from the reader rather than through a buffering scanner. Errors returned by
// handlers are ignored here; handlers report to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "shoppal %s> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: login, logout, status, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, "Not logged in.")
				continue
			}
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
