package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if a.email != "" {
		parts = append(parts, a.email)
	}
	if a.Mode != ModeUnknown {
		parts = append(parts, string(a.Mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root restores the saved session, asks for credentials when there is none,
// and runs the REPL until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ShopPal (type 'help' for commands)")

	if !a.Restore(ctx) {
		if err := a.Login(ctx); err != nil {
			a.logger.Error(ctx, "login prompt failed", "error", err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
