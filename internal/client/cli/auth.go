package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shoppal/internal/client/services"
	"github.com/dmitrijs2005/shoppal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Restore re-validates the cached session, if any. It reports whether the
// user ended up signed in.
func (a *App) Restore(ctx context.Context) bool {
	outcome := await(ctx, a.out, "Checking saved session", a.sessions.RestoreSession)

	switch o := outcome.(type) {
	case services.LoggedIn:
		a.email = o.Email
		a.setMode(ModeOnline)
		fmt.Fprintf(a.out, "Welcome back, %s!\n", o.Email)
		return true
	case services.NotLoggedIn:
		if o.Offline {
			a.setMode(ModeOffline)
			fmt.Fprintln(a.out, "ShopPal is unreachable; your saved login will be checked again next time.")
		}
	}
	return false
}

// Login prompts the user for credentials and authenticates them through the
// session manager. The password is wiped before returning. Failures that the
// user can act on are printed, not returned.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	outcome := await(ctx, a.out, "Signing in", func(ctx context.Context) services.LoginOutcome {
		return a.sessions.Login(ctx, email, string(password))
	})

	switch o := outcome.(type) {
	case services.Success:
		a.email = o.Email
		a.setMode(ModeOnline)
		fmt.Fprintf(a.out, "Welcome, %s!\n", o.Email)
	case services.Failure:
		if o.Retryable {
			a.setMode(ModeOffline)
		}
		fmt.Fprintln(a.out, o.Message)
	}
	return nil
}

// Logout forgets the cached credentials.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not remove the saved login:", err)
		return err
	}
	a.email = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Status pings the service and prints who is signed in.
func (a *App) Status(ctx context.Context) error {
	err := await(ctx, a.out, "Contacting ShopPal", a.api.Ping)
	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}

	user := "not logged in"
	if a.isLoggedIn() {
		user = "logged in as " + a.email
	}
	fmt.Fprintf(a.out, "%s, service %s\n", user, a.Mode)
	return nil
}
