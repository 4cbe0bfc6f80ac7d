// Package services contains application services for the ShopPal client.
// This file defines the session manager: silent restore of a cached login
// at startup, interactive login, and logout.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/shoppal/internal/client/client"
	"github.com/dmitrijs2005/shoppal/internal/client/models"
	"github.com/dmitrijs2005/shoppal/internal/client/session"
	"github.com/dmitrijs2005/shoppal/internal/logging"
)

const (
	MsgIncorrectCredentials = "Incorrect email or password"
	MsgServiceUnavailable   = "Unable to reach ShopPal, please try again later"
	MsgLoginCancelled       = "Login cancelled"
)

// RestoreOutcome is LoggedIn or NotLoggedIn.
type RestoreOutcome interface {
	isRestoreOutcome()
}

// LoggedIn means the cached credentials were accepted again.
type LoggedIn struct {
	Email   string
	Profile map[string]any
}

// NotLoggedIn means the user has to log in. Offline is set when cached
// credentials exist but could not be re-validated because the service was
// unreachable; they are kept for the next attempt.
type NotLoggedIn struct {
	Offline bool
}

func (LoggedIn) isRestoreOutcome()    {}
func (NotLoggedIn) isRestoreOutcome() {}

// LoginOutcome is Success or Failure.
type LoginOutcome interface {
	isLoginOutcome()
}

type Success struct {
	Email   string
	Profile map[string]any
}

// Failure carries a message fit for display. Retryable is set for
// transport failures, where trying again unchanged may succeed. A login the
// caller cancelled is neither: it carries MsgLoginCancelled only.
type Failure struct {
	Message   string
	Retryable bool
}

func (Success) isLoginOutcome() {}
func (Failure) isLoginOutcome() {}

// SessionManager defines the session operations used by the presentation
// layer. It never navigates; callers act on the returned outcome.
//
// Contract:
//   - RestoreSession: re-validate cached credentials, if any.
//   - Login: authenticate and cache the credentials on success.
//   - Logout: forget cached credentials.
type SessionManager interface {
	RestoreSession(ctx context.Context) RestoreOutcome
	Login(ctx context.Context, email, password string) LoginOutcome
	Logout(ctx context.Context) error
}

type sessionManager struct {
	client client.Client
	store  session.Store
	logger logging.Logger
}

// NewSessionManager constructs a SessionManager over the given auth client
// and credential store.
func NewSessionManager(c client.Client, store session.Store, logger logging.Logger) SessionManager {
	return &sessionManager{client: c, store: store, logger: logger}
}

// RestoreSession loads the cached credentials and authenticates them.
// Without a cached entry the auth client is not called. A rejection clears
// the cache; a network failure or cancellation keeps it.
func (m *sessionManager) RestoreSession(ctx context.Context) RestoreOutcome {
	creds, ok := m.store.Load(ctx)
	if !ok {
		m.logger.Debug(ctx, "no stored session")
		return NotLoggedIn{}
	}
	creds = models.NewCredentials(creds.Email, creds.Password)

	switch res := m.client.Authenticate(ctx, creds.Email, creds.Password).(type) {
	case client.Authenticated:
		m.logger.Info(ctx, "session restored", "email", creds.Email)
		return LoggedIn{Email: creds.Email, Profile: res.Profile}

	case client.Rejected:
		m.logger.Info(ctx, "stored session rejected, clearing", "email", creds.Email)
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Error(ctx, "failed to clear stored session", "error", err)
		}
		return NotLoggedIn{}

	case client.NetworkFailure:
		if errors.Is(res.Cause, context.Canceled) {
			m.logger.Info(ctx, "session restore cancelled", "email", creds.Email)
			return NotLoggedIn{}
		}
		m.logger.Warn(ctx, "session restore deferred, service unreachable", "email", creds.Email, "error", res.Cause)
		return NotLoggedIn{Offline: true}

	default:
		m.logger.Error(ctx, "unexpected auth result", "result", res)
		return NotLoggedIn{}
	}
}

// Login lowercases email, authenticates, and on success caches the
// credentials. A failure to cache is logged and does not fail the login.
func (m *sessionManager) Login(ctx context.Context, email, password string) LoginOutcome {
	creds := models.NewCredentials(email, password)

	switch res := m.client.Authenticate(ctx, creds.Email, creds.Password).(type) {
	case client.Authenticated:
		if err := m.store.Save(ctx, creds); err != nil {
			m.logger.Error(ctx, "failed to store session", "email", creds.Email, "error", err)
		}
		m.logger.Info(ctx, "login successful", "email", creds.Email)
		return Success{Email: creds.Email, Profile: res.Profile}

	case client.Rejected:
		m.logger.Info(ctx, "login rejected", "email", creds.Email, "reason", res.Reason)
		return Failure{Message: MsgIncorrectCredentials}

	case client.NetworkFailure:
		if errors.Is(res.Cause, context.Canceled) {
			m.logger.Info(ctx, "login cancelled", "email", creds.Email)
			return Failure{Message: MsgLoginCancelled}
		}
		m.logger.Warn(ctx, "login failed, service unreachable", "email", creds.Email, "error", res.Cause)
		return Failure{Message: MsgServiceUnavailable, Retryable: true}

	default:
		m.logger.Error(ctx, "unexpected auth result", "result", res)
		return Failure{Message: MsgServiceUnavailable, Retryable: true}
	}
}

// Logout removes the cached credentials.
func (m *sessionManager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.logger.Info(ctx, "logged out")
	return nil
}
