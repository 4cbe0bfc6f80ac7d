package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dmitrijs2005/shoppal/internal/async"
	"github.com/dmitrijs2005/shoppal/internal/buildinfo"
	"github.com/dmitrijs2005/shoppal/internal/client/client"
	"github.com/dmitrijs2005/shoppal/internal/client/config"
	"github.com/dmitrijs2005/shoppal/internal/client/services"
	"github.com/dmitrijs2005/shoppal/internal/client/session"
	"github.com/dmitrijs2005/shoppal/internal/client/vault"
	"github.com/dmitrijs2005/shoppal/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const progressInterval = 300 * time.Millisecond

// interruptContext derives a context that is cancelled on Ctrl-C. It is a
// variable so tests can drive cancellation without sending signals.
var interruptContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	sessions services.SessionManager
	api      client.Client
	vault    io.Closer
	email    string
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp builds the client from cfg: logger on stderr, the configured vault
// backend, the HTTP login client and the session manager.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, logging.Format(cfg.LogFormat))
	if err != nil {
		return nil, err
	}

	v, err := vault.Open(ctx, cfg.VaultOptions())
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	api, err := client.NewHTTPClient(cfg.LoginURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithUserAgent(buildinfo.UserAgent("shoppal-client")),
	)
	if err != nil {
		_ = v.Close()
		return nil, err
	}

	store := session.NewVaultStore(v, logger)

	return &App{
		config:   cfg,
		logger:   logger,
		sessions: services.NewSessionManager(api, store, logger),
		api:      api,
		vault:    v,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.vault != nil {
			if err := a.vault.Close(); err != nil {
				a.logger.Error(ctx, "failed to close vault", "error", err)
			}
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Debug(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// await runs fn in the background and prints label followed by a dot per
// progress tick until it completes. Ctrl-C cancels the context passed to fn.
func await[T any](ctx context.Context, w io.Writer, label string, fn func(context.Context) T) T {
	ctx, stop := interruptContext(ctx)
	defer stop()

	fmt.Fprint(w, label)
	res := async.Run(ctx, fn).AwaitWithProgress(progressInterval, func() {
		fmt.Fprint(w, ".")
	})
	fmt.Fprintln(w)
	return res
}
