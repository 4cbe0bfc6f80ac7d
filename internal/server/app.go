// Package server wires and runs the development login server: configuration,
// an in-memory user store seeded from config, and the HTTP API. It shuts
// down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/shoppal/internal/logging"
	"github.com/dmitrijs2005/shoppal/internal/server/config"
	"github.com/dmitrijs2005/shoppal/internal/server/httpapi"
	"github.com/dmitrijs2005/shoppal/internal/server/users"
)

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// notifyContext is replaced in tests.
var notifyContext = signal.NotifyContext

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(os.Stdout, c.LogLevel, logging.Format(c.LogFormat))
	if err != nil {
		return nil, err
	}

	seeds, err := c.ParseSeedUsers()
	if err != nil {
		return nil, err
	}

	us := users.NewService(users.NewMemoryRepository(), c)
	n, err := us.Seed(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	logger.Info(ctx, "users seeded", "count", n)

	return &App{config: c, logger: logger, userService: us}, nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, stop := notifyContext(ctx, shutdownSignals...)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "Stopped")
}
