// Package httpapi serves the ShopPal login API over HTTP:
//
//	POST /user/login  JSON {"email","password"} → 200 JSON profile and token,
//	                  400 text/plain reason otherwise
//	GET  /user/me     profile of the bearer token's user
//	GET  /ping        liveness
//	GET  /metrics     Prometheus metrics
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shoppal/internal/common"
	"github.com/dmitrijs2005/shoppal/internal/logging"
	"github.com/dmitrijs2005/shoppal/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// UserService is the part of users.Service the handlers need.
type UserService interface {
	Login(ctx context.Context, email string, password []byte) (*users.LoginResult, error)
}

type HTTPServer struct {
	address   string
	users     UserService
	logger    logging.Logger
	metrics   *Metrics
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us UserService, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		metrics:   NewMetrics(),
		jwtSecret: []byte(secretKey),
	}
}

// Routes builds the router. It is exported for tests and for embedding the
// API into another server.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post(common.LoginPath, s.login)
	r.With(s.bearerAuth).Get("/user/me", s.me)
	r.Get("/ping", s.ping)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
