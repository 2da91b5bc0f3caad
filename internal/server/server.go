// Package server exposes the calculators, the fund returns tracker and the
// contact relay over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/config"
	"github.com/investa/finserve/internal/contact"
	"github.com/investa/finserve/internal/logging"
	"github.com/investa/finserve/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

// Deps are the services the HTTP layer fronts. Tracker and Contact may be
// nil, in which case their routes answer 503.
type Deps struct {
	Engine  *calculation.Engine
	Tracker *tracker.Tracker
	Contact *contact.Service
	Logger  *logging.Logger
}

// Server wraps the HTTP server and the services behind it.
type Server struct {
	engine  *calculation.Engine
	tracker *tracker.Tracker
	contact *contact.Service
	logger  *logging.Logger
	limiter *RateLimiter
	server  *http.Server
}

// NewServer creates a new HTTP API server.
func NewServer(cfg *config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.NewSilentLogger()
	}
	if deps.Engine == nil {
		deps.Engine = calculation.NewEngine()
	}

	s := &Server{
		engine:  deps.Engine,
		tracker: deps.Tracker,
		contact: deps.Contact,
		logger:  deps.Logger,
		limiter: NewRateLimiter(cfg.Contact.RequestsPerMinute),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      applyMiddleware(mux, deps.Logger),
		ReadTimeout:  cfg.Server.GetReadTimeout(),
		WriteTimeout: cfg.Server.GetWriteTimeout(),
		IdleTimeout:  cfg.Server.GetIdleTimeout(),
	}

	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.server.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.limiter.Stop()
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
