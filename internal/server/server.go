// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns.
//
// It owns the lifecycle of:
//   - configuration
//   - logger service (console + rotating files)
//   - metrics registry
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/credit-risk/internal/config"
	loggerPkg "github.com/deppfellow/credit-risk/internal/logger"
	"github.com/deppfellow/credit-risk/internal/metrics"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds:
//   - the config
//   - the logger and the service owning its destinations
//   - the metrics registry and instruments
//   - an internal *http.Server used to listen and serve requests
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService owns the log destinations. It may be nil in tests, in
	// which case Shutdown has nothing to close.
	LoggerService *loggerPkg.LoggerService

	// Registry is the Prometheus registry served on /metrics.
	Registry *prometheus.Registry

	Metrics *metrics.Metrics

	httpServer *http.Server
}

// New constructs a Server. It does not start listening, that is done in
// SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Registry:      registry,
		Metrics:       metrics.New(registry),
	}, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         s.Config.Server.Address(),
		Handler:      handler,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
		IdleTimeout:  s.Config.Server.IdleTimeout,
	}
}

// Start runs the HTTP server and blocks until it stops.
//
// It requires SetupHTTPServer to be called first. http.ErrServerClosed is
// returned after a graceful Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("addr", s.httpServer.Addr).
		Str("project", s.Config.App.ProjectName).
		Str("version", s.Config.App.Version).
		Bool("debug", s.Config.App.Debug).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires and then closes the log files.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.Logger.Info().Msg("server stopped")

	if s.LoggerService != nil {
		if err := s.LoggerService.Close(); err != nil {
			return fmt.Errorf("failed to close log files: %w", err)
		}
	}

	return nil
}
