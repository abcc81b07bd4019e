package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/deppfellow/credit-risk/internal/config"
	"github.com/deppfellow/credit-risk/internal/handler"
	"github.com/deppfellow/credit-risk/internal/logger"
	"github.com/deppfellow/credit-risk/internal/router"
	"github.com/deppfellow/credit-risk/internal/server"
	"github.com/deppfellow/credit-risk/internal/service"
)

// main loads settings and serves until SIGINT or SIGTERM. Startup errors
// exit before any request is accepted.
func main() {
	// Used before logging is bootstrapped and after it is closed.
	stderr := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		stderr.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		stderr.Fatal().Err(err).Msg("server exited with error")
	}
}

// run bootstraps logging, wires the application and serves until ctx is
// done, then shuts down gracefully within cfg.Server.ShutdownTimeout.
func run(ctx context.Context, cfg *config.Config) error {
	loggerService, err := logger.New(logger.Options{
		Level: cfg.LogLevel(),
		Dir:   cfg.Logging.Dir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	appLogger := loggerService.Logger()

	srv, err := server.New(cfg, appLogger, loggerService)
	if err != nil {
		_ = loggerService.Close()
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	services, err := service.NewService(srv, nil)
	if err != nil {
		_ = loggerService.Close()
		return fmt.Errorf("failed to create services: %w", err)
	}

	srv.SetupHTTPServer(router.NewRouter(srv, handler.NewHandlers(srv, services)))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		// Start only returns before Shutdown when listening fails.
		appLogger.Error().Err(err).Msg("server failed")
		_ = loggerService.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
