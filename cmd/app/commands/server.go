package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/pidseal/internal/app"
	"github.com/allisson/pidseal/internal/config"
)

// Starter is a server that blocks in Start until Shutdown is called.
type Starter interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the HTTP server with graceful shutdown support.
// Loads configuration, initializes the DI container (which loads the trust
// certificate and registers the cipher provider) and starts the Gin HTTP server.
// Blocks until receiving SIGINT/SIGTERM or encountering a fatal error.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	servers := map[string]Starter{"api server": server}
	if metricsServer != nil {
		servers["metrics server"] = metricsServer
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, servers, cfg, logger)
}

// serve runs every server until ctx is done or one of them fails, then shuts
// all of them down within the configured timeout.
func serve(ctx context.Context, servers map[string]Starter, cfg *config.Config, logger *slog.Logger) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for name, server := range servers {
		group.Go(func() error {
			if err := server.Start(groupCtx); err != nil {
				return fmt.Errorf("%s error: %w", name, err)
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		var firstErr error
		for name, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("%s shutdown: %w", name, err)
			}
		}
		return firstErr
	})

	return group.Wait()
}
