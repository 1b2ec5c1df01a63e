// Package app provides the top-level application lifecycle for the kalshme
// backend. It wires together the exchange client, caches, blob storage,
// services, and the HTTP server, and runs them until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kalshme/kalshme/internal/config"
	"github.com/kalshme/kalshme/internal/server"
	"github.com/kalshme/kalshme/internal/server/handler"
	"github.com/kalshme/kalshme/internal/server/ws"
)

// shutdownTimeout bounds how long in-flight requests get to finish once a
// stop signal arrives.
const shutdownTimeout = 10 * time.Second

// App is the root application object. It owns the configuration, logger, and
// a list of cleanup functions that are called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run is the main entry point. It wires all dependencies, starts the
// WebSocket hub and HTTP server, and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting application",
		slog.String("log_level", a.cfg.LogLevel),
		slog.Int("port", a.cfg.Server.Port),
	)

	hub := ws.NewHub(a.logger.With(slog.String("component", "ws")))

	deps, cleanup, err := Wire(ctx, a.cfg, hub, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	handlerLogger := a.logger.With(slog.String("component", "handler"))
	handlers := server.Handlers{
		Health:    handler.NewHealthHandler(handlerLogger),
		Esports:   handler.NewEsportsHandler(deps.Esports, handlerLogger),
		Portfolio: handler.NewPortfolioHandler(deps.Portfolio, handlerLogger),
	}
	if deps.BlobReader != nil {
		handlers.Assets = handler.NewAssetHandler(
			deps.BlobReader,
			a.cfg.S3.ImagesPrefix,
			a.cfg.S3.MusicPrefix,
			handlerLogger,
		)
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, handlers, hub, a.logger.With(slog.String("component", "server")))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := hub.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("app: ws hub: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close tears down all resources in reverse registration order. It is safe to
// call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	a.logger.Info("shutting down application")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
