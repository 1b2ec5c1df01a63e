// Package server assembles the HTTP API: route registration, the middleware
// chain, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kalshme/kalshme/internal/server/handler"
	"github.com/kalshme/kalshme/internal/server/middleware"
	"github.com/kalshme/kalshme/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
}

// Handlers aggregates all HTTP handlers that the server needs to register.
// Assets is optional and its routes are skipped when nil.
type Handlers struct {
	Health    *handler.HealthHandler
	Esports   *handler.EsportsHandler
	Portfolio *handler.PortfolioHandler
	Assets    *handler.AssetHandler
}

// Server is the HTTP + WebSocket API server for the dashboard backend.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer creates a new Server with all routes registered on the ServeMux
// and the middleware chain (request ID, logging, CORS) applied.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// --- Register routes ---

	// Health check.
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	// LoL esports market endpoints.
	mux.HandleFunc("GET /api/kalshi/lol-esports", handlers.Esports.LeagueMarkets)
	mux.HandleFunc("GET /api/kalshi/lol-esports/events", handlers.Esports.LeagueEvents)

	// Portfolio endpoints.
	mux.HandleFunc("GET /api/kalshi/positions", handlers.Portfolio.ListPositions)
	mux.HandleFunc("GET /api/kalshi/settlements", handlers.Portfolio.ListSettlements)
	mux.HandleFunc("GET /api/kalshi/orders", handlers.Portfolio.ListOrders)

	// Dashboard asset listings, present only when object storage is
	// configured.
	if handlers.Assets != nil {
		mux.HandleFunc("GET /api/assets/images", handlers.Assets.ListImages)
		mux.HandleFunc("GET /api/assets/music", handlers.Assets.ListMusic)
		// Object bytes for the keys the listings return. The exact patterns
		// above win over this wildcard.
		mux.HandleFunc("GET /api/assets/{path...}", handlers.Assets.GetAsset)
	}

	// WebSocket endpoint.
	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	// Build the middleware chain. RequestID wraps Logging so every access
	// log line carries the ID.
	var h http.Handler = mux
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID()(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		mux:        mux,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
