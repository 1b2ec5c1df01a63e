package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/kalshme/kalshme/internal/blob/s3"
	"github.com/kalshme/kalshme/internal/cache/league"
	"github.com/kalshme/kalshme/internal/cache/redis"
	"github.com/kalshme/kalshme/internal/config"
	"github.com/kalshme/kalshme/internal/domain"
	"github.com/kalshme/kalshme/internal/platform/kalshi"
	"github.com/kalshme/kalshme/internal/service"
)

// Dependencies bundles everything the server needs to run. It is constructed
// by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Kalshi      *kalshi.Client
	LeagueCache *league.Cache

	// MarketCache is nil when Redis is disabled; the portfolio detail join
	// then hits the exchange for every market.
	MarketCache domain.MarketCache

	// BlobReader is nil when S3 is disabled; the asset routes are then not
	// registered.
	BlobReader domain.BlobReader

	Esports   *service.EsportsService
	Portfolio *service.PortfolioService
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that
// should be called on shutdown to release resources. hub may be nil to run
// without WebSocket push.
func Wire(ctx context.Context, cfg *config.Config, hub service.Broadcaster, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Exchange client ---
	client := kalshi.NewClient(cfg.Kalshi.BaseURL, cfg.Kalshi.ApiKeyID,
		logger.With(slog.String("component", "kalshi")))
	if cfg.Kalshi.RsaPrivateKeyPath != "" {
		if err := client.LoadRSAPrivateKeyFile(cfg.Kalshi.RsaPrivateKeyPath); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: kalshi key: %w", err)
		}
	}
	deps.Kalshi = client

	// --- In-process league cache ---
	deps.LeagueCache = league.New(cfg.Cache.LeagueTTL.Duration, nil)

	// --- Redis market-detail cache (optional) ---
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.MarketCache = redis.NewMarketCache(redisClient)
	}

	// --- S3 blob storage (optional) ---
	if cfg.S3.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = s3Client.Close() })

		deps.BlobReader = s3blob.NewReader(s3Client)
	}

	// --- Services ---
	deps.Esports = service.NewEsportsService(client, deps.LeagueCache, hub,
		logger.With(slog.String("component", "esports")))
	deps.Portfolio = service.NewPortfolioService(client, deps.MarketCache,
		logger.With(slog.String("component", "portfolio")))

	return deps, cleanup, nil
}
