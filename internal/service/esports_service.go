// Package service holds the application services that sit between the HTTP
// handlers and the exchange client. This is where upstream failures are
// collapsed into empty results: the client returns errors, the services log
// them and hand the handlers something renderable. Only missing-credential
// errors pass through.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/kalshme/kalshme/internal/cache/league"
	"github.com/kalshme/kalshme/internal/domain"
	"github.com/kalshme/kalshme/internal/esports"
)

// MarketSource is the slice of the exchange client the esports service
// needs.
type MarketSource interface {
	GetAllOpenMarkets(ctx context.Context) ([]domain.Market, error)
}

// Broadcaster pushes a payload to every subscriber of a channel. Nil is a
// valid value for callers that run without the WebSocket hub.
type Broadcaster interface {
	Broadcast(channel string, payload []byte)
}

// LeagueMarkets is one league's market snapshot plus its cache provenance.
type LeagueMarkets struct {
	League  domain.League   `json:"league"`
	Markets []domain.Market `json:"markets"`
	Cached  bool            `json:"cached"`
}

// EsportsService serves per-league market snapshots, fronted by the
// in-process TTL cache.
type EsportsService struct {
	source MarketSource
	cache  *league.Cache
	hub    Broadcaster
	logger *slog.Logger
}

// NewEsportsService creates an EsportsService. hub may be nil.
func NewEsportsService(source MarketSource, cache *league.Cache, hub Broadcaster, logger *slog.Logger) *EsportsService {
	return &EsportsService{
		source: source,
		cache:  cache,
		hub:    hub,
		logger: logger,
	}
}

// GetLeagueMarkets returns the open markets for one league. A cache hit is
// served without touching the exchange. On a miss it fetches every open
// market, filters to the league, caches the result, and pushes the fresh
// snapshot to WebSocket subscribers.
//
// Upstream failures are logged and collapsed to whatever partial result the
// walk produced (possibly empty); the error-tainted result is returned but
// not cached, so the next request retries. Missing credentials are the one
// error that propagates.
func (s *EsportsService) GetLeagueMarkets(ctx context.Context, lg domain.League) (LeagueMarkets, error) {
	if markets, ok := s.cache.Get(lg); ok {
		return LeagueMarkets{League: lg, Markets: markets, Cached: true}, nil
	}

	all, err := s.source.GetAllOpenMarkets(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return LeagueMarkets{}, err
		}
		s.logger.WarnContext(ctx, "esports: open-market fetch failed, serving partial result",
			slog.String("league", string(lg)),
			slog.Int("markets", len(all)),
			slog.String("error", err.Error()),
		)
	}

	markets := esports.FilterByLeague(all, lg)
	if markets == nil {
		markets = []domain.Market{}
	}

	if err == nil {
		s.cache.Set(lg, markets)
		s.broadcast(ctx, lg, markets)
	}

	return LeagueMarkets{League: lg, Markets: markets, Cached: false}, nil
}

// LeagueEvents is one league's markets grouped by event.
type LeagueEvents struct {
	League domain.League       `json:"league"`
	Events []domain.EventGroup `json:"events"`
	Cached bool                `json:"cached"`
}

// GetLeagueEvents returns the league's markets grouped by event ticker, in
// first-seen order. The grouping is derived on every call from the same
// snapshot GetLeagueMarkets serves.
func (s *EsportsService) GetLeagueEvents(ctx context.Context, lg domain.League) (LeagueEvents, error) {
	lm, err := s.GetLeagueMarkets(ctx, lg)
	if err != nil {
		return LeagueEvents{}, err
	}

	events := esports.GroupByEvent(lm.Markets)
	if events == nil {
		events = []domain.EventGroup{}
	}

	return LeagueEvents{League: lg, Events: events, Cached: lm.Cached}, nil
}

// broadcast pushes a fresh league snapshot to hub subscribers. Failures to
// marshal are logged and dropped; the REST response is unaffected.
func (s *EsportsService) broadcast(ctx context.Context, lg domain.League, markets []domain.Market) {
	if s.hub == nil {
		return
	}

	payload, err := json.Marshal(LeagueMarkets{League: lg, Markets: markets, Cached: false})
	if err != nil {
		s.logger.WarnContext(ctx, "esports: broadcast marshal failed",
			slog.String("league", string(lg)),
			slog.String("error", err.Error()),
		)
		return
	}

	s.hub.Broadcast("markets:"+string(lg), payload)
}
