package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/kalshme/kalshme/internal/cache/league"
	"github.com/kalshme/kalshme/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeMarketSource struct {
	markets []domain.Market
	err     error
	calls   int
}

func (f *fakeMarketSource) GetAllOpenMarkets(_ context.Context) ([]domain.Market, error) {
	f.calls++
	return f.markets, f.err
}

type fakeBroadcaster struct {
	channels []string
	payloads [][]byte
}

func (f *fakeBroadcaster) Broadcast(channel string, payload []byte) {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload)
}

func TestGetLeagueMarkets_FiltersAndCaches(t *testing.T) {
	source := &fakeMarketSource{markets: []domain.Market{
		{Ticker: "KXLCK-1", Title: "LCK Summer Finals: T1 vs GenG"},
		{Ticker: "KXLEC-1", Title: "LEC Spring: G2 vs FNC"},
	}}
	svc := NewEsportsService(source, league.New(5*time.Minute, nil), nil, testLogger())

	got, err := svc.GetLeagueMarkets(context.Background(), domain.LeagueLCK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cached {
		t.Error("first request should not be a cache hit")
	}
	if len(got.Markets) != 1 || got.Markets[0].Ticker != "KXLCK-1" {
		t.Fatalf("expected only the LCK market, got %+v", got.Markets)
	}

	// Second request inside the TTL: served from cache, zero upstream calls.
	got, err = svc.GetLeagueMarkets(context.Background(), domain.LeagueLCK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Cached {
		t.Error("second request should be a cache hit")
	}
	if source.calls != 1 {
		t.Errorf("upstream called %d times, want 1", source.calls)
	}
}

func TestGetLeagueMarkets_UpstreamFailureCollapsesToEmpty(t *testing.T) {
	source := &fakeMarketSource{err: errors.New("connection reset")}
	svc := NewEsportsService(source, league.New(5*time.Minute, nil), nil, testLogger())

	got, err := svc.GetLeagueMarkets(context.Background(), domain.LeagueLPL)
	if err != nil {
		t.Fatalf("upstream failure must not propagate, got %v", err)
	}
	if got.Markets == nil || len(got.Markets) != 0 {
		t.Errorf("expected empty non-nil market list, got %#v", got.Markets)
	}

	// The error-tainted result must not be cached: the next request retries.
	svc.GetLeagueMarkets(context.Background(), domain.LeagueLPL)
	if source.calls != 2 {
		t.Errorf("upstream called %d times, want a retry on the second request", source.calls)
	}
}

func TestGetLeagueMarkets_ConfigErrorPropagates(t *testing.T) {
	source := &fakeMarketSource{err: domain.ErrNotConfigured}
	svc := NewEsportsService(source, league.New(5*time.Minute, nil), nil, testLogger())

	_, err := svc.GetLeagueMarkets(context.Background(), domain.LeagueLEC)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGetLeagueMarkets_BroadcastsFreshSnapshot(t *testing.T) {
	source := &fakeMarketSource{markets: []domain.Market{
		{Ticker: "KXLCK-1", Title: "LCK Summer Finals"},
	}}
	hub := &fakeBroadcaster{}
	svc := NewEsportsService(source, league.New(5*time.Minute, nil), hub, testLogger())

	svc.GetLeagueMarkets(context.Background(), domain.LeagueLCK)
	svc.GetLeagueMarkets(context.Background(), domain.LeagueLCK) // cache hit, no push

	if len(hub.channels) != 1 {
		t.Fatalf("expected exactly one broadcast, got %d", len(hub.channels))
	}
	if hub.channels[0] != "markets:LCK" {
		t.Errorf("broadcast channel = %q, want markets:LCK", hub.channels[0])
	}

	var snapshot LeagueMarkets
	if err := json.Unmarshal(hub.payloads[0], &snapshot); err != nil {
		t.Fatalf("broadcast payload is not valid JSON: %v", err)
	}
	if snapshot.League != domain.LeagueLCK || len(snapshot.Markets) != 1 {
		t.Errorf("unexpected broadcast snapshot: %+v", snapshot)
	}
}

func TestGetLeagueEvents_GroupsCachedSnapshot(t *testing.T) {
	source := &fakeMarketSource{markets: []domain.Market{
		{Ticker: "A", EventTicker: "LOLLCK-26JAN21-T1GENG", Title: "Winner", Subtitle: "LCK match"},
		{Ticker: "B", EventTicker: "LOLLCK-26JAN21-T1GENG", Title: "First blood", Subtitle: "LCK match"},
	}}
	svc := NewEsportsService(source, league.New(5*time.Minute, nil), nil, testLogger())

	got, err := svc.GetLeagueEvents(context.Background(), domain.LeagueLCK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Events) != 1 {
		t.Fatalf("expected one event group, got %d", len(got.Events))
	}
	if len(got.Events[0].Markets) != 2 {
		t.Errorf("expected both markets in the group, got %d", len(got.Events[0].Markets))
	}
	if got.Cached {
		t.Error("first grouped request should not be a cache hit")
	}
}
