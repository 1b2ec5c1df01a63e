package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kalshme/kalshme/internal/domain"
	"github.com/kalshme/kalshme/internal/platform/kalshi"
)

type fakePortfolioSource struct {
	mu sync.Mutex

	positions    *kalshi.PositionsPage
	positionsErr error

	settlements    *kalshi.SettlementsPage
	settlementsErr error

	orders    *kalshi.OrdersPage
	ordersErr error

	markets     map[string]domain.Market
	marketCalls int
}

func (f *fakePortfolioSource) GetActivePositions(_ context.Context) (*kalshi.PositionsPage, error) {
	return f.positions, f.positionsErr
}

func (f *fakePortfolioSource) GetSettlements(_ context.Context, _ kalshi.SettlementsOptions) (*kalshi.SettlementsPage, error) {
	return f.settlements, f.settlementsErr
}

func (f *fakePortfolioSource) GetExecutedOrders(_ context.Context, _ int) (*kalshi.OrdersPage, error) {
	return f.orders, f.ordersErr
}

func (f *fakePortfolioSource) GetMarket(_ context.Context, ticker string) (*domain.Market, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marketCalls++

	m, ok := f.markets[ticker]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// fakeMarketCache is an in-memory domain.MarketCache.
type fakeMarketCache struct {
	mu      sync.Mutex
	entries map[string]domain.Market
	sets    int
}

func newFakeMarketCache() *fakeMarketCache {
	return &fakeMarketCache{entries: make(map[string]domain.Market)}
}

func (f *fakeMarketCache) Set(_ context.Context, m domain.Market) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[m.Ticker] = m
	f.sets++
	return nil
}

func (f *fakeMarketCache) Get(_ context.Context, ticker string) (domain.Market, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.entries[ticker]
	if !ok {
		return domain.Market{}, domain.ErrNotFound
	}
	return m, nil
}

func TestGetPositions_JoinsMarketDetails(t *testing.T) {
	source := &fakePortfolioSource{
		positions: &kalshi.PositionsPage{
			MarketPositions: []domain.MarketPosition{
				{Ticker: "KXLCK-1", Position: 10},
				{Ticker: "KXLCK-2", Position: -5},
			},
		},
		markets: map[string]domain.Market{
			"KXLCK-1": {Ticker: "KXLCK-1", Title: "Winner"},
			"KXLCK-2": {Ticker: "KXLCK-2", Title: "First blood"},
		},
	}
	svc := NewPortfolioService(source, nil, testLogger())

	got, err := svc.GetPositions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(got))
	}
	// Input order is preserved despite the concurrent join.
	if got[0].Ticker != "KXLCK-1" || got[1].Ticker != "KXLCK-2" {
		t.Errorf("position order not preserved: %+v", got)
	}
	for _, p := range got {
		if p.Market == nil || p.Market.Ticker != p.Ticker {
			t.Errorf("position %s missing its market detail", p.Ticker)
		}
	}
}

func TestGetPositions_NilMarketOnLookupFailure(t *testing.T) {
	source := &fakePortfolioSource{
		positions: &kalshi.PositionsPage{
			MarketPositions: []domain.MarketPosition{
				{Ticker: "KXLCK-1", Position: 10},
				{Ticker: "GONE", Position: 3},
			},
		},
		markets: map[string]domain.Market{
			"KXLCK-1": {Ticker: "KXLCK-1", Title: "Winner"},
		},
	}
	svc := NewPortfolioService(source, nil, testLogger())

	got, err := svc.GetPositions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Market == nil {
		t.Error("known market should have details")
	}
	if got[1].Market != nil {
		t.Error("failed lookup should leave Market nil, not drop the row")
	}
}

func TestGetPositions_UpstreamFailureCollapsesToEmpty(t *testing.T) {
	source := &fakePortfolioSource{positionsErr: errors.New("502 bad gateway")}
	svc := NewPortfolioService(source, nil, testLogger())

	got, err := svc.GetPositions(context.Background())
	if err != nil {
		t.Fatalf("upstream failure must not propagate, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestGetPositions_ConfigErrorPropagates(t *testing.T) {
	source := &fakePortfolioSource{positionsErr: domain.ErrNotConfigured}
	svc := NewPortfolioService(source, nil, testLogger())

	_, err := svc.GetPositions(context.Background())
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGetPositions_DetailCacheAvoidsRefetch(t *testing.T) {
	source := &fakePortfolioSource{
		positions: &kalshi.PositionsPage{
			MarketPositions: []domain.MarketPosition{{Ticker: "KXLCK-1", Position: 1}},
		},
		markets: map[string]domain.Market{
			"KXLCK-1": {Ticker: "KXLCK-1", Title: "Winner"},
		},
	}
	cache := newFakeMarketCache()
	svc := NewPortfolioService(source, cache, testLogger())

	if _, err := svc.GetPositions(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache back-fill, got %d", cache.sets)
	}

	if _, err := svc.GetPositions(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if source.marketCalls != 1 {
		t.Errorf("expected cached detail on second view, exchange hit %d times", source.marketCalls)
	}
}

func TestGetSettlements_JoinsMarketDetails(t *testing.T) {
	source := &fakePortfolioSource{
		settlements: &kalshi.SettlementsPage{
			Settlements: []domain.Settlement{
				{Ticker: "KXLCK-1", MarketResult: "yes"},
				{Ticker: "GONE", MarketResult: "no"},
			},
		},
		markets: map[string]domain.Market{
			"KXLCK-1": {Ticker: "KXLCK-1", Title: "Winner"},
		},
	}
	svc := NewPortfolioService(source, nil, testLogger())

	got, err := svc.GetSettlements(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(got))
	}
	if got[0].Market == nil || got[0].Market.Title != "Winner" {
		t.Errorf("settlement missing its market detail: %+v", got[0])
	}
	if got[1].Market != nil {
		t.Error("failed lookup should leave Market nil")
	}
}

func TestGetExecutedOrders_FailSoft(t *testing.T) {
	source := &fakePortfolioSource{ordersErr: errors.New("timeout")}
	svc := NewPortfolioService(source, nil, testLogger())

	got, err := svc.GetExecutedOrders(context.Background(), 100)
	if err != nil {
		t.Fatalf("upstream failure must not propagate, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestGetExecutedOrders_ReturnsOrders(t *testing.T) {
	source := &fakePortfolioSource{
		orders: &kalshi.OrdersPage{
			Orders: []domain.Order{{OrderID: "o1", Status: domain.OrderStatusExecuted}},
		},
	}
	svc := NewPortfolioService(source, nil, testLogger())

	got, err := svc.GetExecutedOrders(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].OrderID != "o1" {
		t.Errorf("unexpected orders: %+v", got)
	}
}
