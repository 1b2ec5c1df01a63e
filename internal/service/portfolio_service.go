package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kalshme/kalshme/internal/domain"
	"github.com/kalshme/kalshme/internal/platform/kalshi"
)

// maxDetailFetches caps the concurrent single-market lookups performed
// during the positions/settlements detail join.
const maxDetailFetches = 8

// PortfolioSource is the slice of the exchange client the portfolio service
// needs.
type PortfolioSource interface {
	GetActivePositions(ctx context.Context) (*kalshi.PositionsPage, error)
	GetSettlements(ctx context.Context, opts kalshi.SettlementsOptions) (*kalshi.SettlementsPage, error)
	GetExecutedOrders(ctx context.Context, limit int) (*kalshi.OrdersPage, error)
	GetMarket(ctx context.Context, ticker string) (*domain.Market, error)
}

// PortfolioService serves the account's positions, settlements, and executed
// orders, joining each row with its market details.
type PortfolioService struct {
	source  PortfolioSource
	markets domain.MarketCache
	logger  *slog.Logger
}

// NewPortfolioService creates a PortfolioService. markets is the optional
// market-detail cache; pass nil to look up every market on the exchange.
func NewPortfolioService(source PortfolioSource, markets domain.MarketCache, logger *slog.Logger) *PortfolioService {
	return &PortfolioService{
		source:  source,
		markets: markets,
		logger:  logger,
	}
}

// GetPositions returns the account's non-zero positions, each joined with
// its market. A failed market lookup leaves Market nil; the position row is
// still returned. Upstream failures other than missing credentials collapse
// to an empty list.
func (s *PortfolioService) GetPositions(ctx context.Context) ([]domain.PositionWithMarket, error) {
	page, err := s.source.GetActivePositions(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "portfolio: positions fetch failed",
			slog.String("error", err.Error()),
		)
		return []domain.PositionWithMarket{}, nil
	}

	results := make([]domain.PositionWithMarket, len(page.MarketPositions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDetailFetches)
	for i, mp := range page.MarketPositions {
		g.Go(func() error {
			results[i] = domain.PositionWithMarket{
				MarketPosition: mp,
				Market:         s.marketDetail(gctx, mp.Ticker),
			}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// GetSettlements returns the account's settlements, each joined with its
// market. Same fail-soft and nil-market semantics as GetPositions.
func (s *PortfolioService) GetSettlements(ctx context.Context) ([]domain.SettlementWithMarket, error) {
	page, err := s.source.GetSettlements(ctx, kalshi.SettlementsOptions{})
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "portfolio: settlements fetch failed",
			slog.String("error", err.Error()),
		)
		return []domain.SettlementWithMarket{}, nil
	}

	results := make([]domain.SettlementWithMarket, len(page.Settlements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDetailFetches)
	for i, st := range page.Settlements {
		g.Go(func() error {
			results[i] = domain.SettlementWithMarket{
				Settlement: st,
				Market:     s.marketDetail(gctx, st.Ticker),
			}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// GetExecutedOrders returns up to limit of the account's executed orders.
// Upstream failures other than missing credentials collapse to an empty
// list.
func (s *PortfolioService) GetExecutedOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	page, err := s.source.GetExecutedOrders(ctx, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "portfolio: orders fetch failed",
			slog.String("error", err.Error()),
		)
		return []domain.Order{}, nil
	}

	if page.Orders == nil {
		return []domain.Order{}, nil
	}
	return page.Orders, nil
}

// marketDetail looks up one market, consulting the detail cache first when
// one is configured. Every failure path returns nil; the caller renders the
// row without market details.
func (s *PortfolioService) marketDetail(ctx context.Context, ticker string) *domain.Market {
	if s.markets != nil {
		if m, err := s.markets.Get(ctx, ticker); err == nil {
			return &m
		}
	}

	m, err := s.source.GetMarket(ctx, ticker)
	if err != nil {
		s.logger.WarnContext(ctx, "portfolio: market detail lookup failed",
			slog.String("ticker", ticker),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if s.markets != nil {
		if err := s.markets.Set(ctx, *m); err != nil {
			s.logger.WarnContext(ctx, "portfolio: market cache set failed",
				slog.String("ticker", ticker),
				slog.String("error", err.Error()),
			)
		}
	}

	return m
}
