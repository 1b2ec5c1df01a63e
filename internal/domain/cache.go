package domain

import "context"

// MarketCache provides fast market-detail lookups keyed by ticker. Used by
// the portfolio detail join so repeated views do not refetch unchanged
// markets from the exchange. Entries age out by TTL; nothing in this layer
// writes markets, so there is no invalidation path.
type MarketCache interface {
	Set(ctx context.Context, market Market) error
	Get(ctx context.Context, ticker string) (Market, error)
}
