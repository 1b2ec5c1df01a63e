package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kalshme/kalshme/internal/domain"
)

const marketTTL = 5 * time.Minute

// MarketCache implements domain.MarketCache using JSON-serialized market
// details keyed by exchange ticker. It sits in front of the single-market
// accessor so the portfolio detail join does not hammer the exchange for
// markets that rarely change within a viewing session.
//
// Key schema:
//
//	market:{ticker} - JSON-encoded domain.Market
type MarketCache struct {
	rdb *redis.Client
}

// NewMarketCache creates a MarketCache backed by the given Client.
func NewMarketCache(c *Client) *MarketCache {
	return &MarketCache{rdb: c.Underlying()}
}

func marketKey(ticker string) string { return "market:" + ticker }

// Set stores a market with a 5-minute TTL.
func (mc *MarketCache) Set(ctx context.Context, market domain.Market) error {
	data, err := json.Marshal(market)
	if err != nil {
		return fmt.Errorf("redis: marshal market %s: %w", market.Ticker, err)
	}

	if err := mc.rdb.Set(ctx, marketKey(market.Ticker), data, marketTTL).Err(); err != nil {
		return fmt.Errorf("redis: set market %s: %w", market.Ticker, err)
	}
	return nil
}

// Get retrieves a market by ticker. It returns domain.ErrNotFound when no
// entry exists or the entry has expired.
func (mc *MarketCache) Get(ctx context.Context, ticker string) (domain.Market, error) {
	data, err := mc.rdb.Get(ctx, marketKey(ticker)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Market{}, domain.ErrNotFound
		}
		return domain.Market{}, fmt.Errorf("redis: get market %s: %w", ticker, err)
	}

	var market domain.Market
	if err := json.Unmarshal(data, &market); err != nil {
		return domain.Market{}, fmt.Errorf("redis: unmarshal market %s: %w", ticker, err)
	}
	return market, nil
}

// Compile-time interface check.
var _ domain.MarketCache = (*MarketCache)(nil)
