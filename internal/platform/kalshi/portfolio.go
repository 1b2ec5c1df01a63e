package kalshi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kalshme/kalshme/internal/domain"
)

// GetOrders fetches one page of the account's orders.
func (c *Client) GetOrders(ctx context.Context, opts OrdersOptions) (*OrdersPage, error) {
	query := url.Values{}

	if opts.Ticker != "" {
		query.Set("ticker", opts.Ticker)
	}
	if opts.EventTicker != "" {
		query.Set("event_ticker", opts.EventTicker)
	}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}
	if opts.MinTs > 0 {
		query.Set("min_ts", strconv.FormatInt(opts.MinTs, 10))
	}
	if opts.MaxTs > 0 {
		query.Set("max_ts", strconv.FormatInt(opts.MaxTs, 10))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var page OrdersPage
	if err := c.get(ctx, "/portfolio/orders", query, &page); err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return &page, nil
}

// GetExecutedOrders is GetOrders filtered server-side to executed orders.
func (c *Client) GetExecutedOrders(ctx context.Context, limit int) (*OrdersPage, error) {
	return c.GetOrders(ctx, OrdersOptions{
		Status: domain.OrderStatusExecuted,
		Limit:  limit,
	})
}

// GetPositions fetches one page of the account's positions.
func (c *Client) GetPositions(ctx context.Context, opts PositionsOptions) (*PositionsPage, error) {
	query := url.Values{}

	if opts.Ticker != "" {
		query.Set("ticker", opts.Ticker)
	}
	if opts.EventTicker != "" {
		query.Set("event_ticker", opts.EventTicker)
	}
	if opts.CountFilter != "" {
		query.Set("count_filter", opts.CountFilter)
	}
	if opts.SettlementStatus != "" {
		query.Set("settlement_status", opts.SettlementStatus)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var page PositionsPage
	if err := c.get(ctx, "/portfolio/positions", query, &page); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	return &page, nil
}

// GetActivePositions is GetPositions filtered server-side to non-zero
// holdings.
func (c *Client) GetActivePositions(ctx context.Context) (*PositionsPage, error) {
	return c.GetPositions(ctx, PositionsOptions{
		CountFilter: "position",
	})
}

// GetSettlements fetches one page of the account's settlements.
func (c *Client) GetSettlements(ctx context.Context, opts SettlementsOptions) (*SettlementsPage, error) {
	query := url.Values{}

	if opts.Ticker != "" {
		query.Set("ticker", opts.Ticker)
	}
	if opts.EventTicker != "" {
		query.Set("event_ticker", opts.EventTicker)
	}
	if opts.MinTs > 0 {
		query.Set("min_ts", strconv.FormatInt(opts.MinTs, 10))
	}
	if opts.MaxTs > 0 {
		query.Set("max_ts", strconv.FormatInt(opts.MaxTs, 10))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var page SettlementsPage
	if err := c.get(ctx, "/portfolio/settlements", query, &page); err != nil {
		return nil, fmt.Errorf("get settlements: %w", err)
	}
	return &page, nil
}
