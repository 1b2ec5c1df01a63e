package kalshi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/kalshme/kalshme/internal/domain"
)

// GetMarkets fetches one page of markets.
func (c *Client) GetMarkets(ctx context.Context, opts MarketsOptions) (*MarketsPage, error) {
	query := url.Values{}

	if opts.EventTicker != "" {
		query.Set("event_ticker", opts.EventTicker)
	}
	if opts.SeriesTicker != "" {
		query.Set("series_ticker", opts.SeriesTicker)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if len(opts.Tickers) > 0 {
		query.Set("tickers", strings.Join(opts.Tickers, ","))
	}
	if opts.MinCloseTs > 0 {
		query.Set("min_close_ts", strconv.FormatInt(opts.MinCloseTs, 10))
	}
	if opts.MaxCloseTs > 0 {
		query.Set("max_close_ts", strconv.FormatInt(opts.MaxCloseTs, 10))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var page MarketsPage
	if err := c.get(ctx, "/markets", query, &page); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}
	return &page, nil
}

// GetAllOpenMarkets walks the cursor chain and returns every open market.
// The walk stops on an empty cursor, an empty page, or after
// maxCollectionPages pages, whichever comes first. A partial result is
// returned alongside any page error so callers can decide how soft to fail.
func (c *Client) GetAllOpenMarkets(ctx context.Context) ([]domain.Market, error) {
	opts := MarketsOptions{
		Status: "open",
		Limit:  200,
	}

	var all []domain.Market
	for page := 0; page < maxCollectionPages; page++ {
		resp, err := c.GetMarkets(ctx, opts)
		if err != nil {
			return all, err
		}

		all = append(all, resp.Markets...)

		if resp.Cursor == "" || len(resp.Markets) == 0 {
			return all, nil
		}
		opts.Cursor = resp.Cursor
	}

	c.logger.WarnContext(ctx, "kalshi: open-market walk hit page ceiling, result truncated",
		slog.Int("pages", maxCollectionPages),
		slog.Int("markets", len(all)),
	)
	return all, nil
}

// GetMarket fetches a single market by ticker.
func (c *Client) GetMarket(ctx context.Context, ticker string) (*domain.Market, error) {
	var resp struct {
		Market domain.Market `json:"market"`
	}
	if err := c.get(ctx, "/markets/"+url.PathEscape(ticker), nil, &resp); err != nil {
		return nil, fmt.Errorf("get market %s: %w", ticker, err)
	}
	return &resp.Market, nil
}

// GetEvents fetches one page of events.
func (c *Client) GetEvents(ctx context.Context, opts EventsOptions) (*EventsPage, error) {
	query := url.Values{}

	if opts.SeriesTicker != "" {
		query.Set("series_ticker", opts.SeriesTicker)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.WithNestedMarkets {
		query.Set("with_nested_markets", "true")
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var page EventsPage
	if err := c.get(ctx, "/events", query, &page); err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	return &page, nil
}
