package kalshi

import "github.com/kalshme/kalshme/internal/domain"

// ErrorResponse is the exchange API error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --------------------------------------------------------------------------
// List options. Zero-valued fields are omitted from the query string.
// --------------------------------------------------------------------------

// MarketsOptions filters a markets page.
type MarketsOptions struct {
	EventTicker  string
	SeriesTicker string
	Status       string
	Tickers      []string
	MinCloseTs   int64
	MaxCloseTs   int64
	Limit        int
	Cursor       string
}

// EventsOptions filters an events page.
type EventsOptions struct {
	SeriesTicker      string
	Status            string
	WithNestedMarkets bool
	Limit             int
	Cursor            string
}

// OrdersOptions filters an orders page.
type OrdersOptions struct {
	Ticker      string
	EventTicker string
	Status      domain.OrderStatus
	MinTs       int64
	MaxTs       int64
	Limit       int
	Cursor      string
}

// PositionsOptions filters a positions page. CountFilter="position" restricts
// the response to non-zero holdings.
type PositionsOptions struct {
	Ticker           string
	EventTicker      string
	CountFilter      string
	SettlementStatus string
	Limit            int
	Cursor           string
}

// SettlementsOptions filters a settlements page.
type SettlementsOptions struct {
	Ticker      string
	EventTicker string
	MinTs       int64
	MaxTs       int64
	Limit       int
	Cursor      string
}

// --------------------------------------------------------------------------
// Page envelopes. An empty Cursor signals no further pages.
// --------------------------------------------------------------------------

// MarketsPage is one page of markets.
type MarketsPage struct {
	Markets []domain.Market `json:"markets"`
	Cursor  string          `json:"cursor"`
}

// EventsPage is one page of events.
type EventsPage struct {
	Events []domain.Event `json:"events"`
	Cursor string         `json:"cursor"`
}

// OrdersPage is one page of orders.
type OrdersPage struct {
	Orders []domain.Order `json:"orders"`
	Cursor string         `json:"cursor"`
}

// PositionsPage is one page of positions. The exchange returns event-level
// and market-level positions side by side.
type PositionsPage struct {
	EventPositions  []domain.EventPosition  `json:"event_positions"`
	MarketPositions []domain.MarketPosition `json:"market_positions"`
	Cursor          string                  `json:"cursor"`
}

// SettlementsPage is one page of settlements.
type SettlementsPage struct {
	Settlements []domain.Settlement `json:"settlements"`
	Cursor      string              `json:"cursor"`
}
