package domain

// MarketStatus represents the lifecycle state of a market. Transitions are
// owned by the exchange; this layer only reads markets and never writes back.
type MarketStatus string

const (
	MarketStatusUnopened MarketStatus = "unopened"
	MarketStatusOpen     MarketStatus = "open"
	MarketStatusPaused   MarketStatus = "paused"
	MarketStatusClosed   MarketStatus = "closed"
	MarketStatusSettled  MarketStatus = "settled"
)

// Market represents a single tradable market as returned by the exchange.
// Prices are integer cents in the 0-100 range. The struct is serialized
// as-is on our own API surface, so the JSON tags mirror the upstream wire
// format.
type Market struct {
	Ticker         string       `json:"ticker"`
	EventTicker    string       `json:"event_ticker"`
	MarketType     string       `json:"market_type,omitempty"`
	Title          string       `json:"title"`
	Subtitle       string       `json:"subtitle"`
	YesSubTitle    string       `json:"yes_sub_title,omitempty"`
	NoSubTitle     string       `json:"no_sub_title,omitempty"`
	Status         MarketStatus `json:"status"`
	YesBid         int64        `json:"yes_bid"`
	YesAsk         int64        `json:"yes_ask"`
	NoBid          int64        `json:"no_bid"`
	NoAsk          int64        `json:"no_ask"`
	LastPrice      int64        `json:"last_price"`
	Volume         int64        `json:"volume"`
	Volume24H      int64        `json:"volume_24h"`
	OpenInterest   int64        `json:"open_interest"`
	Liquidity      int64        `json:"liquidity"`
	Result         string       `json:"result"` // "yes", "no", "" while unsettled
	OpenTime       string       `json:"open_time"`
	CloseTime      string       `json:"close_time"`
	ExpirationTime string       `json:"expiration_time"`
}

// Event groups the markets that share a single real-world occasion, e.g. one
// esports match with all of its markets.
type Event struct {
	EventTicker  string   `json:"event_ticker"`
	SeriesTicker string   `json:"series_ticker"`
	Title        string   `json:"title"`
	SubTitle     string   `json:"sub_title"`
	Status       string   `json:"status,omitempty"`
	Category     string   `json:"category,omitempty"`
	Markets      []Market `json:"markets,omitempty"`
}
