package domain

// MarketPosition is the holding in a single market. Position is a signed
// contract count: positive means long YES, negative means long NO. Monetary
// fields come in both integer cents and decimal-string dollar form, matching
// the upstream wire format.
type MarketPosition struct {
	Ticker                string `json:"ticker"`
	Position              int64  `json:"position"`
	MarketExposure        int64  `json:"market_exposure"`
	MarketExposureDollars string `json:"market_exposure_dollars"`
	RealizedPnl           int64  `json:"realized_pnl"`
	RealizedPnlDollars    string `json:"realized_pnl_dollars"`
	TotalTradedCents      int64  `json:"total_traded"`
	TotalTradedDollars    string `json:"total_traded_dollars"`
	FeesPaid              int64  `json:"fees_paid"`
	FeesPaidDollars       string `json:"fees_paid_dollars"`
	RestingOrdersCount    int64  `json:"resting_orders_count"`
	LastUpdatedTs         string `json:"last_updated_ts"`
}

// EventPosition aggregates exposure across every market of one event.
type EventPosition struct {
	EventTicker       string `json:"event_ticker"`
	EventExposure     int64  `json:"event_exposure"`
	RealizedPnl       int64  `json:"realized_pnl"`
	TotalCost         int64  `json:"total_cost"`
	RestingOrderCount int64  `json:"resting_order_count"`
}

// PositionWithMarket joins a market position with the market it is held in.
// Market is nil when the detail lookup failed; the position itself is still
// shown.
type PositionWithMarket struct {
	MarketPosition
	Market *Market `json:"market"`
}

// Settlement is a closed-out position snapshot produced when a market
// settles.
type Settlement struct {
	Ticker         string `json:"ticker"`
	MarketResult   string `json:"market_result"` // "yes" or "no"
	YesCount       int64  `json:"yes_count"`
	NoCount        int64  `json:"no_count"`
	YesTotalCost   int64  `json:"yes_total_cost"`
	NoTotalCost    int64  `json:"no_total_cost"`
	Revenue        int64  `json:"revenue"`
	RevenueDollars string `json:"revenue_dollars"`
	FeeCost        int64  `json:"fee_cost"`
	SettledTime    string `json:"settled_time"`
}

// SettlementWithMarket joins a settlement with its market, nil on lookup
// failure.
type SettlementWithMarket struct {
	Settlement
	Market *Market `json:"market"`
}
