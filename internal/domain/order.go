package domain

// OrderSide is the contract side an order trades.
type OrderSide string

const (
	SideYes OrderSide = "yes"
	SideNo  OrderSide = "no"
)

// OrderAction distinguishes opening from closing trades.
type OrderAction string

const (
	ActionBuy  OrderAction = "buy"
	ActionSell OrderAction = "sell"
)

// OrderType is the execution style of an order.
type OrderType string

const (
	TypeLimit  OrderType = "limit"
	TypeMarket OrderType = "market"
)

// OrderStatus is the exchange-side state of an order.
type OrderStatus string

const (
	OrderStatusResting  OrderStatus = "resting"
	OrderStatusCanceled OrderStatus = "canceled"
	OrderStatusExecuted OrderStatus = "executed"
)

// Order is a read-only view of an order on the exchange. This layer never
// places or cancels orders.
type Order struct {
	OrderID            string      `json:"order_id"`
	ClientOrderID      string      `json:"client_order_id"`
	Ticker             string      `json:"ticker"`
	Side               OrderSide   `json:"side"`
	Action             OrderAction `json:"action"`
	Type               OrderType   `json:"type"`
	Status             OrderStatus `json:"status"`
	YesPrice           int64       `json:"yes_price"`
	NoPrice            int64       `json:"no_price"`
	YesPriceDollars    string      `json:"yes_price_dollars"`
	NoPriceDollars     string      `json:"no_price_dollars"`
	InitialCount       int64       `json:"initial_count"`
	FillCount          int64       `json:"fill_count"`
	RemainingCount     int64       `json:"remaining_count"`
	TakerFillCost      int64       `json:"taker_fill_cost"`
	MakerFillCost      int64       `json:"maker_fill_cost"`
	TakerFees          int64       `json:"taker_fees"`
	MakerFees          int64       `json:"maker_fees"`
	CreatedTime        string      `json:"created_time"`
	LastUpdateTime     string      `json:"last_update_time"`
	ExpirationTime     string      `json:"expiration_time"`
	CancelOrderOnPause bool        `json:"cancel_order_on_pause"`
}
