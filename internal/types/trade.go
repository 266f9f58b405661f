package types

import "time"

// Trade is one executed fill. The simulated venue fills whole orders, so
// every trade covers its order's full quantity.
type Trade struct {
	TradeID    string  `csv:"trade_id"`
	OrderID    string  `csv:"order_id"`
	Instrument string  `csv:"instrument"`
	Side       Side    `csv:"side"`
	Quantity   float64 `csv:"quantity"`
	Price      float64 `csv:"price"`
	// Amount is Quantity * Price before fees.
	Amount     float64 `csv:"amount"`
	Commission float64 `csv:"commission"`
	StampDuty  float64 `csv:"stamp_duty"`
	// RealizedPnL is the fee-inclusive realized profit for sells, zero for buys.
	RealizedPnL float64   `csv:"realized_pnl"`
	ExecutedAt  time.Time `csv:"executed_at"`
}

// TradeFilter is used to filter trades when querying the journal.
type TradeFilter struct {
	// Instrument filters trades by instrument (empty string means no filter).
	Instrument string
	// Side filters trades by direction (empty means no filter).
	Side Side
	// StartTime filters trades executed at or after this time (zero time means no filter).
	StartTime time.Time
	// EndTime filters trades executed before this time (zero time means no filter).
	EndTime time.Time
	// Limit limits the number of trades returned (0 means no limit).
	Limit int
}
