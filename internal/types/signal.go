package types

import "time"

// Signal is a strategy-produced trade intent. Signals are external input:
// the core makes no assumption about how or when a strategy generates them,
// it only consumes them through the auto-trading pipeline.
type Signal struct {
	// Instrument is the instrument the signal targets.
	Instrument string
	// StrategyID identifies the strategy that produced the signal.
	StrategyID string
	// Side is the intended direction.
	Side Side
	// Price is the strategy's reference price for the trade.
	Price float64
	// Quantity is the strategy's suggested quantity. The auto-trading
	// engine re-sizes the order and ignores this for buys.
	Quantity float64
	// Timestamp is when the strategy produced the signal.
	Timestamp time.Time
	// Reason is a free-form explanation carried along for the journal.
	Reason string
}
