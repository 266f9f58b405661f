package autotrade

// Status is the auto-trading engine's lifecycle state. Transitions:
// STOPPED -> RUNNING <-> PAUSED -> STOPPED. ERROR is a trap state reachable
// only from a failed Start.
type Status string

const (
	StatusStopped Status = "STOPPED"
	StatusRunning Status = "RUNNING"
	StatusPaused  Status = "PAUSED"
	StatusError   Status = "ERROR"
)

// StatusSnapshot is the engine state published to observers.
type StatusSnapshot struct {
	Status             Status   `json:"status"`
	StrategyCount      int      `json:"strategy_count"`
	EnabledInstruments []string `json:"enabled_instruments"`
	OrderCountToday    int      `json:"order_count_today"`
	SignalCount        int      `json:"signal_count"`
	InTradingWindow    bool     `json:"in_trading_window"`
}

// Statistics summarizes the session's signal flow.
type Statistics struct {
	TotalSignals     int `json:"total_signals"`
	BuySignals       int `json:"buy_signals"`
	SellSignals      int `json:"sell_signals"`
	OrderCountToday  int `json:"order_count_today"`
	ActiveStrategies int `json:"active_strategies"`
}
