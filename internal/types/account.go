package types

// AccountSnapshot is the account state at one evaluation instant. It is
// always derived from cash plus open positions when queried, never held as
// separate mutable state, so it cannot go stale: Cash + MarketValue ==
// TotalAssets holds by construction.
type AccountSnapshot struct {
	// Cash is the settled cash balance.
	Cash float64 `yaml:"cash" json:"cash"`
	// MarketValue is the summed market value of all open positions.
	MarketValue float64 `yaml:"market_value" json:"market_value"`
	// TotalAssets is Cash + MarketValue.
	TotalAssets    float64 `yaml:"total_assets" json:"total_assets"`
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	TotalProfit    float64 `yaml:"total_profit" json:"total_profit"`
	// TotalProfitRatio is TotalProfit over InitialCapital, in percent.
	TotalProfitRatio float64 `yaml:"total_profit_ratio" json:"total_profit_ratio"`
	PositionCount    int     `yaml:"position_count" json:"position_count"`
}
