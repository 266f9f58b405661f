package types

// Position represents the current holding of one instrument, including cost
// basis and unrealized pnl. A position exists only while quantity > 0; the
// venue deletes it the instant quantity returns to zero.
type Position struct {
	Instrument string  `yaml:"instrument" json:"instrument"`
	Quantity   float64 `yaml:"quantity" json:"quantity"`
	// AvailableQuantity is the portion of Quantity that can be sold right
	// now. The simulated venue settles T+0, so the two track together.
	AvailableQuantity float64 `yaml:"available_quantity" json:"available_quantity"`
	// AverageCost is the fee-inclusive weighted average cost per unit.
	AverageCost   float64 `yaml:"average_cost" json:"average_cost"`
	MarketValue   float64 `yaml:"market_value" json:"market_value"`
	UnrealizedPnL float64 `yaml:"unrealized_pnl" json:"unrealized_pnl"`
	// PnLRatio is the unrealized pnl over cost basis, in percent.
	PnLRatio float64 `yaml:"pnl_ratio" json:"pnl_ratio"`
}

// UpdateMarketValue marks the position to the given price. It never touches
// quantity or cost basis.
func (p *Position) UpdateMarketValue(price float64) {
	p.MarketValue = p.Quantity * price

	costBasis := p.Quantity * p.AverageCost
	if p.Quantity > 0 && p.AverageCost > 0 {
		p.UnrealizedPnL = p.MarketValue - costBasis
		p.PnLRatio = p.UnrealizedPnL / costBasis * 100
	} else {
		p.UnrealizedPnL = 0
		p.PnLRatio = 0
	}
}
