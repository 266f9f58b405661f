// Package risk implements the admission-control gate that can veto an order
// before it reaches the execution venue.
package risk

import (
	"sync"

	"go.uber.org/zap"

	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/types"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

// Config holds the gate's rule parameters.
type Config struct {
	// MinTradeAmount and MaxTradeAmount bound the notional of a single order.
	MinTradeAmount float64 `yaml:"min_trade_amount" json:"min_trade_amount"`
	MaxTradeAmount float64 `yaml:"max_trade_amount" json:"max_trade_amount"`
	// MaxPositionRatio caps one buy's notional as a share of total assets.
	MaxPositionRatio float64 `yaml:"max_position_ratio" json:"max_position_ratio"`
	// StopLossRatio and TakeProfitRatio are evaluated against the position's
	// pnl ratio on sells. They log, they do not block.
	StopLossRatio   float64 `yaml:"stop_loss_ratio" json:"stop_loss_ratio"`
	TakeProfitRatio float64 `yaml:"take_profit_ratio" json:"take_profit_ratio"`
	// MaxDailyLoss caps the session loss as a share of initial capital.
	MaxDailyLoss float64 `yaml:"max_daily_loss" json:"max_daily_loss"`
	// MaxDrawdown caps the decline from the session's running peak equity.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
}

// DefaultConfig returns the gate parameters used when none are configured.
func DefaultConfig() Config {
	return Config{
		MinTradeAmount:   1000,
		MaxTradeAmount:   50000,
		MaxPositionRatio: 0.3,
		StopLossRatio:    0.05,
		TakeProfitRatio:  0.10,
		MaxDailyLoss:     0.05,
		MaxDrawdown:      0.2,
	}
}

// Gate evaluates orders against a fixed rule pipeline. It is a function of
// its inputs plus small session state: the running peak equity and the daily
// pnl. The peak updates on every call, so repeated evaluation with the same
// snapshot is not free of side effects even when the verdict cannot change.
type Gate struct {
	mu          sync.Mutex
	config      Config
	dailyProfit float64
	peakEquity  float64
	suspended   bool
	logger      *logger.Logger
}

// NewGate creates a risk gate with the given parameters.
func NewGate(config Config, log *logger.Logger) *Gate {
	return &Gate{
		mu:          sync.Mutex{},
		config:      config,
		dailyProfit: 0,
		peakEquity:  0,
		suspended:   false,
		logger:      log,
	}
}

// CheckOrder runs the rule pipeline in fixed order; the first failing rule
// wins. A nil return means the order may proceed to the venue.
func (g *Gate) CheckOrder(order *types.Order, account types.AccountSnapshot, positions []types.Position) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.suspended {
		return errors.New(errors.ErrCodeTradingSuspended, "trading is suspended")
	}

	tradeAmount := order.Quantity * order.Price

	// 1. Trade amount bounds.
	if tradeAmount < g.config.MinTradeAmount {
		return errors.Newf(errors.ErrCodeTradeAmountTooSmall,
			"trade amount too small: %.2f < %.2f", tradeAmount, g.config.MinTradeAmount)
	}

	if tradeAmount > g.config.MaxTradeAmount {
		return errors.Newf(errors.ErrCodeTradeAmountTooLarge,
			"trade amount too large: %.2f > %.2f", tradeAmount, g.config.MaxTradeAmount)
	}

	// 2. Per-order position ratio, buys only.
	if order.Side == types.SideBuy && account.TotalAssets > 0 {
		positionRatio := tradeAmount / account.TotalAssets
		if positionRatio > g.config.MaxPositionRatio {
			return errors.Newf(errors.ErrCodePositionRatioTooHigh,
				"single-instrument position too large: %.1f%% > %.1f%%",
				positionRatio*100, g.config.MaxPositionRatio*100)
		}
	}

	// 3. Stop-loss / take-profit, sells only. Observed and logged, never
	// blocking: enforcement is left to the strategy layer.
	if order.Side == types.SideSell {
		for i := range positions {
			if positions[i].Instrument != order.Instrument {
				continue
			}

			if positions[i].PnLRatio < -g.config.StopLossRatio*100 {
				g.logger.Warn("Stop loss level reached",
					zap.String("instrument", order.Instrument),
					zap.Float64("pnl_ratio", positions[i].PnLRatio),
				)
			}

			if positions[i].PnLRatio > g.config.TakeProfitRatio*100 {
				g.logger.Info("Take profit level reached",
					zap.String("instrument", order.Instrument),
					zap.Float64("pnl_ratio", positions[i].PnLRatio),
				)
			}

			break
		}
	}

	// 4. Session daily loss.
	if g.dailyProfit < -account.InitialCapital*g.config.MaxDailyLoss {
		return errors.Newf(errors.ErrCodeDailyLossExceeded,
			"daily loss limit reached: %.2f", g.dailyProfit)
	}

	// 5. Drawdown against the running peak. The peak moves up here even when
	// every other rule passes.
	currentEquity := account.TotalAssets
	if g.peakEquity < currentEquity {
		g.peakEquity = currentEquity
	}

	if g.peakEquity > 0 {
		drawdown := (g.peakEquity - currentEquity) / g.peakEquity
		if drawdown > g.config.MaxDrawdown {
			return errors.Newf(errors.ErrCodeDrawdownExceeded,
				"drawdown limit reached: %.1f%% > %.1f%%", drawdown*100, g.config.MaxDrawdown*100)
		}
	}

	return nil
}

// UpdateDailyProfit records the session's current pnl for rule 4.
func (g *Gate) UpdateDailyProfit(profit float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dailyProfit = profit
}

// ResetDailyStatistics clears the daily pnl at a session boundary.
func (g *Gate) ResetDailyStatistics() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dailyProfit = 0
}

// Suspend blocks all orders until Resume is called.
func (g *Gate) Suspend() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.suspended = true
	g.logger.Warn("Trading suspended")
}

// Resume lifts a suspension.
func (g *Gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.suspended = false
	g.logger.Info("Trading resumed")
}

// Suspended reports whether the gate is currently rejecting everything.
func (g *Gate) Suspended() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.suspended
}
