package autotrade

import (
	"fmt"
	"time"
)

// Window is one intraday trading window in "HH:MM" wall-clock terms.
type Window struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Config holds the auto-trading session parameters.
type Config struct {
	// MaxPositionPerStock sizes a buy as a share of available cash.
	MaxPositionPerStock float64 `yaml:"max_position_per_stock" json:"max_position_per_stock"`
	// MaxTotalPosition caps market value as a share of total assets.
	MaxTotalPosition float64 `yaml:"max_total_position" json:"max_total_position"`
	// MinTradeAmount drops buys whose sized notional falls below it.
	MinTradeAmount float64 `yaml:"min_trade_amount" json:"min_trade_amount"`
	// DailyLossLimit caps the session loss as a share of the session's
	// initial balance.
	DailyLossLimit float64 `yaml:"daily_loss_limit" json:"daily_loss_limit"`
	// MaxOrdersPerDay caps dispatched orders per session.
	MaxOrdersPerDay int `yaml:"max_orders_per_day" json:"max_orders_per_day"`
	// TradingWindows are the wall-clock windows during which signals are
	// accepted. Signals outside every window are dropped, never queued.
	TradingWindows []Window `yaml:"trading_windows" json:"trading_windows"`
	// MaxSignalHistory bounds the in-memory signal history ring.
	MaxSignalHistory int `yaml:"max_signal_history" json:"max_signal_history"`
	// LotSize is the round-lot unit buys are floored to.
	LotSize float64 `yaml:"lot_size" json:"lot_size"`
}

// DefaultConfig returns the session parameters used when none are configured:
// the A-share morning and afternoon sessions, 100-share lots.
func DefaultConfig() Config {
	return Config{
		MaxPositionPerStock: 0.2,
		MaxTotalPosition:    0.8,
		MinTradeAmount:      1000,
		DailyLossLimit:      0.05,
		MaxOrdersPerDay:     20,
		TradingWindows: []Window{
			{Start: "09:30", End: "11:30"},
			{Start: "13:00", End: "15:00"},
		},
		MaxSignalHistory: 1000,
		LotSize:          100,
	}
}

// parsedWindow is a window in minutes since midnight.
type parsedWindow struct {
	start int
	end   int
}

func parseWindows(windows []Window) ([]parsedWindow, error) {
	parsed := make([]parsedWindow, 0, len(windows))

	for _, w := range windows {
		start, err := parseClock(w.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid window start %q: %w", w.Start, err)
		}

		end, err := parseClock(w.End)
		if err != nil {
			return nil, fmt.Errorf("invalid window end %q: %w", w.End, err)
		}

		if end <= start {
			return nil, fmt.Errorf("window end %q is not after start %q", w.End, w.Start)
		}

		parsed = append(parsed, parsedWindow{start: start, end: end})
	}

	return parsed, nil
}

func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}

	return t.Hour()*60 + t.Minute(), nil
}

// contains reports whether the wall-clock time t falls inside the window,
// boundaries inclusive.
func (w parsedWindow) contains(t time.Time) bool {
	minutes := t.Hour()*60 + t.Minute()

	return minutes >= w.start && minutes <= w.end
}
