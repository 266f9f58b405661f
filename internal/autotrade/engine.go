// Package autotrade converts strategy signals into trading-engine calls
// under session, time-window and sizing rules, and runs the background
// worker that republishes engine status.
package autotrade

import (
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quantara-lab/papertrade/internal/engine"
	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/types"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

// AutoTradingEngine owns the monitor set and the session counters. It never
// owns the ledger: all order effects go through the trading engine.
type AutoTradingEngine struct {
	mu      sync.Mutex
	trading *engine.TradingEngine
	config  Config
	windows []parsedWindow

	status          Status
	monitors        map[string]*StrategyMonitor
	orderCountToday int
	initialBalance  float64
	signalHistory   []types.Signal

	logger *logger.Logger
	clock  func() time.Time
}

// NewAutoTradingEngine creates an auto-trading engine in the STOPPED state.
func NewAutoTradingEngine(trading *engine.TradingEngine, config Config, log *logger.Logger) (*AutoTradingEngine, error) {
	if len(config.TradingWindows) == 0 {
		config.TradingWindows = DefaultConfig().TradingWindows
	}

	if config.MaxSignalHistory <= 0 {
		config.MaxSignalHistory = DefaultConfig().MaxSignalHistory
	}

	if config.LotSize <= 0 {
		config.LotSize = DefaultConfig().LotSize
	}

	windows, err := parseWindows(config.TradingWindows)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid trading windows", err)
	}

	return &AutoTradingEngine{
		mu:              sync.Mutex{},
		trading:         trading,
		config:          config,
		windows:         windows,
		status:          StatusStopped,
		monitors:        make(map[string]*StrategyMonitor),
		orderCountToday: 0,
		initialBalance:  0,
		signalHistory:   nil,
		logger:          log,
		clock:           time.Now,
	}, nil
}

// SetClock replaces the wall clock. Tests use this to place signals inside
// or outside the trading windows.
func (a *AutoTradingEngine) SetClock(clock func() time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.clock = clock
}

// AddStrategy registers a strategy-instrument monitor.
func (a *AutoTradingEngine) AddStrategy(strategyID, instrument string, params map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := monitorKey(strategyID, instrument)
	a.monitors[key] = NewStrategyMonitor(strategyID, instrument, params)

	a.logger.Info("Strategy monitor added",
		zap.String("strategy", strategyID),
		zap.String("instrument", instrument),
	)
}

// RemoveStrategy deregisters a monitor. Removing an unknown monitor is an error.
func (a *AutoTradingEngine) RemoveStrategy(strategyID, instrument string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := monitorKey(strategyID, instrument)
	if _, ok := a.monitors[key]; !ok {
		return errors.Newf(errors.ErrCodeNoMonitors, "no monitor for %s on %s", strategyID, instrument)
	}

	delete(a.monitors, key)

	a.logger.Info("Strategy monitor removed",
		zap.String("strategy", strategyID),
		zap.String("instrument", instrument),
	)

	return nil
}

// Start begins a session: it snapshots the initial balance and resets the
// daily counters. Start fails without a state change when no monitors are
// registered or the engine is already running. A venue that cannot report a
// usable balance moves the engine to ERROR.
func (a *AutoTradingEngine) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status == StatusRunning {
		return errors.New(errors.ErrCodeAlreadyRunning, "auto trading is already running")
	}

	if len(a.monitors) == 0 {
		return errors.New(errors.ErrCodeNoMonitors, "no strategy monitors registered")
	}

	account := a.trading.GetAccountInfo()
	if account.TotalAssets <= 0 {
		a.status = StatusError

		return errors.Newf(errors.ErrCodeVenueUnavailable, "venue reports no assets: %.2f", account.TotalAssets)
	}

	a.initialBalance = account.TotalAssets
	a.orderCountToday = 0
	a.trading.RiskGate().ResetDailyStatistics()
	a.status = StatusRunning

	a.logger.Info("Auto trading started",
		zap.Float64("initial_balance", a.initialBalance),
		zap.Int("monitors", len(a.monitors)),
	)

	return nil
}

// Stop ends the session from any state.
func (a *AutoTradingEngine) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.status = StatusStopped
	a.logger.Info("Auto trading stopped")
}

// Pause suspends a running session. Pausing any other state is a no-op
// reported as false.
func (a *AutoTradingEngine) Pause() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status != StatusRunning {
		return false
	}

	a.status = StatusPaused
	a.logger.Info("Auto trading paused")

	return true
}

// Resume continues a paused session.
func (a *AutoTradingEngine) Resume() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status != StatusPaused {
		return false
	}

	a.status = StatusRunning
	a.logger.Info("Auto trading resumed")

	return true
}

// Status returns the current lifecycle state.
func (a *AutoTradingEngine) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.status
}

// InTradingWindow reports whether t falls inside any configured window.
func (a *AutoTradingEngine) InTradingWindow(t time.Time) bool {
	for _, w := range a.windows {
		if w.contains(t) {
			return true
		}
	}

	return false
}

// ProcessSignal runs a signal through the admission pipeline and, when every
// stage passes, dispatches it to the trading engine. Each stage
// short-circuits: a dropped signal is never queued or replayed.
func (a *AutoTradingEngine) ProcessSignal(signal types.Signal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status != StatusRunning {
		a.logger.Debug("Signal dropped: engine not running",
			zap.String("instrument", signal.Instrument),
			zap.String("status", string(a.status)),
		)

		return errors.Newf(errors.ErrCodeNotRunning, "auto trading is %s", a.status)
	}

	now := a.clock()
	if !a.InTradingWindow(now) {
		a.logger.Debug("Signal dropped: outside trading window",
			zap.String("instrument", signal.Instrument),
			zap.Time("now", now),
		)

		return errors.New(errors.ErrCodeOutsideTradingWindow, "outside trading windows")
	}

	account := a.trading.GetAccountInfo()

	if err := a.checkSessionRisk(account); err != nil {
		a.logger.Warn("Signal dropped: session risk",
			zap.String("instrument", signal.Instrument),
			zap.String("reason", errors.Reason(err)),
		)

		return err
	}

	quantity := a.sizeOrder(signal, account)
	if quantity <= 0 {
		a.logger.Debug("Signal dropped: sized to zero",
			zap.String("instrument", signal.Instrument),
			zap.String("side", string(signal.Side)),
		)

		return errors.New(errors.ErrCodeZeroQuantity, "order sized to zero")
	}

	var err error

	switch signal.Side {
	case types.SideBuy:
		_, err = a.trading.Buy(signal.Instrument, quantity, signal.Price, types.OrderTypeLimit)
	case types.SideSell:
		_, err = a.trading.Sell(signal.Instrument, quantity, signal.Price, types.OrderTypeLimit)
	default:
		return errors.Newf(errors.ErrCodeInvalidSide, "unknown signal side: %s", signal.Side)
	}

	if err != nil {
		return err
	}

	a.orderCountToday++
	a.recordSignal(signal)

	a.logger.Info("Signal executed",
		zap.String("strategy", signal.StrategyID),
		zap.String("instrument", signal.Instrument),
		zap.String("side", string(signal.Side)),
		zap.Float64("quantity", quantity),
		zap.Float64("price", signal.Price),
	)

	return nil
}

// checkSessionRisk enforces the session counters. Caller holds the mutex.
func (a *AutoTradingEngine) checkSessionRisk(account types.AccountSnapshot) error {
	if a.orderCountToday >= a.config.MaxOrdersPerDay {
		return errors.Newf(errors.ErrCodeOrderLimitReached,
			"daily order limit reached (%d)", a.config.MaxOrdersPerDay)
	}

	if a.initialBalance > 0 {
		dailyLoss := (a.initialBalance - account.TotalAssets) / a.initialBalance
		if dailyLoss > a.config.DailyLossLimit {
			return errors.Newf(errors.ErrCodeDailyLossLimit,
				"daily loss limit reached (%.1f%%)", a.config.DailyLossLimit*100)
		}
	}

	if account.TotalAssets > 0 {
		positionRatio := account.MarketValue / account.TotalAssets
		if positionRatio >= a.config.MaxTotalPosition {
			return errors.Newf(errors.ErrCodePositionLimit,
				"total position limit reached (%.1f%%)", a.config.MaxTotalPosition*100)
		}
	}

	return nil
}

// sizeOrder converts a signal into an order quantity. Buys spend a capped
// share of cash floored to whole lots; sells liquidate the full available
// quantity, never a partial. Caller holds the mutex.
func (a *AutoTradingEngine) sizeOrder(signal types.Signal, account types.AccountSnapshot) float64 {
	if signal.Price <= 0 {
		return 0
	}

	switch signal.Side {
	case types.SideBuy:
		maxAmount := account.Cash * a.config.MaxPositionPerStock
		lots := math.Floor(maxAmount / signal.Price / a.config.LotSize)
		quantity := lots * a.config.LotSize

		if quantity*signal.Price < a.config.MinTradeAmount {
			return 0
		}

		return quantity

	case types.SideSell:
		for _, position := range a.trading.GetPositions() {
			if position.Instrument == signal.Instrument {
				return position.AvailableQuantity
			}
		}

		return 0

	default:
		return 0
	}
}

// recordSignal appends to the bounded history, evicting the oldest entries.
// Caller holds the mutex.
func (a *AutoTradingEngine) recordSignal(signal types.Signal) {
	key := monitorKey(signal.StrategyID, signal.Instrument)
	if monitor, ok := a.monitors[key]; ok {
		monitor.LastSignal = &signal
		monitor.SignalCount++
	}

	a.signalHistory = append(a.signalHistory, signal)
	if len(a.signalHistory) > a.config.MaxSignalHistory {
		a.signalHistory = a.signalHistory[len(a.signalHistory)-a.config.MaxSignalHistory:]
	}
}

// SignalHistory returns a copy of the bounded signal history, oldest first.
func (a *AutoTradingEngine) SignalHistory() []types.Signal {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := make([]types.Signal, len(a.signalHistory))
	copy(history, a.signalHistory)

	return history
}

// StatusSnapshot returns the engine state published to observers.
func (a *AutoTradingEngine) StatusSnapshot() StatusSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	instruments := make(map[string]struct{}, len(a.monitors))
	for _, monitor := range a.monitors {
		instruments[monitor.Instrument] = struct{}{}
	}

	enabled := make([]string, 0, len(instruments))
	for instrument := range instruments {
		enabled = append(enabled, instrument)
	}

	sort.Strings(enabled)

	return StatusSnapshot{
		Status:             a.status,
		StrategyCount:      len(a.monitors),
		EnabledInstruments: enabled,
		OrderCountToday:    a.orderCountToday,
		SignalCount:        len(a.signalHistory),
		InTradingWindow:    a.InTradingWindow(a.clock()),
	}
}

// GetStatistics summarizes the session's signal flow.
func (a *AutoTradingEngine) GetStatistics() Statistics {
	a.mu.Lock()
	defer a.mu.Unlock()

	buySignals := 0
	sellSignals := 0

	for _, signal := range a.signalHistory {
		switch signal.Side {
		case types.SideBuy:
			buySignals++
		case types.SideSell:
			sellSignals++
		}
	}

	activeStrategies := 0

	for _, monitor := range a.monitors {
		if monitor.Active {
			activeStrategies++
		}
	}

	return Statistics{
		TotalSignals:     len(a.signalHistory),
		BuySignals:       buySignals,
		SellSignals:      sellSignals,
		OrderCountToday:  a.orderCountToday,
		ActiveStrategies: activeStrategies,
	}
}
