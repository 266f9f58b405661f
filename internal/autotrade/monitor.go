package autotrade

import (
	"github.com/quantara-lab/papertrade/internal/types"
)

// StrategyMonitor pairs one strategy with one instrument. The engine tracks
// monitors to know which signals it is responsible for; signal generation
// itself happens in the external strategy layer.
type StrategyMonitor struct {
	StrategyID  string
	Instrument  string
	Params      map[string]string
	LastSignal  *types.Signal
	SignalCount int
	Active      bool
}

// NewStrategyMonitor creates an active monitor for the strategy-instrument pair.
func NewStrategyMonitor(strategyID, instrument string, params map[string]string) *StrategyMonitor {
	if params == nil {
		params = make(map[string]string)
	}

	return &StrategyMonitor{
		StrategyID:  strategyID,
		Instrument:  instrument,
		Params:      params,
		LastSignal:  nil,
		SignalCount: 0,
		Active:      true,
	}
}

// key identifies a monitor within the engine's registry.
func monitorKey(strategyID, instrument string) string {
	return strategyID + "_" + instrument
}
