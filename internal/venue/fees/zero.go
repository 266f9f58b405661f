package fees

import (
	"github.com/quantara-lab/papertrade/internal/types"
)

// ZeroSchedule implements Schedule with no fees on either side.
type ZeroSchedule struct{}

// NewZeroSchedule creates a new zero fee schedule.
func NewZeroSchedule() Schedule {
	return &ZeroSchedule{}
}

// Calculate returns a zero fee for any trade.
func (z *ZeroSchedule) Calculate(side types.Side, amount float64) Fee {
	return Fee{
		Commission: 0,
		StampDuty:  0,
	}
}
