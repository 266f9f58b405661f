package fees

import (
	"github.com/quantara-lab/papertrade/internal/types"
)

// Fee is the cost breakdown for one fill.
type Fee struct {
	Commission float64
	StampDuty  float64
}

// Total returns the full deduction applied to the trade.
func (f Fee) Total() float64 {
	return f.Commission + f.StampDuty
}

// Schedule calculates the fee for a given trade amount and direction.
type Schedule interface {
	Calculate(side types.Side, amount float64) Fee
}

type ScheduleType string

const (
	ScheduleCNEquity ScheduleType = "cn_equity"
	ScheduleZero     ScheduleType = "zero"
)

var AllSchedules = []any{
	ScheduleCNEquity,
	ScheduleZero,
}

// GetScheduleHandler returns the fee schedule for the given type. The rates
// only apply to schedules that use them; unknown types fall back to zero fees.
func GetScheduleHandler(scheduleType ScheduleType, commissionRate, stampDutyRate float64) Schedule {
	switch scheduleType {
	case ScheduleCNEquity:
		return NewCNEquitySchedule(commissionRate, stampDutyRate)
	case ScheduleZero:
		return NewZeroSchedule()
	default:
		return NewZeroSchedule()
	}
}
