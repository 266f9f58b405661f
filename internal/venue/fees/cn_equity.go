package fees

import (
	"github.com/shopspring/decimal"

	"github.com/quantara-lab/papertrade/internal/types"
)

// CNEquitySchedule models the A-share retail fee structure: a commission on
// both sides and a stamp duty charged on sells only.
type CNEquitySchedule struct {
	commissionRate decimal.Decimal
	stampDutyRate  decimal.Decimal
}

// NewCNEquitySchedule creates a CN equity fee schedule with the given rates.
func NewCNEquitySchedule(commissionRate, stampDutyRate float64) Schedule {
	return &CNEquitySchedule{
		commissionRate: decimal.NewFromFloat(commissionRate),
		stampDutyRate:  decimal.NewFromFloat(stampDutyRate),
	}
}

// Calculate returns the fee for the given trade amount. Decimal arithmetic
// keeps the rate multiplication exact before converting back to float64.
func (c *CNEquitySchedule) Calculate(side types.Side, amount float64) Fee {
	amountDec := decimal.NewFromFloat(amount)

	commission, _ := amountDec.Mul(c.commissionRate).Float64()

	stampDuty := 0.0
	if side == types.SideSell {
		stampDuty, _ = amountDec.Mul(c.stampDutyRate).Float64()
	}

	return Fee{
		Commission: commission,
		StampDuty:  stampDuty,
	}
}
