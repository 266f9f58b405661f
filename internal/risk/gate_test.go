package risk

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/types"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

type GateTestSuite struct {
	suite.Suite
	gate *Gate
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (suite *GateTestSuite) SetupTest() {
	suite.gate = NewGate(DefaultConfig(), logger.NewNopLogger())
}

func (suite *GateTestSuite) account() types.AccountSnapshot {
	return types.AccountSnapshot{
		Cash:           100000,
		MarketValue:    0,
		TotalAssets:    100000,
		InitialCapital: 100000,
	}
}

func (suite *GateTestSuite) order(side types.Side, quantity, price float64) *types.Order {
	return &types.Order{
		ID:         "BUY_20240102100000_1",
		Instrument: "600000",
		Side:       side,
		Type:       types.OrderTypeLimit,
		Quantity:   quantity,
		Price:      price,
		Status:     types.OrderStatusPending,
	}
}

func (suite *GateTestSuite) TestAmountBounds() {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		wantCode errors.ErrorCode
		wantPass bool
	}{
		{
			name:     "below minimum",
			quantity: 50,
			price:    10.0,
			wantCode: errors.ErrCodeTradeAmountTooSmall,
		},
		{
			name:     "at minimum",
			quantity: 100,
			price:    10.0,
			wantPass: true,
		},
		{
			name:     "within bounds",
			quantity: 2000,
			price:    10.0,
			wantPass: true,
		},
		{
			name:     "above maximum",
			quantity: 6000,
			price:    10.0,
			wantCode: errors.ErrCodeTradeAmountTooLarge,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := suite.gate.CheckOrder(suite.order(types.SideBuy, tc.quantity, tc.price), suite.account(), nil)
			if tc.wantPass {
				suite.NoError(err)
			} else {
				suite.Require().Error(err)
				suite.True(errors.HasCode(err, tc.wantCode))
			}
		})
	}
}

func (suite *GateTestSuite) TestBuyPositionRatio() {
	// 40000 / 100000 exceeds the 30% cap but stays inside the amount bounds.
	gate := NewGate(Config{
		MinTradeAmount:   1000,
		MaxTradeAmount:   500000,
		MaxPositionRatio: 0.3,
		StopLossRatio:    0.05,
		TakeProfitRatio:  0.10,
		MaxDailyLoss:     0.05,
		MaxDrawdown:      0.2,
	}, logger.NewNopLogger())

	err := gate.CheckOrder(suite.order(types.SideBuy, 4000, 10.0), suite.account(), nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodePositionRatioTooHigh))

	// The same notional on a sell is not subject to the ratio rule.
	err = gate.CheckOrder(suite.order(types.SideSell, 4000, 10.0), suite.account(), []types.Position{
		{Instrument: "600000", Quantity: 4000, AvailableQuantity: 4000, AverageCost: 10.0},
	})
	suite.NoError(err)
}

func (suite *GateTestSuite) TestStopLossDoesNotBlockSell() {
	positions := []types.Position{
		{
			Instrument:        "600000",
			Quantity:          1000,
			AvailableQuantity: 1000,
			AverageCost:       10.0,
			MarketValue:       9000,
			UnrealizedPnL:     -1000,
			PnLRatio:          -10,
		},
	}

	err := suite.gate.CheckOrder(suite.order(types.SideSell, 1000, 9.0), suite.account(), positions)
	suite.NoError(err)
}

func (suite *GateTestSuite) TestDailyLossLimit() {
	suite.gate.UpdateDailyProfit(-6000)

	err := suite.gate.CheckOrder(suite.order(types.SideBuy, 1000, 10.0), suite.account(), nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDailyLossExceeded))

	suite.gate.ResetDailyStatistics()
	suite.NoError(suite.gate.CheckOrder(suite.order(types.SideBuy, 1000, 10.0), suite.account(), nil))
}

func (suite *GateTestSuite) TestDrawdownAgainstRunningPeak() {
	high := suite.account()
	suite.Require().NoError(suite.gate.CheckOrder(suite.order(types.SideBuy, 1000, 10.0), high, nil))

	low := types.AccountSnapshot{
		Cash:           70000,
		TotalAssets:    70000,
		InitialCapital: 100000,
	}

	err := suite.gate.CheckOrder(suite.order(types.SideBuy, 1000, 10.0), low, nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDrawdownExceeded))

	// The peak never moves down, so recovering to a smaller drawdown passes
	// while the old peak still anchors the calculation.
	mid := types.AccountSnapshot{
		Cash:           90000,
		TotalAssets:    90000,
		InitialCapital: 100000,
	}
	suite.NoError(suite.gate.CheckOrder(suite.order(types.SideBuy, 1000, 10.0), mid, nil))
}

func (suite *GateTestSuite) TestSuspendResume() {
	suite.False(suite.gate.Suspended())

	suite.gate.Suspend()
	suite.True(suite.gate.Suspended())

	err := suite.gate.CheckOrder(suite.order(types.SideBuy, 1000, 10.0), suite.account(), nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeTradingSuspended))

	suite.gate.Resume()
	suite.False(suite.gate.Suspended())
	suite.NoError(suite.gate.CheckOrder(suite.order(types.SideBuy, 1000, 10.0), suite.account(), nil))
}
