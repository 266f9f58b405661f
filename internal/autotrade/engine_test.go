package autotrade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quantara-lab/papertrade/internal/engine"
	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/risk"
	"github.com/quantara-lab/papertrade/internal/types"
	"github.com/quantara-lab/papertrade/internal/venue"
	"github.com/quantara-lab/papertrade/internal/venue/fees"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

type AutoTradingEngineTestSuite struct {
	suite.Suite
	venue   *venue.SimulatedVenue
	trading *engine.TradingEngine
	auto    *AutoTradingEngine
	now     time.Time
}

func TestAutoTradingEngineSuite(t *testing.T) {
	suite.Run(t, new(AutoTradingEngineTestSuite))
}

func (suite *AutoTradingEngineTestSuite) SetupTest() {
	suite.buildEngine(DefaultConfig(), 100000)
}

// buildEngine wires a fresh venue, trading engine and auto-trading engine
// with a pinned clock inside the morning trading window.
func (suite *AutoTradingEngineTestSuite) buildEngine(config Config, initialCapital float64) {
	log := logger.NewNopLogger()
	suite.now = time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)

	clock := func() time.Time {
		return suite.now
	}

	suite.venue = venue.NewSimulatedVenue(initialCapital, fees.NewCNEquitySchedule(0.0003, 0.001), nil, log)
	suite.venue.SetClock(clock)

	suite.trading = engine.NewTradingEngine(suite.venue, risk.NewGate(risk.DefaultConfig(), log), log)
	suite.trading.SetClock(clock)

	auto, err := NewAutoTradingEngine(suite.trading, config, log)
	suite.Require().NoError(err)
	auto.SetClock(clock)

	suite.auto = auto
}

func (suite *AutoTradingEngineTestSuite) signal(side types.Side, instrument string, price float64) types.Signal {
	return types.Signal{
		Instrument: instrument,
		StrategyID: "ma_cross",
		Side:       side,
		Price:      price,
		Timestamp:  suite.now,
		Reason:     "test signal",
	}
}

func (suite *AutoTradingEngineTestSuite) startRunning() {
	suite.auto.AddStrategy("ma_cross", "600000", nil)
	suite.Require().NoError(suite.auto.Start())
}

func (suite *AutoTradingEngineTestSuite) TestStartRequiresMonitors() {
	err := suite.auto.Start()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoMonitors))
	suite.Equal(StatusStopped, suite.auto.Status())
}

func (suite *AutoTradingEngineTestSuite) TestStartTwiceFails() {
	suite.startRunning()

	err := suite.auto.Start()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeAlreadyRunning))
	suite.Equal(StatusRunning, suite.auto.Status())
}

func (suite *AutoTradingEngineTestSuite) TestStartWithEmptyVenueEntersErrorState() {
	suite.buildEngine(DefaultConfig(), 0)
	suite.auto.AddStrategy("ma_cross", "600000", nil)

	err := suite.auto.Start()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeVenueUnavailable))
	suite.Equal(StatusError, suite.auto.Status())
}

func (suite *AutoTradingEngineTestSuite) TestPauseResume() {
	suite.False(suite.auto.Pause())

	suite.startRunning()
	suite.True(suite.auto.Pause())
	suite.Equal(StatusPaused, suite.auto.Status())

	suite.False(suite.auto.Pause())

	suite.True(suite.auto.Resume())
	suite.Equal(StatusRunning, suite.auto.Status())

	suite.False(suite.auto.Resume())
}

func (suite *AutoTradingEngineTestSuite) TestStopFromAnyState() {
	suite.startRunning()
	suite.True(suite.auto.Pause())

	suite.auto.Stop()
	suite.Equal(StatusStopped, suite.auto.Status())

	suite.auto.Stop()
	suite.Equal(StatusStopped, suite.auto.Status())
}

func (suite *AutoTradingEngineTestSuite) TestInTradingWindow() {
	tests := []struct {
		clock string
		want  bool
	}{
		{"08:00", false},
		{"09:29", false},
		{"09:30", true},
		{"10:30", true},
		{"11:30", true},
		{"12:00", false},
		{"13:00", true},
		{"14:59", true},
		{"15:00", true},
		{"15:01", false},
	}

	for _, tc := range tests {
		suite.Run(tc.clock, func() {
			parsed, err := time.Parse("15:04", tc.clock)
			suite.Require().NoError(err)

			t := time.Date(2024, 1, 2, parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
			suite.Equal(tc.want, suite.auto.InTradingWindow(t))
		})
	}
}

func (suite *AutoTradingEngineTestSuite) TestProcessSignalNotRunning() {
	err := suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 10.0))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNotRunning))
	suite.Empty(suite.venue.GetOrders())
}

func (suite *AutoTradingEngineTestSuite) TestProcessSignalOutsideWindow() {
	suite.startRunning()
	suite.now = time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local)

	err := suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 10.0))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeOutsideTradingWindow))

	suite.Empty(suite.venue.GetOrders())
	suite.Equal(0, suite.auto.StatusSnapshot().OrderCountToday)
	suite.Empty(suite.auto.SignalHistory())
}

func (suite *AutoTradingEngineTestSuite) TestBuySignalSizedFromCash() {
	suite.startRunning()

	err := suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 10.0))
	suite.Require().NoError(err)

	// 20% of 100000 cash at 10.0 floors to 2000 shares.
	positions := suite.venue.GetPositions()
	suite.Require().Len(positions, 1)
	suite.Equal(2000.0, positions[0].Quantity)

	snapshot := suite.auto.StatusSnapshot()
	suite.Equal(1, snapshot.OrderCountToday)
	suite.Equal(1, snapshot.SignalCount)
}

func (suite *AutoTradingEngineTestSuite) TestDailyOrderLimit() {
	config := DefaultConfig()
	config.MaxOrdersPerDay = 1
	suite.buildEngine(config, 100000)
	suite.startRunning()

	suite.Require().NoError(suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 10.0)))

	err := suite.auto.ProcessSignal(suite.signal(types.SideBuy, "000001", 10.0))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeOrderLimitReached))
	suite.Contains(errors.Reason(err), "daily order limit")

	suite.Len(suite.venue.GetOrders(), 1)
	suite.Equal(1, suite.auto.StatusSnapshot().OrderCountToday)
}

func (suite *AutoTradingEngineTestSuite) TestBuySizedToZeroIsDropped() {
	suite.startRunning()

	// 20% of cash cannot afford one 100-share lot at this price.
	err := suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 500.0))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeZeroQuantity))

	suite.Empty(suite.venue.GetOrders())
	suite.Equal(0, suite.auto.StatusSnapshot().OrderCountToday)
}

func (suite *AutoTradingEngineTestSuite) TestBuyBelowMinTradeAmountIsDropped() {
	config := DefaultConfig()
	config.MinTradeAmount = 30000
	suite.buildEngine(config, 100000)
	suite.startRunning()

	err := suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 10.0))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeZeroQuantity))
	suite.Empty(suite.venue.GetOrders())
}

func (suite *AutoTradingEngineTestSuite) TestSellSignalWithoutPositionIsDropped() {
	suite.startRunning()

	err := suite.auto.ProcessSignal(suite.signal(types.SideSell, "600000", 10.0))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeZeroQuantity))

	suite.Empty(suite.venue.GetOrders())
	suite.Equal(0, suite.auto.StatusSnapshot().OrderCountToday)
}

func (suite *AutoTradingEngineTestSuite) TestSellSignalLiquidatesFullPosition() {
	suite.startRunning()

	suite.Require().NoError(suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 10.0)))

	err := suite.auto.ProcessSignal(suite.signal(types.SideSell, "600000", 11.0))
	suite.Require().NoError(err)

	suite.Empty(suite.venue.GetPositions())
	suite.Equal(2, suite.auto.StatusSnapshot().OrderCountToday)
}

func (suite *AutoTradingEngineTestSuite) TestSignalHistoryIsBounded() {
	config := DefaultConfig()
	config.MaxSignalHistory = 2
	suite.buildEngine(config, 100000)
	suite.startRunning()

	for _, instrument := range []string{"600000", "000001", "600519"} {
		suite.Require().NoError(suite.auto.ProcessSignal(suite.signal(types.SideBuy, instrument, 10.0)))
	}

	history := suite.auto.SignalHistory()
	suite.Require().Len(history, 2)
	suite.Equal("000001", history[0].Instrument)
	suite.Equal("600519", history[1].Instrument)
}

func (suite *AutoTradingEngineTestSuite) TestRemoveStrategy() {
	suite.auto.AddStrategy("ma_cross", "600000", map[string]string{"window": "20"})

	suite.Require().NoError(suite.auto.RemoveStrategy("ma_cross", "600000"))

	err := suite.auto.RemoveStrategy("ma_cross", "600000")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoMonitors))
}

func (suite *AutoTradingEngineTestSuite) TestStatusSnapshotAndStatistics() {
	suite.auto.AddStrategy("ma_cross", "600000", nil)
	suite.auto.AddStrategy("rsi", "000001", nil)
	suite.Require().NoError(suite.auto.Start())

	suite.Require().NoError(suite.auto.ProcessSignal(suite.signal(types.SideBuy, "600000", 10.0)))
	suite.Require().NoError(suite.auto.ProcessSignal(suite.signal(types.SideSell, "600000", 11.0)))

	snapshot := suite.auto.StatusSnapshot()
	suite.Equal(StatusRunning, snapshot.Status)
	suite.Equal(2, snapshot.StrategyCount)
	suite.Equal([]string{"000001", "600000"}, snapshot.EnabledInstruments)
	suite.Equal(2, snapshot.OrderCountToday)
	suite.True(snapshot.InTradingWindow)

	stats := suite.auto.GetStatistics()
	suite.Equal(2, stats.TotalSignals)
	suite.Equal(1, stats.BuySignals)
	suite.Equal(1, stats.SellSignals)
	suite.Equal(2, stats.ActiveStrategies)
}

func TestNewAutoTradingEngineRejectsBadWindows(t *testing.T) {
	log := logger.NewNopLogger()
	v := venue.NewSimulatedVenue(100000, fees.NewZeroSchedule(), nil, log)
	trading := engine.NewTradingEngine(v, risk.NewGate(risk.DefaultConfig(), log), log)

	config := DefaultConfig()
	config.TradingWindows = []Window{{Start: "15:00", End: "09:30"}}

	_, err := NewAutoTradingEngine(trading, config, log)
	if !errors.HasCode(err, errors.ErrCodeConfigInvalid) {
		t.Fatalf("expected config error, got %v", err)
	}
}
