package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantara-lab/papertrade/internal/venue/fees"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestParseEmptyKeepsDefaults() {
	config, err := Parse([]byte(""))
	suite.Require().NoError(err)

	suite.Equal(100000.0, config.InitialCapital)
	suite.Equal(fees.ScheduleCNEquity, config.FeeSchedule)
	suite.Equal(0.0003, config.CommissionRate)
	suite.Equal(0.001, config.StampDutyRate)
	suite.Equal(1000.0, config.Risk.MinTradeAmount)
	suite.Equal(20, config.AutoTrade.MaxOrdersPerDay)
}

func (suite *ConfigTestSuite) TestParseOverridesDefaults() {
	yaml := `
initial_capital: 500000
fee_schedule: zero
risk:
  max_trade_amount: 100000
auto_trade:
  max_orders_per_day: 5
  trading_windows:
    - start: "09:30"
      end: "15:00"
`

	config, err := Parse([]byte(yaml))
	suite.Require().NoError(err)

	suite.Equal(500000.0, config.InitialCapital)
	suite.Equal(fees.ScheduleZero, config.FeeSchedule)
	suite.Equal(100000.0, config.Risk.MaxTradeAmount)
	suite.Equal(5, config.AutoTrade.MaxOrdersPerDay)
	suite.Require().Len(config.AutoTrade.TradingWindows, 1)
	suite.Equal("09:30", config.AutoTrade.TradingWindows[0].Start)
}

func (suite *ConfigTestSuite) TestParseRejectsInvalidValues() {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "non-positive initial capital",
			yaml: "initial_capital: 0",
		},
		{
			name: "unknown fee schedule",
			yaml: "fee_schedule: flat",
		},
		{
			name: "negative commission rate",
			yaml: "commission_rate: -0.001",
		},
		{
			name: "malformed yaml",
			yaml: "initial_capital: [",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := Parse([]byte(tc.yaml))
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeConfigInvalid))
		})
	}
}

func (suite *ConfigTestSuite) TestLoad() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("initial_capital: 250000"), 0o644))

	config, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(250000.0, config.InitialCapital)
}

func (suite *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeConfigNotFound))
}

func (suite *ConfigTestSuite) TestSchema() {
	schema, err := Schema()
	suite.Require().NoError(err)
	suite.Contains(schema, "initial_capital")
	suite.Contains(schema, "fee_schedule")
	suite.Contains(schema, "max_orders_per_day")
}
