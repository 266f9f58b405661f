// Package config loads and validates the core's configuration surface.
// Construction takes an explicit Config value; there is no process-wide
// configuration singleton.
package config

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v2"

	"github.com/quantara-lab/papertrade/internal/autotrade"
	"github.com/quantara-lab/papertrade/internal/risk"
	"github.com/quantara-lab/papertrade/internal/venue/fees"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

// Config is the full configuration surface consumed by the core.
type Config struct {
	// InitialCapital funds the simulated venue.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" validate:"gt=0"`
	// FeeSchedule selects the venue fee model.
	FeeSchedule fees.ScheduleType `yaml:"fee_schedule" json:"fee_schedule" validate:"required,oneof=cn_equity zero"`
	// CommissionRate applies to both sides of a trade.
	CommissionRate float64 `yaml:"commission_rate" json:"commission_rate" validate:"gte=0"`
	// StampDutyRate applies sell-side only.
	StampDutyRate float64 `yaml:"stamp_duty_rate" json:"stamp_duty_rate" validate:"gte=0"`
	// Risk configures the risk gate.
	Risk risk.Config `yaml:"risk" json:"risk"`
	// AutoTrade configures the auto-trading session rules.
	AutoTrade autotrade.Config `yaml:"auto_trade" json:"auto_trade"`
}

// DefaultConfig returns the configuration used when nothing is supplied.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 100000,
		FeeSchedule:    fees.ScheduleCNEquity,
		CommissionRate: 0.0003,
		StampDutyRate:  0.001,
		Risk:           risk.DefaultConfig(),
		AutoTrade:      autotrade.DefaultConfig(),
	}
}

// Parse unmarshals YAML over the defaults, so omitted fields keep their
// default values, then validates the result.
func Parse(data []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeConfigNotFound, err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid config", err)
	}

	return nil
}

// Schema returns the JSON schema of the configuration surface so outer
// layers can render configuration forms.
func Schema() (string, error) {
	schema := jsonschema.Reflect(&Config{})

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
