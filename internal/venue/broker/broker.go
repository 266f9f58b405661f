// Package broker holds the real-brokerage adapters. Every adapter satisfies
// the venue.ExecutionVenue capability so the trading engine can swap the
// simulated venue for a live one without changing call sites. The wire
// protocols themselves are not implemented: adapters reject every order
// until a brokerage SDK is plugged in.
package broker

import (
	"fmt"
)

type BrokerType string

const (
	BrokerEastMoney BrokerType = "eastmoney"
	BrokerCitic     BrokerType = "citic"
	BrokerHuatai    BrokerType = "huatai"
)

// Info is the UI-facing metadata for a broker adapter.
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Implemented bool   `json:"implemented"`
}

var brokerRegistry = map[BrokerType]Info{
	BrokerEastMoney: {
		Name:        string(BrokerEastMoney),
		DisplayName: "EastMoney Securities",
		Description: "EastMoney retail brokerage account",
		Implemented: false,
	},
	BrokerCitic: {
		Name:        string(BrokerCitic),
		DisplayName: "CITIC Securities",
		Description: "CITIC Securities retail brokerage account",
		Implemented: false,
	},
	BrokerHuatai: {
		Name:        string(BrokerHuatai),
		DisplayName: "Huatai Securities",
		Description: "Huatai Securities retail brokerage account",
		Implemented: false,
	},
}

// Config carries the credentials a broker adapter needs to connect.
type Config struct {
	Broker        BrokerType `yaml:"broker" validate:"required"`
	AccountID     string     `yaml:"account_id" validate:"required"`
	Password      string     `yaml:"password" validate:"required"`
	TradePassword string     `yaml:"trade_password"`
	ServerURL     string     `yaml:"server_url"`
}

// GetSupportedBrokers lists the broker types the registry knows about.
func GetSupportedBrokers() []string {
	brokers := make([]string, 0, len(brokerRegistry))
	for brokerType := range brokerRegistry {
		brokers = append(brokers, string(brokerType))
	}

	return brokers
}

// GetBrokerInfo returns metadata for a specific broker.
func GetBrokerInfo(name string) (Info, error) {
	info, exists := brokerRegistry[BrokerType(name)]
	if !exists {
		return Info{}, fmt.Errorf("unsupported broker: %s", name)
	}

	return info, nil
}

// NewBrokerVenue creates the execution venue backed by the given brokerage.
func NewBrokerVenue(config Config) (*StubAdapter, error) {
	if _, exists := brokerRegistry[config.Broker]; !exists {
		return nil, fmt.Errorf("unsupported broker: %s", config.Broker)
	}

	return NewStubAdapter(config), nil
}
