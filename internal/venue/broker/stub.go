package broker

import (
	"github.com/moznion/go-optional"

	"github.com/quantara-lab/papertrade/internal/types"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

// StubAdapter is the placeholder implementation used while no brokerage SDK
// is wired in. It rejects every order unconditionally and reports an empty
// account.
type StubAdapter struct {
	config    Config
	connected bool
}

// NewStubAdapter creates a stub adapter for the given brokerage account.
func NewStubAdapter(config Config) *StubAdapter {
	return &StubAdapter{
		config:    config,
		connected: false,
	}
}

// Connect would establish the brokerage session.
func (s *StubAdapter) Connect() error {
	return errors.Newf(errors.ErrCodeVenueUnavailable, "broker %s is not implemented", s.config.Broker)
}

// Disconnect tears down the session.
func (s *StubAdapter) Disconnect() {
	s.connected = false
}

// PlaceOrder implements venue.ExecutionVenue.
func (s *StubAdapter) PlaceOrder(order *types.Order) error {
	err := errors.Newf(errors.ErrCodeVenueUnavailable, "broker %s cannot place orders: not implemented", s.config.Broker)

	order.Status = types.OrderStatusRejected
	order.Message = err.Message

	return err
}

// CancelOrder implements venue.ExecutionVenue.
func (s *StubAdapter) CancelOrder(orderID string) error {
	return errors.Newf(errors.ErrCodeVenueUnavailable, "broker %s cannot cancel orders: not implemented", s.config.Broker)
}

// GetAccountInfo implements venue.ExecutionVenue.
func (s *StubAdapter) GetAccountInfo() types.AccountSnapshot {
	return types.AccountSnapshot{
		Cash:             0,
		MarketValue:      0,
		TotalAssets:      0,
		InitialCapital:   0,
		TotalProfit:      0,
		TotalProfitRatio: 0,
		PositionCount:    0,
	}
}

// GetPositions implements venue.ExecutionVenue.
func (s *StubAdapter) GetPositions() []types.Position {
	return []types.Position{}
}

// GetOrders implements venue.ExecutionVenue.
func (s *StubAdapter) GetOrders() []types.Order {
	return []types.Order{}
}

// GetOrder implements venue.ExecutionVenue.
func (s *StubAdapter) GetOrder(orderID string) optional.Option[types.Order] {
	return optional.None[types.Order]()
}

// GetTrades implements venue.ExecutionVenue.
func (s *StubAdapter) GetTrades(filter types.TradeFilter) ([]types.Trade, error) {
	return []types.Trade{}, nil
}

// MarkToMarket implements venue.ExecutionVenue.
func (s *StubAdapter) MarkToMarket(prices map[string]float64) {}
