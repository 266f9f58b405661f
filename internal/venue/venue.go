// Package venue defines the execution-venue capability and its simulated
// in-memory implementation. A venue owns the ledger: orders and positions
// are mutated here and nowhere else.
package venue

import (
	"github.com/moznion/go-optional"

	"github.com/quantara-lab/papertrade/internal/types"
)

// ExecutionVenue matches orders against account state. The trading engine
// holds exactly one implementation chosen at construction time and never
// branches on the concrete type.
type ExecutionVenue interface {
	// PlaceOrder executes the order against the ledger, mutating it in
	// place. A non-nil error means the order was rejected; the order's
	// status and message carry the reason.
	PlaceOrder(order *types.Order) error
	// CancelOrder cancels a pending order. Terminal orders cannot be
	// cancelled.
	CancelOrder(orderID string) error
	// GetAccountInfo derives the account snapshot from cash and open
	// positions at call time.
	GetAccountInfo() types.AccountSnapshot
	// GetPositions returns copies of all open positions.
	GetPositions() []types.Position
	// GetOrders returns copies of all orders the venue has accepted.
	GetOrders() []types.Order
	// GetOrder returns the order with the given id, if the venue knows it.
	GetOrder(orderID string) optional.Option[types.Order]
	// GetTrades returns executed trades matching the filter.
	GetTrades(filter types.TradeFilter) ([]types.Trade, error)
	// MarkToMarket updates position market values from the given price map.
	// It never touches cash or quantities.
	MarkToMarket(prices map[string]float64)
}
