// Package engine orchestrates one execution venue and one risk gate behind
// a buy/sell/cancel/query API. The engine owns order-id generation and the
// risk veto; it never mutates the ledger itself.
package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/risk"
	"github.com/quantara-lab/papertrade/internal/types"
	"github.com/quantara-lab/papertrade/internal/venue"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

// TradingEngine routes candidate orders through the risk gate into the
// venue. It holds exactly one venue implementation, chosen at construction.
type TradingEngine struct {
	venue        venue.ExecutionVenue
	gate         *risk.Gate
	logger       *logger.Logger
	orderCounter atomic.Int64
	clock        func() time.Time
}

// NewTradingEngine creates a trading engine over the given venue and gate.
func NewTradingEngine(v venue.ExecutionVenue, gate *risk.Gate, log *logger.Logger) *TradingEngine {
	return &TradingEngine{
		venue:        v,
		gate:         gate,
		logger:       log,
		orderCounter: atomic.Int64{},
		clock:        time.Now,
	}
}

// SetClock replaces the wall clock. Tests use this to pin order ids and
// timestamps.
func (e *TradingEngine) SetClock(clock func() time.Time) {
	e.clock = clock
}

// Buy submits a buy order. The returned order is always non-nil and carries
// the terminal status and message; a non-nil error means it never filled.
func (e *TradingEngine) Buy(instrument string, quantity, price float64, orderType types.OrderType) (*types.Order, error) {
	return e.submit(types.SideBuy, instrument, quantity, price, orderType)
}

// Sell submits a sell order with the same semantics as Buy.
func (e *TradingEngine) Sell(instrument string, quantity, price float64, orderType types.OrderType) (*types.Order, error) {
	return e.submit(types.SideSell, instrument, quantity, price, orderType)
}

func (e *TradingEngine) submit(side types.Side, instrument string, quantity, price float64, orderType types.OrderType) (*types.Order, error) {
	now := e.clock()

	order := &types.Order{
		ID:             e.nextOrderID(side, now),
		Instrument:     instrument,
		Side:           side,
		Type:           orderType,
		Quantity:       quantity,
		Price:          price,
		FilledQuantity: 0,
		AveragePrice:   0,
		Status:         types.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
		Message:        "",
	}

	// Snapshot account and positions once, then ask the gate. A veto is
	// terminal: the venue is never called, so nothing is partially mutated
	// and a rejected order must be resubmitted with adjusted parameters.
	account := e.venue.GetAccountInfo()
	positions := e.venue.GetPositions()

	if err := e.gate.CheckOrder(order, account, positions); err != nil {
		order.Status = types.OrderStatusRejected
		order.Message = errors.Reason(err)
		order.UpdatedAt = e.clock()

		e.logger.Warn("Risk gate rejected order",
			zap.String("order_id", order.ID),
			zap.String("instrument", instrument),
			zap.String("reason", order.Message),
		)

		return order, err
	}

	if err := e.venue.PlaceOrder(order); err != nil {
		e.logger.Error("Venue rejected order",
			zap.String("order_id", order.ID),
			zap.String("instrument", instrument),
			zap.String("reason", errors.Reason(err)),
		)

		return order, err
	}

	e.logger.Info("Order executed",
		zap.String("order_id", order.ID),
		zap.String("side", string(side)),
		zap.String("instrument", instrument),
		zap.Float64("quantity", quantity),
		zap.Float64("price", price),
	)

	return order, nil
}

// nextOrderID generates a process-unique id of the form
// {SIDE}_{timestamp}_{counter}.
func (e *TradingEngine) nextOrderID(side types.Side, now time.Time) string {
	counter := e.orderCounter.Add(1)

	return fmt.Sprintf("%s_%s_%d", side, now.Format("20060102150405"), counter)
}

// CancelOrder cancels a pending order through the venue.
func (e *TradingEngine) CancelOrder(orderID string) error {
	return e.venue.CancelOrder(orderID)
}

// GetAccountInfo passes through to the venue.
func (e *TradingEngine) GetAccountInfo() types.AccountSnapshot {
	return e.venue.GetAccountInfo()
}

// GetPositions passes through to the venue.
func (e *TradingEngine) GetPositions() []types.Position {
	return e.venue.GetPositions()
}

// GetOrders passes through to the venue.
func (e *TradingEngine) GetOrders() []types.Order {
	return e.venue.GetOrders()
}

// GetOrder passes through to the venue.
func (e *TradingEngine) GetOrder(orderID string) optional.Option[types.Order] {
	return e.venue.GetOrder(orderID)
}

// GetTrades passes through to the venue.
func (e *TradingEngine) GetTrades(filter types.TradeFilter) ([]types.Trade, error) {
	return e.venue.GetTrades(filter)
}

// RiskGate exposes the gate for session-level updates.
func (e *TradingEngine) RiskGate() *risk.Gate {
	return e.gate
}

// UpdatePositionsMarketValue marks open positions to the supplied prices.
// Mark-to-market never touches cash.
func (e *TradingEngine) UpdatePositionsMarketValue(prices map[string]float64) {
	e.venue.MarkToMarket(prices)
}
