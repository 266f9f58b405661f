package venue

import (
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantara-lab/papertrade/internal/journal"
	"github.com/quantara-lab/papertrade/internal/logger"
	"github.com/quantara-lab/papertrade/internal/types"
	"github.com/quantara-lab/papertrade/internal/venue/fees"
	"github.com/quantara-lab/papertrade/pkg/errors"
)

// SimulatedVenue is a deterministic paper venue, not a matching engine.
// Orders fill whole and immediately at the caller-supplied price; there is
// no depth, no slippage and no partial fill. All ledger mutations happen
// under one mutex, so each call is a single critical section.
type SimulatedVenue struct {
	mu             sync.Mutex
	initialCapital float64
	cash           float64
	positions      map[string]*types.Position
	orders         map[string]*types.Order
	orderIDs       []string
	feeSchedule    fees.Schedule
	journal        *journal.Journal
	logger         *logger.Logger
	clock          func() time.Time
}

// NewSimulatedVenue creates a simulated venue funded with initialCapital.
// The journal may be nil when no trade history is wanted.
func NewSimulatedVenue(initialCapital float64, feeSchedule fees.Schedule, j *journal.Journal, log *logger.Logger) *SimulatedVenue {
	return &SimulatedVenue{
		mu:             sync.Mutex{},
		initialCapital: initialCapital,
		cash:           initialCapital,
		positions:      make(map[string]*types.Position),
		orders:         make(map[string]*types.Order),
		orderIDs:       nil,
		feeSchedule:    feeSchedule,
		journal:        j,
		logger:         log,
		clock:          time.Now,
	}
}

// SetClock replaces the wall clock. Tests use this to pin timestamps.
func (v *SimulatedVenue) SetClock(clock func() time.Time) {
	v.clock = clock
}

// PlaceOrder implements ExecutionVenue.
func (v *SimulatedVenue) PlaceOrder(order *types.Order) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if order.Quantity <= 0 {
		return v.reject(order, errors.Newf(errors.ErrCodeInvalidQuantity, "quantity must be greater than 0, got %v", order.Quantity))
	}

	switch order.Type {
	case types.OrderTypeMarket:
		// No quote feed is wired into this core, so market orders need a
		// caller-supplied reference price.
		if order.Price <= 0 {
			return v.reject(order, errors.New(errors.ErrCodeInvalidPrice, "market order requires a reference price"))
		}
	case types.OrderTypeLimit:
		if order.Price <= 0 {
			return v.reject(order, errors.Newf(errors.ErrCodeInvalidPrice, "limit order price must be greater than 0, got %v", order.Price))
		}
	default:
		return v.reject(order, errors.Newf(errors.ErrCodeInvalidOrderType, "unsupported order type: %s", order.Type))
	}

	return v.execute(order, order.Price)
}

// execute fills the order at executionPrice. Caller holds the mutex.
func (v *SimulatedVenue) execute(order *types.Order, executionPrice float64) error {
	amountDec := decimal.NewFromFloat(order.Quantity).Mul(decimal.NewFromFloat(executionPrice))
	amount, _ := amountDec.Float64()
	fee := v.feeSchedule.Calculate(order.Side, amount)

	var realizedPnL float64

	switch order.Side {
	case types.SideBuy:
		totalCostDec := amountDec.Add(decimal.NewFromFloat(fee.Total()))
		totalCost, _ := totalCostDec.Float64()

		if v.cash < totalCost {
			return v.reject(order, errors.Newf(errors.ErrCodeInsufficientCash,
				"insufficient cash: need %.2f, have %.2f", totalCost, v.cash))
		}

		v.cash, _ = decimal.NewFromFloat(v.cash).Sub(totalCostDec).Float64()
		v.applyBuy(order.Instrument, order.Quantity, totalCostDec)

	case types.SideSell:
		position, ok := v.positions[order.Instrument]
		if !ok {
			return v.reject(order, errors.Newf(errors.ErrCodeInsufficientPosition,
				"no position in %s", order.Instrument))
		}

		if position.AvailableQuantity < order.Quantity {
			return v.reject(order, errors.Newf(errors.ErrCodeInsufficientPosition,
				"insufficient available quantity: need %v, have %v", order.Quantity, position.AvailableQuantity))
		}

		netDec := amountDec.Sub(decimal.NewFromFloat(fee.Total()))
		v.cash, _ = decimal.NewFromFloat(v.cash).Add(netDec).Float64()

		pnlDec := decimal.NewFromFloat(order.Quantity).
			Mul(decimal.NewFromFloat(executionPrice).Sub(decimal.NewFromFloat(position.AverageCost))).
			Sub(decimal.NewFromFloat(fee.Total()))
		realizedPnL, _ = pnlDec.Float64()

		v.applySell(order.Instrument, order.Quantity)

	default:
		return v.reject(order, errors.Newf(errors.ErrCodeInvalidSide, "unsupported side: %s", order.Side))
	}

	// The fill price is the freshest quote the venue has, so the position
	// is marked to it immediately. Total assets stay continuous across a
	// fill instead of dropping by the order's notional.
	if position, ok := v.positions[order.Instrument]; ok {
		position.UpdateMarketValue(executionPrice)
	}

	now := v.clock()
	order.Status = types.OrderStatusFilled
	order.FilledQuantity = order.Quantity
	order.AveragePrice = executionPrice
	order.UpdatedAt = now
	order.Message = "filled"

	stored := *order
	v.orders[order.ID] = &stored
	v.orderIDs = append(v.orderIDs, order.ID)

	v.logger.Info("Order filled",
		zap.String("order_id", order.ID),
		zap.String("instrument", order.Instrument),
		zap.String("side", string(order.Side)),
		zap.Float64("quantity", order.Quantity),
		zap.Float64("price", executionPrice),
		zap.Float64("fee", fee.Total()),
	)

	if v.journal != nil {
		_, err := v.journal.Append(types.Trade{
			TradeID:     "",
			OrderID:     order.ID,
			Instrument:  order.Instrument,
			Side:        order.Side,
			Quantity:    order.Quantity,
			Price:       executionPrice,
			Amount:      amount,
			Commission:  fee.Commission,
			StampDuty:   fee.StampDuty,
			RealizedPnL: realizedPnL,
			ExecutedAt:  now,
		})
		if err != nil {
			// The fill already settled; a journal write failure loses
			// history, not money.
			v.logger.Error("Failed to journal trade", zap.Error(err), zap.String("order_id", order.ID))
		}
	}

	return nil
}

// applyBuy folds a fill into the instrument's position. The weighted average
// cost includes fees, matching the fee-inclusive total cost deducted from cash.
func (v *SimulatedVenue) applyBuy(instrument string, quantity float64, totalCostDec decimal.Decimal) {
	position, ok := v.positions[instrument]
	if !ok {
		position = &types.Position{
			Instrument:        instrument,
			Quantity:          0,
			AvailableQuantity: 0,
			AverageCost:       0,
			MarketValue:       0,
			UnrealizedPnL:     0,
			PnLRatio:          0,
		}
		v.positions[instrument] = position
	}

	oldCostDec := decimal.NewFromFloat(position.Quantity).Mul(decimal.NewFromFloat(position.AverageCost))
	newQuantityDec := decimal.NewFromFloat(position.Quantity).Add(decimal.NewFromFloat(quantity))

	position.AverageCost, _ = oldCostDec.Add(totalCostDec).Div(newQuantityDec).Float64()
	position.Quantity, _ = newQuantityDec.Float64()
	position.AvailableQuantity = position.Quantity
}

// applySell reduces the position and deletes it at zero, so the ledger never
// accumulates empty positions and the next buy starts a fresh cost basis.
func (v *SimulatedVenue) applySell(instrument string, quantity float64) {
	position := v.positions[instrument]

	position.Quantity, _ = decimal.NewFromFloat(position.Quantity).Sub(decimal.NewFromFloat(quantity)).Float64()
	position.AvailableQuantity, _ = decimal.NewFromFloat(position.AvailableQuantity).Sub(decimal.NewFromFloat(quantity)).Float64()

	if position.Quantity == 0 {
		delete(v.positions, instrument)
	}
}

// reject marks the order terminally rejected. Rejection never mutates cash
// or positions. Caller holds the mutex.
func (v *SimulatedVenue) reject(order *types.Order, err *errors.Error) error {
	order.Status = types.OrderStatusRejected
	order.Message = err.Message
	order.UpdatedAt = v.clock()

	v.logger.Warn("Order rejected",
		zap.String("order_id", order.ID),
		zap.String("instrument", order.Instrument),
		zap.String("reason", err.Message),
	)

	return err
}

// CancelOrder implements ExecutionVenue. Only pending orders can be
// cancelled; the simulated venue fills synchronously, so in practice every
// stored order is already terminal.
func (v *SimulatedVenue) CancelOrder(orderID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	order, ok := v.orders[orderID]
	if !ok {
		return errors.Newf(errors.ErrCodeOrderNotFound, "order not found: %s", orderID)
	}

	if order.Status != types.OrderStatusPending {
		return errors.Newf(errors.ErrCodeOrderNotCancellable, "order %s is %s and cannot be cancelled", orderID, order.Status)
	}

	order.Status = types.OrderStatusCancelled
	order.Message = "cancelled by user"
	order.UpdatedAt = v.clock()

	v.logger.Info("Order cancelled", zap.String("order_id", orderID))

	return nil
}

// GetAccountInfo implements ExecutionVenue.
func (v *SimulatedVenue) GetAccountInfo() types.AccountSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.snapshotLocked()
}

// snapshotLocked derives the account snapshot. Caller holds the mutex.
func (v *SimulatedVenue) snapshotLocked() types.AccountSnapshot {
	totalMarketValue := 0.0
	for _, position := range v.positions {
		totalMarketValue += position.MarketValue
	}

	totalAssets := v.cash + totalMarketValue
	totalProfit := totalAssets - v.initialCapital

	totalProfitRatio := 0.0
	if v.initialCapital > 0 {
		totalProfitRatio = totalProfit / v.initialCapital * 100
	}

	return types.AccountSnapshot{
		Cash:             v.cash,
		MarketValue:      totalMarketValue,
		TotalAssets:      totalAssets,
		InitialCapital:   v.initialCapital,
		TotalProfit:      totalProfit,
		TotalProfitRatio: totalProfitRatio,
		PositionCount:    len(v.positions),
	}
}

// GetPositions implements ExecutionVenue.
func (v *SimulatedVenue) GetPositions() []types.Position {
	v.mu.Lock()
	defer v.mu.Unlock()

	positions := make([]types.Position, 0, len(v.positions))
	for _, position := range v.positions {
		positions = append(positions, *position)
	}

	return positions
}

// GetOrders implements ExecutionVenue. Orders come back in placement order.
func (v *SimulatedVenue) GetOrders() []types.Order {
	v.mu.Lock()
	defer v.mu.Unlock()

	orders := make([]types.Order, 0, len(v.orderIDs))
	for _, id := range v.orderIDs {
		orders = append(orders, *v.orders[id])
	}

	return orders
}

// GetOrder implements ExecutionVenue.
func (v *SimulatedVenue) GetOrder(orderID string) optional.Option[types.Order] {
	v.mu.Lock()
	defer v.mu.Unlock()

	order, ok := v.orders[orderID]
	if !ok {
		return optional.None[types.Order]()
	}

	return optional.Some(*order)
}

// GetTrades implements ExecutionVenue.
func (v *SimulatedVenue) GetTrades(filter types.TradeFilter) ([]types.Trade, error) {
	if v.journal == nil {
		return []types.Trade{}, nil
	}

	return v.journal.GetTrades(filter)
}

// MarkToMarket implements ExecutionVenue.
func (v *SimulatedVenue) MarkToMarket(prices map[string]float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for instrument, position := range v.positions {
		if price, ok := prices[instrument]; ok {
			position.UpdateMarketValue(price)
		}
	}
}
