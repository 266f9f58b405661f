package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/quantara-lab/papertrade/pkg/errors"
)

type Side string

type OrderType string

type OrderStatus string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
)

// IsTerminal reports whether the status is final. Terminal orders are never
// mutated again; transitions only move toward a terminal status.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusCancelled, OrderStatusRejected:
		return true
	default:
		return false
	}
}

// Order is a request to trade a quantity of an instrument. It is created
// PENDING by the trading engine and mutated exclusively by the execution
// venue during placement and cancellation.
type Order struct {
	ID         string    `yaml:"id" json:"id"`
	Instrument string    `yaml:"instrument" json:"instrument" validate:"required"`
	Side       Side      `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Type       OrderType `yaml:"type" json:"type" validate:"required,oneof=MARKET LIMIT"`
	Quantity   float64   `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	// Price is the caller-supplied reference price for market orders and the
	// limit price for limit orders. The venue has no quote feed of its own.
	Price          float64     `yaml:"price" json:"price"`
	FilledQuantity float64     `yaml:"filled_quantity" json:"filled_quantity"`
	AveragePrice   float64     `yaml:"average_price" json:"average_price"`
	Status         OrderStatus `yaml:"status" json:"status"`
	CreatedAt      time.Time   `yaml:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `yaml:"updated_at" json:"updated_at"`
	// Message carries the human-readable fill or rejection reason.
	Message string `yaml:"message" json:"message"`
}

// Validate validates the Order struct.
func (o *Order) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order", err)
	}

	return nil
}
