package order

import (
	"errors"
	"time"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus is the stored payment state. It is a plain field, not
// reconciled against any payment gateway.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyOrder       = errors.New("order must have at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be a positive integer")
	ErrInvalidAmount    = errors.New("total amount must not be negative")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrInvalidPayStatus = errors.New("invalid payment status")
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// nextStatuses is the conventional fulfillment pipeline. It is advisory:
// admins may set any status (free correction of mistakes), and SetStatus
// only logs when a change falls outside this table.
var nextStatuses = map[Status][]Status{
	StatusPlaced:    {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
	StatusDelivered: {}, // terminal
	StatusCancelled: {}, // terminal
}

// CanTransitionTo reports whether moving to target follows the
// conventional pipeline.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range nextStatuses[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no conventional next step.
func (s Status) Terminal() bool {
	return len(nextStatuses[s]) == 0
}

// Item is a single order line: a menu item reference plus quantity.
// Unit prices are not snapshotted; totals come from the separately
// supplied TotalAmount.
type Item struct {
	MenuItemID string `json:"menuItem"`
	Quantity   int    `json:"quantity"`
}

// Address is the delivery destination.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// Order is the central entity tracked through the fulfillment pipeline.
type Order struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	Items         []Item        `json:"items"`
	TotalAmount   float64       `json:"totalAmount"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OrderStatus   Status        `json:"orderStatus"`
	Address       Address       `json:"address"`
	CreatedAt     time.Time     `json:"createdAt"`
}
