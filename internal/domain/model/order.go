package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "storefront/internal/domain/errors"
)

// OrderStatus describes the fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentStatus is an independent axis; no transition graph is enforced on it.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// orderTransitions encodes the allowed status edges. Absent keys are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", domainErrors.ErrUnknownStatus, raw)
}

// ParsePaymentStatus validates a raw payment status value.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch s := PaymentStatus(raw); s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", domainErrors.ErrUnknownPaymentStatus, raw)
}

// CanTransition reports whether the edge from -> to exists.
// Self-transitions are invalid, as are any edges out of a terminal state.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing edges.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// IsCancellable reports whether an order in this status may still be cancelled
// with stock restoration.
func (s OrderStatus) IsCancellable() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	}
	return false
}

// OrderItem is an immutable product snapshot captured at checkout.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url"`
}

// Subtotal returns price multiplied by quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate checks the snapshot fields required of every order item.
func (i OrderItem) Validate() error {
	switch {
	case i.ProductID == "":
		return fmt.Errorf("%w: missing product id", domainErrors.ErrInvalidOrderItem)
	case i.ProductName == "":
		return fmt.Errorf("%w: missing product name for %s", domainErrors.ErrInvalidOrderItem, i.ProductID)
	case i.Quantity <= 0:
		return fmt.Errorf("%w: non-positive quantity for %s", domainErrors.ErrInvalidOrderItem, i.ProductID)
	case !i.Price.IsPositive():
		return fmt.Errorf("%w: non-positive price for %s", domainErrors.ErrInvalidOrderItem, i.ProductID)
	}
	return nil
}

// Order is created once from a cart at checkout and afterwards mutated only
// through lifecycle transitions. User and product fields are snapshots,
// never live references.
type Order struct {
	ID              string
	UserID          string
	UserEmail       string
	UserName        string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	TotalItems      int
	ShippingCost    decimal.Decimal
	DiscountAmount  decimal.Decimal
	Status          OrderStatus
	PaymentMethod   string
	PaymentStatus   PaymentStatus
	DeliveryAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	Active          bool
}

// CalculateTotals recomputes the derived amount fields from the item list.
// Called once when the item list is established; totals are not recomputed
// on later status changes.
func (o *Order) CalculateTotals() {
	if len(o.Items) == 0 {
		o.TotalAmount = decimal.Zero
		o.TotalItems = 0
		return
	}
	total := decimal.Zero
	count := 0
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
		count += item.Quantity
	}
	o.TotalAmount = total.Add(o.ShippingCost).Sub(o.DiscountAmount)
	o.TotalItems = count
}

// OrderStats aggregates per-status counts and delivered revenue.
type OrderStats struct {
	TotalOrders  int
	StatusCounts map[OrderStatus]int
	TotalRevenue decimal.Decimal
}
