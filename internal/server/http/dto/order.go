package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest converts an active cart into an order.
type CheckoutRequest struct {
	CartID          string `json:"cart_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest records a payment state change.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// CancelOrderRequest carries an optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderItemResponse represents a snapshot line of a placed order.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents a placed order.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserEmail       string              `json:"user_email"`
	UserName        string              `json:"user_name"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	TotalItems      int                 `json:"total_items"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	DeliveryAddress string              `json:"delivery_address"`
	CreatedAt       time.Time           `json:"created_at"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
}

// OrderStatsResponse aggregates order counts and delivered revenue.
type OrderStatsResponse struct {
	TotalOrders      int             `json:"total_orders"`
	PendingOrders    int             `json:"pending_orders"`
	ConfirmedOrders  int             `json:"confirmed_orders"`
	ProcessingOrders int             `json:"processing_orders"`
	ShippedOrders    int             `json:"shipped_orders"`
	DeliveredOrders  int             `json:"delivered_orders"`
	CancelledOrders  int             `json:"cancelled_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}
