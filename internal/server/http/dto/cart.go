package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds a product to the active cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest replaces an item's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartItemResponse represents a cart line with its product snapshot.
type CartItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the user's cart with derived totals.
type CartResponse struct {
	ID          string             `json:"id"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
	Status      string             `json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
