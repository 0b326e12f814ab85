package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartStatus describes the shopping cart lifecycle.
type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVE"
	CartStatusCompleted CartStatus = "COMPLETED"
	CartStatusAbandoned CartStatus = "ABANDONED"
)

// CartItem holds a product snapshot taken at the moment it was added.
type CartItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url"`
}

// Subtotal returns price multiplied by quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a user's in-progress collection of selected products.
// Items are ordered and unique by product id; totals are derived.
type Cart struct {
	ID          string
	UserID      string
	Items       []CartItem
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      CartStatus
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCart creates an empty active cart for the user.
func NewCart(id, userID string, now time.Time) *Cart {
	return &Cart{
		ID:          id,
		UserID:      userID,
		TotalAmount: decimal.Zero,
		Status:      CartStatusActive,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddItem appends the item or, when the product is already present,
// increases its quantity. Totals are recomputed.
func (c *Cart) AddItem(item CartItem, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.recalculate(now)
			return
		}
	}
	c.Items = append(c.Items, item)
	c.recalculate(now)
}

// SetItemQuantity replaces the quantity of an existing item.
// Returns false when the product is not in the cart.
func (c *Cart) SetItemQuantity(productID string, quantity int, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.recalculate(now)
			return true
		}
	}
	return false
}

// RemoveItem deletes the item for the product, preserving item order.
// Returns false when the product is not in the cart.
func (c *Cart) RemoveItem(productID string, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recalculate(now)
			return true
		}
	}
	return false
}

// Complete marks the cart as checked out. Completed carts are never reused.
func (c *Cart) Complete(now time.Time) {
	c.Status = CartStatusCompleted
	c.Active = false
	c.UpdatedAt = now
}

// Abandon marks the cart as abandoned.
func (c *Cart) Abandon(now time.Time) {
	c.Status = CartStatusAbandoned
	c.Active = false
	c.UpdatedAt = now
}

func (c *Cart) recalculate(now time.Time) {
	total := decimal.Zero
	count := 0
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
		count += item.Quantity
	}
	c.TotalAmount = total
	c.TotalItems = count
	c.UpdatedAt = now
}
