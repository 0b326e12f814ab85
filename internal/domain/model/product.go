package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product describes a catalog item whose stock is tracked by checkout.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Stock     int
	Active    bool
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available reports whether the product can satisfy the requested quantity.
func (p *Product) Available(quantity int) bool {
	return p.Active && p.Stock >= quantity
}
