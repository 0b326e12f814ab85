package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest carries catalog create/update payloads.
type ProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url"`
}

// ProductResponse represents a catalog product.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Active    bool            `json:"active"`
	ImageURL  string          `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
}
