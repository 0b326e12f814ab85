package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// CartRepository describes persistence operations with shopping carts.
// At most one ACTIVE cart may exist per user; Create must fail with
// ErrAlreadyExists when that invariant would be violated.
type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	GetByID(ctx context.Context, id string) (*model.Cart, error)
	GetActiveByUser(ctx context.Context, userID string) (*model.Cart, error)
	Update(ctx context.Context, cart *model.Cart) error
	ListStaleActive(ctx context.Context, idleSince time.Time, limit int) ([]model.Cart, error)
}
