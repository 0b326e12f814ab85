package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// SaveCheckout commits the result of a checkout: the order insert, the stock
// decrement for every ordered product, and the cart completion. The postgres
// implementation executes all three inside one transaction with guarded stock
// updates, so a concurrent checkout that would oversell aborts with
// ErrInsufficientStock and leaves nothing written.
type OrderRepository interface {
	SaveCheckout(ctx context.Context, order *model.Order, cart *model.Cart) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}
