package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, email, firstName, lastName string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
}

// CatalogFacade encapsulates product operations exposed via HTTP.
type CatalogFacade interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error)
	DeactivateProduct(ctx context.Context, id string) error
}

// CartFacade provides cart operations.
type CartFacade interface {
	Cart(ctx context.Context, userID string) (*model.Cart, error)
	AddCartItem(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error)
	SetCartItemQuantity(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, userID, productID string) (*model.Cart, error)
	AbandonCart(ctx context.Context, userID string) error
}

// OrderFacade provides checkout and order lifecycle operations.
type OrderFacade interface {
	Checkout(ctx context.Context, cartID, deliveryAddress, paymentMethod string) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]model.Order, error)
	OrdersByStatus(ctx context.Context, status string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, reason string) (*model.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID, status string) (*model.Order, error)
	OrderStats(ctx context.Context) (*model.OrderStats, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
}
