package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

// StoreFacade aggregates the application use cases behind one surface used by
// the HTTP handlers and the background sweeper.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	carts    *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	carts *usecase.CartUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
) *StoreFacade {
	return &StoreFacade{auth: auth, catalog: catalog, carts: carts, checkout: checkout, orders: orders}
}

func (f *StoreFacade) Register(ctx context.Context, login, password, email, firstName, lastName string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, email, firstName, lastName)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error) {
	return f.catalog.Create(ctx, name, price, stock, imageURL)
}

func (f *StoreFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListActive(ctx)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error) {
	return f.catalog.Update(ctx, id, name, price, stock, imageURL)
}

func (f *StoreFacade) DeactivateProduct(ctx context.Context, id string) error {
	return f.catalog.Deactivate(ctx, id)
}

func (f *StoreFacade) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	return f.carts.ActiveCart(ctx, userID)
}

func (f *StoreFacade) AddCartItem(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	return f.carts.AddItem(ctx, userID, productID, quantity)
}

func (f *StoreFacade) SetCartItemQuantity(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	return f.carts.SetItemQuantity(ctx, userID, productID, quantity)
}

func (f *StoreFacade) RemoveCartItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	return f.carts.RemoveItem(ctx, userID, productID)
}

func (f *StoreFacade) AbandonCart(ctx context.Context, userID string) error {
	return f.carts.Abandon(ctx, userID)
}

func (f *StoreFacade) Checkout(ctx context.Context, cartID, deliveryAddress, paymentMethod string) (*model.Order, error) {
	return f.checkout.CreateOrder(ctx, cartID, deliveryAddress, paymentMethod)
}

func (f *StoreFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *StoreFacade) OrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) OrdersByStatus(ctx context.Context, status string) ([]model.Order, error) {
	return f.orders.ListByStatus(ctx, status)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, orderID, reason string) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID, reason)
}

func (f *StoreFacade) UpdatePaymentStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	return f.orders.UpdatePaymentStatus(ctx, orderID, status)
}

func (f *StoreFacade) OrderStats(ctx context.Context) (*model.OrderStats, error) {
	return f.orders.Stats(ctx)
}

func (f *StoreFacade) StaleCarts(ctx context.Context, idleSince time.Time, limit int) ([]model.Cart, error) {
	return f.carts.StaleCarts(ctx, idleSince, limit)
}

func (f *StoreFacade) AbandonCartByID(ctx context.Context, cartID string) error {
	return f.carts.AbandonCart(ctx, cartID)
}
