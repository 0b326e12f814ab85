package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// TokenParserStub verifies tokens with a fixed outcome.
type TokenParserStub struct {
	ID  string
	Err error
}

func (s TokenParserStub) ParseToken(token string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.ID, nil
}

// AuthFacadeStub implements the auth facade with overridable behavior.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, login, password, email, firstName, lastName string) (string, error)
	AuthenticateFn func(ctx context.Context, login, password string) (string, error)
	ParseTokenFn   func(token string) (string, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, login, password, email, firstName, lastName string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, email, firstName, lastName)
	}
	return "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return "u1", nil
}

// CatalogFacadeStub implements the catalog facade with overridable behavior.
type CatalogFacadeStub struct {
	CreateProductFn     func(ctx context.Context, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error)
	ProductFn           func(ctx context.Context, id string) (*model.Product, error)
	ProductsFn          func(ctx context.Context) ([]model.Product, error)
	UpdateProductFn     func(ctx context.Context, id, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error)
	DeactivateProductFn func(ctx context.Context, id string) error
}

func (s CatalogFacadeStub) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, name, price, stock, imageURL)
	}
	return &model.Product{ID: "p1", Name: name, Price: price, Stock: stock, Active: true, ImageURL: imageURL}, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "widget", Active: true}, nil
}

func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: "p1", Name: "widget", Active: true}}, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, id, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, id, name, price, stock, imageURL)
	}
	return &model.Product{ID: id, Name: name, Price: price, Stock: stock, Active: true, ImageURL: imageURL}, nil
}

func (s CatalogFacadeStub) DeactivateProduct(ctx context.Context, id string) error {
	if s.DeactivateProductFn != nil {
		return s.DeactivateProductFn(ctx, id)
	}
	return nil
}

// CartFacadeStub implements the cart facade with overridable behavior.
type CartFacadeStub struct {
	CartFn                func(ctx context.Context, userID string) (*model.Cart, error)
	AddCartItemFn         func(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error)
	SetCartItemQuantityFn func(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error)
	RemoveCartItemFn      func(ctx context.Context, userID, productID string) (*model.Cart, error)
	AbandonCartFn         func(ctx context.Context, userID string) error
}

func emptyCart(userID string) *model.Cart {
	return model.NewCart("c1", userID, time.Now())
}

func (s CartFacadeStub) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return emptyCart(userID), nil
}

func (s CartFacadeStub) AddCartItem(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	if s.AddCartItemFn != nil {
		return s.AddCartItemFn(ctx, userID, productID, quantity)
	}
	cart := emptyCart(userID)
	cart.AddItem(model.CartItem{ProductID: productID, ProductName: "widget", Price: decimal.New(999, -2), Quantity: quantity}, time.Now())
	return cart, nil
}

func (s CartFacadeStub) SetCartItemQuantity(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	if s.SetCartItemQuantityFn != nil {
		return s.SetCartItemQuantityFn(ctx, userID, productID, quantity)
	}
	return emptyCart(userID), nil
}

func (s CartFacadeStub) RemoveCartItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	if s.RemoveCartItemFn != nil {
		return s.RemoveCartItemFn(ctx, userID, productID)
	}
	return emptyCart(userID), nil
}

func (s CartFacadeStub) AbandonCart(ctx context.Context, userID string) error {
	if s.AbandonCartFn != nil {
		return s.AbandonCartFn(ctx, userID)
	}
	return nil
}

// OrderFacadeStub implements the order facade with overridable behavior.
type OrderFacadeStub struct {
	CheckoutFn            func(ctx context.Context, cartID, deliveryAddress, paymentMethod string) (*model.Order, error)
	OrderFn               func(ctx context.Context, orderID string) (*model.Order, error)
	OrdersByUserFn        func(ctx context.Context, userID string) ([]model.Order, error)
	OrdersByStatusFn      func(ctx context.Context, status string) ([]model.Order, error)
	UpdateOrderStatusFn   func(ctx context.Context, orderID, status string) (*model.Order, error)
	CancelOrderFn         func(ctx context.Context, orderID, reason string) (*model.Order, error)
	UpdatePaymentStatusFn func(ctx context.Context, orderID, status string) (*model.Order, error)
	OrderStatsFn          func(ctx context.Context) (*model.OrderStats, error)
}

func stubOrder(id string) *model.Order {
	return &model.Order{
		ID:            id,
		UserID:        "u1",
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		TotalAmount:   decimal.Zero,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
		Active:        true,
	}
}

func (s OrderFacadeStub) Checkout(ctx context.Context, cartID, deliveryAddress, paymentMethod string) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, cartID, deliveryAddress, paymentMethod)
	}
	return stubOrder("o1"), nil
}

func (s OrderFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return stubOrder(orderID), nil
}

func (s OrderFacadeStub) OrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersByUserFn != nil {
		return s.OrdersByUserFn(ctx, userID)
	}
	return []model.Order{*stubOrder("o1")}, nil
}

func (s OrderFacadeStub) OrdersByStatus(ctx context.Context, status string) ([]model.Order, error) {
	if s.OrdersByStatusFn != nil {
		return s.OrdersByStatusFn(ctx, status)
	}
	return []model.Order{*stubOrder("o1")}, nil
}

func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	if s.UpdateOrderStatusFn != nil {
		return s.UpdateOrderStatusFn(ctx, orderID, status)
	}
	return stubOrder(orderID), nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID, reason string) (*model.Order, error) {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, orderID, reason)
	}
	order := stubOrder(orderID)
	order.Status = model.OrderStatusCancelled
	return order, nil
}

func (s OrderFacadeStub) UpdatePaymentStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	if s.UpdatePaymentStatusFn != nil {
		return s.UpdatePaymentStatusFn(ctx, orderID, status)
	}
	return stubOrder(orderID), nil
}

func (s OrderFacadeStub) OrderStats(ctx context.Context) (*model.OrderStats, error) {
	if s.OrderStatsFn != nil {
		return s.OrderStatsFn(ctx)
	}
	return &model.OrderStats{StatusCounts: map[model.OrderStatus]int{}, TotalRevenue: decimal.Zero}, nil
}

// StoreFacadeStub aggregates all facade stubs.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
}
