package test

import (
	"context"
	"time"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByLogin map[string]*model.User
	ByID    map[string]*model.User
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByLogin: make(map[string]*model.User),
		ByID:    make(map[string]*model.User),
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByLogin[user.Login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	u := *user
	s.ByLogin[u.Login] = &u
	s.ByID[u.ID] = &u
	return &u, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByLogin[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	Products map[string]*model.Product
	Updates  []string
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized map.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[string]*model.Product)}
}

// Add seeds the stub with a product.
func (s *ProductRepositoryStub) Add(product model.Product) {
	s.Products[product.ID] = &product
}

// Create stores a new product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.Products[product.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	p := *product
	s.Products[p.ID] = &p
	return nil
}

// GetByID returns a copy of the stored product.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		p := *product
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListActive returns active products.
func (s *ProductRepositoryStub) ListActive(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Product
	for _, product := range s.Products {
		if product.Active {
			result = append(result, *product)
		}
	}
	return result, nil
}

// Update replaces the stored product and records the call.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	p := *product
	s.Products[p.ID] = &p
	s.Updates = append(s.Updates, p.ID)
	return nil
}

// Stock returns the current stock of a seeded product.
func (s *ProductRepositoryStub) Stock(id string) int {
	if product, ok := s.Products[id]; ok {
		return product.Stock
	}
	return -1
}

// CartRepositoryStub stores carts in-memory for tests.
type CartRepositoryStub struct {
	Carts map[string]*model.Cart
	Err   error
}

// NewCartRepositoryStub constructs stub repository with initialized map.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Carts: make(map[string]*model.Cart)}
}

// Add seeds the stub with a cart.
func (s *CartRepositoryStub) Add(cart model.Cart) {
	s.Carts[cart.ID] = &cart
}

// Create stores a new cart enforcing the single-active-cart invariant.
func (s *CartRepositoryStub) Create(ctx context.Context, cart *model.Cart) error {
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.Carts {
		if existing.UserID == cart.UserID && existing.Status == model.CartStatusActive {
			return domainErrors.ErrAlreadyExists
		}
	}
	c := *cart
	s.Carts[c.ID] = &c
	return nil
}

// GetByID returns a copy of the stored cart.
func (s *CartRepositoryStub) GetByID(ctx context.Context, id string) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if cart, ok := s.Carts[id]; ok {
		c := *cart
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetActiveByUser returns the user's active cart.
func (s *CartRepositoryStub) GetActiveByUser(ctx context.Context, userID string) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, cart := range s.Carts {
		if cart.UserID == userID && cart.Status == model.CartStatusActive {
			c := *cart
			return &c, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Update replaces the stored cart.
func (s *CartRepositoryStub) Update(ctx context.Context, cart *model.Cart) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Carts[cart.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	c := *cart
	s.Carts[c.ID] = &c
	return nil
}

// ListStaleActive returns active carts idle since the cutoff.
func (s *CartRepositoryStub) ListStaleActive(ctx context.Context, idleSince time.Time, limit int) ([]model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Cart
	for _, cart := range s.Carts {
		if cart.Status == model.CartStatusActive && cart.UpdatedAt.Before(idleSince) {
			result = append(result, *cart)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// OrderRepositoryStub stores orders in-memory and commits checkouts against
// the linked product and cart stubs, mirroring the transactional repository.
type OrderRepositoryStub struct {
	Orders   map[string]*model.Order
	Products *ProductRepositoryStub
	Carts    *CartRepositoryStub

	SaveCheckoutFn func(context.Context, *model.Order, *model.Cart) error
	Err            error
}

// NewOrderRepositoryStub constructs the stub linked to product and cart stubs.
func NewOrderRepositoryStub(products *ProductRepositoryStub, carts *CartRepositoryStub) *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders:   make(map[string]*model.Order),
		Products: products,
		Carts:    carts,
	}
}

// Add seeds the stub with an order.
func (s *OrderRepositoryStub) Add(order model.Order) {
	s.Orders[order.ID] = &order
}

// SaveCheckout decrements stock, stores the order, and persists the completed
// cart, failing the whole commit when any product cannot cover its quantity.
func (s *OrderRepositoryStub) SaveCheckout(ctx context.Context, order *model.Order, cart *model.Cart) error {
	if s.SaveCheckoutFn != nil {
		return s.SaveCheckoutFn(ctx, order, cart)
	}
	if s.Err != nil {
		return s.Err
	}
	for _, item := range order.Items {
		product, ok := s.Products.Products[item.ProductID]
		if !ok || !product.Active {
			return domainErrors.ErrProductUnavailable
		}
		if product.Stock < item.Quantity {
			return &domainErrors.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: product.Stock,
			}
		}
	}
	for _, item := range order.Items {
		s.Products.Products[item.ProductID].Stock -= item.Quantity
	}
	o := *order
	s.Orders[o.ID] = &o
	if s.Carts != nil {
		if stored, ok := s.Carts.Carts[cart.ID]; ok {
			stored.Status = cart.Status
			stored.Active = cart.Active
			stored.UpdatedAt = cart.UpdatedAt
		}
	}
	return nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		o := *order
		return &o, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Update replaces the stored order.
func (s *OrderRepositoryStub) Update(ctx context.Context, order *model.Order) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Orders[order.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	o := *order
	s.Orders[o.ID] = &o
	return nil
}

// ListByUser returns orders placed by the user.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, order := range s.Orders {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

// ListByStatus returns orders in the given status.
func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, order := range s.Orders {
		if order.Status == status {
			result = append(result, *order)
		}
	}
	return result, nil
}

// List returns all stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, order := range s.Orders {
		result = append(result, *order)
	}
	return result, nil
}

// Stats folds over all stored orders.
func (s *OrderRepositoryStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stats := &model.OrderStats{StatusCounts: make(map[model.OrderStatus]int)}
	for _, order := range s.Orders {
		stats.TotalOrders++
		stats.StatusCounts[order.Status]++
		if order.Status == model.OrderStatusDelivered {
			stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
		}
	}
	return stats, nil
}
