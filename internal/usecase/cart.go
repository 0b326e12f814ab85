package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
)

// CartUseCase manages the user's active cart.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// ActiveCart returns the user's current active cart, creating an empty one
// when none exists.
func (u *CartUseCase) ActiveCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := u.carts.GetActiveByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	cart = model.NewCart(uuid.NewString(), userID, time.Now())
	if err := u.carts.Create(ctx, cart); err != nil {
		// Lost the race to another request creating the active cart.
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return u.carts.GetActiveByUser(ctx, userID)
		}
		return nil, err
	}
	return cart, nil
}

// AddItem snapshots the product into the user's active cart.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrProductUnavailable, productID)
		}
		return nil, err
	}
	if !product.Active {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrProductUnavailable, productID)
	}

	cart, err := u.ActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(model.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    quantity,
		ImageURL:    product.ImageURL,
	}, time.Now())

	if err := u.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetItemQuantity changes the quantity of a product already in the cart.
func (u *CartUseCase) SetItemQuantity(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	cart, err := u.carts.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.SetItemQuantity(productID, quantity, time.Now()) {
		return nil, fmt.Errorf("%w: product %s not in cart", domainErrors.ErrNotFound, productID)
	}
	if err := u.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a product from the cart.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	cart, err := u.carts.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(productID, time.Now()) {
		return nil, fmt.Errorf("%w: product %s not in cart", domainErrors.ErrNotFound, productID)
	}
	if err := u.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Abandon marks the user's active cart as abandoned. Abandoned carts are
// never re-activated; the next item add starts a fresh cart.
func (u *CartUseCase) Abandon(ctx context.Context, userID string) error {
	cart, err := u.carts.GetActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	cart.Abandon(time.Now())
	return u.carts.Update(ctx, cart)
}

// AbandonCart marks a specific cart as abandoned, used by the sweeper.
func (u *CartUseCase) AbandonCart(ctx context.Context, cartID string) error {
	cart, err := u.carts.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart.Status != model.CartStatusActive {
		return nil
	}
	cart.Abandon(time.Now())
	return u.carts.Update(ctx, cart)
}

// StaleCarts lists active carts idle since the given cutoff.
func (u *CartUseCase) StaleCarts(ctx context.Context, idleSince time.Time, limit int) ([]model.Cart, error) {
	return u.carts.ListStaleActive(ctx, idleSince, limit)
}
