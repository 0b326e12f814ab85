package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
)

// CatalogUseCase covers plain product CRUD.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// Create registers a new active product.
func (u *CatalogUseCase) Create(ctx context.Context, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error) {
	if price.IsNegative() || stock < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	now := time.Now()
	product := &model.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		Active:    true,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get fetches a product by identifier.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// ListActive returns products currently offered.
func (u *CatalogUseCase) ListActive(ctx context.Context) ([]model.Product, error) {
	return u.products.ListActive(ctx)
}

// Update replaces mutable product fields.
func (u *CatalogUseCase) Update(ctx context.Context, id, name string, price decimal.Decimal, stock int, imageURL string) (*model.Product, error) {
	if price.IsNegative() || stock < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = name
	product.Price = price
	product.Stock = stock
	product.ImageURL = imageURL
	product.UpdatedAt = time.Now()
	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Deactivate soft-removes the product from the catalog. Existing order
// snapshots keep their copied fields.
func (u *CatalogUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	product.Active = false
	product.UpdatedAt = time.Now()
	return u.products.Update(ctx, product)
}
