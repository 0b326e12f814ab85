package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "storefront/internal/domain/errors"
	testhelpers "storefront/internal/test"
)

func newCatalogFixture() (*testhelpers.ProductRepositoryStub, *CatalogUseCase) {
	products := testhelpers.NewProductRepositoryStub()
	return products, NewCatalogUseCase(products)
}

func TestCatalogCreate(t *testing.T) {
	products, uc := newCatalogFixture()

	product, err := uc.Create(context.Background(), "widget", dec(t, "9.99"), 5, "https://img.example.com/widget.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ID == "" || !product.Active {
		t.Fatalf("unexpected product: %+v", product)
	}
	if got := products.Stock(product.ID); got != 5 {
		t.Fatalf("stored stock = %d, want 5", got)
	}
}

func TestCatalogCreateRejectsBadInput(t *testing.T) {
	_, uc := newCatalogFixture()

	if _, err := uc.Create(context.Background(), "widget", dec(t, "-1"), 5, ""); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("negative price: expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "widget", dec(t, "1.00"), -1, ""); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("negative stock: expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCatalogUpdate(t *testing.T) {
	_, uc := newCatalogFixture()

	created, err := uc.Create(context.Background(), "widget", dec(t, "9.99"), 5, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := uc.Update(context.Background(), created.ID, "widget-2", dec(t, "12.50"), 8, "https://img.example.com/v2.png")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "widget-2" || updated.Stock != 8 || !updated.Price.Equal(dec(t, "12.50")) {
		t.Fatalf("unexpected product after update: %+v", updated)
	}

	if _, err := uc.Update(context.Background(), "missing", "x", dec(t, "1"), 1, ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogDeactivate(t *testing.T) {
	_, uc := newCatalogFixture()

	created, err := uc.Create(context.Background(), "widget", dec(t, "9.99"), 5, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.Deactivate(context.Background(), created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	product, err := uc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if product.Active {
		t.Fatal("expected product to be inactive")
	}

	active, err := uc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	for _, p := range active {
		if p.ID == created.ID {
			t.Fatal("deactivated product still listed as active")
		}
	}
}
