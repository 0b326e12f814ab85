package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/test"
)

func TestCheckAvailability(t *testing.T) {
	products := test.NewProductRepositoryStub()
	products.Add(model.Product{ID: "p1", Name: "widget", Price: dec(t, "2.00"), Stock: 4, Active: true})
	products.Add(model.Product{ID: "p2", Name: "retired", Price: dec(t, "2.00"), Stock: 4, Active: false})
	ledger := NewStockLedger(products, discardLogger())

	product, err := ledger.CheckAvailability(context.Background(), "p1", 4)
	if err != nil {
		t.Fatalf("exact stock should pass: %v", err)
	}
	if product.ID != "p1" {
		t.Errorf("wrong product returned: %s", product.ID)
	}

	if _, err := ledger.CheckAvailability(context.Background(), "p1", 5); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if _, err := ledger.CheckAvailability(context.Background(), "p2", 1); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected product unavailable for inactive product, got %v", err)
	}
	if _, err := ledger.CheckAvailability(context.Background(), "missing", 1); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected product unavailable for missing product, got %v", err)
	}
}

func TestRestoreAddsBackQuantities(t *testing.T) {
	products := test.NewProductRepositoryStub()
	products.Add(model.Product{ID: "p1", Name: "widget", Price: dec(t, "2.00"), Stock: 1, Active: true})
	products.Add(model.Product{ID: "p2", Name: "gadget", Price: dec(t, "3.00"), Stock: 0, Active: true})
	ledger := NewStockLedger(products, discardLogger())

	order := &model.Order{
		ID: "o1",
		Items: []model.OrderItem{
			{ProductID: "p1", ProductName: "widget", Price: dec(t, "2.00"), Quantity: 2},
			{ProductID: "p2", ProductName: "gadget", Price: dec(t, "3.00"), Quantity: 1},
		},
	}
	if err := ledger.Restore(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := products.Stock("p1"); got != 3 {
		t.Errorf("p1 stock = %d, want 3", got)
	}
	if got := products.Stock("p2"); got != 1 {
		t.Errorf("p2 stock = %d, want 1", got)
	}
}

func TestRestoreSkipsMissingProducts(t *testing.T) {
	products := test.NewProductRepositoryStub()
	products.Add(model.Product{ID: "p1", Name: "widget", Price: dec(t, "2.00"), Stock: 1, Active: true})
	ledger := NewStockLedger(products, discardLogger())

	order := &model.Order{
		ID: "o1",
		Items: []model.OrderItem{
			{ProductID: "gone", ProductName: "deleted", Price: dec(t, "1.00"), Quantity: 3},
			{ProductID: "p1", ProductName: "widget", Price: dec(t, "2.00"), Quantity: 2},
		},
	}
	if err := ledger.Restore(context.Background(), order); err != nil {
		t.Fatalf("missing product must not fail restore: %v", err)
	}
	if got := products.Stock("p1"); got != 3 {
		t.Errorf("p1 stock = %d, want 3", got)
	}
}
