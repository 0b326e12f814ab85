package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/test"
)

type cartFixture struct {
	products *test.ProductRepositoryStub
	carts    *test.CartRepositoryStub
	uc       *CartUseCase
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	products := test.NewProductRepositoryStub()
	products.Add(model.Product{ID: "p1", Name: "widget", Price: dec(t, "9.99"), Stock: 10, Active: true})
	carts := test.NewCartRepositoryStub()
	return &cartFixture{products: products, carts: carts, uc: NewCartUseCase(carts, products)}
}

func TestActiveCartCreatesWhenMissing(t *testing.T) {
	f := newCartFixture(t)

	cart, err := f.uc.ActiveCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.UserID != "u1" || cart.Status != model.CartStatusActive {
		t.Errorf("unexpected cart: %+v", cart)
	}
	if len(cart.Items) != 0 {
		t.Errorf("new cart not empty: %d items", len(cart.Items))
	}

	again, err := f.uc.ActiveCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != cart.ID {
		t.Errorf("second call created a new cart: %s vs %s", again.ID, cart.ID)
	}
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	f := newCartFixture(t)

	cart, err := f.uc.AddItem(context.Background(), "u1", "p1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(cart.Items))
	}
	item := cart.Items[0]
	if item.ProductName != "widget" || !item.Price.Equal(dec(t, "9.99")) || item.Quantity != 2 {
		t.Errorf("unexpected snapshot: %+v", item)
	}
	if cart.TotalItems != 2 || !cart.TotalAmount.Equal(dec(t, "19.98")) {
		t.Errorf("totals = %d / %s", cart.TotalItems, cart.TotalAmount)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	f := newCartFixture(t)
	if _, err := f.uc.AddItem(context.Background(), "u1", "p1", 0); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	f := newCartFixture(t)
	f.products.Add(model.Product{ID: "p2", Name: "retired", Price: dec(t, "1.00"), Stock: 5, Active: false})

	if _, err := f.uc.AddItem(context.Background(), "u1", "p2", 1); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected product unavailable, got %v", err)
	}
	if _, err := f.uc.AddItem(context.Background(), "u1", "nope", 1); !errors.Is(err, domainErrors.ErrProductUnavailable) {
		t.Fatalf("expected product unavailable for missing product, got %v", err)
	}
}

func TestSetItemQuantity(t *testing.T) {
	f := newCartFixture(t)
	if _, err := f.uc.AddItem(context.Background(), "u1", "p1", 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cart, err := f.uc.SetItemQuantity(context.Background(), "u1", "p1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Items[0].Quantity != 5 || cart.TotalItems != 5 {
		t.Errorf("quantity = %d, totals = %d", cart.Items[0].Quantity, cart.TotalItems)
	}

	if _, err := f.uc.SetItemQuantity(context.Background(), "u1", "absent", 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for absent product, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	f := newCartFixture(t)
	if _, err := f.uc.AddItem(context.Background(), "u1", "p1", 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cart, err := f.uc.RemoveItem(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 || cart.TotalItems != 0 {
		t.Errorf("item not removed: %+v", cart.Items)
	}

	if _, err := f.uc.RemoveItem(context.Background(), "u1", "p1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second removal, got %v", err)
	}
}

func TestAbandonThenFreshCart(t *testing.T) {
	f := newCartFixture(t)
	first, err := f.uc.AddItem(context.Background(), "u1", "p1", 1)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := f.uc.Abandon(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.carts.Carts[first.ID].Status != model.CartStatusAbandoned {
		t.Error("cart not marked ABANDONED")
	}

	fresh, err := f.uc.ActiveCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.ID == first.ID {
		t.Error("abandoned cart was re-activated")
	}
}

func TestAbandonCartByIDIgnoresCompleted(t *testing.T) {
	f := newCartFixture(t)
	cart := model.NewCart("c1", "u1", time.Now())
	cart.Complete(time.Now())
	f.carts.Add(*cart)

	if err := f.uc.AbandonCart(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.carts.Carts["c1"].Status != model.CartStatusCompleted {
		t.Error("completed cart overwritten")
	}
}

func TestStaleCarts(t *testing.T) {
	f := newCartFixture(t)
	old := model.NewCart("c-old", "u1", time.Now().Add(-100*time.Hour))
	old.UpdatedAt = time.Now().Add(-100 * time.Hour)
	f.carts.Add(*old)
	recent := model.NewCart("c-new", "u2", time.Now())
	f.carts.Add(*recent)

	stale, err := f.uc.StaleCarts(context.Background(), time.Now().Add(-72*time.Hour), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != "c-old" {
		t.Errorf("stale carts = %+v", stale)
	}
}
