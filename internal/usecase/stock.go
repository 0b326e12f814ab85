package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
)

// StockLedger reads and adjusts per-product available quantity on top of the
// product repository.
type StockLedger struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewStockLedger constructs StockLedger.
func NewStockLedger(products repository.ProductRepository, logger *slog.Logger) *StockLedger {
	return &StockLedger{products: products, logger: logger}
}

// CheckAvailability verifies the product exists, is active, and can satisfy
// the requested quantity. Returns the product so callers can snapshot its
// current fields.
func (l *StockLedger) CheckAvailability(ctx context.Context, productID string, quantity int) (*model.Product, error) {
	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrProductUnavailable, productID)
		}
		return nil, err
	}
	if !product.Active {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrProductUnavailable, productID)
	}
	if product.Stock < quantity {
		return nil, &domainErrors.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Stock,
		}
	}
	return product, nil
}

// Restore adds each ordered quantity back onto its product's stock.
// Products that have left the catalog since the order was placed are skipped:
// cancellation must succeed regardless of catalog drift.
func (l *StockLedger) Restore(ctx context.Context, order *model.Order) error {
	for _, item := range order.Items {
		product, err := l.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				l.logger.Debug("skip stock restore for missing product",
					slog.String("order", order.ID),
					slog.String("product", item.ProductID))
				continue
			}
			return err
		}
		product.Stock += item.Quantity
		if err := l.products.Update(ctx, product); err != nil {
			return err
		}
	}
	return nil
}
