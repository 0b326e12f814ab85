package usecase

import (
	"context"
	"log/slog"
	"time"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
)

// OrderUseCase governs the order state machine after creation.
type OrderUseCase struct {
	orders repository.OrderRepository
	ledger *StockLedger
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, ledger *StockLedger, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, ledger: ledger, logger: logger}
}

// Get fetches an order by identifier.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// ListByUser returns orders placed by the user.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListByStatus returns orders currently in the given status.
func (u *OrderUseCase) ListByStatus(ctx context.Context, raw string) ([]model.Order, error) {
	status, err := model.ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}
	return u.orders.ListByStatus(ctx, status)
}

// UpdateStatus moves the order along the transition graph. Timestamps are
// stamped by target status; reaching DELIVERED forces the payment status to
// PAID, and reaching CANCELLED from a cancellable state restores stock.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID, rawStatus string) (*model.Order, error) {
	newStatus, err := model.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if newStatus == order.Status || !model.CanTransition(order.Status, newStatus) {
		return nil, &domainErrors.InvalidTransitionError{
			From: string(order.Status),
			To:   string(newStatus),
		}
	}

	previous := order.Status
	now := time.Now()
	order.Status = newStatus
	order.UpdatedAt = now

	switch newStatus {
	case model.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case model.OrderStatusShipped:
		order.ShippedAt = &now
	case model.OrderStatusDelivered:
		order.DeliveredAt = &now
		order.PaymentStatus = model.PaymentStatusPaid
	case model.OrderStatusCancelled:
		if previous.IsCancellable() {
			if err := u.ledger.Restore(ctx, order); err != nil {
				return nil, err
			}
		}
	}

	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	u.logger.Info("order status updated",
		slog.String("order", order.ID),
		slog.String("from", string(previous)),
		slog.String("to", string(newStatus)))

	return order, nil
}

// Cancel is the user-initiated cancellation entry point. Unlike a CANCELLED
// transition via UpdateStatus it always restores stock, and it rejects orders
// already past PROCESSING with a state error rather than a validation error.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID, reason string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.IsCancellable() {
		return nil, domainErrors.ErrOrderNotCancellable
	}

	previous := order.Status
	order.Status = model.OrderStatusCancelled
	order.UpdatedAt = time.Now()

	if err := u.ledger.Restore(ctx, order); err != nil {
		return nil, err
	}
	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	u.logger.Info("order cancelled",
		slog.String("order", order.ID),
		slog.String("from", string(previous)),
		slog.String("reason", reason))

	return order, nil
}

// UpdatePaymentStatus records the payment state reported by the gateway.
// Payment status moves freely; only the value itself is validated.
func (u *OrderUseCase) UpdatePaymentStatus(ctx context.Context, orderID, rawStatus string) (*model.Order, error) {
	status, err := model.ParsePaymentStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = status
	order.UpdatedAt = time.Now()

	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Stats aggregates per-status order counts and delivered revenue.
func (u *OrderUseCase) Stats(ctx context.Context) (*model.OrderStats, error) {
	return u.orders.Stats(ctx)
}
