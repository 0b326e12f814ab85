package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
)

// CheckoutUseCase converts an active cart into a persisted order.
type CheckoutUseCase struct {
	carts  repository.CartRepository
	orders repository.OrderRepository
	users  repository.UserRepository
	ledger *StockLedger
	logger *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	ledger *StockLedger,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{carts: carts, orders: orders, users: users, ledger: ledger, logger: logger}
}

// CreateOrder validates the cart, its user, and the stock of every item, then
// commits the order, the stock decrements, and the cart completion as one
// unit. All validation happens before any write; a cart failing any check
// produces no partial order.
func (u *CheckoutUseCase) CreateOrder(ctx context.Context, cartID, deliveryAddress, paymentMethod string) (*model.Order, error) {
	cart, err := u.carts.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrCartUnavailable
		}
		return nil, err
	}
	if !cart.Active || cart.Status != model.CartStatusActive {
		return nil, domainErrors.ErrCartUnavailable
	}
	if len(cart.Items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	user, err := u.users.GetByID(ctx, cart.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		product, err := u.ledger.CheckAvailability(ctx, cartItem.ProductID, cartItem.Quantity)
		if err != nil {
			return nil, err
		}
		item := model.OrderItem{
			ProductID:   cartItem.ProductID,
			ProductName: cartItem.ProductName,
			Price:       cartItem.Price,
			Quantity:    cartItem.Quantity,
			ImageURL:    product.ImageURL,
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	now := time.Now()
	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		UserEmail:       user.Email,
		UserName:        user.DisplayName(),
		Items:           items,
		ShippingCost:    decimal.Zero,
		DiscountAmount:  decimal.Zero,
		Status:          model.OrderStatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		DeliveryAddress: deliveryAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
		Active:          true,
	}
	order.CalculateTotals()

	cart.Complete(now)
	if err := u.orders.SaveCheckout(ctx, order, cart); err != nil {
		return nil, err
	}

	u.logger.Info("order created",
		slog.String("order", order.ID),
		slog.String("cart", cart.ID),
		slog.String("user", user.ID),
		slog.String("total", order.TotalAmount.String()))

	return order, nil
}
