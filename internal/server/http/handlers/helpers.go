package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/server/http/dto"
	"storefront/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// statusFromError maps domain errors onto HTTP status codes. Validation
// failures are client errors; state conflicts map to 409 so callers can tell
// "bad input" from "entity in the wrong state".
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrCartUnavailable),
		errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrUserNotFound),
		errors.Is(err, domainErrors.ErrProductUnavailable),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidOrderItem),
		errors.Is(err, domainErrors.ErrUnknownStatus),
		errors.Is(err, domainErrors.ErrUnknownPaymentStatus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInsufficientStock),
		errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrOrderNotCancellable),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, dto.CartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			ImageURL:    item.ImageURL,
			Subtotal:    item.Subtotal(),
		})
	}
	return dto.CartResponse{
		ID:          cart.ID,
		Items:       items,
		TotalAmount: cart.TotalAmount,
		TotalItems:  cart.TotalItems,
		Status:      string(cart.Status),
		UpdatedAt:   cart.UpdatedAt,
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			ImageURL:    item.ImageURL,
			Subtotal:    item.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		UserEmail:       order.UserEmail,
		UserName:        order.UserName,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		TotalItems:      order.TotalItems,
		ShippingCost:    order.ShippingCost,
		DiscountAmount:  order.DiscountAmount,
		Status:          string(order.Status),
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   string(order.PaymentStatus),
		DeliveryAddress: order.DeliveryAddress,
		CreatedAt:       order.CreatedAt,
		ConfirmedAt:     order.ConfirmedAt,
		ShippedAt:       order.ShippedAt,
		DeliveredAt:     order.DeliveredAt,
	}
}

func toProductResponse(product *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		Active:    product.Active,
		ImageURL:  product.ImageURL,
		CreatedAt: product.CreatedAt,
	}
}
