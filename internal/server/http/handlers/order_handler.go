package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain/model"
	"storefront/internal/server/http/dto"
)

// OrderHandler manages checkout and order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Checkout(c.Request.Context(), req.CartID, req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// List handles GET /api/orders. With ?status= it lists all orders in that
// status; otherwise it lists the caller's own orders.
func (h *OrderHandler) List(c *gin.Context) {
	var (
		orders []model.Order
		err    error
	)
	if status := c.Query("status"); status != "" {
		orders, err = h.facade.OrdersByStatus(c.Request.Context(), status)
	} else {
		orders, err = h.facade.OrdersByUser(c.Request.Context(), CurrentUserID(c))
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.facade.CancelOrder(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdatePaymentStatus handles PATCH /api/orders/:id/payment-status.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), req.PaymentStatus)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Stats handles GET /api/orders/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.facade.OrderStats(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.OrderStatsResponse{
		TotalOrders:      stats.TotalOrders,
		PendingOrders:    stats.StatusCounts[model.OrderStatusPending],
		ConfirmedOrders:  stats.StatusCounts[model.OrderStatusConfirmed],
		ProcessingOrders: stats.StatusCounts[model.OrderStatusProcessing],
		ShippedOrders:    stats.StatusCounts[model.OrderStatusShipped],
		DeliveredOrders:  stats.StatusCounts[model.OrderStatusDelivered],
		CancelledOrders:  stats.StatusCounts[model.OrderStatusCancelled],
		TotalRevenue:     stats.TotalRevenue,
	})
}
