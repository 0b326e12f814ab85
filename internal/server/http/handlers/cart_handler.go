package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/server/http/dto"
)

// CartHandler manages the authenticated user's cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.AddCartItem(c.Request.Context(), CurrentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// UpdateItem handles PUT /api/cart/items/:productID.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.SetCartItemQuantity(c.Request.Context(), CurrentUserID(c), c.Param("productID"), req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /api/cart/items/:productID.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.facade.RemoveCartItem(c.Request.Context(), CurrentUserID(c), c.Param("productID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Abandon handles DELETE /api/cart.
func (h *CartHandler) Abandon(c *gin.Context) {
	if err := h.facade.AbandonCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
