// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout and order endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CreateCheckout handles POST /checkout
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	account, _ := middleware.GetAccountFromContext(c)

	redirect, err := h.checkoutService.CreateCheckout(c.Request.Context(), account)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCartNotFound), errors.Is(err, checkout.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, checkout.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout created successfully",
		"data":    redirect,
	})
}

// ListOrders handles GET /orders
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	account, _ := middleware.GetAccountFromContext(c)

	orders, err := h.checkoutService.ListOrders(c.Request.Context(), account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GetOrder handles GET /orders/:tradeNo
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	account, _ := middleware.GetAccountFromContext(c)

	order, err := h.checkoutService.GetOrder(c.Request.Context(), account, c.Param("tradeNo"))
	if err != nil {
		if errors.Is(err, cart.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}
