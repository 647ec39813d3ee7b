package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/auth"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	checkoutService services.CheckoutService
	orderService    services.OrderService
}

func NewOrderHandler(checkoutService services.CheckoutService, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService, orderService: orderService}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	ident := auth.IdentityFrom(c)

	order, err := h.checkoutService.Checkout(ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed successfully!",
		"order_id": order.ID,
		"order":    order,
	})
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	ident := auth.IdentityFrom(c)

	orders, err := h.orderService.ListOrdersForUser(ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /orders/:order_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	ident := auth.IdentityFrom(c)

	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.orderService.GetOrderForUser(ident.UserID, uint(orderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /admin/orders/:order_id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderService.UpdateStatus(uint(orderID), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
