package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/auth"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GET /cart
func (h *CartHandler) ViewCart(c *gin.Context) {
	view, err := h.cartService.View(ownerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /cart/items/:item_id
func (h *CartHandler) AddItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	if err := h.cartService.AddItem(ownerFrom(c), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

// PUT /cart/items/:item_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.cartService.UpdateQuantity(ownerFrom(c), itemID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// DELETE /cart/items/:item_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(ownerFrom(c), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func ownerFrom(c *gin.Context) services.CartOwner {
	ident := auth.IdentityFrom(c)
	return services.CartOwner{UserID: ident.UserID, SessionKey: ident.SessionKey}
}

func itemIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return 0, false
	}
	return uint(id), true
}
