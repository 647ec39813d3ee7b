package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type ItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type CategoryRequest struct {
	Title string `json:"title" binding:"required"`
}

type AssignItemsRequest struct {
	ItemIDs []uint `json:"item_ids" binding:"required"`
}

// GET /items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListItems()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GET /items/:item_id
func (h *CatalogHandler) GetItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	item, err := h.catalogService.GetItem(itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GET /categories/:category_id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// POST /admin/items
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	req, ok := bindItem(c)
	if !ok {
		return
	}

	item := &models.Item{Name: req.Name, Description: req.Description, Price: req.Price}
	if err := h.catalogService.CreateItem(item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// PUT /admin/items/:item_id
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	req, ok := bindItem(c)
	if !ok {
		return
	}

	item := &models.Item{ID: itemID, Name: req.Name, Description: req.Description, Price: req.Price}
	if err := h.catalogService.UpdateItem(item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /admin/items/:item_id
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteItem(itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// POST /admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	category := &models.Category{Title: req.Title}
	if err := h.catalogService.CreateCategory(category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DELETE /admin/categories/:category_id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// PUT /admin/categories/:category_id/items
func (h *CatalogHandler) AssignItems(c *gin.Context) {
	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	var req AssignItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogService.AssignItems(categoryID, req.ItemIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category items updated"})
}

func bindItem(c *gin.Context) (*ItemRequest, bool) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return nil, false
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return nil, false
	}
	return &req, true
}

func categoryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("category_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return 0, false
	}
	return uint(id), true
}
