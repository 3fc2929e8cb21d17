package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
)

//
// --- Category & Delivery Option Handlers (Vendor-Only) ---
//

// CreateCategory is the handler for POST /v1/vendor/categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec("INSERT INTO categories (vendor_id, name, created_at) VALUES (?, ?, ?)",
		vendorID, input.Name, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	categoryID, _ := result.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{"categoryId": categoryID})
}

// GetMyCategories is the handler for GET /v1/vendor/categories.
func (h *Handlers) GetMyCategories(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	categories, err := h.fetchVendorCategories(vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// DeleteCategory is the handler for DELETE /v1/vendor/categories/:id.
// Products reference categories by name only, so existing products keep
// their (now dangling) category label.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)
	categoryID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM categories WHERE id = ? AND vendor_id = ?", categoryID, vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// CreateDelivery is the handler for POST /v1/vendor/deliveries.
func (h *Handlers) CreateDelivery(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	var input models.CreateDeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec("INSERT INTO deliveries (vendor_id, name, fee, created_at) VALUES (?, ?, ?, ?)",
		vendorID, input.Name, input.Fee, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery option"})
		return
	}
	deliveryID, _ := result.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{"deliveryId": deliveryID})
}

// GetMyDeliveries is the handler for GET /v1/vendor/deliveries.
func (h *Handlers) GetMyDeliveries(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	deliveries, err := h.fetchVendorDeliveries(vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery options"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveries": deliveries})
}

// DeleteDelivery is the handler for DELETE /v1/vendor/deliveries/:id.
func (h *Handlers) DeleteDelivery(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)
	deliveryID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM deliveries WHERE id = ? AND vendor_id = ?", deliveryID, vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete delivery option"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery option not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery option deleted"})
}
