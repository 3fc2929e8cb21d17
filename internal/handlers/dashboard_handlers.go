package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/analytics"
)

//
// --- Dashboard Stats ---
//
// Both dashboards load an order snapshot and hand it to the analytics
// package; the reduction itself never touches the database.
//

// GetVendorStats is the handler for GET /v1/vendor/dashboard-stats.
func (h *Handlers) GetVendorStats(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	snapshot, err := h.fetchVendorOrders(vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, analytics.Summarize(snapshot, time.Now()))
}

// GetAdminStats is the handler for GET /v1/admin/dashboard-stats.
// Same reduction as the vendor view, over the platform-wide order stream.
func (h *Handlers) GetAdminStats(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, vendor_id, store_slug, status, total_amount,
		       customer_name, customer_email, customer_phone, customer_address,
		       payment_ref, created_at, updated_at
		FROM orders`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	defer rows.Close()

	snapshot, err := scanOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan orders"})
		return
	}

	stats := analytics.Summarize(snapshot, time.Now())

	// The admin view adds a couple of platform KPIs on top.
	var totalVendors, totalProducts int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'vendor'").Scan(&totalVendors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count vendors"})
		return
	}
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&totalProducts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":         stats,
		"totalVendors":  totalVendors,
		"totalProducts": totalProducts,
	})
}
