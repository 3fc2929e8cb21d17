package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
	"github.com/sellquiccom/sellquicks-sub000/internal/orders"
)

//
// --- Admin Oversight Handlers ---
//

// ListVendors is the handler for GET /v1/admin/vendors.
func (h *Handlers) ListVendors(c *gin.Context) {
	query := `
		SELECT id, role, email, business_name, store_slug,
		       logo_url, banner_url, primary_color, instagram, whatsapp,
		       momo_number, momo_account_name,
		       plan, plan_status, plan_expires_at, suspended, created_at, updated_at
		FROM users
		WHERE role = 'vendor'
		ORDER BY created_at DESC`
	rows, err := h.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendors"})
		return
	}
	defer rows.Close()

	vendors := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Role, &u.Email, &u.BusinessName, &u.StoreSlug,
			&u.LogoURL, &u.BannerURL, &u.PrimaryColor, &u.Instagram, &u.WhatsApp,
			&u.MomoNumber, &u.MomoAccountName,
			&u.Plan, &u.PlanStatus, &u.PlanExpiresAt, &u.Suspended, &u.CreatedAt, &u.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan vendor"})
			return
		}
		vendors = append(vendors, u)
	}

	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// ListAllOrders is the handler for GET /v1/admin/orders.
func (h *Handlers) ListAllOrders(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, vendor_id, store_slug, status, total_amount,
		       customer_name, customer_email, customer_phone, customer_address,
		       payment_ref, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	list, err := scanOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// ListAllProducts is the handler for GET /v1/admin/products.
func (h *Handlers) ListAllProducts(c *gin.Context) {
	query := `
		SELECT id, vendor_id, store_slug, name, price, stock, category, description, images, selling_status, created_at, updated_at
		FROM products
		ORDER BY created_at DESC`
	rows, err := h.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var imagesJSON []byte
		if err := rows.Scan(&p.ID, &p.VendorID, &p.StoreSlug, &p.Name, &p.Price, &p.Stock,
			&p.Category, &p.Description, &imagesJSON, &p.SellingStatus, &p.CreatedAt, &p.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		if len(imagesJSON) > 0 {
			_ = json.Unmarshal(imagesJSON, &p.Images)
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		products = append(products, p)
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// SuspendVendorInput toggles the suspension flag.
type SuspendVendorInput struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

// SuspendVendor is the handler for PATCH /v1/admin/vendors/:id/suspend.
func (h *Handlers) SuspendVendor(c *gin.Context) {
	vendorID := c.Param("id")

	var input SuspendVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec("UPDATE users SET suspended = ?, updated_at = ? WHERE id = ? AND role = 'vendor'",
		*input.Suspended, time.Now(), vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor suspension updated"})
}

// AssignPlanInput grants a subscription plan to a vendor.
type AssignPlanInput struct {
	Plan         string `json:"plan" binding:"required,oneof=free pro"`
	DurationDays int    `json:"durationDays" binding:"omitempty,gt=0"`
}

// AssignPlan is the handler for PATCH /v1/admin/vendors/:id/plan.
func (h *Handlers) AssignPlan(c *gin.Context) {
	vendorID := c.Param("id")

	var input AssignPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expiresAt interface{}
	if input.Plan == "pro" {
		days := input.DurationDays
		if days == 0 {
			days = 30
		}
		expiresAt = time.Now().AddDate(0, 0, days)
	}

	result, err := h.DB.Exec(
		"UPDATE users SET plan = ?, plan_status = 'active', plan_expires_at = ?, updated_at = ? WHERE id = ? AND role = 'vendor'",
		input.Plan, expiresAt, time.Now(), vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign plan"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan assigned"})
}

// AdminUpdateOrderStatus is the handler for PATCH /v1/admin/orders/:id/status.
// The admin holds the vendor's transition authority platform-wide.
func (h *Handlers) AdminUpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.transitionOrder(c, orders.ActorAdmin, "id = ?", []interface{}{orderID}, input.Status)
}

// DeleteVendor is the handler for DELETE /v1/admin/vendors/:id.
// Deletion does not cascade: the vendor's products and orders remain as
// orphaned rows, matching the platform's current data contract.
func (h *Handlers) DeleteVendor(c *gin.Context) {
	vendorID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM users WHERE id = ? AND role = 'vendor'", vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vendor"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor deleted"})
}

// AdminDeleteProduct is the handler for DELETE /v1/admin/products/:id.
// Same two-step document-then-images delete as the vendor path.
func (h *Handlers) AdminDeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	var imagesJSON []byte
	err := h.DB.QueryRow("SELECT images FROM products WHERE id = ?", productID).Scan(&imagesJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	var images []string
	if len(imagesJSON) > 0 {
		_ = json.Unmarshal(imagesJSON, &images)
	}

	if _, err := h.DB.Exec("DELETE FROM products WHERE id = ?", productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	h.destroyImages(c.Request.Context(), images)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
