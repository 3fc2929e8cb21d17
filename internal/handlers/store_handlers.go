package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
)

//
// --- Public Storefront Handlers ---
//

// StoreExists is the handler for GET /v1/stores/:slug/exists.
// The edge rewrite layer calls this to decide between rendering the
// storefront or a not-found page for {slug}.{domain}/.
func (h *Handlers) StoreExists(c *gin.Context) {
	storeSlug := c.Param("slug")

	var count int
	err := h.DB.QueryRow("SELECT COUNT(*) FROM users WHERE store_slug = ? AND role = 'vendor'", storeSlug).Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": count == 1})
}

// StorefrontVendor is the public subset of a vendor profile. Email,
// plan and payment collection details stay private; the momo fields are
// shown because the buyer pays into them at checkout.
type StorefrontVendor struct {
	ID              int64   `json:"id"`
	BusinessName    string  `json:"businessName"`
	StoreSlug       string  `json:"storeSlug"`
	LogoURL         *string `json:"logoUrl,omitempty"`
	BannerURL       *string `json:"bannerUrl,omitempty"`
	PrimaryColor    *string `json:"primaryColor,omitempty"`
	Instagram       *string `json:"instagram,omitempty"`
	WhatsApp        *string `json:"whatsapp,omitempty"`
	MomoNumber      *string `json:"momoNumber,omitempty"`
	MomoAccountName *string `json:"momoAccountName,omitempty"`
}

// GetStorefront is the handler for GET /v1/store/:slug.
// Resolution is case-sensitive equality on the slug. Zero matches renders
// the not-found experience; more than one match fails closed rather than
// silently picking a winner.
func (h *Handlers) GetStorefront(c *gin.Context) {
	storeSlug := c.Param("slug")

	// 1. --- Resolve the Vendor (fail closed on duplicates) ---
	rows, err := h.DB.Query(`
		SELECT id, business_name, store_slug, logo_url, banner_url, primary_color,
		       instagram, whatsapp, momo_number, momo_account_name, suspended
		FROM users
		WHERE store_slug = ? AND role = 'vendor'`, storeSlug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve store"})
		return
	}
	defer rows.Close()

	var vendors []StorefrontVendor
	var suspended bool
	for rows.Next() {
		var v StorefrontVendor
		if err := rows.Scan(&v.ID, &v.BusinessName, &v.StoreSlug, &v.LogoURL, &v.BannerURL,
			&v.PrimaryColor, &v.Instagram, &v.WhatsApp, &v.MomoNumber, &v.MomoAccountName, &suspended); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan store"})
			return
		}
		vendors = append(vendors, v)
	}

	if len(vendors) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	if len(vendors) > 1 {
		// The UNIQUE index should make this impossible; refuse to guess.
		c.JSON(http.StatusConflict, gin.H{"error": "Store link is ambiguous"})
		return
	}
	if suspended {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	vendor := vendors[0]

	// 2. --- Load the Catalog ---
	products, err := h.fetchVendorProducts(vendor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	categories, err := h.fetchVendorCategories(vendor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}

	deliveries, err := h.fetchVendorDeliveries(vendor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load delivery options"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor":     vendor,
		"products":   products,
		"categories": categories,
		"deliveries": deliveries,
	})
}

func (h *Handlers) fetchVendorCategories(vendorID int64) ([]models.Category, error) {
	rows, err := h.DB.Query("SELECT id, vendor_id, name, created_at FROM categories WHERE vendor_id = ? ORDER BY name", vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.VendorID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (h *Handlers) fetchVendorDeliveries(vendorID int64) ([]models.DeliveryOption, error) {
	rows, err := h.DB.Query("SELECT id, vendor_id, name, fee, created_at FROM deliveries WHERE vendor_id = ? ORDER BY name", vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := []models.DeliveryOption{}
	for rows.Next() {
		var d models.DeliveryOption
		if err := rows.Scan(&d.ID, &d.VendorID, &d.Name, &d.Fee, &d.CreatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
