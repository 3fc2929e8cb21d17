package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
	"github.com/sellquiccom/sellquicks-sub000/internal/storage"
)

// --- Inputs ---

type CreateProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Price         float64  `json:"price" binding:"gte=0"`
	Stock         int      `json:"stock" binding:"gte=0"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	SellingStatus string   `json:"sellingStatus" binding:"omitempty,oneof=none best_seller new_arrival"`
}

type UpdateProductInput struct {
	Name          *string   `json:"name"`
	Price         *float64  `json:"price" binding:"omitempty,gte=0"`
	Stock         *int      `json:"stock" binding:"omitempty,gte=0"`
	Category      *string   `json:"category"`
	Description   *string   `json:"description"`
	Images        *[]string `json:"images"`
	SellingStatus *string   `json:"sellingStatus" binding:"omitempty,oneof=none best_seller new_arrival"`
}

// CreateProduct is the handler for POST /v1/vendor/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Images) > models.MaxProductImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("A product can have at most %d images", models.MaxProductImages)})
		return
	}
	if input.SellingStatus == "" {
		input.SellingStatus = models.SellingStatusNone
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	// 1. --- Plan Cap Check (before any write) ---
	// The count and the insert share a transaction so two concurrent
	// creates cannot both slip under the free-plan cap.
	var plan, storeSlug string
	err = tx.QueryRow("SELECT plan, store_slug FROM users WHERE id = ? FOR UPDATE", vendorID).Scan(&plan, &storeSlug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	if plan == "free" {
		var active int
		if err := tx.QueryRow("SELECT COUNT(*) FROM products WHERE vendor_id = ?", vendorID).Scan(&active); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}
		if active >= models.FreePlanProductLimit {
			c.JSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("The free plan allows up to %d products. Upgrade to add more.", models.FreePlanProductLimit),
			})
			return
		}
	}

	// 2. --- Insert ---
	imagesJSON, _ := json.Marshal(input.Images)
	now := time.Now()
	query := `
		INSERT INTO products (vendor_id, store_slug, name, price, stock, category, description, images, selling_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.Exec(query, vendorID, storeSlug, input.Name, input.Price, input.Stock,
		input.Category, input.Description, imagesJSON, input.SellingStatus, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	productID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new product ID"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Product created",
		"productId": productID,
	})
}

// GetMyProducts is the handler for GET /v1/vendor/products.
func (h *Handlers) GetMyProducts(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	products, err := h.fetchVendorProducts(vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// UpdateProduct is the handler for PUT /v1/vendor/products/:id.
// Ownership is enforced in the WHERE clause: a vendor can only touch
// their own rows.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)
	productID := c.Param("id")

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Images != nil && len(*input.Images) > models.MaxProductImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("A product can have at most %d images", models.MaxProductImages)})
		return
	}

	setCols := []string{}
	args := []interface{}{}
	addSet := func(col string, val interface{}) {
		setCols = append(setCols, col+" = ?")
		args = append(args, val)
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.Stock != nil {
		addSet("stock", *input.Stock)
	}
	if input.Category != nil {
		addSet("category", *input.Category)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Images != nil {
		imagesJSON, _ := json.Marshal(*input.Images)
		addSet("images", imagesJSON)
	}
	if input.SellingStatus != nil {
		addSet("selling_status", *input.SellingStatus)
	}

	if len(setCols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided"})
		return
	}
	addSet("updated_at", time.Now())

	query := "UPDATE products SET "
	for i, col := range setCols {
		if i > 0 {
			query += ", "
		}
		query += col
	}
	query += " WHERE id = ? AND vendor_id = ?"
	args = append(args, productID, vendorID)

	result, err := h.DB.Exec(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct is the handler for DELETE /v1/vendor/products/:id.
// The document delete and the image destroys are two independent steps:
// the row goes first, then each stored image is destroyed best-effort.
// A destroy that reports "not found" is success; any other destroy error
// is logged and skipped, which can leave orphaned files in storage.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)
	productID := c.Param("id")

	// 1. --- Fetch the image list before the row disappears ---
	var imagesJSON []byte
	err := h.DB.QueryRow("SELECT images FROM products WHERE id = ? AND vendor_id = ?", productID, vendorID).Scan(&imagesJSON)
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

	// 2. --- Delete the Document ---
	result, err := h.DB.Exec("DELETE FROM products WHERE id = ? AND vendor_id = ?", productID, vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// 3. --- Destroy Stored Images (best-effort) ---
	h.destroyImages(c.Request.Context(), images)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// destroyImages destroys each stored image behind the given delivery URLs.
// Failures are logged, never fatal.
func (h *Handlers) destroyImages(ctx context.Context, imageURLs []string) {
	if h.Storage == nil {
		return
	}
	for _, url := range imageURLs {
		publicID := storage.PublicIDFromURL(url)
		if publicID == "" {
			continue
		}
		if err := h.Storage.DeleteImage(ctx, publicID); err != nil {
			log.Printf("Warning: failed to delete stored image %s: %v", publicID, err)
		}
	}
}

// fetchVendorProducts loads a vendor's full product list, newest first.
func (h *Handlers) fetchVendorProducts(vendorID int64) ([]models.Product, error) {
	query := `
		SELECT id, vendor_id, store_slug, name, price, stock, category, description, images, selling_status, created_at, updated_at
		FROM products
		WHERE vendor_id = ?
		ORDER BY created_at DESC`
	rows, err := h.DB.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var imagesJSON []byte
		if err := rows.Scan(&p.ID, &p.VendorID, &p.StoreSlug, &p.Name, &p.Price, &p.Stock,
			&p.Category, &p.Description, &imagesJSON, &p.SellingStatus, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if len(imagesJSON) > 0 {
			_ = json.Unmarshal(imagesJSON, &p.Images)
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
