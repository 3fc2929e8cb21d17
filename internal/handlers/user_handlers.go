package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/gosimple/slug"

	"github.com/sellquiccom/sellquicks-sub000/internal/auth"
	"github.com/sellquiccom/sellquicks-sub000/internal/models"
)

// --- Vendor Registration ---

// RegisterVendorInput holds the signup payload. Separate from models.User
// so a client can never set its own id, role or plan.
type RegisterVendorInput struct {
	BusinessName string `json:"businessName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
}

// RegisterVendor is the handler for POST /v1/register.
func (h *Handlers) RegisterVendor(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// 3. --- Derive the Initial Store Slug ---
	storeSlug := slug.Make(input.BusinessName)
	if storeSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Business name must contain at least one letter or digit"})
		return
	}

	// 4. --- Insert (UNIQUE indexes on email and store_slug) ---
	now := time.Now()
	query := `
		INSERT INTO users (role, email, password_hash, business_name, store_slug, plan, plan_status, suspended, created_at, updated_at)
		VALUES ('vendor', ?, ?, ?, ?, 'free', 'active', false, ?, ?)`
	result, err := h.DB.Exec(query, input.Email, password.Hash, input.BusinessName, storeSlug, now, now)
	if err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or store name is already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new account ID"})
		return
	}

	// 5. --- Issue a Token so the vendor lands signed-in ---
	token, err := auth.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Store created successfully",
		"token":     token,
		"storeSlug": storeSlug,
	})
}

// --- Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID int64
	var hash string
	err := h.DB.QueryRow("SELECT id, password_hash FROM users WHERE email = ?", input.Email).Scan(&userID, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	password := models.Password{Hash: hash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// --- Profile ---

// GetMe is the handler for GET /v1/vendor/me.
// It returns the session profile plus the derived fields the UI needs
// (business name, store slug, plan, admin flag).
func (h *Handlers) GetMe(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	user, err := h.fetchUser(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"isAdmin": user.IsAdmin(),
	})
}

// UpdateSettingsInput covers branding, payment details and the slug.
// Pointer fields distinguish "not sent" from "clear this value".
type UpdateSettingsInput struct {
	BusinessName    *string `json:"businessName"`
	StoreSlug       *string `json:"storeSlug"`
	LogoURL         *string `json:"logoUrl"`
	BannerURL       *string `json:"bannerUrl"`
	PrimaryColor    *string `json:"primaryColor"`
	Instagram       *string `json:"instagram"`
	WhatsApp        *string `json:"whatsapp"`
	MomoNumber      *string `json:"momoNumber"`
	MomoAccountName *string `json:"momoAccountName"`
}

// UpdateSettings is the handler for PUT /v1/vendor/settings.
// Slug changes are checked against the UNIQUE index inside the same
// transaction, so two vendors racing for a slug cannot both win. The old
// slug is not redirected: previously shared URLs simply stop resolving.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	vendorID := userID_raw.(int64)

	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setCols := []string{}
	args := []interface{}{}
	addSet := func(col string, val interface{}) {
		setCols = append(setCols, col+" = ?")
		args = append(args, val)
	}

	if input.BusinessName != nil {
		addSet("business_name", *input.BusinessName)
	}
	var newSlug string
	if input.StoreSlug != nil {
		newSlug = slug.Make(*input.StoreSlug)
		if newSlug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Store slug must contain at least one letter or digit"})
			return
		}
		addSet("store_slug", newSlug)
	}
	if input.LogoURL != nil {
		addSet("logo_url", *input.LogoURL)
	}
	if input.BannerURL != nil {
		addSet("banner_url", *input.BannerURL)
	}
	if input.PrimaryColor != nil {
		addSet("primary_color", *input.PrimaryColor)
	}
	if input.Instagram != nil {
		addSet("instagram", *input.Instagram)
	}
	if input.WhatsApp != nil {
		addSet("whatsapp", *input.WhatsApp)
	}
	if input.MomoNumber != nil {
		addSet("momo_number", *input.MomoNumber)
	}
	if input.MomoAccountName != nil {
		addSet("momo_account_name", *input.MomoAccountName)
	}

	if len(setCols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings provided"})
		return
	}
	addSet("updated_at", time.Now())

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	// Slug uniqueness: re-check inside the transaction before writing, so a
	// duplicate surfaces as 409 rather than a raw database error.
	if newSlug != "" {
		var taken int
		err = tx.QueryRow("SELECT COUNT(*) FROM users WHERE store_slug = ? AND id <> ? FOR UPDATE", newSlug, vendorID).Scan(&taken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug availability"})
			return
		}
		if taken > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "That store link is already taken"})
			return
		}
	}

	query := "UPDATE users SET " + strings.Join(setCols, ", ") + " WHERE id = ?"
	args = append(args, vendorID)
	if _, err := tx.Exec(query, args...); err != nil {
		// The UNIQUE index is the final word even if the pre-check raced.
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "That store link is already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	// Keep the denormalized slug copy on products in step with the vendor.
	if newSlug != "" {
		if _, err := tx.Exec("UPDATE products SET store_slug = ? WHERE vendor_id = ?", newSlug, vendorID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product listings"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}

// fetchUser loads a full user row by id.
func (h *Handlers) fetchUser(userID int64) (*models.User, error) {
	var u models.User
	query := `
		SELECT id, role, email, business_name, store_slug,
		       logo_url, banner_url, primary_color, instagram, whatsapp,
		       momo_number, momo_account_name,
		       plan, plan_status, plan_expires_at, suspended, created_at, updated_at
		FROM users WHERE id = ?`
	err := h.DB.QueryRow(query, userID).Scan(
		&u.ID, &u.Role, &u.Email, &u.BusinessName, &u.StoreSlug,
		&u.LogoURL, &u.BannerURL, &u.PrimaryColor, &u.Instagram, &u.WhatsApp,
		&u.MomoNumber, &u.MomoAccountName,
		&u.Plan, &u.PlanStatus, &u.PlanExpiresAt, &u.Suspended, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	if mysqlErr, ok := err.(*mysql.MySQLError); ok {
		return mysqlErr.Number == 1062
	}
	return false
}
