package middleware

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/auth"
)

// AuthMiddleware validates the bearer token, loads the account's role and
// suspension flag, and stashes them on the context for the handlers.
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		// 2. --- Validate Token ---
		userID, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 3. --- Load Role & Suspension Flag ---
		var role string
		var suspended bool
		err = db.QueryRow("SELECT role, suspended FROM users WHERE id = ?", userID).Scan(&role, &suspended)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking account"})
			}
			c.Abort()
			return
		}

		// Suspended vendors keep read access to nothing; admins cannot be suspended.
		if suspended && role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "This account has been suspended"})
			c.Abort()
			return
		}

		// 4. --- Success ---
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}
