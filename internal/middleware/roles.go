package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Role-Based Middleware ---
//
// These run *after* AuthMiddleware, which has already loaded the role
// into the context.
//

// VendorMiddleware allows vendor accounts (and admins, who may act on
// behalf of any store) through.
func VendorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}

		if role != "vendor" && role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: vendor account required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware restricts a group to platform administrators.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}

		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
