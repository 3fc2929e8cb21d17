package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sellquiccom/sellquicks-sub000/internal/handlers"
	"github.com/sellquiccom/sellquicks-sub000/internal/middleware"
)

// CORSMiddleware tells the browser which origins may talk to the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Reply 204 to the browser's preflight OPTIONS request.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.RegisterVendor)
		v1.POST("/login", h.Login)

		// --- Public Storefront Routes ---
		// GET /store/:slug is also the target of the edge rewrite that maps
		// {slug}.{domain}/ onto a path for the root path only.
		v1.GET("/stores/:slug/exists", h.StoreExists)
		v1.GET("/store/:slug", h.GetStorefront)

		// --- Public Checkout & Tracking ---
		v1.POST("/checkout", h.Checkout)
		v1.GET("/orders/track", h.TrackOrder)
		v1.POST("/orders/confirm-payment", h.ConfirmPayment)

		// --- Vendor Routes (Login Required) ---
		vendor := v1.Group("/vendor")
		vendor.Use(middleware.AuthMiddleware(h.DB))
		vendor.Use(middleware.VendorMiddleware())
		{
			vendor.GET("/me", h.GetMe)
			vendor.PUT("/settings", h.UpdateSettings)

			// --- Catalog ---
			vendor.POST("/products", h.CreateProduct)
			vendor.GET("/products", h.GetMyProducts)
			vendor.PUT("/products/:id", h.UpdateProduct)
			vendor.DELETE("/products/:id", h.DeleteProduct)

			vendor.POST("/categories", h.CreateCategory)
			vendor.GET("/categories", h.GetMyCategories)
			vendor.DELETE("/categories/:id", h.DeleteCategory)

			vendor.POST("/deliveries", h.CreateDelivery)
			vendor.GET("/deliveries", h.GetMyDeliveries)
			vendor.DELETE("/deliveries/:id", h.DeleteDelivery)

			// --- Orders ---
			vendor.GET("/orders", h.GetMyOrders)
			vendor.GET("/orders/stream", h.StreamOrders)
			vendor.GET("/orders/:id", h.GetOrderDetails)
			vendor.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			// --- Dashboard & Tools ---
			vendor.GET("/dashboard-stats", h.GetVendorStats)
			vendor.POST("/ai/describe", h.DescribeProduct)
		}

		// --- Upload (Login Required) ---
		upload := v1.Group("/")
		upload.Use(middleware.AuthMiddleware(h.DB))
		{
			upload.POST("/upload", h.UploadImage)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.DB))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/vendors", h.ListVendors)
			admin.PATCH("/vendors/:id/suspend", h.SuspendVendor)
			admin.PATCH("/vendors/:id/plan", h.AssignPlan)
			admin.DELETE("/vendors/:id", h.DeleteVendor)

			admin.GET("/orders", h.ListAllOrders)
			admin.GET("/orders/stream", h.StreamAllOrders)
			admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)

			admin.GET("/products", h.ListAllProducts)
			admin.DELETE("/products/:id", h.AdminDeleteProduct)

			admin.GET("/dashboard-stats", h.GetAdminStats)
		}
	}

	return router
}
