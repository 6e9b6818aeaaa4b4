package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-golang/internal/handlers"
	"github.com/motoshop/motoshop-golang/internal/middleware"
)

// SetupRouter wires the full /api surface plus the static image tree.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// The storefront and admin panel are served from other origins.
	router.Use(cors.Default())

	// Cap the in-memory part of multipart parsing at one file's size;
	// anything larger spills to a temp file.
	router.MaxMultipartMemory = h.MaxFileSize

	// Uploaded images are served statically, split by category/product.
	router.Static("/images", h.ImagesPath)

	authRequired := middleware.AuthMiddleware()
	adminRequired := middleware.AdminMiddleware(h.Sessions)

	api := router.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "API is running",
				"version": "3.0.0",
			})
		})

		// --- Customer Auth ---
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/profile", authRequired, h.GetProfile)
		}

		// --- Catalog: Products ---
		products := api.Group("/products")
		{
			products.GET("", h.GetAllProducts)
			products.GET("/categories", h.GetProductCategories)
			products.GET("/:id", h.GetProductByID)
			products.GET("/:id/images", h.GetProductImages)

			products.POST("", adminRequired, h.CreateProduct)
			products.PUT("/:id", adminRequired, h.UpdateProduct)
			products.DELETE("/:id", adminRequired, h.DeleteProduct)
			products.POST("/:id/images", adminRequired, h.UploadProductImages)
			products.DELETE("/images/:imageId", adminRequired, h.DeleteProductImage)
		}

		// --- Catalog: Categories ---
		categories := api.Group("/categories")
		{
			categories.GET("", h.GetAllCategories)
			categories.GET("/names", h.GetCategoryNames)
			categories.GET("/:id", h.GetCategoryByID)

			categories.POST("", adminRequired, h.CreateCategory)
			categories.PUT("/:id", adminRequired, h.UpdateCategory)
			categories.DELETE("/:id", adminRequired, h.DeleteCategory)
		}

		// --- Cart ---
		cart := api.Group("/cart")
		cart.Use(authRequired)
		{
			cart.GET("", h.GetCart)
			cart.POST("/add", h.AddToCart)
			cart.PUT("/update", h.UpdateCartItem)
			cart.DELETE("/:productId", h.RemoveFromCart)
			cart.DELETE("", h.ClearCart)
		}

		// --- Orders ---
		orders := api.Group("/orders")
		{
			orders.GET("/admin/all", adminRequired, h.GetAllOrders)
			orders.PUT("/:id/status", adminRequired, h.UpdateOrderStatus)

			orders.POST("", authRequired, h.Checkout)
			orders.GET("", authRequired, h.GetMyOrders)
			orders.GET("/:id", authRequired, h.GetOrderByID)
		}

		// --- Admin Session ---
		admin := api.Group("/admin")
		{
			admin.POST("/login", h.AdminLogin)
			admin.POST("/logout", h.AdminLogout)
			admin.GET("/check", h.AdminCheck)
		}
	}

	return router
}
