package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"artesania_back_end/internal/handlers/admin"
	"artesania_back_end/internal/handlers/product"
	"artesania_back_end/internal/handlers/user"
	"artesania_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://artesania.gt"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// ---------- Catalogue (public) ----------
	api.GET("/categories", product.GetAllCategories)
	api.GET("/categories/:slug", product.GetCategoryBySlug)
	api.GET("/categories/:slug/products", product.GetCategoryProducts)

	api.GET("/products", product.GetAllProducts)
	api.GET("/products/featured", product.GetFeaturedProducts)
	api.GET("/products/new-arrivals", product.GetNewArrivals)
	api.GET("/products/on-sale", product.GetOnSaleProducts)
	api.GET("/products/:slug", product.GetProductBySlug)

	// ---------- Auth ----------
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
	auth.POST("/login", middleware.LoginRateLimit(), user.Login)
	auth.GET("/me", middleware.AuthRequired(), user.Me)
	auth.GET("/profile", middleware.AuthRequired(), user.Me)
	auth.PUT("/profile", middleware.AuthRequired(), user.UpdateProfile)
	auth.POST("/change-password", middleware.AuthRequired(), user.ChangePassword)

	// ---------- Panier (auth) ----------
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", user.GetCart)
	cart.POST("", user.AddToCart)
	cart.DELETE("/clear", user.ClearCart)
	cart.PUT("/:id", user.UpdateCartItem)
	cart.DELETE("/:id", user.RemoveCartItem)

	// ---------- Liste de souhaits (auth) ----------
	wishlist := api.Group("/wishlist", middleware.AuthRequired())
	wishlist.GET("", user.GetWishlist)
	wishlist.POST("", user.AddToWishlist)
	wishlist.POST("/toggle", user.ToggleWishlist)
	wishlist.DELETE("/:id", user.RemoveFromWishlist)

	// ---------- Commandes ----------
	// La création accepte les invités : l'auth est optionnelle mais un
	// token fourni doit être valide.
	api.POST("/orders/create", middleware.AuthOptional(), user.CreateOrder)
	api.GET("/orders", middleware.AuthRequired(), user.GetMyOrders)
	api.GET("/orders/:orderNumber", middleware.AuthRequired(), user.GetOrderByNumber)

	// ---------- Administration ----------
	adm := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	adm.GET("/orders", admin.GetAllOrders)
	adm.PUT("/orders/:orderNumber/status", admin.UpdateOrderStatus)
	adm.PUT("/orders/:orderNumber/paid", admin.MarkOrderPaid)
	adm.PUT("/products/:id/stock", product.UpdateStock)
	adm.GET("/products/stock-movements", product.GetStockMovements)
}
