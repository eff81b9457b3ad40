// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// Deps carries the domain services the route handlers are built on.
type Deps struct {
	Users      *user.Service
	Products   *product.Service
	Carts      *cart.Service
	Checkout   *checkout.Service
	Reconciler *payment.Reconciler
}

// SetupRoutes registers the /api/v1 route tree.
func SetupRoutes(rg *gin.RouterGroup, deps Deps, cfg *config.Config) {
	setupAuthRoutes(rg, deps, cfg)
	setupCatalogRoutes(rg, deps)
	setupCartRoutes(rg, deps, cfg)
	setupOrderRoutes(rg, deps, cfg)
	setupAdminRoutes(rg, deps, cfg)
}

// SetupPaymentRoutes registers the provider callback endpoints. They live at
// the engine root because the gateway is configured with absolute URLs, and
// they carry no authentication: the notify body authenticates itself.
func SetupPaymentRoutes(engine *gin.Engine, deps Deps, cfg *config.Config) {
	paymentHandler := handlers.NewPaymentHandler(deps.Reconciler, cfg)

	engine.POST("/payment/notify", paymentHandler.Notify)
	engine.POST("/payment/return", paymentHandler.Return)
}

func setupAuthRoutes(rg *gin.RouterGroup, deps Deps, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(deps.Users)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.Me)
		}
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, deps Deps) {
	productHandler := handlers.NewProductHandler(deps.Products)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:name", productHandler.GetProduct)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, deps Deps, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(deps.Carts)

	carts := rg.Group("/cart")
	carts.Use(middleware.AuthMiddleware(cfg))
	{
		carts.GET("", cartHandler.GetCart)
		carts.POST("", cartHandler.AddToCart)
		carts.DELETE("", cartHandler.ClearCart)
		carts.PATCH("/items/:name", cartHandler.UpdateCartItem)
		carts.DELETE("/items/:name", cartHandler.RemoveFromCart)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, deps Deps, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout)

	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.POST("/checkout", checkoutHandler.CreateCheckout)
		protected.GET("/orders", checkoutHandler.ListOrders)
		protected.GET("/orders/:tradeNo", checkoutHandler.GetOrder)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, deps Deps, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(deps.Products)
	userHandler := handlers.NewUserAdminHandler(deps.Users)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireStaff())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PATCH("/products/:name", productHandler.UpdateProduct)
		admin.DELETE("/products/:name", productHandler.DeleteProduct)

		admin.GET("/users", userHandler.ListUsers)
		admin.GET("/users/:account", userHandler.GetUser)
		admin.PATCH("/users/:account", userHandler.UpdateUser)
		admin.DELETE("/users/:account", userHandler.DeleteUser)
	}
}
