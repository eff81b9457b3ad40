// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	mongodb "github.com/your-org/storefront-backend/internal/infrastructure/database/mongo"
	redisdb "github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/interfaces/http/routes"
)

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	gin        *gin.Engine
	httpServer *http.Server
	mongo      *mongodb.Client
	redis      *redisdb.Client
	logger     *logrus.Logger
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, mongoClient *mongodb.Client, redisClient *redisdb.Client, logger *logrus.Logger) *Server {
	return &Server{
		config: cfg,
		mongo:  mongoClient,
		redis:  redisClient,
		logger: logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create Gin engine
	s.gin = gin.New()

	// Setup middleware
	s.setupMiddleware()

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithField("port", s.config.Server.Port).Info("HTTP server starting")

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	// Custom logger middleware
	s.gin.Use(middleware.Logger(s.config))

	// Request ID middleware
	s.gin.Use(middleware.RequestID())

	// CORS middleware
	s.gin.Use(middleware.CORS(s.config))

	// Security headers middleware
	s.gin.Use(middleware.SecurityHeaders())

	// Rate limiting middleware
	s.gin.Use(middleware.RateLimit(s.config, s.redis.GetClient()))

	// Request size limit middleware
	s.gin.Use(middleware.RequestSizeLimit(1 << 20)) // 1MB limit

	// Timeout middleware
	s.gin.Use(middleware.Timeout(30 * time.Second))
}

// setupRoutes wires the domain services and registers all routes.
func (s *Server) setupRoutes() {
	db := s.mongo.Database()

	userService := user.NewService(mongodb.NewUserStore(db), s.config, s.logger)

	productCache := redisdb.NewProductCache(s.redis.GetClient(), s.config.Redis.CacheTTL)
	productService := product.NewService(mongodb.NewProductStore(db), productCache, s.logger)

	cartStore := mongodb.NewCartStore(db)
	cartService := cart.NewService(cartStore, productService, s.logger)

	gateway := payment.NewECPayClient(
		s.config.ECPay.MerchantID,
		s.config.ECPay.HashKey,
		s.config.ECPay.HashIV,
	)
	checkoutService := checkout.NewService(cartStore, gateway, s.config, s.logger)
	reconciler := payment.NewReconciler(cartStore, gateway, s.logger)

	deps := routes.Deps{
		Users:      userService,
		Products:   productService,
		Carts:      cartService,
		Checkout:   checkoutService,
		Reconciler: reconciler,
	}

	// Health check endpoint (no auth required)
	s.gin.GET("/health", s.healthCheck)

	// Provider callbacks live at the root, outside the versioned API
	routes.SetupPaymentRoutes(s.gin, deps, s.config)

	// API v1 routes
	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, deps, s.config)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.mongo.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database ping failed",
		})
		return
	}

	if err := s.redis.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "redis ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}
