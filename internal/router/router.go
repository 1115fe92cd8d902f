// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/cache"
	"github.com/pantrypal/pantrypal-backend/internal/config"
	"github.com/pantrypal/pantrypal-backend/internal/handlers"
	"github.com/pantrypal/pantrypal-backend/internal/middleware"
	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/services"
	"github.com/pantrypal/pantrypal-backend/internal/store/gormstore"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize store and cache
	st := gormstore.New(db)
	productCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		time.Duration(cfg.Redis.TTL)*time.Second)

	// Initialize services
	authService := services.NewAuthService(st, cfg.JWT.AccessTokenTTL)
	productService := services.NewProductService(st, productCache)
	inventoryService := services.NewInventoryService(st)
	saleService := services.NewSaleService(st)
	claimService := services.NewClaimService(st)
	customerService := services.NewCustomerService(st)
	receiptService := services.NewReceiptService(st)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	saleHandler := handlers.NewSaleHandler(saleService, receiptService)
	claimHandler := handlers.NewClaimHandler(claimService)
	customerHandler := handlers.NewCustomerHandler(customerService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Retailer routes
		retail := v1.Group("")
		retail.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRetailer))
		{
			retail.GET("/products/search", productHandler.Search)
			retail.GET("/products/barcode/:barcode", productHandler.GetByBarcode)
			retail.POST("/products", productHandler.CreateProduct)

			retail.POST("/inventory", inventoryHandler.AddStock)
			retail.GET("/inventory", inventoryHandler.GetInventory)

			retail.POST("/sales", saleHandler.CreateSale)
			retail.GET("/sales", saleHandler.GetSaleHistory)
			retail.GET("/sales/:id/receipt", saleHandler.GetReceipt)
		}

		// Customer routes
		customer := v1.Group("")
		customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
		{
			customer.POST("/claims", claimHandler.ClaimPurchase)
			customer.GET("/customer/items", customerHandler.ListItems)
			customer.PUT("/customer/items/:id/use", customerHandler.MarkUsed)
			customer.PUT("/customer/items/:id/reminder", customerHandler.SetReminder)
		}
	}

	return r
}
