// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/app"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// DB is pinged by the readiness probe.
	DB handlers.Pinger

	// Services are the domain services behind the API.
	Services *app.Services

	// Logger for request logging
	Logger *logger.Logger

	// CORSOrigins lists allowed browser origins; empty allows all.
	CORSOrigins []string

	// Development enables gin debug mode.
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Trace(cfg.Logger))
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")
	registerRoutes(api, cfg.Services)

	return router
}

// registerRoutes registers every resource of the API.
func registerRoutes(api *gin.RouterGroup, svc *app.Services) {
	base := handlers.NewBaseHandler()

	products := handlers.NewProductHandler(base, svc.Products, svc.Stock)
	productGroup := api.Group("/products")
	productGroup.GET("/stock-with-quantities", products.StockWithQuantities)
	RegisterResourceRoutes(productGroup, products)

	RegisterResourceRoutes(api.Group("/purchases"), handlers.NewPurchaseHandler(base, svc.Purchases))
	RegisterResourceRoutes(api.Group("/purchase-batches"), handlers.NewPurchaseBatchHandler(base, svc.Batches))
	RegisterResourceRoutes(api.Group("/sales"), handlers.NewSaleHandler(base, svc.Sales))

	inventory := handlers.NewInventoryHandler(base, svc.Reports)
	inventoryGroup := api.Group("/inventory")
	{
		inventoryGroup.GET("", inventory.Inventory)
		inventoryGroup.GET("/export", inventory.Export)
		inventoryGroup.GET("/financial-report", inventory.FinancialReport)
	}

	auditHandler := handlers.NewAuditHandler(base, svc.Audit)
	api.GET("/audit", auditHandler.History)
}
