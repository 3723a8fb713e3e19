package v1

import (
	"github.com/gin-gonic/gin"
)

// ResourceRouteHandler defines the CRUD methods of a resource handler.
type ResourceRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// SummaryHandler is an optional interface for resources with a totals
// endpoint.
type SummaryHandler interface {
	Summary(c *gin.Context)
}

// RegisterResourceRoutes registers standard CRUD routes for a resource.
// If the handler also implements SummaryHandler, GET /summary is
// registered too. Static paths are registered before /:id.
//
// Usage:
//
//	handler := handlers.NewSaleHandler(base, services.Sales)
//	RegisterResourceRoutes(api.Group("/sales"), handler)
func RegisterResourceRoutes(group *gin.RouterGroup, handler ResourceRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)

	if summary, ok := handler.(SummaryHandler); ok {
		group.GET("/summary", summary.Summary)
	}

	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
