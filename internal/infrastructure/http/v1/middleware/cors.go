package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows browser clients from origins. An empty list or "*" allows
// every origin.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	cfg.AddAllowHeaders(HeaderRequestID)
	cfg.AddExposeHeaders("Content-Length", "Content-Disposition", HeaderRequestID, HeaderTraceID)
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
