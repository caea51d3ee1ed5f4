package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORS allows the storefront SPA origin. TiendaURL empty means permissive
// headers for local development.
func CORS(tiendaURL string) gin.HandlerFunc {
	origin := tiendaURL
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
