package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS configures cross-origin access for the web client. The session
// header must be explicitly allowed or the recipe endpoints fail
// preflight.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type", "Authorization", "Accept", "Origin",
			"User-Agent", "Cache-Control", "X-Requested-With", "X-Session-ID",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
