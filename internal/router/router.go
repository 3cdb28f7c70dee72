package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leftovercook/backend/internal/api"
	"github.com/leftovercook/backend/internal/middleware"
	"github.com/leftovercook/backend/internal/service"
)

// SetupRouter configures the application routes. The rate limiter may
// be nil, in which case the generation endpoints run unthrottled.
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	preferenceHandler *api.PreferenceHandler,
	recipeHandler *api.RecipeHandler,
	ledgerHandler *api.LedgerHandler,
	authService service.IAuthService,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	ledgerHandler.RegisterLeaderboardRoute(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		profileHandler.RegisterRoutes(protected)
		preferenceHandler.RegisterRoutes(protected)
		ledgerHandler.RegisterRoutes(protected)

		var rateLimit gin.HandlerFunc
		if rateLimiter != nil {
			rateLimit = rateLimiter.RateLimitMiddleware()
		}
		recipeHandler.RegisterRoutes(protected, rateLimit)
	}

	return router
}
