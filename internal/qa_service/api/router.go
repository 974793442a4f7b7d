package api

import (
	"github.com/gin-gonic/gin"

	"AdmissionOfficer/pkg/ratelimiter"
)

// SetupRouter configures and returns the Gin engine. When jwtSecret is empty
// the API is open; otherwise every /api/v1 route requires a Bearer JWT.
// A nil limiter disables rate limiting.
func SetupRouter(h *Handler, jwtSecret string, limiter ratelimiter.RateLimiter) *gin.Engine {
	r := gin.Default()

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	apiV1 := r.Group("/api/v1")
	if limiter != nil {
		apiV1.Use(RateLimitMiddleware(limiter))
	}
	if jwtSecret != "" {
		apiV1.Use(AuthMiddleware(jwtSecret))
	}
	{
		apiV1.POST("/ask", h.Ask)
		apiV1.GET("/categories", h.Categories)
		apiV1.POST("/detect-category", h.DetectCategory)
		apiV1.POST("/clear-memory", h.ClearMemory)
		apiV1.GET("/sessions", h.Sessions)
		apiV1.DELETE("/sessions/:id", h.DeleteSession)
	}

	return r
}
