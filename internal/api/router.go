package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gemini-rag/internal/config"
	"gemini-rag/pkg/logger"
	"gemini-rag/pkg/ratelimiter"
	"gemini-rag/web"
)

// NewRouter builds the gin engine: middleware chain, the three API
// endpoints and the embedded browser form.
func NewRouter(h *Handler, cfg config.MiddlewareConfig, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	if cfg.RateLimiter.Enabled {
		log.Info("enabling token bucket rate limiter middleware")
		limiter := ratelimiter.NewTokenBucket(cfg.RateLimiter.Rate, cfg.RateLimiter.Capacity)
		router.Use(RateLimit(limiter))
	}

	router.POST("/query", h.query)
	router.GET("/health", h.health)
	router.GET("/collections", h.collections)

	router.GET("/", func(c *gin.Context) {
		page, err := web.StaticFS.ReadFile("static/index.html")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "form page is missing"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})

	return router
}
