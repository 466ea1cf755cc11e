package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"quoting/internal/handler"
	"quoting/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	QuoteHandler         *handler.QuoteHandler
	ConfigurationHandler *handler.ConfigurationHandler
	RedisClient          *redis.Client
	NewRelicApp          *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Quote routes.
		quotes := v1.Group("/quotes")
		{
			quotes.POST("", deps.QuoteHandler.CreateQuote)
			quotes.POST("/preview", deps.QuoteHandler.PreviewQuote)
			quotes.POST("/preview-batch", deps.QuoteHandler.PreviewBatch)
			quotes.GET("", deps.QuoteHandler.ListQuotes)
			quotes.GET("/:id", deps.QuoteHandler.GetQuote)
		}

		// Configuration routes (read-only; the synchronization process
		// owns writes).
		configurations := v1.Group("/configurations")
		{
			configurations.GET("", deps.ConfigurationHandler.ListConfigurations)
			configurations.GET("/:id", deps.ConfigurationHandler.GetConfiguration)
		}
	}

	return router
}
