package api

import (
	"docuhub/internal/config"
	"docuhub/pkg/ratelimiter"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(a *API, cfg *config.AppConfig) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", a.HealthzHandler)

	v1 := router.Group("/api/v1")
	if cfg.RateLimiter.Enabled {
		limiter := ratelimiter.NewTokenBucket(cfg.RateLimiter.Rate, cfg.RateLimiter.Capacity)
		v1.Use(RateLimitMiddleware(limiter))
	}
	v1.Use(OrgMiddleware())
	{
		docs := v1.Group("/documents")
		{
			docs.POST("/upload", a.UploadHandler)
			docs.POST("", a.CreateDocumentHandler)
			docs.GET("", a.ListDocumentsHandler)
			docs.GET("/:id", a.GetDocumentHandler)
			docs.PUT("/:id", a.UpdateDocumentHandler)
			docs.DELETE("/:id", a.DeleteDocumentHandler)
			docs.GET("/:id/chunks", a.ListChunksHandler)
			docs.POST("/:id/process", a.ProcessHandler)
			docs.GET("/:id/process", a.ProcessStatusHandler)
		}
		v1.POST("/jobs/retry", a.RetryJobsHandler)
		v1.POST("/search", a.SearchHandler)
		v1.POST("/rag/query", a.RAGQueryHandler)
		v1.GET("/metrics", a.MetricsHandler)
	}

	return router
}
