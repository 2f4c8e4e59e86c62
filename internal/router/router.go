package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gpcaffidavit/docs" // registers the OpenAPI document
	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/handler"
	"gpcaffidavit/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Extract   *handler.ExtractHandler
	Affidavit *handler.AffidavitHandler
	Batch     *handler.BatchHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware. verifier
// may be nil, in which case the API is open.
func Setup(cfg *config.Config, h Handlers, verifier middleware.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.DebugErrors(cfg.Server.DebugErrors))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed", "code": "METHOD_NOT_ALLOWED"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "NOT_FOUND"})
	})

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	if verifier != nil {
		v1.Use(middleware.AuthMiddleware(verifier))
	}

	// A request may carry a whole batch; single-file routes get one file's worth.
	fileLimit := cfg.Upload.MaxFileBytes() + 1<<20
	batchLimit := fileLimit * int64(max(cfg.Upload.MaxBatchFiles, 1))

	v1.POST("/extract", middleware.BodyLimit(fileLimit), h.Extract.Extract)
	v1.POST("/generate", middleware.BodyLimit(1<<20), h.Affidavit.Generate)
	v1.POST("/batches", middleware.BodyLimit(batchLimit), h.Batch.Process)

	return r
}
