package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/slantscope/internal/models"
)

type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error)
}

// StatusReporter describes model availability for the health endpoint.
type StatusReporter interface {
	ModelStatus() map[string]string
	InferenceStatus() string
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(analyzer Analyzer, status StatusReporter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	RegisterAnalysisRoutes(r, analyzer)
	RegisterHealthRoutes(r, status)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("[API] Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)))
	}
}
