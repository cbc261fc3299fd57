package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/slantscope/internal/models"
)

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine, status StatusReporter) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "ok",
			Models:    status.ModelStatus(),
			Inference: status.InferenceStatus(),
		})
	})
}
