package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/slantscope/internal/models"
)

// Errors callers can fix by changing the request or its source.
var clientErrors = []error{
	models.ErrInvalidRequest,
	models.ErrExtraction,
	models.ErrTranscription,
	models.ErrConversion,
	models.ErrNoContent,
}

func RegisterAnalysisRoutes(r *gin.Engine, analyzer Analyzer) {
	r.POST("/analyze", handleAnalyze(analyzer))
}

func handleAnalyze(analyzer Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: err.Error()})
			return
		}

		resp, err := analyzer.Analyze(c.Request.Context(), req)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				slog.Error("[API] Analysis failed", slog.String("error", err.Error()))
				c.JSON(status, models.ErrorResponse{Detail: "internal server error"})
				return
			}
			slog.Warn("[API] Analysis rejected", slog.String("error", err.Error()))
			c.JSON(status, models.ErrorResponse{Detail: err.Error()})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func statusFor(err error) int {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
