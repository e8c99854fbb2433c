package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/civic-issues/backend/internal/classifier"
	"github.com/civic-issues/backend/internal/issue"
	"github.com/civic-issues/backend/internal/metrics"
	"github.com/civic-issues/backend/internal/models"
)

const (
	msgIssueReported = "Issue reported successfully"
	msgMissingFields = "Missing required fields"
	msgServerError   = "Server error"
	msgTooLarge      = "Request body too large"
)

// Handler serves both binaries; each one fills in only the dependencies its
// routes use.
type Handler struct {
	Issues     *issue.Service
	Classifier *classifier.Classifier
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ServerErrorRecovery is used with gin.CustomRecovery so that panics outside
// the issue service still produce the documented 500 body.
func ServerErrorRecovery(logger zerolog.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		writeFailure(c, http.StatusInternalServerError, msgServerError)
	}
}

// ClassifierErrorRecovery keeps panics on the classifier routes in the
// {"error": ...} shape the demo page reads.
func ClassifierErrorRecovery(logger zerolog.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("internal error: %v", recovered)})
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func writeFailure(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.IssueResponse{Success: false, Message: message})
}
