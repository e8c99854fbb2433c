package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civic-issues/backend/internal/issue"
	"github.com/civic-issues/backend/internal/models"
)

// @Summary Report a civic issue
// @Description Accepts a multipart form, stores the image under uploads/ and echoes the report
// @Tags issues
// @Accept multipart/form-data
// @Produce json
// @Param description formData string true "What is wrong"
// @Param location formData string true "Where it is"
// @Param citizenId formData string true "Reporter ID"
// @Param issueType formData string false "Category"
// @Param image formData file true "Photo of the issue"
// @Success 200 {object} models.IssueResponse
// @Failure 400 {object} models.IssueResponse
// @Failure 413 {object} models.IssueResponse
// @Failure 500 {object} models.IssueResponse
// @Router /issue [post]
func (h *Handler) ReportIssue(c *gin.Context) {
	var sub issue.Submission
	if err := c.ShouldBind(&sub); err != nil {
		h.Logger.Warn().Err(err).Msg("failed to bind issue form")
		h.countIssue("invalid")
		if isTooLarge(err) {
			writeFailure(c, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		writeFailure(c, http.StatusBadRequest, msgMissingFields)
		return
	}

	report, err := h.Issues.Report(c.Request.Context(), sub)
	if err != nil {
		var verr *issue.ValidationError
		if errors.As(err, &verr) {
			h.countIssue("invalid")
			writeFailure(c, http.StatusBadRequest, msgMissingFields)
			return
		}
		h.countIssue("error")
		writeFailure(c, http.StatusInternalServerError, msgServerError)
		return
	}

	h.countIssue("ok")
	c.JSON(http.StatusOK, models.IssueResponse{
		Success: true,
		Message: msgIssueReported,
		Data:    &report,
	})
}

func (h *Handler) countIssue(result string) {
	if h.Metrics != nil {
		h.Metrics.IssueReports.WithLabelValues(result).Inc()
	}
}
