package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civic-issues/backend/internal/classifier"
	"github.com/civic-issues/backend/internal/http/web"
)

func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
}

// ClassifierHealthz answers 503 until the model and labels are loaded.
func (h *Handler) ClassifierHealthz(c *gin.Context) {
	if !h.Classifier.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"error":  h.Classifier.LoadErr().Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Predict always answers 200; failures travel in the body as {"error": ...}.
func (h *Handler) Predict(c *gin.Context) {
	start := time.Now()
	res := h.classify(c)

	outcome := resultLabel(res)
	if h.Metrics != nil {
		h.Metrics.ObserveInference(start, outcome)
	}
	if !res.OK() {
		h.Logger.Warn().Err(res.Err).Str("outcome", outcome).Msg("prediction failed")
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) classify(c *gin.Context) classifier.Result {
	ctx := c.Request.Context()
	if !h.Classifier.Ready() {
		return h.Classifier.Classify(ctx, nil)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if isTooLarge(err) {
			return classifier.Result{Err: &classifier.InferenceError{Stage: "read", Err: err}}
		}
		return h.Classifier.ClassifyBytes(ctx, nil)
	}
	f, err := fh.Open()
	if err != nil {
		return classifier.Result{Err: &classifier.InferenceError{Stage: "read", Err: err}}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return classifier.Result{Err: &classifier.InferenceError{Stage: "read", Err: fmt.Errorf("read upload: %w", err)}}
	}
	return h.Classifier.ClassifyBytes(ctx, data)
}

func resultLabel(res classifier.Result) string {
	switch {
	case res.OK():
		return "ok"
	case errors.Is(res.Err, classifier.ErrNotReady):
		return "not_ready"
	case errors.Is(res.Err, classifier.ErrNoImage):
		return "no_image"
	default:
		return "error"
	}
}
