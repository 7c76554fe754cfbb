package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/internal/summary"
)

// Summarize generates (or serves from cache) the summary for a selected
// book. Error classes map to distinct statuses so the UI can word them
// differently: 400 bad input, 502 upstream produced garbage or is down,
// 500 everything else. Cancellation is not an error and gets no body.
func (h *Handler) Summarize(c *gin.Context) {
	if h.summary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "summarizer is not configured"})
		return
	}

	var req summary.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title"})
		return
	}

	result, err := h.summary.Summarize(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, context.Canceled):
		// the caller went away; nothing to report
		h.logger.Debug("summarize cancelled", zap.String("title", req.Title))
		c.Abort()
	case errors.Is(err, summary.ErrMissingTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title"})
	case errors.Is(err, summary.ErrInvalidUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": summary.ErrInvalidUpstream.Error()})
	case errors.Is(err, summary.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": summary.ErrUpstreamUnavailable.Error()})
	default:
		h.logger.Error("summarize failed", zap.String("title", req.Title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate summary"})
	}
}
