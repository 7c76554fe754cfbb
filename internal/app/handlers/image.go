package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type imageRequest struct {
	Title   string   `json:"title" binding:"required"`
	Authors []string `json:"authors"`
}

// GenerateImage produces a cover-style illustration for a book.
func (h *Handler) GenerateImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image generation is not configured"})
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title"})
		return
	}

	image, err := h.images.GenerateCover(c.Request.Context(), req.Title, req.Authors)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"image": image})
	case errors.Is(err, context.Canceled):
		h.logger.Debug("image generation cancelled", zap.String("title", req.Title))
		c.Abort()
	default:
		h.logger.Error("image generation failed", zap.String("title", req.Title), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "image generation failed"})
	}
}
