package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moseskang00/book-summary-service/internal/feedback"
)

type feedbackBook struct {
	Title   string   `json:"title" binding:"required"`
	Authors []string `json:"authors"`
}

type feedbackRequest struct {
	Kind     string       `json:"kind" binding:"required,oneof=up down"`
	Book     feedbackBook `json:"book" binding:"required"`
	Language string       `json:"language"`
	Query    string       `json:"query"`
}

// Feedback acknowledges immediately and persists in a detached task. The
// write outliving the request is intentional: losing a feedback event must
// never slow down or fail the submitting caller.
func (h *Handler) Feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields"})
		return
	}

	in := feedback.Input{
		Kind:      req.Kind,
		Query:     req.Query,
		Language:  req.Language,
		Book:      feedback.Book{Title: req.Book.Title, Authors: req.Book.Authors},
		Country:   c.GetHeader("x-vercel-ip-country"),
		Region:    c.GetHeader("x-vercel-ip-country-region"),
		City:      c.GetHeader("x-vercel-ip-city"),
		UserAgent: c.GetHeader("User-Agent"),
	}

	detached := context.WithoutCancel(c.Request.Context())
	go func() {
		ctx, cancel := context.WithTimeout(detached, 5*time.Second)
		defer cancel()
		h.feedback.Record(ctx, in)
	}()

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
