// Package handlers wires the HTTP endpoints to the domain services.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/internal/books"
	"github.com/moseskang00/book-summary-service/internal/feedback"
	"github.com/moseskang00/book-summary-service/internal/summary"
)

// SearchClient finds candidate volumes for a query.
type SearchClient interface {
	Search(ctx context.Context, p books.SearchParams) ([]books.Candidate, string)
}

// Summarizer produces a normalized summary for a book selection.
type Summarizer interface {
	Summarize(ctx context.Context, req summary.Request) (*summary.Result, error)
}

// ImageGenerator produces a cover illustration as a data URL.
type ImageGenerator interface {
	GenerateCover(ctx context.Context, title string, authors []string) (string, error)
}

// FeedbackRecorder persists a feedback event.
type FeedbackRecorder interface {
	Record(ctx context.Context, in feedback.Input)
}

// Handler holds the injected dependencies for all endpoints. Summarizer and
// ImageGenerator may be nil when the OpenAI key is unconfigured; those
// endpoints then answer 503 instead of crashing request handling.
type Handler struct {
	books    SearchClient
	summary  Summarizer
	images   ImageGenerator
	feedback FeedbackRecorder
	logger   *zap.Logger
}

func New(search SearchClient, summarizer Summarizer, images ImageGenerator, recorder FeedbackRecorder, logger *zap.Logger) *Handler {
	return &Handler{
		books:    search,
		summary:  summarizer,
		images:   images,
		feedback: recorder,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/search", h.Search)
		api.POST("/summarize", h.Summarize)
		api.POST("/feedback", h.Feedback)
		api.POST("/generate-image", h.GenerateImage)
	}
}
