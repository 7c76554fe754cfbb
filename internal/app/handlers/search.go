package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/common/constants"
	"github.com/moseskang00/book-summary-service/internal/books"
)

// Search proxies the book search. Degraded upstream results still answer
// 200 with an empty item list and an advisory message; the search box
// should never hard-fail the page.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")

	maxResults, err := strconv.Atoi(c.DefaultQuery("maxResults", strconv.Itoa(constants.DefaultMaxResults)))
	if err != nil || maxResults <= 0 {
		maxResults = constants.DefaultMaxResults
	}

	h.logger.Info("search request received", zap.String("query", query))

	candidates, advisory := h.books.Search(c.Request.Context(), books.SearchParams{
		Query:        query,
		MaxResults:   maxResults,
		LangRestrict: c.Query("langRestrict"),
	})

	resp := gin.H{"items": candidates}
	if advisory != "" {
		resp["error"] = advisory
	}
	c.JSON(http.StatusOK, resp)
}
