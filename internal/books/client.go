package books

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/common/constants"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the Google Books volumes API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.GoogleBooksAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	return &Client{http: httpClient, logger: logger}
}

type SearchParams struct {
	Query        string
	MaxResults   int
	LangRestrict string
}

// Search returns candidate volumes for a query. A query under two trimmed
// characters short-circuits to an empty list. Upstream failures degrade to
// an empty list plus an advisory message; the caller never sees a hard
// error, per the availability-over-correctness stance for search.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]Candidate, string) {
	query := strings.TrimSpace(p.Query)
	if len([]rune(query)) < 2 {
		return []Candidate{}, ""
	}
	if p.MaxResults <= 0 {
		p.MaxResults = constants.DefaultMaxResults
	}

	var out volumesResponse
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("maxResults", strconv.Itoa(p.MaxResults)).
		SetQueryParam("printType", "books").
		SetQueryParam("orderBy", "relevance").
		SetResult(&out)
	if p.LangRestrict != "" {
		req.SetQueryParam("langRestrict", p.LangRestrict)
	}

	resp, err := req.Get(constants.GoogleBooksVolumesPath)
	if err != nil {
		c.logger.Warn("book search unreachable", zap.String("query", query), zap.Error(err))
		return []Candidate{}, "search service unreachable, please try again"
	}
	if resp.IsError() {
		c.logger.Warn("book search failed",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode()))
		return []Candidate{}, fmt.Sprintf("search service returned status %d", resp.StatusCode())
	}

	candidates := make([]Candidate, 0, len(out.Items))
	for _, item := range out.Items {
		info := item.VolumeInfo
		if info.Title == "" {
			// the UI has no use for an untitled volume
			continue
		}
		thumbnail := info.ImageLinks.Thumbnail
		if thumbnail == "" {
			thumbnail = info.ImageLinks.SmallThumbnail
		}
		candidates = append(candidates, Candidate{
			ID:            item.ID,
			Title:         info.Title,
			Authors:       info.Authors,
			PublishedDate: info.PublishedDate,
			Description:   info.Description,
			Categories:    info.Categories,
			Thumbnail:     secureURL(thumbnail),
		})
	}

	c.logger.Info("book search completed",
		zap.String("query", query),
		zap.Int("totalItems", out.TotalItems),
		zap.Int("returned", len(candidates)))

	return candidates, ""
}

func secureURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}
