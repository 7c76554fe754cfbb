package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/common/constants"
	"github.com/moseskang00/book-summary-service/internal/cachekey"
)

var (
	// ErrMissingTitle reports a request without the one required field.
	ErrMissingTitle = errors.New("missing title")

	// ErrInvalidUpstream reports a summarizer payload that failed
	// normalization. The fault is in the upstream dependency, not the
	// caller, so handlers map it to a bad-gateway class.
	ErrInvalidUpstream = errors.New("model returned an empty or invalid summary")

	// ErrUpstreamUnavailable reports a failed summarizer call.
	ErrUpstreamUnavailable = errors.New("summary service temporarily unreachable")
)

// Store is the slice of the cache the service needs.
type Store interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// Service orchestrates one summary request: cache check, upstream call,
// normalization, cache write.
type Service struct {
	generator Generator
	store     Store
	logger    *zap.Logger
}

func NewService(generator Generator, store Store, logger *zap.Logger) *Service {
	return &Service{generator: generator, store: store, logger: logger}
}

// Summarize returns the normalized summary for a book, serving from cache
// when possible. Cache reads fail open (any error is a miss) and cache
// writes are best effort (a failed write still returns the result). A
// cancelled context surfaces as the context error so callers can keep
// cancellation out of their error reporting.
func (s *Service) Summarize(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrMissingTitle
	}
	applyDefaults(&req)

	key := cacheKey(req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.store != nil {
		var cached Result
		found, err := s.store.GetJSON(ctx, key, &cached)
		switch {
		case err != nil:
			s.logger.Warn("cache read failed, treating as miss",
				zap.String("key", key), zap.Error(err))
		case found && cached.Summary != "":
			s.logger.Info("summary cache hit", zap.String("key", key))
			return &cached, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("summarizer call failed",
			zap.String("title", req.Title), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	result := Normalize(raw)
	if result == nil {
		return nil, ErrInvalidUpstream
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SetJSON(ctx, key, result, constants.SummaryTTL); err != nil {
			s.logger.Warn("cache write failed",
				zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

func applyDefaults(req *Request) {
	if req.DesiredWords <= 0 {
		req.DesiredWords = constants.DefaultDesiredWords
	}
	if req.Tolerance <= 0 {
		req.Tolerance = constants.DefaultTolerance
	}
	if req.Language == "" {
		req.Language = constants.DefaultLanguage
	}
}

// cacheKey derives the storage key from the fields that change cacheable
// identity. Tolerance and the description are deliberately excluded; the
// language is hashed in its resolved form so "en" and "English" share an
// entry.
func cacheKey(req Request) string {
	return constants.SummaryKeyPrefix + ":" + cachekey.Derive(map[string]any{
		"title":         req.Title,
		"authors":       req.Authors,
		"publishedDate": req.PublishedDate,
		"desiredWords":  req.DesiredWords,
		"language":      TargetLanguage(req.Language),
	})
}
