package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moseskang00/book-summary-service/internal/app/handlers"
	"github.com/moseskang00/book-summary-service/internal/books"
	"github.com/moseskang00/book-summary-service/internal/feedback"
	"github.com/moseskang00/book-summary-service/internal/summary"
)

type fakeSearch struct {
	candidates []books.Candidate
	advisory   string
}

func (f *fakeSearch) Search(_ context.Context, _ books.SearchParams) ([]books.Candidate, string) {
	return f.candidates, f.advisory
}

type fakeSummarizer struct {
	result *summary.Result
	err    error
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ summary.Request) (*summary.Result, error) {
	return f.result, f.err
}

type fakeImages struct {
	image string
	err   error
}

func (f *fakeImages) GenerateCover(_ context.Context, _ string, _ []string) (string, error) {
	return f.image, f.err
}

type fakeRecorder struct {
	inputs chan feedback.Input
}

func (f *fakeRecorder) Record(_ context.Context, in feedback.Input) {
	f.inputs <- in
}

func newRouter(h *handlers.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func TestSearch_ReturnsItems(t *testing.T) {
	search := &fakeSearch{candidates: []books.Candidate{{ID: "abc", Title: "Sapiens"}}}
	h := handlers.New(search, nil, nil, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
	router := newRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=sapiens", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []books.Candidate `json:"items"`
		Error string            `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Sapiens", body.Items[0].Title)
	assert.Empty(t, body.Error)
}

func TestSearch_DegradedUpstreamStillAnswers200(t *testing.T) {
	search := &fakeSearch{candidates: []books.Candidate{}, advisory: "search service unreachable, please try again"}
	h := handlers.New(search, nil, nil, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
	router := newRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=sapiens", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable")
}

func TestSummarize_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		summarizer handlers.Summarizer
		body       string
		wantStatus int
		wantInBody string
	}{
		{
			name:       "success",
			summarizer: &fakeSummarizer{result: &summary.Result{Summary: "Para1\n\nPara2\n\nPara3"}},
			body:       `{"title":"Sapiens","authors":["Yuval Noah Harari"],"language":"en","desiredWords":2000}`,
			wantStatus: http.StatusOK,
			wantInBody: "Para1",
		},
		{
			name:       "missing title is a client error",
			summarizer: &fakeSummarizer{result: &summary.Result{Summary: "S"}},
			body:       `{"authors":["Nobody"]}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: "missing title",
		},
		{
			name:       "whitespace title is a client error",
			summarizer: &fakeSummarizer{err: summary.ErrMissingTitle},
			body:       `{"title":"   "}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: "missing title",
		},
		{
			name:       "invalid upstream output is a bad gateway",
			summarizer: &fakeSummarizer{err: summary.ErrInvalidUpstream},
			body:       `{"title":"Sapiens"}`,
			wantStatus: http.StatusBadGateway,
			wantInBody: "invalid summary",
		},
		{
			name:       "unreachable upstream is a bad gateway",
			summarizer: &fakeSummarizer{err: summary.ErrUpstreamUnavailable},
			body:       `{"title":"Sapiens"}`,
			wantStatus: http.StatusBadGateway,
			wantInBody: "unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.New(&fakeSearch{}, tt.summarizer, nil, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
			router := newRouter(h)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantInBody)
		})
	}
}

func TestSummarize_UnconfiguredAnswers503(t *testing.T) {
	h := handlers.New(&fakeSearch{}, nil, nil, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
	router := newRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(`{"title":"Sapiens"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFeedback_AcknowledgesAndRecords(t *testing.T) {
	recorder := &fakeRecorder{inputs: make(chan feedback.Input, 1)}
	h := handlers.New(&fakeSearch{}, nil, nil, recorder, zap.NewNop())
	router := newRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		strings.NewReader(`{"kind":"up","book":{"title":"Dune","authors":["Frank Herbert"]},"query":"dune","language":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("x-vercel-ip-country", "IN")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	select {
	case in := <-recorder.inputs:
		assert.Equal(t, "up", in.Kind)
		assert.Equal(t, "Dune", in.Book.Title)
		assert.Equal(t, "IN", in.Country)
		assert.Equal(t, "test-agent", in.UserAgent)
	case <-time.After(time.Second):
		t.Fatal("feedback was never recorded")
	}
}

func TestFeedback_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing kind", body: `{"book":{"title":"Dune"}}`},
		{name: "unknown kind", body: `{"kind":"meh","book":{"title":"Dune"}}`},
		{name: "missing book title", body: `{"kind":"up","book":{"authors":["X"]}}`},
		{name: "malformed json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{inputs: make(chan feedback.Input, 1)}
			h := handlers.New(&fakeSearch{}, nil, nil, recorder, zap.NewNop())
			router := newRouter(h)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, recorder.inputs)
		})
	}
}

func TestGenerateImage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		images := &fakeImages{image: "data:image/png;base64,AAAA"}
		h := handlers.New(&fakeSearch{}, nil, images, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
		router := newRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-image", strings.NewReader(`{"title":"Dune"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "data:image/png;base64,AAAA")
	})

	t.Run("unconfigured answers 503", func(t *testing.T) {
		h := handlers.New(&fakeSearch{}, nil, nil, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
		router := newRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-image", strings.NewReader(`{"title":"Dune"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("upstream failure is a bad gateway", func(t *testing.T) {
		images := &fakeImages{err: assert.AnError}
		h := handlers.New(&fakeSearch{}, nil, images, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
		router := newRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-image", strings.NewReader(`{"title":"Dune"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestHealth(t *testing.T) {
	h := handlers.New(&fakeSearch{}, nil, nil, &fakeRecorder{inputs: make(chan feedback.Input, 1)}, zap.NewNop())
	router := newRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
