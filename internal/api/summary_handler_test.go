package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/generation"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
)

func newSummaryRouter(summarizer *mocks.MockSummarizer) chi.Router {
	router := chi.NewRouter()
	router.Post("/summarize", NewSummaryHandler(summarizer).Summarize)
	return router
}

func TestSummarizeEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns summary", func(t *testing.T) {
		t.Parallel()

		router := newSummaryRouter(&mocks.MockSummarizer{
			SummarizeFn: func(ctx context.Context, text string) (string, error) {
				return "A short summary.", nil
			},
		})

		rec := postJSON(t, router, "/summarize", SummarizeRequest{Text: "A very long article about many things."})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SummarizeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "A short summary.", resp.Summary)
	})

	t.Run("empty text is a bad request", func(t *testing.T) {
		t.Parallel()

		router := newSummaryRouter(&mocks.MockSummarizer{
			SummarizeFn: func(ctx context.Context, text string) (string, error) {
				return "", generation.ErrEmptyText
			},
		})

		rec := postJSON(t, router, "/summarize", SummarizeRequest{Text: "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing text field is a bad request", func(t *testing.T) {
		t.Parallel()

		router := newSummaryRouter(&mocks.MockSummarizer{})
		rec := postJSON(t, router, "/summarize", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upstream failure is service unavailable", func(t *testing.T) {
		t.Parallel()

		router := newSummaryRouter(&mocks.MockSummarizer{
			SummarizeFn: func(ctx context.Context, text string) (string, error) {
				return "", generation.ErrTransientFailure
			},
		})

		rec := postJSON(t, router, "/summarize", SummarizeRequest{Text: "Some text."})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
