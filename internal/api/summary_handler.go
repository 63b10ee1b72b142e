package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/generation"
)

// SummaryHandler handles text summarization requests.
type SummaryHandler struct {
	summarizer generation.Summarizer
	validator  *validator.Validate
}

// NewSummaryHandler creates a SummaryHandler with the given dependencies.
func NewSummaryHandler(summarizer generation.Summarizer) *SummaryHandler {
	return &SummaryHandler{
		summarizer: summarizer,
		validator:  validator.New(),
	}
}

// Summarize handles POST /summarize.
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummarizeResponse{Summary: summary})
}
