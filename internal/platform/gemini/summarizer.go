package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/generation"
)

// maxInputLength caps the text accepted for summarization. Longer inputs
// are rejected before spending a model call on them.
const maxInputLength = 100_000

// defaultPromptTemplate is the instruction wrapped around the input text.
const defaultPromptTemplate = `Summarize the following text in a few concise sentences. Respond with the summary only, no preamble.

Text:
{{.Text}}`

// promptData is the template input.
type promptData struct {
	Text string
}

// Summarizer implements generation.Summarizer using Google's Gemini API.
type Summarizer struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

var _ generation.Summarizer = (*Summarizer)(nil)

// NewSummarizer creates a Summarizer from the given LLM configuration.
// Returns generation.ErrInvalidConfig when the API key or model name is
// missing, so a misconfigured deployment fails at startup.
func NewSummarizer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Summarizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("summary").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Summarizer{
		logger:         logger.With(slog.String("component", "gemini_summarizer")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Summarize produces a short summary of text via the Gemini API, retrying
// transient upstream failures with exponential backoff.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", generation.ErrEmptyText
	}
	if len(text) > maxInputLength {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", generation.ErrTextTooLong, len(text), maxInputLength)
	}

	prompt, err := s.buildPrompt(text)
	if err != nil {
		return "", err
	}

	summary, err := s.callWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "summary generated",
		slog.Int("input_length", len(text)),
		slog.Int("summary_length", len(summary)))
	return summary, nil
}

func (s *Summarizer) buildPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := s.promptTemplate.Execute(&buf, promptData{Text: text}); err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry calls the Gemini API, retrying transient failures up to
// MaxRetries times with exponential backoff and jitter. Permanent errors
// (blocked content, unusable responses) are returned immediately.
func (s *Summarizer) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := s.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelaySeconds := s.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		summary, err := s.generate(ctx, prompt)
		if err == nil {
			return summary, nil
		}

		s.logger.WarnContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}
		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded %d retry attempts: %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * 2^attempt, jittered into [0.5, 1.0) of itself
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoffSeconds * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// generate makes a single API call and extracts the summary text.
func (s *Summarizer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary text", generation.ErrInvalidResponse)
	}
	return summary, nil
}
