// Package generation defines the interface to LLM-backed text generation
// and the errors its implementations report.
package generation

import (
	"context"
	"errors"
)

// Common generation errors
var (
	// ErrEmptyText indicates the input text was empty or whitespace-only
	ErrEmptyText = errors.New("input text is empty")

	// ErrTextTooLong indicates the input text exceeds the model's limit
	ErrTextTooLong = errors.New("input text is too long")

	// ErrInvalidResponse indicates the model returned an empty or unusable
	// response
	ErrInvalidResponse = errors.New("invalid model response")

	// ErrContentBlocked indicates the model refused the request for safety
	// reasons
	ErrContentBlocked = errors.New("content blocked by model safety filters")

	// ErrTransientFailure indicates a retryable upstream failure (rate limit,
	// timeout, transport error) that persisted through all retries
	ErrTransientFailure = errors.New("transient generation failure")

	// ErrInvalidConfig indicates the generator was misconfigured
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Summarizer produces a short summary of a piece of text.
type Summarizer interface {
	// Summarize returns a concise summary of text. It returns ErrEmptyText
	// for blank input and ErrTransientFailure when the upstream model is
	// unavailable after retries.
	Summarize(ctx context.Context, text string) (string, error)
}
