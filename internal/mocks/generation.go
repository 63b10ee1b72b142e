package mocks

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/generation"
)

// MockSummarizer implements generation.Summarizer.
type MockSummarizer struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
}

var _ generation.Summarizer = (*MockSummarizer)(nil)

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, text)
	}
	return "mock summary", nil
}
