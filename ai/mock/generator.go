package mock

import (
	"context"
	"strings"

	"github.com/poiesic/dalil/ai"
)

// MockGenerator is a test double for ai.AnswerGenerator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, uses default behavior.
	GenerateAnswerFunc func(ctx context.Context, prompt string, onChunk ai.StreamFunc) (string, error)

	// Answer is the canned answer returned by the default behavior.
	Answer string

	callCount int
}

// NewMockGenerator creates a mock generator with a default canned answer.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Answer: "This is a mock answer.",
	}
}

// GenerateAnswer streams the canned answer word by word to onChunk and
// returns the full answer, mirroring the accumulate-and-return contract of
// the production generator.
func (m *MockGenerator) GenerateAnswer(ctx context.Context, prompt string, onChunk ai.StreamFunc) (string, error) {
	m.callCount++

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, prompt, onChunk)
	}

	if onChunk != nil {
		words := strings.SplitAfter(m.Answer, " ")
		for _, word := range words {
			onChunk(word)
		}
	}
	return m.Answer, nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateAnswerFunc = nil
}
