package mock

import (
	"context"
	"fmt"
)

// MockRewriter is a test double for ai.QueryRewriter.
// It allows custom behavior injection via function fields.
type MockRewriter struct {
	// RewriteQueryFunc is called by RewriteQuery if set.
	// If nil, uses default behavior.
	RewriteQueryFunc func(ctx context.Context, query string, count int) ([]string, error)

	callCount int
}

// NewMockRewriter creates a mock rewriter with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockRewriter() *MockRewriter {
	return &MockRewriter{}
}

// RewriteQuery returns simple numbered variants of the query.
// Default behavior: "variant N: <query>" for N in [1, count].
func (m *MockRewriter) RewriteQuery(ctx context.Context, query string, count int) ([]string, error) {
	m.callCount++

	if m.RewriteQueryFunc != nil {
		return m.RewriteQueryFunc(ctx, query, count)
	}

	rewrites := make([]string, count)
	for i := range rewrites {
		rewrites[i] = fmt.Sprintf("variant %d: %s", i+1, query)
	}
	return rewrites, nil
}

// CallCount returns the number of times RewriteQuery was called.
func (m *MockRewriter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockRewriter) Reset() {
	m.callCount = 0
	m.RewriteQueryFunc = nil
}
