// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.QueryRewriter,
// ai.AnswerGenerator, and ai.AIProvider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	rewrites, err := mockProvider.QueryRewriter().RewriteQuery(ctx, "test", 3)
//
//	// Custom behavior injection
//	mockGen := mock.NewMockGenerator()
//	mockGen.GenerateAnswerFunc = func(ctx context.Context, prompt string, onChunk ai.StreamFunc) (string, error) {
//	    return "canned answer", nil
//	}
//
//	// Check call counts
//	count := mockGen.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockRewriter: Returns simple numbered variants of the query
//   - MockGenerator: Streams a canned answer word by word
//   - MockProvider: Aggregates the three mock services
package mock
