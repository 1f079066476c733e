package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryRewriter generates semantically varied rewrites of a search query.
// Implementations must be thread-safe for concurrent use.
type QueryRewriter interface {
	// RewriteQuery produces up to count alternative phrasings of the query.
	// The original query is not included in the result. A short or ambiguous
	// query may yield fewer rewrites than requested; that is not an error.
	RewriteQuery(ctx context.Context, query string, count int) ([]string, error)
}

// StreamFunc observes answer chunks as they arrive from the model.
// Delivery is best-effort: the callback is a live-progress signal, not a
// reliable transport. The full answer is always returned by the generator.
type StreamFunc func(chunk string)

// AnswerGenerator produces a model completion for a fully rendered prompt.
// Implementations must be thread-safe for concurrent use.
type AnswerGenerator interface {
	// GenerateAnswer sends the prompt to the model and consumes the response
	// as an incremental stream. Each chunk is passed to onChunk (if non-nil)
	// as it arrives. The call blocks until the stream is exhausted and returns
	// the complete accumulated answer; no partial result is ever returned.
	GenerateAnswer(ctx context.Context, prompt string, onChunk StreamFunc) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, QueryRewriter, and AnswerGenerator
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryRewriter returns the query expansion service.
	// The returned QueryRewriter is safe for concurrent use.
	QueryRewriter() QueryRewriter

	// AnswerGenerator returns the answer synthesis service.
	// The returned AnswerGenerator is safe for concurrent use.
	AnswerGenerator() AnswerGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
