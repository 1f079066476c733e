package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/dalil/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// AnswerGenerator implements ai.AnswerGenerator using OpenAI-compatible chat APIs.
type AnswerGenerator struct {
	client    llms.Model
	maxTokens int
	logger    *slog.Logger
}

// newAnswerGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnswerGenerator(config *ai.Config) (*AnswerGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	}
	if config.Host != "" {
		opts = append(opts, openai.WithBaseURL(config.Host))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &AnswerGenerator{
		client:    client,
		maxTokens: config.MaxAnswerTokens,
		logger:    slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewAnswerGenerator creates a new answer generator using the provided configuration.
//
// Returns ai.AnswerGenerator interface to enforce abstraction.
func NewAnswerGenerator(config *ai.Config) (ai.AnswerGenerator, error) {
	return newAnswerGenerator(config)
}

// GenerateAnswer streams a completion for the prompt, forwarding each chunk
// to onChunk as it arrives, and returns the complete accumulated answer once
// the stream is exhausted.
func (g *AnswerGenerator) GenerateAnswer(ctx context.Context, prompt string, onChunk ai.StreamFunc) (string, error) {
	var accumulated strings.Builder

	response, err := llms.GenerateFromSinglePrompt(ctx, g.client, prompt,
		llms.WithMaxTokens(g.maxTokens),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			accumulated.Write(chunk)
			if onChunk != nil {
				onChunk(string(chunk))
			}
			return nil
		}),
	)
	if err != nil {
		g.logger.Error("failed to generate answer", "err", err)
		return "", err
	}

	// Backends that ignore the streaming option deliver the answer only in
	// the final response.
	if accumulated.Len() == 0 {
		return response, nil
	}
	return accumulated.String(), nil
}
