package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/dalil/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryRewriter implements ai.QueryRewriter using OpenAI-compatible chat APIs.
type QueryRewriter struct {
	client llms.Model
	logger *slog.Logger
}

// newQueryRewriter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryRewriter(config *ai.Config) (*QueryRewriter, error) {
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

	return &QueryRewriter{
		client: client,
		logger: slog.Default().With("component", "openai-rewriter"),
	}, nil
}

// NewQueryRewriter creates a new query rewriter using the provided configuration.
//
// Returns ai.QueryRewriter interface to enforce abstraction.
func NewQueryRewriter(config *ai.Config) (ai.QueryRewriter, error) {
	return newQueryRewriter(config)
}

// RewriteQuery generates up to count alternative phrasings of the query.
// The model is asked for one rewrite per line; the response is parsed
// leniently since models decorate lists in different ways.
func (r *QueryRewriter) RewriteQuery(ctx context.Context, query string, count int) ([]string, error) {
	prompt := buildRewritePrompt(query, count)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(rewriteSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		r.logger.Error("failed to generate query rewrites", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		r.logger.Debug("no choices returned from model")
		return []string{}, nil
	}

	rewrites := parseRewriteLines(response.Choices[0].Content, count)
	r.logger.Debug("generated query rewrites", "requested", count, "parsed", len(rewrites))
	return rewrites, nil
}
