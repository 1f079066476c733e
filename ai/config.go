// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for an OpenAI-compatible API.
	// Leave empty to use the hosted OpenAI endpoint.
	// Example: "http://localhost:11434/v1" for a local server.
	Host string

	// Token is the API credential passed to the service.
	Token string

	// ChatModel is the model identifier used for query rewriting and
	// answer generation.
	// Example: "gpt-4o-mini"
	ChatModel string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// MaxAnswerTokens bounds the length of a generated answer.
	// Default: 1500
	MaxAnswerTokens int

	// RewriteCount is the number of query rewrites generated per retrieval.
	// Default: 3
	RewriteCount int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the OpenAI-compatible API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API credential.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithChatModel sets the chat model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithMaxAnswerTokens sets the answer length bound.
func WithMaxAnswerTokens(max int) ConfigOption {
	return func(c *Config) {
		c.MaxAnswerTokens = max
	}
}

// WithRewriteCount sets the number of query rewrites per retrieval.
func WithRewriteCount(count int) ConfigOption {
	return func(c *Config) {
		c.RewriteCount = count
	}
}

// DefaultConfig returns a Config with sensible defaults for the hosted
// OpenAI service. The Token must still be supplied.
func DefaultConfig() *Config {
	return &Config{
		ChatModel:       "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		MaxAnswerTokens: 1500,
		RewriteCount:    3,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithToken(apiKey),
//	    ai.WithChatModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// When a custom host is set it adds the /v1 suffix if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Token == "" {
		return errors.New("ai config: Token is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.MaxAnswerTokens < 1 {
		return errors.New("ai config: MaxAnswerTokens must be positive")
	}
	if c.RewriteCount < 1 || c.RewriteCount > 10 {
		return errors.New("ai config: RewriteCount must be between 1 and 10")
	}
	return nil
}
