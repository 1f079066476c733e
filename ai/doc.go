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


// Package ai provides abstractions for the AI services used in Dalil.
//
// This package defines interfaces for text embedding, query rewriting, and
// streamed answer generation. It follows the dependency inversion principle,
// allowing retrieval and orchestration logic to depend on abstractions rather
// than concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - QueryRewriter: Produces semantically varied rewrites of a query
//   - AnswerGenerator: Synthesizes a streamed answer from a rendered prompt
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider and friends) return INTERFACE types
// to enforce abstraction. Test utility constructors (mock.NewMockEmbedder,
// mock.NewMockRewriter, mock.NewMockGenerator) return CONCRETE types to
// enable behavior injection and call-count assertions.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithToken(apiKey))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	rewrites, err := provider.QueryRewriter().RewriteQuery(ctx, "employee rights", 3)
//	answer, err := provider.AnswerGenerator().GenerateAnswer(ctx, prompt, nil)
package ai
