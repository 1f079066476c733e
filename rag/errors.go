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


package rag

import "errors"

var (
	// ErrDetectorRequired is returned when a language detector is not provided.
	ErrDetectorRequired = errors.New("language detector required")

	// ErrStoreManagerRequired is returned when a vector store manager is not provided.
	ErrStoreManagerRequired = errors.New("vector store manager required")

	// ErrMemoryStoreRequired is returned when a conversation memory store is not provided.
	ErrMemoryStoreRequired = errors.New("memory store required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrRewriterRequired is returned when a query rewriter is not provided.
	ErrRewriterRequired = errors.New("query rewriter required")

	// ErrPromptUnavailable is returned when the prompt template cannot be fetched.
	ErrPromptUnavailable = errors.New("prompt template unavailable")

	// ErrMalformedPrompt is returned when a fetched prompt template cannot be parsed.
	ErrMalformedPrompt = errors.New("malformed prompt template")
)
