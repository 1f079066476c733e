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


package dalil

import (
	"context"
	"log/slog"

	"github.com/poiesic/dalil/ai"
	"github.com/poiesic/dalil/ai/openai"
	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/language"
	"github.com/poiesic/dalil/memory"
	badgermem "github.com/poiesic/dalil/memory/badger"
	"github.com/poiesic/dalil/memory/inmem"
	"github.com/poiesic/dalil/rag"
	"github.com/poiesic/dalil/vectorstore"
	"github.com/poiesic/dalil/vectorstore/qdrant"
)

// Assistant is the top-level entry point. It wires language detection,
// per-language Qdrant collections, conversation memory, and the answer
// pipeline behind a single query surface.
type Assistant struct {
	detector  *language.LinguaDetector
	stores    *vectorstore.Manager
	memories  memory.Store
	provider  ai.AIProvider
	processor *rag.Processor
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig          *ai.Config
	memoryPath        string
	englishCollection string
	arabicCollection  string
	processorOpts     []rag.Option
}

// WithAIConfig sets the model provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithPersistentMemory stores conversation memory on disk at the given path
// instead of in process memory, so conversations survive restarts.
func WithPersistentMemory(filePath string) AssistantOption {
	return func(o *assistantOptions) {
		o.memoryPath = filePath
	}
}

// WithCollections overrides the Qdrant collection names.
// Defaults are qdrant.CollectionEnglish and qdrant.CollectionArabic.
func WithCollections(english, arabic string) AssistantOption {
	return func(o *assistantOptions) {
		if english != "" {
			o.englishCollection = english
		}
		if arabic != "" {
			o.arabicCollection = arabic
		}
	}
}

// WithProcessorOptions forwards options to the query processor, such as a
// hub prompt source or retrieval tuning.
func WithProcessorOptions(opts ...rag.Option) AssistantOption {
	return func(o *assistantOptions) {
		o.processorOpts = append(o.processorOpts, opts...)
	}
}

// NewAssistant creates an assistant over the Qdrant instance at qdrantURL.
// The collections must already exist and be populated.
func NewAssistant(qdrantURL, qdrantAPIKey string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig:          ai.DefaultConfig(),
		englishCollection: qdrant.CollectionEnglish,
		arabicCollection:  qdrant.CollectionArabic,
	}
	for _, opt := range opts {
		opt(options)
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		return nil, err
	}

	english, err := qdrant.NewStore(qdrantURL, qdrantAPIKey, options.englishCollection, provider.Embedder())
	if err != nil {
		provider.Close()
		return nil, err
	}
	arabic, err := qdrant.NewStore(qdrantURL, qdrantAPIKey, options.arabicCollection, provider.Embedder())
	if err != nil {
		provider.Close()
		return nil, err
	}

	stores, err := vectorstore.NewManager(map[core.Language]vectorstore.Store{
		core.LanguageEnglish: english,
		core.LanguageArabic:  arabic,
	})
	if err != nil {
		provider.Close()
		return nil, err
	}

	var memories memory.Store
	if options.memoryPath != "" {
		memories, err = badgermem.OpenStore(options.memoryPath, false)
		if err != nil {
			provider.Close()
			return nil, err
		}
	} else {
		memories = inmem.NewStore()
	}

	detector := language.NewDetector()

	// Config-derived options go first so explicit processor options win.
	processorOpts := append([]rag.Option{
		rag.WithRetrieverOptions(rag.WithRewriteCount(options.aiConfig.RewriteCount)),
	}, options.processorOpts...)

	processor, err := rag.NewProcessor(detector, stores, memories, provider, processorOpts...)
	if err != nil {
		memories.Close()
		provider.Close()
		return nil, err
	}

	return &Assistant{
		detector:  detector,
		stores:    stores,
		memories:  memories,
		provider:  provider,
		processor: processor,
		logger:    slog.Default(),
	}, nil
}

// Query answers the question in the context of the user's conversation.
func (a *Assistant) Query(ctx context.Context, question, userID string) (string, error) {
	return a.processor.ProcessQuery(ctx, question, userID)
}

// QueryStream answers the question, forwarding answer chunks to onChunk as
// the model produces them.
func (a *Assistant) QueryStream(ctx context.Context, question, userID string, onChunk ai.StreamFunc) (string, error) {
	return a.processor.ProcessQueryWithStream(ctx, question, userID, onChunk)
}

// History returns the user's conversation transcript.
func (a *Assistant) History(ctx context.Context, userID string) (string, error) {
	return a.memories.History(ctx, userID)
}

// MemoryStore exposes the underlying conversation memory.
func (a *Assistant) MemoryStore() memory.Store {
	return a.memories
}

// Close releases the processor, memory store, and model provider.
func (a *Assistant) Close() error {
	a.processor.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.memories.Close(); err != nil {
		a.logger.Error("error closing memory store", "err", err)
		return err
	}
	return nil
}
