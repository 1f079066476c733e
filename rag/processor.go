package rag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/dalil/ai"
	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/language"
	"github.com/poiesic/dalil/memory"
	"github.com/poiesic/dalil/vectorstore"
)

// FallbackMessage is returned when the query language cannot be identified
// as English or Arabic. It is the only recovered error path in the pipeline.
const FallbackMessage = "Please type your query in either Arabic or English, thank you! " +
	"الرجاء كتابة استفسارك باللغة العربية أو الإنجليزية، شكرًا لك"

// Processor orchestrates the query pipeline: language detection, history
// lookup, retrieval over the matching collection, answer generation, and
// turn persistence.
type Processor struct {
	detector  language.Detector
	stores    *vectorstore.Manager
	memories  memory.Store
	generator ai.AnswerGenerator
	retriever *Retriever
	prompts   PromptSource
	onChunk   ai.StreamFunc
	logger    *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithPromptSource sets the prompt template source.
// Default is the built-in static template.
func WithPromptSource(source PromptSource) Option {
	return func(p *Processor) error {
		if source == nil {
			source = NewStaticPrompt()
		}
		p.prompts = source
		return nil
	}
}

// WithStreamFunc sets the default chunk observer for generated answers.
// Default is none: answers are still fully accumulated and returned.
func WithStreamFunc(onChunk ai.StreamFunc) Option {
	return func(p *Processor) error {
		p.onChunk = onChunk
		return nil
	}
}

// WithRetrieverOptions forwards options to the internally built retriever.
func WithRetrieverOptions(opts ...RetrieverOption) Option {
	return func(p *Processor) error {
		for _, opt := range opts {
			if err := opt(p.retriever); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProcessor creates a query processor.
func NewProcessor(
	detector language.Detector,
	stores *vectorstore.Manager,
	memories memory.Store,
	provider ai.AIProvider,
	opts ...Option,
) (*Processor, error) {
	if detector == nil {
		return nil, ErrDetectorRequired
	}
	if stores == nil {
		return nil, ErrStoreManagerRequired
	}
	if memories == nil {
		return nil, ErrMemoryStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	retriever, err := NewRetriever(provider.QueryRewriter())
	if err != nil {
		return nil, err
	}

	p := &Processor{
		detector:  detector,
		stores:    stores,
		memories:  memories,
		generator: provider.AnswerGenerator(),
		retriever: retriever,
		prompts:   NewStaticPrompt(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// ProcessQuery answers the query in the context of the user's conversation.
// See ProcessQueryWithStream for the full contract.
func (p *Processor) ProcessQuery(ctx context.Context, query, userID string) (string, error) {
	return p.ProcessQueryWithStream(ctx, query, userID, p.onChunk)
}

// ProcessQueryWithStream answers the query, forwarding answer chunks to
// onChunk as they arrive from the model.
//
// If the query language cannot be identified as English or Arabic, the fixed
// FallbackMessage is returned with no error and nothing is written to the
// user's memory. Every failure after language detection propagates to the
// caller unchanged: there are no retries and no partial answers.
//
// On success, one turn holding the raw query (not the history-prefixed
// composite) and the complete answer is appended to the user's memory.
func (p *Processor) ProcessQueryWithStream(ctx context.Context, query, userID string, onChunk ai.StreamFunc) (string, error) {
	if query == "" {
		return "", core.ErrEmptyQuery
	}
	if userID == "" {
		return "", core.ErrEmptyUserID
	}

	lang, err := p.detector.Detect(query)
	if err != nil {
		p.logger.Info("query language not supported", "user", userID, "err", err)
		return FallbackMessage, nil
	}

	history, err := p.memories.History(ctx, userID)
	if err != nil {
		return "", err
	}
	composite := history + "\n\nUser: " + query

	store, err := p.stores.Get(lang)
	if err != nil {
		return "", err
	}

	passages, err := p.retriever.Retrieve(ctx, store, composite)
	if err != nil {
		return "", err
	}
	contextBlock := formatPassages(passages)

	template, err := p.prompts.Load(ctx)
	if err != nil {
		return "", err
	}
	prompt, err := template.Format(map[string]any{
		"context":  contextBlock,
		"question": composite,
	})
	if err != nil {
		return "", err
	}

	answer, err := p.generator.GenerateAnswer(ctx, prompt, onChunk)
	if err != nil {
		return "", err
	}

	if err := p.memories.SaveTurn(ctx, userID, query, answer); err != nil {
		return "", err
	}

	p.logger.Debug("processed query",
		"user", userID,
		"language", lang,
		"passages", len(passages),
		"answerLength", len(answer))
	return answer, nil
}

// Retriever returns the processor's multi-query retriever.
func (p *Processor) Retriever() *Retriever {
	return p.retriever
}

// Release releases resources held by the processor's retriever.
// The processor should not be used after calling Release.
func (p *Processor) Release() {
	p.retriever.Release()
}

// formatPassages concatenates passage texts into a single context block.
func formatPassages(passages []*core.Passage) string {
	contents := make([]string, len(passages))
	for i, passage := range passages {
		contents[i] = passage.Content
	}
	return strings.Join(contents, "\n\n")
}
