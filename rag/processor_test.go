package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/dalil/ai"
	"github.com/poiesic/dalil/ai/mock"
	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/memory/inmem"
	"github.com/poiesic/dalil/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDetector reports a fixed language, or failure when lang is empty.
type stubDetector struct {
	lang core.Language
}

func (d stubDetector) Detect(text string) (core.Language, error) {
	if d.lang == "" {
		return "", core.ErrUnsupportedLanguage
	}
	return d.lang, nil
}

type processorFixture struct {
	processor *Processor
	provider  *mock.MockProvider
	memories  *inmem.Store
	english   *recordingStore
	arabic    *recordingStore
}

func newProcessorFixture(t *testing.T, lang core.Language, opts ...Option) *processorFixture {
	t.Helper()

	english := newRecordingStore()
	arabic := newRecordingStore()
	manager, err := vectorstore.NewManager(map[core.Language]vectorstore.Store{
		core.LanguageEnglish: english,
		core.LanguageArabic:  arabic,
	})
	require.NoError(t, err)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	memories := inmem.NewStore()

	processor, err := NewProcessor(stubDetector{lang: lang}, manager, memories, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(processor.Release)

	return &processorFixture{
		processor: processor,
		provider:  provider,
		memories:  memories,
		english:   english,
		arabic:    arabic,
	}
}

func TestNewProcessor(t *testing.T) {
	english := newRecordingStore()
	manager, err := vectorstore.NewManager(map[core.Language]vectorstore.Store{
		core.LanguageEnglish: english,
	})
	require.NoError(t, err)
	memories := inmem.NewStore()
	provider := mock.NewMockProvider()

	t.Run("nil detector", func(t *testing.T) {
		_, err := NewProcessor(nil, manager, memories, provider)
		assert.Equal(t, ErrDetectorRequired, err)
	})

	t.Run("nil store manager", func(t *testing.T) {
		_, err := NewProcessor(stubDetector{lang: core.LanguageEnglish}, nil, memories, provider)
		assert.Equal(t, ErrStoreManagerRequired, err)
	})

	t.Run("nil memory store", func(t *testing.T) {
		_, err := NewProcessor(stubDetector{lang: core.LanguageEnglish}, manager, nil, provider)
		assert.Equal(t, ErrMemoryStoreRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewProcessor(stubDetector{lang: core.LanguageEnglish}, manager, memories, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestProcessQuery_AnswersFromMatchingCollection(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish)

	answer, err := f.processor.ProcessQuery(context.Background(), "What is annual leave?", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "This is a mock answer.", answer)

	// Only the English collection is searched.
	assert.NotZero(t, f.english.queryCount())
	assert.Zero(t, f.arabic.queryCount())
}

func TestProcessQuery_ArabicRoutesToArabicCollection(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageArabic)

	_, err := f.processor.ProcessQuery(context.Background(), "ما هي الإجازة السنوية؟", "user-1")
	require.NoError(t, err)

	assert.Zero(t, f.english.queryCount())
	assert.NotZero(t, f.arabic.queryCount())
}

func TestProcessQuery_ValidatesInput(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish)

	_, err := f.processor.ProcessQuery(context.Background(), "", "user-1")
	assert.Equal(t, core.ErrEmptyQuery, err)

	_, err = f.processor.ProcessQuery(context.Background(), "question", "")
	assert.Equal(t, core.ErrEmptyUserID, err)
}

func TestProcessQuery_FallbackOnDetectionFailure(t *testing.T) {
	f := newProcessorFixture(t, "")

	answer, err := f.processor.ProcessQuery(context.Background(), "Bonjour tout le monde", "user-1")
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, answer)

	// The fallback exchange is not remembered.
	history, err := f.memories.History(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)

	// Nothing downstream runs.
	assert.Zero(t, f.english.queryCount())
	assert.Zero(t, f.provider.GetMockGenerator().CallCount())
}

func TestProcessQuery_PersistsRawQuestion(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish)

	_, err := f.processor.ProcessQuery(context.Background(), "first question", "user-1")
	require.NoError(t, err)

	history, err := f.memories.History(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, history, "Human: first question")
	assert.Contains(t, history, "AI: This is a mock answer.")
	// The history-prefixed composite never leaks into memory.
	assert.NotContains(t, history, "User: ")
}

func TestProcessQuery_SecondCallSeesFirstTurn(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish)

	ctx := context.Background()
	_, err := f.processor.ProcessQuery(ctx, "first question", "user-1")
	require.NoError(t, err)

	_, err = f.processor.ProcessQuery(ctx, "second question", "user-1")
	require.NoError(t, err)

	// The second retrieval query carries the first turn plus the new query.
	f.english.mu.Lock()
	last := f.english.queries[len(f.english.queries)-1]
	f.english.mu.Unlock()
	assert.Contains(t, last, "first question")
	assert.Contains(t, last, "User: second question")
}

func TestProcessQuery_PromptIncludesRetrievedPassages(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish, WithRetrieverOptions(WithRewriteCount(0)))
	f.english.passages["\n\nUser: q"] = []*core.Passage{
		{Content: "Employees accrue 21 days of annual leave."},
	}

	var sawPrompt string
	f.provider.GetMockGenerator().GenerateAnswerFunc = func(ctx context.Context, prompt string, onChunk ai.StreamFunc) (string, error) {
		sawPrompt = prompt
		return "answer", nil
	}

	_, err := f.processor.ProcessQuery(context.Background(), "q", "user-1")
	require.NoError(t, err)
	assert.Contains(t, sawPrompt, "Employees accrue 21 days of annual leave.")
	assert.Contains(t, sawPrompt, "User: q")
}

func TestProcessQuery_RewriteCountControlsSearchFanout(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish, WithRetrieverOptions(WithRewriteCount(5)))
	assert.Equal(t, 5, f.processor.Retriever().RewriteCount())

	_, err := f.processor.ProcessQuery(context.Background(), "question", "user-1")
	require.NoError(t, err)

	// Original composite plus five rewrites.
	assert.Equal(t, 6, f.english.queryCount())
}

func TestProcessQueryWithStream_ForwardsChunks(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish)

	var b strings.Builder
	answer, err := f.processor.ProcessQueryWithStream(context.Background(), "question", "user-1", func(chunk string) {
		b.WriteString(chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, answer, b.String())
}

func TestProcessQuery_GenerationFailureLeavesMemoryUntouched(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish)
	f.provider.GetMockGenerator().GenerateAnswerFunc = func(ctx context.Context, prompt string, onChunk ai.StreamFunc) (string, error) {
		return "", errors.New("model overloaded")
	}

	_, err := f.processor.ProcessQuery(context.Background(), "question", "user-1")
	assert.ErrorContains(t, err, "model overloaded")

	history, err := f.memories.History(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProcessQuery_SearchFailurePropagates(t *testing.T) {
	f := newProcessorFixture(t, core.LanguageEnglish)
	f.english.err = errors.New("vector database down")

	_, err := f.processor.ProcessQuery(context.Background(), "question", "user-1")
	assert.ErrorContains(t, err, "vector database down")
	assert.Zero(t, f.provider.GetMockGenerator().CallCount())
}

func TestFormatPassages(t *testing.T) {
	t.Run("joins with blank lines", func(t *testing.T) {
		block := formatPassages([]*core.Passage{
			{Content: "first"},
			{Content: "second"},
		})
		assert.Equal(t, "first\n\nsecond", block)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", formatPassages(nil))
	})
}
