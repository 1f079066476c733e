package dalil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/dalil/ai"
	"github.com/poiesic/dalil/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig() *ai.Config {
	return ai.NewConfig(ai.WithToken("test-token"))
}

func TestNewAssistant(t *testing.T) {
	t.Run("create with in-process memory", func(t *testing.T) {
		assistant, err := NewAssistant("http://localhost:6333", "",
			WithAIConfig(testAIConfig()))
		require.NoError(t, err)
		require.NotNil(t, assistant)
		defer assistant.Close()

		assert.NotNil(t, assistant.MemoryStore())
		assert.NotNil(t, assistant.detector)
		assert.NotNil(t, assistant.stores)
	})

	t.Run("create with persistent memory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "conversations")
		assistant, err := NewAssistant("http://localhost:6333", "",
			WithAIConfig(testAIConfig()),
			WithPersistentMemory(dbPath))
		require.NoError(t, err)
		defer assistant.Close()

		// The persistent store is usable right away.
		history, err := assistant.History(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("missing token", func(t *testing.T) {
		assistant, err := NewAssistant("http://localhost:6333", "")
		assert.Error(t, err)
		assert.Nil(t, assistant)
	})

	t.Run("invalid qdrant url", func(t *testing.T) {
		assistant, err := NewAssistant("not a url", "",
			WithAIConfig(testAIConfig()))
		assert.Error(t, err)
		assert.Nil(t, assistant)
	})

	t.Run("empty collection name", func(t *testing.T) {
		assistant, err := NewAssistant("http://localhost:6333", "",
			WithAIConfig(testAIConfig()),
			WithCollections("", ""))
		// Empty overrides keep the defaults, so construction succeeds.
		require.NoError(t, err)
		assistant.Close()
	})
}

func TestNewAssistant_RewriteCountReachesRetriever(t *testing.T) {
	t.Run("config value is forwarded", func(t *testing.T) {
		assistant, err := NewAssistant("http://localhost:6333", "",
			WithAIConfig(ai.NewConfig(
				ai.WithToken("test-token"),
				ai.WithRewriteCount(5),
			)))
		require.NoError(t, err)
		defer assistant.Close()

		assert.Equal(t, 5, assistant.processor.Retriever().RewriteCount())
	})

	t.Run("explicit processor option wins", func(t *testing.T) {
		assistant, err := NewAssistant("http://localhost:6333", "",
			WithAIConfig(ai.NewConfig(
				ai.WithToken("test-token"),
				ai.WithRewriteCount(5),
			)),
			WithProcessorOptions(rag.WithRetrieverOptions(rag.WithRewriteCount(2))))
		require.NoError(t, err)
		defer assistant.Close()

		assert.Equal(t, 2, assistant.processor.Retriever().RewriteCount())
	})
}

func TestAssistant_Close(t *testing.T) {
	assistant, err := NewAssistant("http://localhost:6333", "",
		WithAIConfig(testAIConfig()))
	require.NoError(t, err)

	assert.NoError(t, assistant.Close())
}
