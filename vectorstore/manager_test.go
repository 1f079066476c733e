package vectorstore

import (
	"context"
	"testing"

	"github.com/poiesic/dalil/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore is a minimal Store for manager tests.
type stubStore struct {
	name string
}

func (s *stubStore) SimilaritySearch(ctx context.Context, query string, k int) ([]*core.Passage, error) {
	return []*core.Passage{{Content: s.name + ": " + query}}, nil
}

func TestNewManager(t *testing.T) {
	en := &stubStore{name: "en_doc"}
	ar := &stubStore{name: "ar_doc"}

	t.Run("valid configuration", func(t *testing.T) {
		m, err := NewManager(map[core.Language]Store{
			core.LanguageEnglish: en,
			core.LanguageArabic:  ar,
		})
		require.NoError(t, err)
		assert.NotNil(t, m)
		assert.ElementsMatch(t, []core.Language{core.LanguageEnglish, core.LanguageArabic}, m.Languages())
	})

	t.Run("empty store map", func(t *testing.T) {
		_, err := NewManager(map[core.Language]Store{})
		assert.ErrorIs(t, err, ErrNoStores)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewManager(map[core.Language]Store{core.LanguageEnglish: nil})
		assert.ErrorIs(t, err, ErrNilStore)
	})

	t.Run("unsupported language key", func(t *testing.T) {
		_, err := NewManager(map[core.Language]Store{
			core.Language("fr"): &stubStore{name: "fr_doc"},
		})
		assert.ErrorIs(t, err, core.ErrUnsupportedLanguage)
	})
}

func TestManager_Get(t *testing.T) {
	en := &stubStore{name: "en_doc"}
	ar := &stubStore{name: "ar_doc"}

	m, err := NewManager(map[core.Language]Store{
		core.LanguageEnglish: en,
		core.LanguageArabic:  ar,
	})
	require.NoError(t, err)

	t.Run("returns distinct stable handles", func(t *testing.T) {
		gotEN, err := m.Get(core.LanguageEnglish)
		require.NoError(t, err)
		gotAR, err := m.Get(core.LanguageArabic)
		require.NoError(t, err)

		assert.Same(t, en, gotEN)
		assert.Same(t, ar, gotAR)
		assert.NotSame(t, gotEN, gotAR)

		// Repeated lookups return the same handle.
		again, err := m.Get(core.LanguageEnglish)
		require.NoError(t, err)
		assert.Same(t, gotEN, again)
	})

	t.Run("rejects unsupported language", func(t *testing.T) {
		_, err := m.Get(core.Language("fr"))
		assert.ErrorIs(t, err, core.ErrUnsupportedLanguage)
	})
}

func TestManager_CopiesStoreMap(t *testing.T) {
	stores := map[core.Language]Store{
		core.LanguageEnglish: &stubStore{name: "en_doc"},
	}
	m, err := NewManager(stores)
	require.NoError(t, err)

	// Mutating the input map must not affect the manager.
	stores[core.LanguageArabic] = &stubStore{name: "ar_doc"}
	_, err = m.Get(core.LanguageArabic)
	assert.ErrorIs(t, err, core.ErrUnsupportedLanguage)
}
