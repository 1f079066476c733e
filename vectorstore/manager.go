package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/dalil/core"
)

// Store is the capability a document collection must provide: similarity
// search over its passages. Implementations must be thread-safe for
// concurrent use.
type Store interface {
	// SimilaritySearch returns up to k passages nearest to the query,
	// ordered by similarity (highest first).
	SimilaritySearch(ctx context.Context, query string, k int) ([]*core.Passage, error)
}

// Manager holds one document collection per language. The collection set is
// fixed at construction; supporting another language is a wiring change, not
// a code change.
type Manager struct {
	stores map[core.Language]Store
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a manager over the given per-language stores.
// Every key must be a supported language tag. The map is copied; the
// manager is immutable after construction.
func NewManager(stores map[core.Language]Store, opts ...Option) (*Manager, error) {
	if len(stores) == 0 {
		return nil, ErrNoStores
	}
	for lang, store := range stores {
		if err := core.ValidateLanguage(lang); err != nil {
			return nil, err
		}
		if store == nil {
			return nil, fmt.Errorf("%w: %q", ErrNilStore, lang)
		}
	}

	copied := make(map[core.Language]Store, len(stores))
	for lang, store := range stores {
		copied[lang] = store
	}

	m := &Manager{
		stores: copied,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Get returns the document collection for the language.
// Languages without a configured collection fail with
// core.ErrUnsupportedLanguage; there is no fallback collection.
func (m *Manager) Get(lang core.Language) (Store, error) {
	store, ok := m.stores[lang]
	if !ok {
		m.logger.Debug("no collection for language", "language", lang)
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedLanguage, lang)
	}
	return store, nil
}

// Languages returns the set of languages with a configured collection.
func (m *Manager) Languages() []core.Language {
	langs := make([]core.Language, 0, len(m.stores))
	for lang := range m.stores {
		langs = append(langs, lang)
	}
	return langs
}
