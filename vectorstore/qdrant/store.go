// Package qdrant adapts a Qdrant collection to the vectorstore.Store
// capability. Collections are assumed to exist and be populated already;
// this package never creates, fills, or deletes them.
package qdrant

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/poiesic/dalil/ai"
	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/vectorstore"
	"github.com/tmc/langchaingo/embeddings"
	lcqdrant "github.com/tmc/langchaingo/vectorstores/qdrant"
)

// Default collection names, one per supported language.
const (
	CollectionEnglish = "en_doc"
	CollectionArabic  = "ar_doc"
)

// Store implements vectorstore.Store over a single named Qdrant collection.
type Store struct {
	store      lcqdrant.Store
	collection string
	logger     *slog.Logger
}

var _ vectorstore.Store = (*Store)(nil)

// embedderAdapter bridges ai.Embedder to the langchaingo embeddings.Embedder
// interface expected by the Qdrant client.
type embedderAdapter struct {
	embedder ai.Embedder
}

var _ embeddings.Embedder = (*embedderAdapter)(nil)

func (a *embedderAdapter) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return a.embedder.EmbedTexts(ctx, texts)
}

func (a *embedderAdapter) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return a.embedder.EmbedText(ctx, text)
}

// NewStore creates a store over the named collection at the given Qdrant URL.
// The apiKey may be empty for unauthenticated deployments.
func NewStore(qdrantURL, apiKey, collection string, embedder ai.Embedder) (*Store, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	parsed, err := url.Parse(qdrantURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, qdrantURL)
	}

	opts := []lcqdrant.Option{
		lcqdrant.WithURL(*parsed),
		lcqdrant.WithCollectionName(collection),
		lcqdrant.WithEmbedder(&embedderAdapter{embedder: embedder}),
	}
	if apiKey != "" {
		opts = append(opts, lcqdrant.WithAPIKey(apiKey))
	}

	store, err := lcqdrant.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Store{
		store:      store,
		collection: collection,
		logger:     slog.Default().With("component", "qdrant-store", "collection", collection),
	}, nil
}

// SimilaritySearch returns up to k passages nearest to the query.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int) ([]*core.Passage, error) {
	docs, err := s.store.SimilaritySearch(ctx, query, k)
	if err != nil {
		s.logger.Error("similarity search failed", "err", err)
		return nil, err
	}

	passages := make([]*core.Passage, 0, len(docs))
	for _, doc := range docs {
		passages = append(passages, &core.Passage{
			Content:  doc.PageContent,
			Score:    doc.Score,
			Metadata: doc.Metadata,
		})
	}

	s.logger.Debug("similarity search", "k", k, "hits", len(passages))
	return passages, nil
}

// Collection returns the name of the backing collection.
func (s *Store) Collection() string {
	return s.collection
}
