package rag

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/dalil/ai"
	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/vectorstore"
)

const (
	defaultTopK         = 10
	defaultRewriteCount = 3
	defaultMaxPassages  = 30
	defaultPoolSize     = 4
)

// Retriever performs multi-query retrieval: it expands a query into several
// LLM-generated rewrites, searches the collection for each in parallel, and
// unions the results with content-based deduplication.
type Retriever struct {
	rewriter     ai.QueryRewriter
	pool         *ants.Pool
	topK         int
	rewriteCount int
	maxPassages  int
	logger       *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever) error

// WithTopK sets the number of passages fetched per query variant.
// Default is 10.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) error {
		if k < 1 {
			k = 1
		}
		r.topK = k
		return nil
	}
}

// WithRewriteCount sets the number of query rewrites requested per retrieval.
// Default is 3.
func WithRewriteCount(count int) RetrieverOption {
	return func(r *Retriever) error {
		if count < 0 {
			count = 0
		}
		r.rewriteCount = count
		return nil
	}
}

// WithMaxPassages caps the size of the merged result set.
// Default is 30.
func WithMaxPassages(max int) RetrieverOption {
	return func(r *Retriever) error {
		if max < 1 {
			max = 1
		}
		r.maxPassages = max
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent searches.
// Default is 4.
func WithPoolSize(size int) RetrieverOption {
	return func(r *Retriever) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithRetrieverLogger sets a custom logger.
// Default is slog.Default().
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a multi-query retriever.
func NewRetriever(rewriter ai.QueryRewriter, opts ...RetrieverOption) (*Retriever, error) {
	if rewriter == nil {
		return nil, ErrRewriterRequired
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	r := &Retriever{
		rewriter:     rewriter,
		pool:         pool,
		topK:         defaultTopK,
		rewriteCount: defaultRewriteCount,
		maxPassages:  defaultMaxPassages,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}

	return r, nil
}

// Retrieve runs multi-query retrieval against the store.
//
// The query is expanded into rewriteCount rewrites; the original query and
// every rewrite are searched concurrently at topK each. Results are unioned
// in query order, deduplicated by passage content identity, and capped at
// maxPassages. Search order across variants does not affect which passages
// are returned, only their relative position.
//
// A rewrite failure degrades to searching the original query alone; a search
// failure fails the whole retrieval.
func (r *Retriever) Retrieve(ctx context.Context, store vectorstore.Store, query string) ([]*core.Passage, error) {
	queries := []string{query}
	if r.rewriteCount > 0 {
		rewrites, err := r.rewriter.RewriteQuery(ctx, query, r.rewriteCount)
		if err != nil {
			r.logger.Warn("query rewriting failed, searching original query only", "err", err)
		} else {
			queries = append(queries, rewrites...)
		}
	}

	results := make([][]*core.Passage, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i], errs[i] = store.SimilaritySearch(ctx, q, r.topK)
		}
		if err := r.pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			r.logger.Error("similarity search failed", "err", err)
			return nil, err
		}
	}

	merged := mergePassages(results, r.maxPassages)
	r.logger.Debug("multi-query retrieval",
		"variants", len(queries),
		"merged", len(merged))
	return merged, nil
}

// RewriteCount returns the number of query rewrites requested per retrieval.
func (r *Retriever) RewriteCount() int {
	return r.rewriteCount
}

// Release releases the worker pool.
// The retriever should not be used after calling Release.
func (r *Retriever) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// mergePassages unions per-query result lists, keeping the first occurrence
// of each passage identity and capping the total.
func mergePassages(results [][]*core.Passage, max int) []*core.Passage {
	seen := make(map[core.ID]bool)
	merged := make([]*core.Passage, 0, max)

	for _, passages := range results {
		for _, passage := range passages {
			id := passage.ID()
			if seen[id] {
				continue
			}
			seen[id] = true
			merged = append(merged, passage)
			if len(merged) == max {
				return merged
			}
		}
	}
	return merged
}
