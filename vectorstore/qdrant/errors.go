package qdrant

import "errors"

var (
	// ErrCollectionRequired is returned when a collection name is not provided.
	ErrCollectionRequired = errors.New("collection name required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidURL is returned when the Qdrant URL cannot be used.
	ErrInvalidURL = errors.New("invalid qdrant url")
)
