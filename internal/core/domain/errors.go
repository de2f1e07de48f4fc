package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input,
	// rejected before any collaborator call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates a document with no usable content.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Indexing and search are impossible without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector gateway is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrMetadataUnavailable indicates the remote metadata extraction service
	// is not configured. Callers fall back to the local heuristic extractor.
	ErrMetadataUnavailable = errors.New("metadata extraction service unavailable")
)
