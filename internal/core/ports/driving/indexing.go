package driving

import (
	"context"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// IndexRequest describes one document to index into one collection.
type IndexRequest struct {
	// CollectionName is the target collection. Created on first use.
	CollectionName string

	// OwnerID identifies the owning entity (project, sponsor, ...).
	OwnerID string

	// FileName is the document file name, part of the deterministic ID.
	FileName string

	// Markdown is the raw document text, frontmatter included.
	Markdown string

	// Metadata is pre-extracted document metadata, used as-is when non-nil.
	Metadata *domain.ExtractedMetadata
}

// IndexingService ingests markdown documents into the vector index.
type IndexingService interface {
	// Index parses, chunks, embeds and upserts one document.
	// It returns the document metadata actually used, for the caller to
	// persist in its own record store.
	Index(ctx context.Context, req IndexRequest) (*domain.ExtractedMetadata, error)
}
