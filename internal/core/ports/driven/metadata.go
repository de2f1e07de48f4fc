package driven

import (
	"context"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// MetadataExtractionService analyses a document and returns its metadata
// (tech stack, domain, keywords, languages, description).
//
// This is an optional service - when nil or failing, the indexing pipeline
// falls back to a local heuristic extractor.
type MetadataExtractionService interface {
	// Extract analyses raw markdown text and returns document metadata.
	Extract(ctx context.Context, rawText, fileName string) (*domain.ExtractedMetadata, error)
}
