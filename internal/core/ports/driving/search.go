package driving

import (
	"context"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// SearchService serves ranked similarity queries over indexed collections.
type SearchService interface {
	// Search queries a single collection. A collection that does not exist
	// yields an empty result list, not an error.
	Search(ctx context.Context, collectionName, query string, limit int, filter *domain.SearchFilter) ([]domain.SearchResult, error)

	// SearchCollections queries several collections in parallel and merges
	// the ranked results. A failing collection contributes zero results.
	SearchCollections(ctx context.Context, collectionNames []string, query string, limit int, filter *domain.SearchFilter) ([]domain.SearchResult, error)
}
