package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/hackgrid/docindex/internal/core/domain"
	"github.com/hackgrid/docindex/internal/core/ports/driven"
	"github.com/hackgrid/docindex/internal/core/ports/driving"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultSearchLimit applies when the caller supplies no limit.
const DefaultSearchLimit = 5

// overFetchFactor compensates for skewed per-collection score distributions
// during multi-collection merges.
const overFetchFactor = 1.5

// SearchService serves ranked similarity queries with metadata filtering.
type SearchService struct {
	embedding driven.EmbeddingService
	vectors   driven.VectorIndexGateway
	log       *zap.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(
	embedding driven.EmbeddingService,
	vectors driven.VectorIndexGateway,
	log *zap.Logger,
) *SearchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SearchService{
		embedding: embedding,
		vectors:   vectors,
		log:       log,
	}
}

// Search queries a single collection. A collection that was never created
// yields an empty result list, not an error.
func (s *SearchService) Search(
	ctx context.Context, collectionName, query string, limit int, filter *domain.SearchFilter,
) ([]domain.SearchResult, error) {
	if s.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectors == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	vector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.searchVector(ctx, collectionName, vector, limit, filter)
}

// SearchCollections queries several collections fully in parallel and
// merges the ranked results.
//
// The query is embedded once, before fan-out; an embedding failure fails
// the whole search since no branch can run without the vector. Each
// branch's failure is isolated: it is logged and contributes zero results.
// All branches are awaited (join-all, never first-success) before merging.
func (s *SearchService) SearchCollections(
	ctx context.Context, collectionNames []string, query string, limit int, filter *domain.SearchFilter,
) ([]domain.SearchResult, error) {
	if s.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectors == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if len(collectionNames) == 0 {
		return []domain.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	// Over-fetch per collection so a collection with uniformly strong hits
	// can still fill the merged window.
	perCollection := int(math.Ceil(float64(limit) * overFetchFactor / float64(len(collectionNames))))

	s.log.Debug("searching collections in parallel",
		zap.Int("collections", len(collectionNames)),
		zap.Int("per_collection_limit", perCollection),
		zap.Int("limit", limit))

	vector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	partials := make([][]domain.SearchResult, len(collectionNames))

	var wg sync.WaitGroup
	for i, name := range collectionNames {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := s.searchVector(ctx, name, vector, perCollection, filter)
			if err != nil {
				s.log.Warn("collection search failed, contributing no results",
					zap.String("collection", name), zap.Error(err))
				return
			}
			partials[i] = results
		}()
	}
	wg.Wait()

	var merged []domain.SearchResult
	for _, partial := range partials {
		merged = append(merged, partial...)
	}

	// Equal scores keep concatenation order (collection order as passed,
	// then per-collection rank). Implementation-defined, not contractual.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	if merged == nil {
		merged = []domain.SearchResult{}
	}

	s.log.Debug("merged search results", zap.Int("results", len(merged)))
	return merged, nil
}

// searchVector runs one filtered similarity search against one collection.
func (s *SearchService) searchVector(
	ctx context.Context, collectionName string, vector []float32, limit int, filter *domain.SearchFilter,
) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	exists, err := s.vectors.CollectionExists(ctx, collectionName)
	if err != nil {
		return nil, fmt.Errorf("check collection %q: %w", collectionName, err)
	}
	if !exists {
		s.log.Debug("collection does not exist, returning empty results",
			zap.String("collection", collectionName))
		return []domain.SearchResult{}, nil
	}

	hits, err := s.vectors.Search(ctx, collectionName, vector, limit, buildFilter(filter), true)
	if err != nil {
		return nil, fmt.Errorf("search collection %q: %w", collectionName, err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, hitToResult(collectionName, hit))
	}
	return results, nil
}

// buildFilter converts the domain filter into a gateway conjunction.
// Returns nil when no predicate is set so the gateway omits filtering.
func buildFilter(filter *domain.SearchFilter) *driven.Filter {
	if filter == nil || filter.IsEmpty() {
		return nil
	}

	var must []driven.FieldMatch
	if filter.ChunkType != "" {
		must = append(must, driven.FieldMatch{Key: "type", Value: filter.ChunkType.String()})
	}
	if filter.HasCode != nil {
		must = append(must, driven.FieldMatch{Key: "hasCode", Value: *filter.HasCode})
	}
	if filter.CodeLanguage != "" {
		must = append(must, driven.FieldMatch{Key: "codeLanguage", Value: filter.CodeLanguage})
	}
	if filter.Importance != "" {
		must = append(must, driven.FieldMatch{Key: "importance", Value: filter.Importance.String()})
	}

	return &driven.Filter{Must: must}
}

// hitToResult maps a scored point payload back to a search result,
// preserving the returned score unmodified.
func hitToResult(collectionName string, hit driven.ScoredPoint) domain.SearchResult {
	payload := hit.Payload

	result := domain.SearchResult{
		Content:        payloadString(payload, "content"),
		Type:           domain.ChunkType(payloadString(payload, "type")),
		Language:       payloadString(payload, "language"),
		Section:        payloadString(payload, "section"),
		Keywords:       payloadStrings(payload, "keywords"),
		Importance:     domain.Importance(payloadString(payload, "importance")),
		Score:          hit.Score,
		CollectionName: collectionName,
		EntityID:       payloadString(payload, "entityId"),
		FileName:       payloadString(payload, "fileName"),
		Frontmatter:    payloadString(payload, "frontmatter"),
	}
	result.Hierarchy = payloadStrings(payload, "hierarchy")
	if hasCode, ok := payload["hasCode"].(bool); ok {
		result.HasCode = hasCode
	}

	return result
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func payloadStrings(payload map[string]any, key string) []string {
	switch vals := payload[key].(type) {
	case []string:
		return vals
	case []any:
		var out []string
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
