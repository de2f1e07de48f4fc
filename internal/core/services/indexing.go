package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hackgrid/docindex/internal/chunking"
	"github.com/hackgrid/docindex/internal/core/domain"
	"github.com/hackgrid/docindex/internal/core/ports/driven"
	"github.com/hackgrid/docindex/internal/core/ports/driving"
	"github.com/hackgrid/docindex/internal/markdown"
	"github.com/hackgrid/docindex/internal/metadata"
)

// Ensure IndexingService implements the interface.
var _ driving.IndexingService = (*IndexingService)(nil)

// DefaultUpsertBatchSize keeps each upsert request comfortably under the
// vector gateway's per-request payload ceiling.
const DefaultUpsertBatchSize = 100

// DefaultEmbedConcurrency bounds the fan-out of per-chunk embedding calls.
const DefaultEmbedConcurrency = 4

// titlePreviewLength is how much section body a title chunk carries.
const titlePreviewLength = 200

// maxTitleChunkLevel: only H1-H3 headings become standalone title chunks.
const maxTitleChunkLevel = 3

// pointNamespace is the fixed UUID namespace for deterministic point IDs.
// Changing it invalidates every previously indexed point ID.
var pointNamespace = uuid.MustParse("9f2c1d4e-7a36-4b58-9c01-d83f5a6e2b17")

// IndexingService ingests markdown documents into the vector index.
type IndexingService struct {
	embedding driven.EmbeddingService
	vectors   driven.VectorIndexGateway
	metadata  driven.MetadataExtractionService // optional

	parser  *markdown.Parser
	chunker *chunking.ConceptualChunker
	log     *zap.Logger

	batchSize        int
	embedConcurrency int
}

// IndexingOption configures the indexing service.
type IndexingOption func(*IndexingService)

// WithUpsertBatchSize sets the number of points per upsert request.
func WithUpsertBatchSize(n int) IndexingOption {
	return func(s *IndexingService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithEmbedConcurrency bounds concurrent embedding calls per document.
func WithEmbedConcurrency(n int) IndexingOption {
	return func(s *IndexingService) {
		if n > 0 {
			s.embedConcurrency = n
		}
	}
}

// WithChunker replaces the default conceptual chunker.
func WithChunker(c *chunking.ConceptualChunker) IndexingOption {
	return func(s *IndexingService) {
		if c != nil {
			s.chunker = c
		}
	}
}

// NewIndexingService creates a new indexing service.
// The metadataService parameter is optional (can be nil); the local
// heuristic extractor is used in its place.
func NewIndexingService(
	embedding driven.EmbeddingService,
	vectors driven.VectorIndexGateway,
	metadataService driven.MetadataExtractionService,
	log *zap.Logger,
	opts ...IndexingOption,
) *IndexingService {
	if log == nil {
		log = zap.NewNop()
	}

	s := &IndexingService{
		embedding:        embedding,
		vectors:          vectors,
		metadata:         metadataService,
		parser:           markdown.NewParser(),
		chunker:          chunking.NewConceptualChunker(),
		log:              log,
		batchSize:        DefaultUpsertBatchSize,
		embedConcurrency: DefaultEmbedConcurrency,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Index parses, chunks, embeds and upserts one document into one collection.
// It returns the document metadata actually used.
//
// Any embedding failure aborts the whole document. Any batch upsert failure
// aborts the remaining batches; batches already written stay persisted,
// which is safe because a retry re-upserts the same deterministic IDs.
func (s *IndexingService) Index(ctx context.Context, req driving.IndexRequest) (*domain.ExtractedMetadata, error) {
	if s.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectors == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if req.CollectionName == "" || req.OwnerID == "" || req.FileName == "" {
		return nil, fmt.Errorf("%w: collection, owner and file name are required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Markdown) == "" {
		return nil, domain.ErrEmptyDocument
	}

	log := s.log.With(
		zap.String("collection", req.CollectionName),
		zap.String("owner", req.OwnerID),
		zap.String("file", req.FileName),
	)

	frontmatter, body, err := markdown.SplitFrontmatter(req.Markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	doc := domain.Document{
		OwnerID:     req.OwnerID,
		FileName:    req.FileName,
		Content:     body,
		Frontmatter: frontmatter,
	}

	if err := s.ensureCollection(ctx, req.CollectionName); err != nil {
		return nil, fmt.Errorf("initialize collection %q: %w", req.CollectionName, err)
	}

	meta := s.resolveMetadata(ctx, req, doc, log)

	sections := s.parser.Parse(doc.Content)
	log.Debug("parsed document structure", zap.Int("sections", len(sections)))

	codeChunks := chunking.ExtractCodeChunks(sections)
	var conceptChunks []domain.Chunk
	for _, section := range sections {
		conceptChunks = append(conceptChunks, s.sectionChunks(section)...)
	}

	// Code chunks first: order fixes the deterministic ID ordinal only,
	// never the ranking.
	chunks := append(codeChunks, conceptChunks...)
	log.Info("chunked document",
		zap.Int("code_chunks", len(codeChunks)),
		zap.Int("concept_chunks", len(conceptChunks)))

	if len(chunks) == 0 {
		log.Warn("document produced no chunks, nothing to index")
		return meta, nil
	}

	points, err := s.embedChunks(ctx, doc, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	if err := s.upsertBatches(ctx, req.CollectionName, points, log); err != nil {
		return nil, err
	}

	log.Info("indexed document", zap.Int("points", len(points)))
	return meta, nil
}

// ensureCollection lazily creates the target collection with its four
// filterable payload indexes. The indexes are created once, only when the
// collection did not already exist.
func (s *IndexingService) ensureCollection(ctx context.Context, name string) error {
	exists, err := s.vectors.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := s.vectors.CreateCollection(ctx, name, s.embedding.Dimensions(), driven.DistanceCosine); err != nil {
		return err
	}

	payloadIndexes := []struct {
		field string
		typ   driven.PayloadFieldType
	}{
		{"type", driven.PayloadFieldKeyword},
		{"hasCode", driven.PayloadFieldBool},
		{"codeLanguage", driven.PayloadFieldKeyword},
		{"importance", driven.PayloadFieldKeyword},
	}
	for _, idx := range payloadIndexes {
		if err := s.vectors.CreatePayloadIndex(ctx, name, idx.field, idx.typ); err != nil {
			return fmt.Errorf("create payload index %q: %w", idx.field, err)
		}
	}

	s.log.Info("created collection with payload indexes", zap.String("collection", name))
	return nil
}

// resolveMetadata picks pre-extracted metadata when supplied, asks the
// remote service when configured, and falls back to the local heuristics.
func (s *IndexingService) resolveMetadata(
	ctx context.Context,
	req driving.IndexRequest,
	doc domain.Document,
	log *zap.Logger,
) *domain.ExtractedMetadata {
	if req.Metadata != nil {
		log.Debug("using pre-extracted metadata")
		return req.Metadata
	}

	if s.metadata != nil {
		meta, err := s.metadata.Extract(ctx, req.Markdown, doc.FileName)
		if err == nil {
			log.Debug("using remote metadata extraction")
			return meta
		}
		log.Warn("remote metadata extraction failed, falling back to heuristics", zap.Error(err))
	}

	return metadata.Merge(metadata.Extract(doc.Content, doc.Frontmatter), doc.Frontmatter)
}

// sectionChunks converts one section into an optional title chunk plus its
// conceptual sub-chunks.
func (s *IndexingService) sectionChunks(section domain.Section) []domain.Chunk {
	var chunks []domain.Chunk
	hierarchy := []string{section.Title}

	if section.Level <= maxTitleChunkLevel {
		importance := domain.ImportanceMedium
		if section.Level == 1 {
			importance = domain.ImportanceHigh
		}

		chunks = append(chunks, domain.Chunk{
			Content:   fmt.Sprintf("# %s\n%s...", section.Title, truncate(section.Content, titlePreviewLength)),
			Type:      domain.ChunkTypeTitle,
			Hierarchy: hierarchy,
			Metadata: domain.ChunkMetadata{
				Title:      section.Title,
				Section:    section.Title,
				HasCode:    len(section.CodeBlocks) > 0,
				Importance: importance,
			},
		})
	}

	if strings.TrimSpace(section.Content) != "" {
		chunks = append(chunks, s.chunker.Chunk(section.Content, hierarchy)...)
	}

	return chunks
}

// embedChunks calls the embedding collaborator for every chunk with bounded
// fan-out and assembles the upsert points. The first failure cancels the
// remaining calls and aborts the document.
func (s *IndexingService) embedChunks(
	ctx context.Context,
	doc domain.Document,
	chunks []domain.Chunk,
) ([]driven.Point, error) {
	frontmatterBlob, err := serializeFrontmatter(doc.Frontmatter)
	if err != nil {
		return nil, err
	}

	points := make([]driven.Point, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.embedConcurrency)

	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			vector, err := s.embedding.Embed(gctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			points[i] = driven.Point{
				ID:      pointID(doc.OwnerID, doc.FileName, chunk.Type, i),
				Vector:  vector,
				Payload: pointPayload(doc, chunk, frontmatterBlob),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// upsertBatches partitions points into fixed-size batches and submits them
// strictly sequentially, one in-flight batch at a time, each fully awaited.
// A deliberate bulkhead against the gateway's request-size ceiling.
func (s *IndexingService) upsertBatches(ctx context.Context, collection string, points []driven.Point, log *zap.Logger) error {
	total := (len(points) + s.batchSize - 1) / s.batchSize

	for i := 0; i < len(points); i += s.batchSize {
		end := i + s.batchSize
		if end > len(points) {
			end = len(points)
		}
		batch := points[i:end]
		batchNum := i/s.batchSize + 1

		if err := s.vectors.Upsert(ctx, collection, batch, true); err != nil {
			return fmt.Errorf("upsert batch %d/%d: %w", batchNum, total, err)
		}
		log.Debug("upserted batch",
			zap.Int("batch", batchNum),
			zap.Int("batches", total),
			zap.Int("points", len(batch)))
	}

	return nil
}

// pointID derives the deterministic point ID from the owner, file, chunk
// type and ordinal. Re-indexing identical content collides onto the same
// IDs and overwrites in place instead of duplicating.
func pointID(ownerID, fileName string, chunkType domain.ChunkType, ordinal int) string {
	key := fmt.Sprintf("%s-%s-%s-%d", ownerID, fileName, chunkType, ordinal)
	return uuid.NewSHA1(pointNamespace, []byte(key)).String()
}

// pointPayload flattens a chunk into the gateway payload used for retrieval
// and hybrid filtering.
func pointPayload(doc domain.Document, chunk domain.Chunk, frontmatterBlob any) map[string]any {
	var language, codeLanguage any
	if chunk.Language != "" {
		language = chunk.Language
	}
	if chunk.Metadata.CodeLanguage != "" {
		codeLanguage = chunk.Metadata.CodeLanguage
	}

	var section, subsection any
	if len(chunk.Hierarchy) > 0 {
		section = chunk.Hierarchy[0]
	}
	if len(chunk.Hierarchy) > 1 {
		subsection = chunk.Hierarchy[1]
	}

	keywords := chunk.Metadata.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return map[string]any{
		"entityId":     doc.OwnerID,
		"fileName":     doc.FileName,
		"content":      chunk.Content,
		"type":         chunk.Type.String(),
		"hierarchy":    chunk.Hierarchy,
		"language":     language,
		"section":      section,
		"subsection":   subsection,
		"hasCode":      chunk.Metadata.HasCode,
		"codeLanguage": codeLanguage,
		"keywords":     keywords,
		"importance":   chunk.Metadata.Importance.String(),
		"frontmatter":  frontmatterBlob,
	}
}

// serializeFrontmatter renders frontmatter as an opaque JSON string.
// The gateway stores it as a single blob, never as a nested object.
func serializeFrontmatter(frontmatter map[string]any) (any, error) {
	if len(frontmatter) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(frontmatter)
	if err != nil {
		return nil, fmt.Errorf("serialize frontmatter: %w", err)
	}
	return string(data), nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
