package chunking

import (
	"math"
	"regexp"
	"strings"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// DefaultMaxChunkTokens is the default token budget per conceptual chunk
// (roughly 300 words).
const DefaultMaxChunkTokens = 400

// Sentence boundaries. Naive split, not locale-aware: abbreviations and
// decimal points also terminate a segment.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// EstimateTokens approximates a token count as word-count x 1.33, rounded
// up. A rough proxy for the embedding model's tokenizer, not a real one.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Ceil(float64(words) * 1.33))
}

// ConceptualChunker splits section prose into token-budgeted chunks with a
// one-sentence continuity overlap between consecutive chunks.
type ConceptualChunker struct {
	maxTokens int
}

// Option configures the conceptual chunker.
type Option func(*ConceptualChunker)

// WithMaxTokens sets the per-chunk token budget.
func WithMaxTokens(n int) Option {
	return func(c *ConceptualChunker) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// NewConceptualChunker creates a chunker with the given options.
func NewConceptualChunker(opts ...Option) *ConceptualChunker {
	c := &ConceptualChunker{maxTokens: DefaultMaxChunkTokens}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into conceptual chunks under the given hierarchy path.
//
// Segments accumulate greedily; when adding the next segment would exceed
// the budget and the accumulation is non-empty, the accumulation flushes as
// one chunk and the next accumulation is seeded with exactly the last
// segment of the flushed chunk plus the new segment. A chunk may therefore
// exceed the budget by at most one sentence at a flush boundary.
func (c *ConceptualChunker) Chunk(text string, hierarchy []string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	segments := sentenceBoundary.Split(text, -1)

	var chunks []domain.Chunk
	var current []string
	currentTokens := 0

	for _, segment := range segments {
		segmentTokens := EstimateTokens(segment)

		if currentTokens+segmentTokens > c.maxTokens && len(current) > 0 {
			chunks = append(chunks, c.build(current, hierarchy))

			// One-sentence overlap into the next accumulation.
			current = []string{current[len(current)-1], segment}
			currentTokens = EstimateTokens(strings.Join(current, ". "))
		} else {
			current = append(current, segment)
			currentTokens += segmentTokens
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, c.build(current, hierarchy))
	}

	return chunks
}

// build flushes an accumulation into a classified chunk.
func (c *ConceptualChunker) build(segments, hierarchy []string) domain.Chunk {
	content := strings.Join(segments, ". ") + "."

	return domain.Chunk{
		Content:   content,
		Type:      Classify(content),
		Hierarchy: hierarchy,
		Metadata: domain.ChunkMetadata{
			Section:    hierarchy[len(hierarchy)-1],
			HasCode:    false,
			Importance: domain.ImportanceMedium,
		},
	}
}
