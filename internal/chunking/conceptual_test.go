package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgrid/docindex/internal/core/domain"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single word", text: "hello", want: 2},
		{name: "five words", text: "one two three four five", want: 7},
		{name: "whitespace collapsed", text: "  a   b  ", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTokens(tt.text))
		})
	}
}

func TestConceptualChunker_SingleChunkUnderBudget(t *testing.T) {
	chunker := NewConceptualChunker()

	chunks := chunker.Chunk("Short text about nothing in particular", []string{"Intro"})

	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"Intro"}, chunks[0].Hierarchy)
	assert.Equal(t, "Intro", chunks[0].Metadata.Section)
	assert.False(t, chunks[0].Metadata.HasCode)
	assert.Equal(t, domain.ImportanceMedium, chunks[0].Metadata.Importance)
}

func TestConceptualChunker_SplitsWithOverlap(t *testing.T) {
	chunker := NewConceptualChunker(WithMaxTokens(10))

	text := "One two three four five. Six seven eight nine ten. Eleven twelve thirteen fourteen fifteen."
	chunks := chunker.Chunk(text, []string{"Guide", "Details"})

	require.Len(t, chunks, 3)
	assert.Equal(t, "One two three four five.", chunks[0].Content)

	// The flushed chunk's last sentence seeds the next one.
	assert.Equal(t, "One two three four five. Six seven eight nine ten.", chunks[1].Content)
	assert.True(t, strings.HasPrefix(chunks[2].Content, "Six seven eight nine ten."))

	for _, chunk := range chunks {
		assert.Equal(t, []string{"Guide", "Details"}, chunk.Hierarchy)
		assert.Equal(t, "Details", chunk.Metadata.Section)
	}
}

func TestConceptualChunker_EmptyInput(t *testing.T) {
	chunker := NewConceptualChunker()

	assert.Nil(t, chunker.Chunk("", []string{"S"}))
	assert.Nil(t, chunker.Chunk("   \n\t  ", []string{"S"}))
}

func TestConceptualChunker_ClassifiesContent(t *testing.T) {
	chunker := NewConceptualChunker()

	chunks := chunker.Chunk("1. Install the package and run it", []string{"Setup"})

	require.Len(t, chunks, 1)
	assert.Equal(t, domain.ChunkTypeProcedure, chunks[0].Type)
}

func TestWithMaxTokens_IgnoresNonPositive(t *testing.T) {
	chunker := NewConceptualChunker(WithMaxTokens(0))

	assert.Equal(t, DefaultMaxChunkTokens, chunker.maxTokens)

	chunker = NewConceptualChunker(WithMaxTokens(-5))
	assert.Equal(t, DefaultMaxChunkTokens, chunker.maxTokens)
}
