package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackgrid/docindex/internal/core/domain"
	"github.com/hackgrid/docindex/internal/core/ports/driven"
	"github.com/hackgrid/docindex/internal/core/ports/driving"
)

const guideDoc = "# Intro\nHello world.\n\n## Setup\n1. Install the package.\n2. Run the binary.\n"

func guideRequest() driving.IndexRequest {
	return driving.IndexRequest{
		CollectionName: "docs",
		OwnerID:        "proj-1",
		FileName:       "guide.md",
		Markdown:       guideDoc,
	}
}

func newTestIndexing(gateway *mockGateway, opts ...IndexingOption) (*IndexingService, *mockEmbedding) {
	embedding := &mockEmbedding{}
	return NewIndexingService(embedding, gateway, nil, zap.NewNop(), opts...), embedding
}

// pointsOfType filters recorded points by their payload type tag.
func pointsOfType(points []driven.Point, chunkType domain.ChunkType) []driven.Point {
	var out []driven.Point
	for _, point := range points {
		if point.Payload["type"] == chunkType.String() {
			out = append(out, point)
		}
	}
	return out
}

func TestIndex_NilCollaborators(t *testing.T) {
	gateway := newMockGateway()

	service := NewIndexingService(nil, gateway, nil, nil)
	_, err := service.Index(context.Background(), guideRequest())
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	service = NewIndexingService(&mockEmbedding{}, nil, nil, nil)
	_, err = service.Index(context.Background(), guideRequest())
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
}

func TestIndex_RequiredFields(t *testing.T) {
	service, _ := newTestIndexing(newMockGateway())

	tests := []struct {
		name   string
		mutate func(*driving.IndexRequest)
	}{
		{name: "missing collection", mutate: func(r *driving.IndexRequest) { r.CollectionName = "" }},
		{name: "missing owner", mutate: func(r *driving.IndexRequest) { r.OwnerID = "" }},
		{name: "missing file name", mutate: func(r *driving.IndexRequest) { r.FileName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := guideRequest()
			tt.mutate(&req)

			_, err := service.Index(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestIndex_EmptyMarkdown(t *testing.T) {
	service, _ := newTestIndexing(newMockGateway())

	req := guideRequest()
	req.Markdown = "   \n\t\n"

	_, err := service.Index(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestIndex_InvalidFrontmatter(t *testing.T) {
	service, _ := newTestIndexing(newMockGateway())

	req := guideRequest()
	req.Markdown = "---\n{invalid\n---\n# Body\ntext\n"

	_, err := service.Index(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_CreatesCollectionWithPayloadIndexes(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway)

	_, err := service.Index(context.Background(), guideRequest())
	require.NoError(t, err)

	// Collection setup happens in a fixed order, before any upsert.
	require.GreaterOrEqual(t, len(gateway.ops), 7)
	assert.Equal(t, []string{
		"exists:docs",
		"create:docs:3:Cosine",
		"index:docs:type:keyword",
		"index:docs:hasCode:bool",
		"index:docs:codeLanguage:keyword",
		"index:docs:importance:keyword",
	}, gateway.ops[:6])
	assert.Contains(t, gateway.ops[6], "upsert:docs:")
}

func TestIndex_ExistingCollectionNotRecreated(t *testing.T) {
	gateway := newMockGateway()
	gateway.existing["docs"] = true
	service, _ := newTestIndexing(gateway)

	_, err := service.Index(context.Background(), guideRequest())
	require.NoError(t, err)

	for _, op := range gateway.ops {
		assert.NotContains(t, op, "create:")
		assert.NotContains(t, op, "index:")
	}
}

func TestIndex_UpsertsWaitForCompletion(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway)

	_, err := service.Index(context.Background(), guideRequest())
	require.NoError(t, err)

	require.NotEmpty(t, gateway.batches)
	for _, op := range gateway.ops {
		if len(op) > 7 && op[:7] == "upsert:" {
			assert.Contains(t, op, ":true")
		}
	}
}

func TestIndex_DeterministicPointIDs(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway)

	_, err := service.Index(context.Background(), guideRequest())
	require.NoError(t, err)
	_, err = service.Index(context.Background(), guideRequest())
	require.NoError(t, err)

	require.Len(t, gateway.batches, 2)
	first, second := gateway.batches[0], gateway.batches[1]
	require.Equal(t, len(first), len(second))

	seen := make(map[string]struct{})
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)

		_, dup := seen[first[i].ID]
		assert.False(t, dup, "duplicate point ID within one document")
		seen[first[i].ID] = struct{}{}
	}
}

func TestIndex_CodeChunkPayload(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway)

	req := guideRequest()
	req.Markdown = "# Usage\nCall the helper.\n```js\nfunction greet(){}\n```\n"

	_, err := service.Index(context.Background(), req)
	require.NoError(t, err)

	codePoints := pointsOfType(gateway.allPoints(), domain.ChunkTypeCodeSnippet)
	require.Len(t, codePoints, 1)
	payload := codePoints[0].Payload

	assert.Equal(t, "proj-1", payload["entityId"])
	assert.Equal(t, "guide.md", payload["fileName"])
	assert.Equal(t, true, payload["hasCode"])
	assert.Equal(t, "js", payload["codeLanguage"])
	assert.Equal(t, "high", payload["importance"])
	assert.Contains(t, payload["content"], "```js\nfunction greet(){}\n```")
	assert.Contains(t, payload["keywords"], "greet")
}

func TestIndex_TitleChunksOnlyForShallowHeadings(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway)

	req := guideRequest()
	req.Markdown = "# Top\nIntro text.\n\n#### Deep\nDetail text.\n"

	_, err := service.Index(context.Background(), req)
	require.NoError(t, err)

	titlePoints := pointsOfType(gateway.allPoints(), domain.ChunkTypeTitle)
	require.Len(t, titlePoints, 1)
	assert.Equal(t, "Top", titlePoints[0].Payload["section"])
	assert.Equal(t, "high", titlePoints[0].Payload["importance"])

	// Deep sections still contribute conceptual chunks.
	var deepFound bool
	for _, point := range gateway.allPoints() {
		if point.Payload["section"] == "Deep" {
			deepFound = true
		}
	}
	assert.True(t, deepFound)
}

func TestIndex_FrontmatterStoredAsBlob(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway)

	req := guideRequest()
	req.Markdown = "---\ntitle: Guide\ndescription: Authored summary\n---\n# Intro\nHello world.\n"

	meta, err := service.Index(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Authored summary", meta.Description)

	points := gateway.allPoints()
	require.NotEmpty(t, points)
	blob, ok := points[0].Payload["frontmatter"].(string)
	require.True(t, ok, "frontmatter must be stored as a serialized string")
	assert.Contains(t, blob, `"title":"Guide"`)
}

func TestIndex_NoFrontmatterLeavesBlobEmpty(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway)

	_, err := service.Index(context.Background(), guideRequest())
	require.NoError(t, err)

	points := gateway.allPoints()
	require.NotEmpty(t, points)
	assert.Nil(t, points[0].Payload["frontmatter"])
}

func TestIndex_BatchesAreSequentialSlices(t *testing.T) {
	gateway := newMockGateway()
	service, _ := newTestIndexing(gateway, WithUpsertBatchSize(4))

	req := guideRequest()
	req.Markdown = "# A\naaa.\n\n# B\nbbb.\n\n# C\nccc.\n\n# D\nddd.\n\n# E\neee.\n"

	_, err := service.Index(context.Background(), req)
	require.NoError(t, err)

	// Five sections, one title plus one concept chunk each.
	require.Len(t, gateway.batches, 3)
	assert.Len(t, gateway.batches[0], 4)
	assert.Len(t, gateway.batches[1], 4)
	assert.Len(t, gateway.batches[2], 2)
}

func TestIndex_EmbedFailureAbortsDocument(t *testing.T) {
	gateway := newMockGateway()
	embedding := &mockEmbedding{err: errors.New("rate limited")}
	service := NewIndexingService(embedding, gateway, nil, zap.NewNop())

	_, err := service.Index(context.Background(), guideRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed chunks")
	assert.Empty(t, gateway.batches)
}

func TestIndex_UpsertFailureStopsRemainingBatches(t *testing.T) {
	gateway := newMockGateway()
	gateway.failOnBatch = 2
	gateway.upsertErr = errors.New("payload too large")
	service, _ := newTestIndexing(gateway, WithUpsertBatchSize(1))

	_, err := service.Index(context.Background(), guideRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert batch 2/4")
	assert.Len(t, gateway.batches, 2)
}

func TestIndex_NoChunksIsNotAnError(t *testing.T) {
	gateway := newMockGateway()
	service, embedding := newTestIndexing(gateway)

	req := guideRequest()
	req.Markdown = "just a preamble line with no headings at all\n"

	meta, err := service.Index(context.Background(), req)

	require.NoError(t, err)
	assert.NotNil(t, meta)
	assert.Empty(t, gateway.batches)
	assert.Zero(t, embedding.callCount())
}

func TestIndex_PreExtractedMetadataWins(t *testing.T) {
	gateway := newMockGateway()
	remote := &mockMetadata{meta: &domain.ExtractedMetadata{Domain: "remote"}}
	service := NewIndexingService(&mockEmbedding{}, gateway, remote, zap.NewNop())

	req := guideRequest()
	req.Metadata = &domain.ExtractedMetadata{Domain: "supplied"}

	meta, err := service.Index(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "supplied", meta.Domain)
	assert.False(t, remote.called)
}

func TestIndex_RemoteMetadataUsed(t *testing.T) {
	gateway := newMockGateway()
	remote := &mockMetadata{meta: &domain.ExtractedMetadata{Domain: "remote", Description: "agent says"}}
	service := NewIndexingService(&mockEmbedding{}, gateway, remote, zap.NewNop())

	meta, err := service.Index(context.Background(), guideRequest())

	require.NoError(t, err)
	assert.True(t, remote.called)
	assert.Equal(t, "remote", meta.Domain)
	assert.Equal(t, "agent says", meta.Description)
}

func TestIndex_RemoteMetadataFailureFallsBackToHeuristics(t *testing.T) {
	gateway := newMockGateway()
	remote := &mockMetadata{err: errors.New("agent down")}
	service := NewIndexingService(&mockEmbedding{}, gateway, remote, zap.NewNop())

	meta, err := service.Index(context.Background(), guideRequest())

	require.NoError(t, err)
	assert.True(t, remote.called)
	require.NotNil(t, meta)
	assert.NotEmpty(t, meta.Keywords)
}
