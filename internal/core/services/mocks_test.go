package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/hackgrid/docindex/internal/core/domain"
	"github.com/hackgrid/docindex/internal/core/ports/driven"
)

// mockEmbedding returns a fixed vector for every input.
type mockEmbedding struct {
	mu     sync.Mutex
	dims   int
	vector []float32
	err    error
	calls  []string
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	if m.vector != nil {
		return m.vector, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedding) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

func (m *mockEmbedding) ModelName() string { return "mock-embedder" }

func (m *mockEmbedding) Ping(context.Context) error { return nil }

func (m *mockEmbedding) Close() error { return nil }

func (m *mockEmbedding) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type searchCall struct {
	collection string
	limit      int
	filter     *driven.Filter
}

// mockGateway records every call in arrival order.
type mockGateway struct {
	mu sync.Mutex

	existing  map[string]bool
	existsErr error
	createErr error
	indexErr  error

	upsertErr   error
	failOnBatch int // 1-based upsert call to fail on, 0 means never

	hits      map[string][]driven.ScoredPoint
	searchErr map[string]error

	ops         []string
	batches     [][]driven.Point
	searchCalls []searchCall
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		existing:  make(map[string]bool),
		hits:      make(map[string][]driven.ScoredPoint),
		searchErr: make(map[string]error),
	}
}

func (m *mockGateway) CollectionExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "exists:"+name)
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.existing[name], nil
}

func (m *mockGateway) CreateCollection(_ context.Context, name string, vectorSize int, distance driven.Distance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, fmt.Sprintf("create:%s:%d:%s", name, vectorSize, distance))
	if m.createErr != nil {
		return m.createErr
	}
	m.existing[name] = true
	return nil
}

func (m *mockGateway) CreatePayloadIndex(_ context.Context, name, field string, fieldType driven.PayloadFieldType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, fmt.Sprintf("index:%s:%s:%s", name, field, fieldType))
	return m.indexErr
}

func (m *mockGateway) Upsert(_ context.Context, name string, points []driven.Point, wait bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, fmt.Sprintf("upsert:%s:%d:%t", name, len(points), wait))
	m.batches = append(m.batches, points)
	if m.failOnBatch > 0 && len(m.batches) == m.failOnBatch {
		return m.upsertErr
	}
	return nil
}

func (m *mockGateway) Search(_ context.Context, name string, _ []float32, limit int, filter *driven.Filter, _ bool) ([]driven.ScoredPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = append(m.searchCalls, searchCall{collection: name, limit: limit, filter: filter})
	if err := m.searchErr[name]; err != nil {
		return nil, err
	}
	return m.hits[name], nil
}

func (m *mockGateway) Close() error { return nil }

// allPoints flattens the recorded upsert batches.
func (m *mockGateway) allPoints() []driven.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	var points []driven.Point
	for _, batch := range m.batches {
		points = append(points, batch...)
	}
	return points
}

// mockMetadata is a scripted remote extraction service.
type mockMetadata struct {
	meta   *domain.ExtractedMetadata
	err    error
	called bool
}

func (m *mockMetadata) Extract(context.Context, string, string) (*domain.ExtractedMetadata, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	return m.meta, nil
}

// Compile-time interface checks for the mocks.
var (
	_ driven.EmbeddingService          = (*mockEmbedding)(nil)
	_ driven.VectorIndexGateway        = (*mockGateway)(nil)
	_ driven.MetadataExtractionService = (*mockMetadata)(nil)
)
