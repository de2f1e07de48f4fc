// Package qdrant provides a VectorIndexGateway adapter over the Qdrant
// REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hackgrid/docindex/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.VectorIndexGateway = (*Gateway)(nil)

// DefaultTimeout is the per-request timeout. Upserts with wait=true can
// take a while on large batches.
const DefaultTimeout = 60 * time.Second

// Config holds configuration for the Qdrant gateway.
type Config struct {
	// URL is the Qdrant base URL (required), e.g. "http://localhost:6333".
	URL string

	// APIKey authenticates requests. Optional for unsecured deployments.
	APIKey string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration
}

// Gateway is a REST client to Qdrant implementing the vector index port.
type Gateway struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGateway creates a new Qdrant gateway.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant: URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Gateway{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
	}, nil
}

// CollectionExists reports whether the named collection exists.
func (g *Gateway) CollectionExists(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Result struct {
			Exists bool `json:"exists"`
		} `json:"result"`
	}
	err := g.do(ctx, http.MethodGet, "/collections/"+name+"/exists", nil, &resp)
	if err != nil {
		return false, err
	}
	return resp.Result.Exists, nil
}

// CreateCollection creates a collection with the given vector size and
// distance metric.
func (g *Gateway) CreateCollection(ctx context.Context, name string, vectorSize int, distance driven.Distance) error {
	if vectorSize <= 0 {
		return fmt.Errorf("qdrant: invalid vector size %d", vectorSize)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": string(distance),
		},
	}
	return g.do(ctx, http.MethodPut, "/collections/"+name, body, nil)
}

// CreatePayloadIndex creates a filterable index over a payload field.
func (g *Gateway) CreatePayloadIndex(ctx context.Context, name, field string, fieldType driven.PayloadFieldType) error {
	body := map[string]any{
		"field_name":   field,
		"field_schema": string(fieldType),
	}
	return g.do(ctx, http.MethodPut, "/collections/"+name+"/index", body, nil)
}

// Upsert inserts or overwrites points by ID. With wait=true the call
// returns only once the write is applied. Qdrant rejects requests whose
// payload exceeds its per-request ceiling; callers batch accordingly.
func (g *Gateway) Upsert(ctx context.Context, name string, points []driven.Point, wait bool) error {
	if len(points) == 0 {
		return nil
	}

	upserts := make([]map[string]any, len(points))
	for i, p := range points {
		upserts[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}

	path := fmt.Sprintf("/collections/%s/points?wait=%t", name, wait)
	return g.do(ctx, http.MethodPut, path, map[string]any{"points": upserts}, nil)
}

// Search returns the points nearest to the query vector, best first.
func (g *Gateway) Search(
	ctx context.Context, name string, vector []float32, limit int, filter *driven.Filter, withPayload bool,
) ([]driven.ScoredPoint, error) {
	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": withPayload,
	}
	if filter != nil && len(filter.Must) > 0 {
		must := make([]map[string]any, len(filter.Must))
		for i, match := range filter.Must {
			must[i] = map[string]any{
				"key":   match.Key,
				"match": map[string]any{"value": match.Value},
			}
		}
		req["filter"] = map[string]any{"must": must}
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := g.do(ctx, http.MethodPost, "/collections/"+name+"/points/search", req, &resp); err != nil {
		return nil, err
	}

	hits := make([]driven.ScoredPoint, len(resp.Result))
	for i, r := range resp.Result {
		hits[i] = driven.ScoredPoint{
			ID:      fmt.Sprint(r.ID),
			Score:   r.Score,
			Payload: r.Payload,
		}
	}
	return hits, nil
}

// Close releases resources.
func (g *Gateway) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// do executes one JSON request against the Qdrant API.
func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("qdrant: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("qdrant: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.apiKey != "" {
		req.Header.Set("api-key", g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant: %s %s returned status %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("qdrant: decode response: %w", err)
		}
	}
	return nil
}
