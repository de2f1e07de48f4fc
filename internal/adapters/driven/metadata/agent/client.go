// Package agent provides a MetadataExtractionService adapter over the
// remote metadata extraction agent's HTTP endpoint.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hackgrid/docindex/internal/core/domain"
	"github.com/hackgrid/docindex/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.MetadataExtractionService = (*Client)(nil)

// DefaultTimeout bounds one analysis request. The agent runs a model, so
// this is longer than a typical API timeout.
const DefaultTimeout = 120 * time.Second

// Config holds configuration for the metadata agent client.
type Config struct {
	// URL is the agent's analyze endpoint (required).
	URL string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Client calls the remote metadata extraction agent.
type Client struct {
	client *http.Client
	url    string
}

// analysisRequest is the agent request format.
type analysisRequest struct {
	MarkdownContent string `json:"markdown_content"`
	FileName        string `json:"file_name"`
}

// analysisResponse is the agent response format.
type analysisResponse struct {
	TechStack   []string `json:"tech_stack"`
	Domain      string   `json:"domain"`
	Keywords    []string `json:"keywords"`
	Languages   []string `json:"languages"`
	Description string   `json:"description"`
}

// NewClient creates a new metadata agent client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: metadata agent URL is required", domain.ErrMetadataUnavailable)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{Timeout: cfg.Timeout},
		url:    cfg.URL,
	}, nil
}

// Extract analyses raw markdown text and returns document metadata.
func (c *Client) Extract(ctx context.Context, rawText, fileName string) (*domain.ExtractedMetadata, error) {
	jsonBody, err := json.Marshal(analysisRequest{
		MarkdownContent: rawText,
		FileName:        fileName,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("metadata agent returned status %d: %s", resp.StatusCode, string(body))
	}

	var analysis analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &domain.ExtractedMetadata{
		TechStack:   analysis.TechStack,
		Keywords:    analysis.Keywords,
		Domain:      analysis.Domain,
		Languages:   analysis.Languages,
		Description: analysis.Description,
	}, nil
}
