package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgrid/docindex/internal/core/domain"
)

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
}

func TestExtract(t *testing.T) {
	var received analysisRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{
			"tech_stack": ["Hardhat", "Solidity"],
			"domain": "Smart Contracts",
			"keywords": ["deploy"],
			"languages": ["solidity"],
			"description": "A deployment guide"
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	meta, err := client.Extract(context.Background(), "# Guide\ncontent", "guide.md")

	require.NoError(t, err)
	assert.Equal(t, "# Guide\ncontent", received.MarkdownContent)
	assert.Equal(t, "guide.md", received.FileName)

	assert.Equal(t, []string{"Hardhat", "Solidity"}, meta.TechStack)
	assert.Equal(t, "Smart Contracts", meta.Domain)
	assert.Equal(t, []string{"deploy"}, meta.Keywords)
	assert.Equal(t, []string{"solidity"}, meta.Languages)
	assert.Equal(t, "A deployment guide", meta.Description)
}

func TestExtract_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), "content", "f.md")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestExtract_InvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), "content", "f.md")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
