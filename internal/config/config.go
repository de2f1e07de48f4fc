// Package config loads application configuration from a TOML file with
// environment variable overrides. A .env file in the working directory is
// honoured when present.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// ErrMissingCredentials indicates a collaborator endpoint or key is not
// configured. Fatal at startup.
var ErrMissingCredentials = errors.New("missing collaborator credentials")

// Config is the application configuration.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	Qdrant    QdrantConfig    `toml:"qdrant"`
	Agent     AgentConfig     `toml:"metadata_agent"`
	Indexing  IndexingConfig  `toml:"indexing"`
}

// EmbeddingConfig configures the embedding collaborator.
type EmbeddingConfig struct {
	// Provider selects the embedding backend: "openai" (default) or
	// "ollama". Overridden by EMBEDDING_PROVIDER.
	Provider string `toml:"provider"`

	// APIKey is the provider API key. Overridden by OPENAI_API_KEY.
	// Not required for the ollama provider.
	APIKey string `toml:"api_key"`

	// BaseURL is the provider base URL. Overridden by OPENAI_BASE_URL.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name. Overridden by EMBEDDING_MODEL.
	Model string `toml:"model"`
}

// QdrantConfig configures the vector gateway.
type QdrantConfig struct {
	// URL is the Qdrant base URL. Overridden by QDRANT_URL.
	URL string `toml:"url"`

	// APIKey authenticates requests. Overridden by QDRANT_API_KEY.
	APIKey string `toml:"api_key"`
}

// AgentConfig configures the optional remote metadata extraction agent.
type AgentConfig struct {
	// URL is the agent analyze endpoint. Overridden by METADATA_AGENT_URL.
	// Empty disables the remote agent; the local extractor is used instead.
	URL string `toml:"url"`
}

// IndexingConfig tunes the indexing pipeline.
type IndexingConfig struct {
	// BatchSize is the number of points per upsert request.
	BatchSize int `toml:"batch_size"`

	// EmbedConcurrency bounds concurrent embedding calls per document.
	EmbedConcurrency int `toml:"embed_concurrency"`

	// MaxChunkTokens is the conceptual chunk token budget.
	MaxChunkTokens int `toml:"max_chunk_tokens"`
}

// Load reads configuration from the given TOML file (optional) and applies
// environment overrides. A missing file is not an error; missing
// credentials are caught by Validate.
func Load(path string) (*Config, error) {
	// Best-effort: a missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Validate checks that required collaborator settings are present.
func (c *Config) Validate() error {
	if c.Embedding.Provider != "ollama" && c.Embedding.APIKey == "" {
		return fmt.Errorf("%w: embedding API key (set OPENAI_API_KEY)", ErrMissingCredentials)
	}
	if c.Qdrant.URL == "" {
		return fmt.Errorf("%w: vector gateway URL (set QDRANT_URL)", ErrMissingCredentials)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Embedding.Provider, "EMBEDDING_PROVIDER")
	setIfPresent(&cfg.Embedding.APIKey, "OPENAI_API_KEY")
	setIfPresent(&cfg.Embedding.BaseURL, "OPENAI_BASE_URL")
	setIfPresent(&cfg.Embedding.Model, "EMBEDDING_MODEL")
	setIfPresent(&cfg.Qdrant.URL, "QDRANT_URL")
	setIfPresent(&cfg.Qdrant.APIKey, "QDRANT_API_KEY")
	setIfPresent(&cfg.Agent.URL, "METADATA_AGENT_URL")
}

func setIfPresent(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
