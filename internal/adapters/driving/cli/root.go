// Package cli provides the cobra command tree driving the indexing and
// search services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackgrid/docindex/internal/adapters/driven/embedding/ollama"
	"github.com/hackgrid/docindex/internal/adapters/driven/embedding/openai"
	"github.com/hackgrid/docindex/internal/adapters/driven/metadata/agent"
	"github.com/hackgrid/docindex/internal/adapters/driven/vector/qdrant"
	"github.com/hackgrid/docindex/internal/chunking"
	"github.com/hackgrid/docindex/internal/config"
	"github.com/hackgrid/docindex/internal/core/ports/driven"
	"github.com/hackgrid/docindex/internal/core/ports/driving"
	"github.com/hackgrid/docindex/internal/core/services"
)

var (
	configPath string
	verbose    bool

	log             *zap.Logger
	indexingService driving.IndexingService
	searchService   driving.SearchService

	embeddingService driven.EmbeddingService
	vectorGateway    driven.VectorIndexGateway
)

var rootCmd = &cobra.Command{
	Use:   "docindex",
	Short: "Semantic markdown indexing and retrieval",
	Long: `docindex ingests markdown documents, splits them into semantic chunks
that respect document structure, embeds each chunk and serves ranked
similarity queries with metadata filtering across one or more collections.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "docindex.toml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if log != nil {
			_ = log.Sync()
		}
	}()
	return rootCmd.Execute()
}

// setup loads configuration and wires the collaborator adapters into the
// core services. Missing credentials fail here, before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var embedding driven.EmbeddingService
	switch cfg.Embedding.Provider {
	case "", "openai":
		embedding, err = openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
		if err != nil {
			return err
		}
	case "ollama":
		embedding = ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	default:
		return fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}

	vectors, err := qdrant.NewGateway(qdrant.Config{
		URL:    cfg.Qdrant.URL,
		APIKey: cfg.Qdrant.APIKey,
	})
	if err != nil {
		return err
	}

	// The remote metadata agent is optional; nil falls back to the local
	// heuristic extractor.
	var metadataService driven.MetadataExtractionService
	if cfg.Agent.URL != "" {
		metadataService, err = agent.NewClient(agent.Config{URL: cfg.Agent.URL})
		if err != nil {
			return err
		}
	}

	var indexOpts []services.IndexingOption
	if cfg.Indexing.BatchSize > 0 {
		indexOpts = append(indexOpts, services.WithUpsertBatchSize(cfg.Indexing.BatchSize))
	}
	if cfg.Indexing.EmbedConcurrency > 0 {
		indexOpts = append(indexOpts, services.WithEmbedConcurrency(cfg.Indexing.EmbedConcurrency))
	}
	if cfg.Indexing.MaxChunkTokens > 0 {
		chunker := chunking.NewConceptualChunker(chunking.WithMaxTokens(cfg.Indexing.MaxChunkTokens))
		indexOpts = append(indexOpts, services.WithChunker(chunker))
	}

	indexingService = services.NewIndexingService(embedding, vectors, metadataService, log, indexOpts...)
	searchService = services.NewSearchService(embedding, vectors, log)
	embeddingService = embedding
	vectorGateway = vectors

	return nil
}
