package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hackgrid/docindex/internal/core/ports/driving"
)

var (
	indexOwner      string
	indexCollection string
	indexJSON       bool
)

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Index a markdown document",
	Long: `Parses a markdown document into semantic chunks, embeds each chunk and
upserts them into the target collection. The collection is created on
first use. Re-indexing the same document overwrites its chunks in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexOwner, "owner", "", "owning entity ID (required)")
	indexCmd.Flags().StringVar(&indexCollection, "collection", "", "target collection name (required)")
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output extracted metadata as JSON")
	_ = indexCmd.MarkFlagRequired("owner")
	_ = indexCmd.MarkFlagRequired("collection")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := args[0]

	if indexingService == nil {
		return errors.New("indexing service not configured")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	meta, err := indexingService.Index(cmd.Context(), driving.IndexRequest{
		CollectionName: indexCollection,
		OwnerID:        indexOwner,
		FileName:       filepath.Base(path),
		Markdown:       string(content),
	})
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	if indexJSON {
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Indexed %s into %s\n", filepath.Base(path), indexCollection)
	cmd.Printf("  Tech stack: %s\n", strings.Join(meta.TechStack, ", "))
	cmd.Printf("  Domain:     %s\n", orUnknown(meta.Domain))
	cmd.Printf("  Languages:  %s\n", strings.Join(meta.Languages, ", "))
	cmd.Printf("  Keywords:   %d\n", len(meta.Keywords))
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
