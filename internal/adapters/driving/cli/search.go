package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hackgrid/docindex/internal/core/domain"
)

var (
	searchCollections  []string
	searchLimit        int
	searchType         string
	searchHasCode      bool
	searchCodeLanguage string
	searchImportance   string
	searchJSON         bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed collections",
	Long: `Embeds the query and performs similarity search across one or more
collections in parallel, merging ranked results. Optional flags add
exact-match metadata filters (hybrid search).`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchCollections, "collections", nil, "collection names to search (required)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVar(&searchType, "type", "", "filter by chunk type (title|code|procedure|concept|api|warning|example)")
	searchCmd.Flags().BoolVar(&searchHasCode, "has-code", false, "only chunks containing code")
	searchCmd.Flags().StringVar(&searchCodeLanguage, "code-language", "", "filter by code language")
	searchCmd.Flags().StringVar(&searchImportance, "importance", "", "filter by importance (high|medium|low)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	_ = searchCmd.MarkFlagRequired("collections")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	filter, err := buildSearchFilter(cmd)
	if err != nil {
		return err
	}

	results, err := searchService.SearchCollections(cmd.Context(), searchCollections, query, searchLimit, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputSearchTable(cmd, results)
}

// buildSearchFilter assembles the metadata filter from flags.
// Returns nil when no filter flag was supplied.
func buildSearchFilter(cmd *cobra.Command) (*domain.SearchFilter, error) {
	filter := &domain.SearchFilter{}

	if searchType != "" {
		chunkType := domain.ChunkType(searchType)
		if !chunkType.IsValid() {
			return nil, fmt.Errorf("invalid chunk type %q", searchType)
		}
		filter.ChunkType = chunkType
	}
	if cmd.Flags().Changed("has-code") {
		hasCode := searchHasCode
		filter.HasCode = &hasCode
	}
	filter.CodeLanguage = searchCodeLanguage
	if searchImportance != "" {
		importance := domain.Importance(searchImportance)
		if !importance.IsValid() {
			return nil, fmt.Errorf("invalid importance %q", searchImportance)
		}
		filter.Importance = importance
	}

	if filter.IsEmpty() {
		return nil, nil
	}
	return filter, nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		cmd.Printf("  [%d] %s (%.4f)\n", i+1, strings.Join(result.Hierarchy, " > "), result.Score)
		cmd.Printf("      Collection: %s  Type: %s  File: %s\n",
			result.CollectionName, result.Type, result.FileName)

		snippet := result.Content
		if len(snippet) > 160 {
			snippet = snippet[:160] + "..."
		}
		cmd.Printf("      %s\n", strings.ReplaceAll(snippet, "\n", " "))
		cmd.Println()
	}

	return nil
}
