package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCollection string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check collaborator connectivity",
	Long: `Pings the embedding provider and, when --collection is given, reports
whether that collection exists in the vector index.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusCollection, "collection", "", "collection to check for existence")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if embeddingService == nil || vectorGateway == nil {
		return errors.New("services not configured")
	}

	if err := embeddingService.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("embedding provider unreachable: %w", err)
	}
	cmd.Printf("Embedding: ok (%s, %d dimensions)\n",
		embeddingService.ModelName(), embeddingService.Dimensions())

	if statusCollection == "" {
		return nil
	}

	exists, err := vectorGateway.CollectionExists(cmd.Context(), statusCollection)
	if err != nil {
		return fmt.Errorf("vector index unreachable: %w", err)
	}
	if exists {
		cmd.Printf("Collection %q: present\n", statusCollection)
	} else {
		cmd.Printf("Collection %q: not created yet\n", statusCollection)
	}
	return nil
}
