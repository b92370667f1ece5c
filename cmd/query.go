/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a semantic query against the vector index",
	Run: func(cmd *cobra.Command, args []string) {
		question, _ := cmd.Flags().GetString("question")
		limit, _ := cmd.Flags().GetInt("limit")
		collection, _ := cmd.Flags().GetString("collection")

		cfg := loadConfig()
		if collection == "" {
			collection = cfg.Collection
		}
		ctx := cmd.Context()

		index, err := newIndexService(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		docs, distances, err := index.Query(ctx, collection, question, limit)
		if err != nil {
			log.Fatalf("Failed to query %s: %v", collection, err)
		}
		for i, doc := range docs {
			fmt.Printf("--- %s (distance %.4f, file %s)\n%s\n\n",
				doc.ID, distances[i], doc.Metadata.FileName, doc.Text)
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringP("question", "q", "", "Question to search for")
	queryCmd.Flags().IntP("limit", "l", 5, "Maximum number of results")
	queryCmd.Flags().String("collection", "", "Collection to query (defaults to the configured one)")
	queryCmd.MarkFlagRequired("question")
}
