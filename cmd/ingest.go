/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a directory of documents into the store and the vector index",
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		recursive, _ := cmd.Flags().GetBool("recursive")
		update, _ := cmd.Flags().GetBool("update")
		tags, _ := cmd.Flags().GetStringArray("tags")

		cfg := loadConfig()
		ctx := cmd.Context()

		store, err := openStorage(ctx, cfg, true)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer store.Close()

		ingest, err := newIngestService(cfg, store)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}

		count, err := ingest.IngestDirectory(ctx, dataDir, recursive, update, tags)
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", dataDir, err)
		}
		fmt.Printf("Ingested %d documents from %s\n", count, dataDir)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("data-dir", "f", "data", "Directory of documents to ingest")
	ingestCmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories")
	ingestCmd.Flags().BoolP("update", "u", false, "Replace documents whose content hash already exists")
	ingestCmd.Flags().StringArrayP("tags", "g", []string{}, "Tags for the documents")
}
