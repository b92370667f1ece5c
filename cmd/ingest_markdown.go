/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// ingestMarkdownCmd represents the ingest-markdown command
var ingestMarkdownCmd = &cobra.Command{
	Use:   "ingest-markdown",
	Short: "Ingest converter markdown, materializing its figures as image documents",
	Long: `Ingests the markdown produced by an external PDF converter. Figure
captions and their image references become standalone image documents;
the remaining text is chunked into nodes and indexed.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
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

		count, err := ingest.IngestMarkdown(ctx, filePath, update, tags)
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", filePath, err)
		}
		fmt.Printf("Ingested %d documents from %s\n", count, filePath)
	},
}

func init() {
	rootCmd.AddCommand(ingestMarkdownCmd)

	ingestMarkdownCmd.Flags().StringP("file", "f", "", "Path to the markdown file")
	ingestMarkdownCmd.Flags().BoolP("update", "u", false, "Replace documents whose content hash already exists")
	ingestMarkdownCmd.Flags().StringArrayP("tags", "g", []string{}, "Tags for the documents")
	ingestMarkdownCmd.MarkFlagRequired("file")
}
