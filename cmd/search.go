/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Look up stored documents by file name",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		exact, _ := cmd.Flags().GetBool("exact")

		cfg := loadConfig()
		ctx := cmd.Context()

		store, err := openStorage(ctx, cfg, false)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer store.Close()

		docs, err := store.GetNodesByFileName(ctx, name, exact)
		if err != nil {
			log.Fatalf("Failed to search for %s: %v", name, err)
		}
		if len(docs) == 0 {
			fmt.Println("No documents found")
			return
		}
		for _, doc := range docs {
			fmt.Printf("%s  %s  %s\n", doc.ID, doc.Kind, doc.Metadata.FileName)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("name", "n", "", "File name to look up")
	searchCmd.Flags().BoolP("exact", "e", false, "Require an exact file name match")
	searchCmd.MarkFlagRequired("name")
}
