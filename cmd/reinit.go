/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// reinitCmd represents the reinit command
var reinitCmd = &cobra.Command{
	Use:   "reinit",
	Short: "Drop and recreate the configured vector collection",
	Run: func(cmd *cobra.Command, args []string) {
		collection, _ := cmd.Flags().GetString("collection")

		cfg := loadConfig()
		if collection == "" {
			collection = cfg.Collection
		}

		vectorDB, err := newVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if err := vectorDB.ReInit(cmd.Context(), collection); err != nil {
			log.Fatalf("Failed to reinitialize collection %s: %v", collection, err)
		}
		fmt.Printf("Collection %s reinitialized\n", collection)
	},
}

func init() {
	rootCmd.AddCommand(reinitCmd)

	reinitCmd.Flags().String("collection", "", "Collection to recreate (defaults to the configured one)")
}
