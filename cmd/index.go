/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// indexCmd groups the vector index lifecycle subcommands
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage vector index collections",
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the collections known to the vector database",
	Run: func(cmd *cobra.Command, args []string) {
		index, err := newIndexService(loadConfig())
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		names, err := index.ListIndexes(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to list collections: %v", err)
		}
		if len(names) == 0 {
			fmt.Println("No collections")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Drop a collection and everything indexed in it",
	Run: func(cmd *cobra.Command, args []string) {
		collection, _ := cmd.Flags().GetString("collection")

		index, err := newIndexService(loadConfig())
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if err := index.DeleteIndex(cmd.Context(), collection); err != nil {
			log.Fatalf("Failed to delete collection %s: %v", collection, err)
		}
		fmt.Printf("Collection %s deleted\n", collection)
	},
}

var indexRemoveNodeCmd = &cobra.Command{
	Use:   "remove-node",
	Short: "Remove a single node from a collection by its document id",
	Run: func(cmd *cobra.Command, args []string) {
		docID, _ := cmd.Flags().GetString("id")
		collection, _ := cmd.Flags().GetString("collection")

		cfg := loadConfig()
		if collection == "" {
			collection = cfg.Collection
		}

		index, err := newIndexService(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if err := index.RemoveNode(cmd.Context(), collection, docID); err != nil {
			log.Fatalf("Failed to remove node %s from %s: %v", docID, collection, err)
		}
		fmt.Printf("Node %s removed from %s\n", docID, collection)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexDeleteCmd)
	indexCmd.AddCommand(indexRemoveNodeCmd)

	indexDeleteCmd.Flags().String("collection", "", "Collection to delete")
	indexDeleteCmd.MarkFlagRequired("collection")

	indexRemoveNodeCmd.Flags().String("id", "", "Document id of the node")
	indexRemoveNodeCmd.Flags().String("collection", "", "Collection holding the node (defaults to the configured one)")
	indexRemoveNodeCmd.MarkFlagRequired("id")
}
