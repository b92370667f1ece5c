/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/phamtrinli/ragstore/service"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "List the figure records found in a converter markdown file",
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")

		content, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", filePath, err)
		}

		figures := service.ExtractFigures(string(content))
		if len(figures) == 0 {
			fmt.Println("No figures found")
			return
		}
		for _, figure := range figures {
			fmt.Printf("%s\n  caption: %s\n  image:   %s\n", figure.FigureNumber, figure.CaptionText, figure.ImagePath)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("file", "f", "", "Path to the markdown file")
	extractCmd.MarkFlagRequired("file")
}
