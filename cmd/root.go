/*
Copyright © 2025 phamtrinli
*/
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phamtrinli/ragstore/config"
	"github.com/phamtrinli/ragstore/database"
	"github.com/phamtrinli/ragstore/service"
	"github.com/phamtrinli/ragstore/storage"
	"github.com/phamtrinli/ragstore/types"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ragstore",
	Short: "Content-addressed document store with vector retrieval",
	Long: `ragstore ingests documents into a content-addressed store, keeps a
metadata index mapping file names to content hashes, and pushes
embedded nodes into Weaviate for semantic retrieval.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logrus.SetLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig reads the file named by --config. A missing file is not fatal;
// defaults plus environment variables still make a working setup.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		logrus.Warnf("config %s not loaded, using defaults: %v", cfgFile, err)
		return config.DefaultConfig()
	}
	return cfg
}

// openStorage loads the configured store directory. With create set, a
// missing directory is initialized instead of reported.
func openStorage(ctx context.Context, cfg *config.Config, create bool) (*storage.Storage, error) {
	store, err := storage.Load(ctx, cfg.StoreDir)
	if err == nil {
		return store, nil
	}
	if create && errors.Is(err, types.ErrStorageNotFound) {
		return storage.Create(cfg.StoreDir)
	}
	return nil, err
}

func newVectorStore(cfg *config.Config) (*database.WeaviateStore, error) {
	return database.NewWeaviateStore(cfg.WeaviateStoreConfig)
}

func newEmbedder(cfg *config.Config) service.EmbeddingService {
	return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.EmbedModel)
}

// newCompleter picks the completion backend: Gemini when keys are
// configured, the OpenAI-compatible endpoint otherwise.
func newCompleter(cfg *config.Config) (service.AIService, error) {
	if len(cfg.GeminiAPIKeys) > 0 {
		return service.NewGeminiService(cfg.GeminiAPIKeys, cfg.Model)
	}
	return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.EmbedModel), nil
}

func newIndexService(cfg *config.Config) (*service.IndexService, error) {
	vectorDB, err := newVectorStore(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewIndexService(vectorDB, newEmbedder(cfg)), nil
}

func newIngestService(cfg *config.Config, store *storage.Storage) (*service.IngestService, error) {
	index, err := newIndexService(cfg)
	if err != nil {
		return nil, err
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}
	pipeline := service.NewExtractorPipeline(completer, cfg.Extractors)
	pdfService := service.NewPDFService(types.DocumentServiceConfig{
		MaxChunkSize: cfg.Chunking.MaxChunkSize,
		OverlapSize:  cfg.Chunking.OverlapSize,
	})
	return service.NewIngestService(store, index, pipeline, pdfService, cfg.Collection), nil
}
