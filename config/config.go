package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/phamtrinli/ragstore/types"
)

// Config carries every backend setting explicitly; constructors receive it
// instead of consulting process-wide state.
type Config struct {
	StoreDir            string                `mapstructure:"store_dir"`
	Collection          string                `mapstructure:"collection"`
	AIEndpoint          string                `mapstructure:"ai_endpoint"`
	Model               string                `mapstructure:"model"`
	EmbedModel          string                `mapstructure:"embed_model"`
	OpenAIAPIKey        string                `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys       []string              `mapstructure:"gemini_api_keys"`
	WeaviateStoreConfig WeaviateStoreConfig   `mapstructure:"weaviate_store_config"`
	Extractors          types.ExtractorConfig `mapstructure:"extractors"`
	Chunking            ChunkingConfig        `mapstructure:"chunking"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
}

type ChunkingConfig struct {
	MaxChunkSize int `mapstructure:"max_chunk_size"`
	OverlapSize  int `mapstructure:"overlap_size"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		StoreDir:   "storage",
		Collection: "DocNode",
		AIEndpoint: "http://localhost:11434/v1",
		Model:      "llama3",
		EmbedModel: "BAAI/bge-base-en-v1.5",
		WeaviateStoreConfig: WeaviateStoreConfig{
			Host: "http://localhost:8080",
		},
		Chunking: ChunkingConfig{
			MaxChunkSize: 1024,
			OverlapSize:  128,
		},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("WEAVIATE_APIKEY")

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}
