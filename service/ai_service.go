package service

import "context"

// AIService is the completion interface the metadata extractors run on.
type AIService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// EmbeddingService computes vector embeddings for node texts before they
// are pushed to the vector database.
type EmbeddingService interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
