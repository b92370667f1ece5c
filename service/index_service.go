package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/phamtrinli/ragstore/database"
	"github.com/phamtrinli/ragstore/types"
)

// IndexService is the facade over the vector database: building indexes
// from nodes, semantic queries and index lifecycle.
type IndexService struct {
	vectorDB database.VectorDatabase
	embedder EmbeddingService
}

func NewIndexService(vectorDB database.VectorDatabase, embedder EmbeddingService) *IndexService {
	return &IndexService{vectorDB: vectorDB, embedder: embedder}
}

// BuildIndex embeds the nodes and upserts them into the named collection,
// creating it first. An empty name gets a generated index id.
func (s *IndexService) BuildIndex(ctx context.Context, name string, nodes []types.Document) (string, error) {
	if s.embedder == nil {
		return "", types.ErrEmbeddingUnavailable
	}
	if name == "" {
		name = "Index_" + uuid.NewString()[:8]
	}

	if err := s.vectorDB.CreateCollection(ctx, name); err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return name, nil
	}

	texts := make([]string, len(nodes))
	for i, node := range nodes {
		texts[i] = node.Text
	}
	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return "", fmt.Errorf("failed to embed %d nodes: %w", len(nodes), err)
	}

	if err := s.vectorDB.BatchUpsertNodes(ctx, name, nodes, embeddings); err != nil {
		return "", err
	}
	logrus.Infof("indexed %d nodes into %s", len(nodes), name)
	return name, nil
}

// Query embeds the question and returns the closest nodes with their
// distances.
func (s *IndexService) Query(ctx context.Context, collection, question string, limit int) ([]types.Document, []float32, error) {
	if s.embedder == nil {
		return nil, nil, types.ErrEmbeddingUnavailable
	}
	embeddings, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return s.vectorDB.SearchSimilar(ctx, collection, embeddings[0], limit)
}

// ListIndexes returns the collections known to the vector database.
func (s *IndexService) ListIndexes(ctx context.Context) ([]string, error) {
	return s.vectorDB.ListCollections(ctx)
}

// DeleteIndex drops a collection.
func (s *IndexService) DeleteIndex(ctx context.Context, name string) error {
	return s.vectorDB.DeleteCollection(ctx, name)
}

// RemoveNode deletes a node from a collection by its content hash.
func (s *IndexService) RemoveNode(ctx context.Context, collection, docID string) error {
	return s.vectorDB.DeleteNode(ctx, collection, docID)
}
