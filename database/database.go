package database

import (
	"context"

	"github.com/phamtrinli/ragstore/types"
)

// DocumentStore persists documents and derived nodes keyed by content
// identity. Rows are never mutated in place; an update replaces the row
// under the same id.
type DocumentStore interface {
	// AddDocument inserts a document. With allowUpdate the row is replaced
	// when the id already exists, otherwise the insert fails.
	AddDocument(ctx context.Context, doc *types.Document, allowUpdate bool) error
	DocumentExists(ctx context.Context, id string) (bool, error)
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	// GetDocuments resolves ids in the given order, skipping ids that are
	// no longer present.
	GetDocuments(ctx context.Context, ids []string) ([]types.Document, error)
	// ListDocuments returns all rows in insertion order, optionally
	// filtered by kind ("" for all).
	ListDocuments(ctx context.Context, kind types.NodeKind) ([]types.Document, error)
	// ListBySource returns the node ids derived from a source document.
	ListBySource(ctx context.Context, sourceID string) ([]string, error)
	DeleteDocument(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// VectorDatabase defines the vector-indexing backend. Embeddings are
// computed by the caller and handed in explicitly. All writes go through
// the batcher; single-node inserts are a batch of one.
type VectorDatabase interface {
	BatchUpsertNodes(ctx context.Context, collection string, docs []types.Document, embeddings [][]float32) error
	DeleteNode(ctx context.Context, collection string, docID string) error

	SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]types.Document, []float32, error)

	CreateCollection(ctx context.Context, name string) error
	DeleteCollection(ctx context.Context, name string) error
	ListCollections(ctx context.Context) ([]string, error)
}
