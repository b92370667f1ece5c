package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/phamtrinli/ragstore/config"
	"github.com/phamtrinli/ragstore/types"
)

const BATCH_SIZE = 200

// nodeProperties is the schema every node collection is created with.
// Vectorizer is "none": embeddings are computed locally and pushed with
// each object.
func nodeClassObject(name string) *models.Class {
	return &models.Class{
		Class: name,
		Properties: []*models.Property{
			{Name: "docId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "fileName", DataType: []string{"text"}},
			{Name: "kind", DataType: []string{"text"}},
			{Name: "sourceId", DataType: []string{"text"}},
			{Name: "tags", DataType: []string{"text[]"}},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
}

// WeaviateStore is the VectorDatabase implementation backed by Weaviate.
type WeaviateStore struct {
	client *weaviate.Client
}

var _ VectorDatabase = (*WeaviateStore)(nil)

// NewWeaviateStore connects to Weaviate using the store config.
func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	scheme := "http"
	if strings.HasPrefix(cfg.Host, "https") {
		scheme = "https"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")

	wcfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	client, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}
	return &WeaviateStore{client: client}, nil
}

// objectID derives a stable Weaviate object id from the content hash, so
// re-inserting the same node replaces the same object.
func objectID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(docID)).String()
}

func nodeProperties(doc *types.Document) map[string]interface{} {
	tags := doc.Metadata.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]interface{}{
		"docId":     doc.ID,
		"content":   doc.Text,
		"fileName":  doc.Metadata.FileName,
		"kind":      string(doc.Kind),
		"sourceId":  doc.SourceID,
		"tags":      tags,
		"createdAt": doc.CreatedAt,
	}
}

func (s *WeaviateStore) BatchUpsertNodes(ctx context.Context, collection string, docs []types.Document, embeddings [][]float32) error {
	total := len(docs)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			obj := &models.Object{
				ID:         strfmt.UUID(objectID(docs[j].ID)),
				Class:      collection,
				Properties: nodeProperties(&docs[j]),
			}
			if embeddings != nil && j < len(embeddings) {
				obj.Vector = embeddings[j]
			}
			batcher = batcher.WithObjects(obj)
		}

		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %w", i, end, err)
		}
		logrus.Debugf("inserted batch %d-%d of %d nodes into %s", i, end, total, collection)
	}
	return nil
}

func (s *WeaviateStore) DeleteNode(ctx context.Context, collection string, docID string) error {
	return s.client.Data().Deleter().
		WithClassName(collection).
		WithID(objectID(docID)).
		Do(ctx)
}

func (s *WeaviateStore) SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]types.Document, []float32, error) {
	fields := []graphql.Field{
		{Name: "docId"},
		{Name: "content"},
		{Name: "fileName"},
		{Name: "kind"},
		{Name: "sourceId"},
		{Name: "tags"},
		{Name: "createdAt"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)
	getBuilder := s.client.GraphQL().Get().
		WithClassName(collection).
		WithFields(fields...).
		WithNearVector(nearVector)
	if limit > 0 {
		getBuilder = getBuilder.WithLimit(limit)
	}

	result, err := getBuilder.Do(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("search failed: %w", err)
	}
	if result.Errors != nil {
		return nil, nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	docs, distances := parseSearchResult(result, collection)
	return docs, distances, nil
}

// parseSearchResult converts a GraphQL response into documents and their
// distances. Exactly one distance is emitted per document (zero when the
// response carries none), so the slices stay index-aligned.
func parseSearchResult(result *models.GraphQLResponse, collection string) ([]types.Document, []float32) {
	var docs []types.Document
	var distances []float32
	get, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return docs, distances
	}
	data, ok := get[collection].([]interface{})
	if !ok {
		return docs, distances
	}
	for _, item := range data {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		doc := types.Document{
			ID:       stringProp(obj, "docId"),
			Text:     stringProp(obj, "content"),
			Kind:     types.NodeKind(stringProp(obj, "kind")),
			SourceID: stringProp(obj, "sourceId"),
			Metadata: types.Metadata{
				FileName: stringProp(obj, "fileName"),
				Tags:     parseStringArray(obj["tags"]),
			},
		}
		if created, ok := obj["createdAt"].(float64); ok {
			doc.CreatedAt = int64(created)
		}
		var distance float32
		if additional, ok := obj["_additional"].(map[string]interface{}); ok {
			if d, ok := additional["distance"].(float64); ok {
				distance = float32(d)
			}
		}
		docs = append(docs, doc)
		distances = append(distances, distance)
	}
	return docs, distances
}

func (s *WeaviateStore) CreateCollection(ctx context.Context, name string) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}
	for _, class := range schema.Classes {
		if class.Class == name {
			return nil
		}
	}
	if err := s.client.Schema().ClassCreator().WithClass(nodeClassObject(name)).Do(ctx); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

func (s *WeaviateStore) DeleteCollection(ctx context.Context, name string) error {
	return s.client.Schema().ClassDeleter().WithClassName(name).Do(ctx)
}

func (s *WeaviateStore) ListCollections(ctx context.Context) ([]string, error) {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %w", err)
	}
	names := make([]string, 0, len(schema.Classes))
	for _, class := range schema.Classes {
		names = append(names, class.Class)
	}
	return names, nil
}

// ReInit drops and recreates a collection.
func (s *WeaviateStore) ReInit(ctx context.Context, name string) error {
	if err := s.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", name, err)
	}
	return s.CreateCollection(ctx, name)
}

func stringProp(obj map[string]interface{}, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func parseStringArray(v interface{}) []string {
	if v == nil {
		return nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
