package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamtrinli/ragstore/types"
)

func newTestDocStore(t *testing.T) *SQLiteDocStore {
	t.Helper()
	store, err := NewSQLiteDocStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleDoc(id, text string) *types.Document {
	return &types.Document{
		ID:   id,
		Text: text,
		Kind: types.KindDocument,
		Metadata: types.Metadata{
			FileName: "sample.txt",
			Tags:     []string{"test"},
		},
		CreatedAt: 1700000000,
	}
}

func TestAddAndGetDocument(t *testing.T) {
	store := newTestDocStore(t)
	ctx := context.Background()

	doc := sampleDoc("doc-1", "some text")
	require.NoError(t, store.AddDocument(ctx, doc, false))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Text, got.Text)
	assert.Equal(t, doc.Kind, got.Kind)
	assert.Equal(t, doc.Metadata, got.Metadata)
	assert.Equal(t, doc.CreatedAt, got.CreatedAt)
}

func TestGetDocumentMissing(t *testing.T) {
	store := newTestDocStore(t)

	_, err := store.GetDocument(context.Background(), "absent")
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)
}

func TestAddDocumentConflict(t *testing.T) {
	store := newTestDocStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddDocument(ctx, sampleDoc("doc-1", "original"), false))
	assert.Error(t, store.AddDocument(ctx, sampleDoc("doc-1", "replacement"), false))

	require.NoError(t, store.AddDocument(ctx, sampleDoc("doc-1", "replacement"), true))
	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "replacement", got.Text)
}

func TestDocumentExists(t *testing.T) {
	store := newTestDocStore(t)
	ctx := context.Background()

	exists, err := store.DocumentExists(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.AddDocument(ctx, sampleDoc("doc-1", "text"), false))

	exists, err = store.DocumentExists(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetDocumentsKeepsOrderAndSkipsMissing(t *testing.T) {
	store := newTestDocStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddDocument(ctx, sampleDoc("doc-1", "one"), false))
	require.NoError(t, store.AddDocument(ctx, sampleDoc("doc-2", "two"), false))

	docs, err := store.GetDocuments(ctx, []string{"doc-2", "absent", "doc-1"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "two", docs[0].Text)
	assert.Equal(t, "one", docs[1].Text)
}

func TestListDocumentsByKind(t *testing.T) {
	store := newTestDocStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddDocument(ctx, sampleDoc("doc-1", "one"), false))
	node := sampleDoc("node-1", "chunk")
	node.Kind = types.KindNode
	node.SourceID = "doc-1"
	require.NoError(t, store.AddDocument(ctx, node, false))

	all, err := store.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "doc-1", all[0].ID)
	assert.Equal(t, "node-1", all[1].ID)

	nodes, err := store.ListDocuments(ctx, types.KindNode)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "node-1", nodes[0].ID)
}

func TestListBySource(t *testing.T) {
	store := newTestDocStore(t)
	ctx := context.Background()

	for _, id := range []string{"node-1", "node-2"} {
		node := sampleDoc(id, "chunk "+id)
		node.Kind = types.KindNode
		node.SourceID = "doc-1"
		require.NoError(t, store.AddDocument(ctx, node, false))
	}

	ids, err := store.ListBySource(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"node-1", "node-2"}, ids)

	empty, err := store.ListBySource(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteDocument(t *testing.T) {
	store := newTestDocStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddDocument(ctx, sampleDoc("doc-1", "text"), false))
	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	assert.ErrorIs(t, store.DeleteDocument(ctx, "doc-1"), types.ErrDocumentNotFound)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
