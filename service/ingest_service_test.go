package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamtrinli/ragstore/storage"
	"github.com/phamtrinli/ragstore/types"
)

func newIngestFixture(t *testing.T) (*IngestService, *storage.Storage) {
	t.Helper()
	store, err := storage.Create(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// No vector index and no extractor pipeline: storage behavior only.
	svc := NewIngestService(store, nil, nil, NewPDFService(DefaultDocumentServiceConfig), "DocNode")
	return svc, store
}

func TestIngestDirectory(t *testing.T) {
	svc, store := newIngestFixture(t)
	ctx := context.Background()

	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "a.txt"), []byte("alpha content"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "b.txt"), []byte("beta content"), 0644))

	count, err := svc.IngestDirectory(ctx, dataDir, false, false, []string{"batch-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	docs, err := store.GetNodesByFileName(ctx, "a.txt", true)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"batch-1"}, docs[0].Metadata.Tags)

	// Re-ingesting the same content is a no-op for the store.
	_, err = svc.IngestDirectory(ctx, dataDir, false, false, nil)
	require.NoError(t, err)
	stored, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
}

func TestIngestDirectoryDropsUnextractablePDF(t *testing.T) {
	svc, store := newIngestFixture(t)
	ctx := context.Background()

	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "broken.pdf"), []byte("not a pdf at all"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "fine.txt"), []byte("readable content"), 0644))

	count, err := svc.IngestDirectory(ctx, dataDir, false, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	// The broken PDF left no trace: neither its raw bytes nor its name.
	docs, err := store.GetNodesByFileName(ctx, "broken.pdf", true)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngestDirectoryMissing(t *testing.T) {
	svc, _ := newIngestFixture(t)

	_, err := svc.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "absent"), false, false, nil)
	assert.ErrorIs(t, err, types.ErrDirNotFound)
}

func TestIngestMarkdown(t *testing.T) {
	svc, store := newIngestFixture(t)
	ctx := context.Background()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "figures"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "figures", "overview.png"), []byte{0x89, 'P', 'N', 'G'}, 0644))

	md := "Converted document body.\n" +
		"Figure 1. System overview diagram\n" +
		"![Image](figures%5Coverview.png)\n" +
		"Figure 2. A figure whose image was not exported\n" +
		"![Image](figures/missing.png)\n"
	mdPath := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(mdPath, []byte(md), 0644))

	count, err := svc.IngestMarkdown(ctx, mdPath, false, []string{"converted"})
	require.NoError(t, err)
	// Source document, one materialized figure, one text node. The figure
	// with the missing image file is skipped.
	assert.Equal(t, 3, count)

	img, err := store.Docstore().GetDocument(ctx, "img-overview.png")
	require.NoError(t, err)
	assert.Equal(t, types.KindImage, img.Kind)
	assert.Equal(t, "figure caption: System overview diagram\n", img.Text)
	assert.NotEmpty(t, img.Image)

	_, err = store.Docstore().GetDocument(ctx, "img-missing.png")
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)

	nodeIDs, err := store.Docstore().ListBySource(ctx, img.SourceID)
	require.NoError(t, err)
	// The image document and the text node both point back at the source.
	assert.Len(t, nodeIDs, 2)
}
