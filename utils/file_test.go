package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNameWithoutExt(t *testing.T) {
	cases := map[string]string{
		"/data/report.pdf":    "report",
		"notes.txt":           "notes",
		"archive.tar.gz":      "archive.tar",
		"/data/noextension":   "noextension",
		"/deep/nested/a.json": "a",
	}
	for path, want := range cases {
		assert.Equal(t, want, FileNameWithoutExt(path), "path %s", path)
	}
}

func TestProbeFileMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	content := []byte("plain text content for probing")
	require.NoError(t, os.WriteFile(path, content, 0644))

	meta, err := ProbeFileMetadata(path)
	require.NoError(t, err)

	assert.Equal(t, path, meta.FilePath)
	assert.Equal(t, "report.txt", meta.FileName)
	assert.Equal(t, int64(len(content)), meta.FileSize)
	assert.Contains(t, meta.FileType, "text/plain")
	assert.Len(t, meta.LastModifiedDate, 10)
	assert.NotEmpty(t, meta.CreationDate)
}

func TestProbeFileMetadataMissingFile(t *testing.T) {
	_, err := ProbeFileMetadata(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
