package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/djherbis/times"
	"github.com/gabriel-vasile/mimetype"

	"github.com/phamtrinli/ragstore/types"
)

const dateLayout = "2006-01-02"

// FileNameWithoutExt extracts the base filename without its extension.
func FileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProbeFileMetadata collects the per-file metadata recorded on ingested
// documents: path, name, detected MIME type, size and timestamps.
func ProbeFileMetadata(path string) (types.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Metadata{}, fmt.Errorf("failed to stat file: %w", err)
	}

	meta := types.Metadata{
		FilePath: path,
		FileName: filepath.Base(path),
		FileSize: info.Size(),
	}

	if mtype, err := mimetype.DetectFile(path); err == nil {
		meta.FileType = mtype.String()
	}

	meta.LastModifiedDate = info.ModTime().Format(dateLayout)
	if ts, err := times.Stat(path); err == nil && ts.HasBirthTime() {
		meta.CreationDate = ts.BirthTime().Format(dateLayout)
	} else {
		// Filesystems without birth time fall back to mtime.
		meta.CreationDate = meta.LastModifiedDate
	}

	return meta, nil
}
