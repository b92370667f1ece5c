package types

import "errors"

// Sentinel errors. Callers match with errors.Is; storage and services wrap
// them with context via fmt.Errorf and %w.
var (
	// ErrStorageNotFound indicates no persisted storage exists at the
	// requested directory. Distinct from generic IO failures so callers can
	// treat "no prior index" separately from "bad path".
	ErrStorageNotFound = errors.New("storage not found")

	// ErrDirNotFound indicates a document source directory does not exist.
	ErrDirNotFound = errors.New("directory not found")

	// ErrDocumentNotFound indicates a requested document id is not in the
	// docstore.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrImageNotFound indicates the image file backing a figure does not
	// exist; no partial image document is ever returned.
	ErrImageNotFound = errors.New("image not found")

	// ErrInvalidBackend indicates a storage facade was constructed with the
	// wrong backend type.
	ErrInvalidBackend = errors.New("invalid storage backend")

	// ErrLLMUnavailable indicates no LLM client is configured; metadata
	// extraction is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding client is configured;
	// vector indexing and semantic search are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
