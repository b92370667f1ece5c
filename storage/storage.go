// Package storage is the facade over the document store and the metadata
// index: adding content-addressed documents, persisting and reloading the
// index, and resolving nodes by file name or hash.
package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phamtrinli/ragstore/database"
	"github.com/phamtrinli/ragstore/types"
	"github.com/phamtrinli/ragstore/utils"
)

// Storage manages document persistence and the metadata index. Documents
// are identified by the SHA-256 hash of their text, so repeated ingestion
// of identical content is deduplicated.
type Storage struct {
	docstore database.DocumentStore
	index    *MetadataIndex
	dir      string
}

// New wraps an existing document store. A nil store is an invalid backend.
// When no index is given, one is rebuilt from the store contents.
func New(ctx context.Context, docstore database.DocumentStore, index *MetadataIndex) (*Storage, error) {
	if docstore == nil {
		return nil, fmt.Errorf("storage requires a document store, given: %v: %w", docstore, types.ErrInvalidBackend)
	}
	if index == nil {
		rebuilt, err := rebuildIndex(ctx, docstore)
		if err != nil {
			return nil, err
		}
		index = rebuilt
	}
	return &Storage{docstore: docstore, index: index}, nil
}

// Create initializes a new storage rooted at storeDir, creating the
// directory and an empty docstore.
func Create(storeDir string) (*Storage, error) {
	docstore, err := database.NewSQLiteDocStore(storeDir)
	if err != nil {
		return nil, err
	}
	return &Storage{
		docstore: docstore,
		index:    NewMetadataIndex(),
		dir:      storeDir,
	}, nil
}

// Load opens a previously saved storage. A missing directory is reported as
// ErrStorageNotFound so callers can distinguish "no prior index" from IO
// failures.
func Load(ctx context.Context, storeDir string) (*Storage, error) {
	if _, err := os.Stat(storeDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("storage not found at %s: %w", storeDir, types.ErrStorageNotFound)
	}

	docstore, err := database.NewSQLiteDocStore(storeDir)
	if err != nil {
		return nil, err
	}

	indexPath := filepath.Join(storeDir, MetadataIndexFile)
	var index *MetadataIndex
	if _, err := os.Stat(indexPath); err == nil {
		index, err = LoadMetadataIndex(indexPath)
		if err != nil {
			docstore.Close()
			return nil, err
		}
	} else {
		index, err = rebuildIndex(ctx, docstore)
		if err != nil {
			docstore.Close()
			return nil, err
		}
	}

	return &Storage{docstore: docstore, index: index, dir: storeDir}, nil
}

// rebuildIndex derives the metadata index from documents already present in
// the store, preserving their insertion order. Stored ids are recorded as-is;
// image documents carry img- prefixed ids, not content hashes.
func rebuildIndex(ctx context.Context, docstore database.DocumentStore) (*MetadataIndex, error) {
	docs, err := docstore.ListDocuments(ctx, "")
	if err != nil {
		return nil, err
	}
	index := NewMetadataIndex()
	for _, doc := range docs {
		fileName := doc.Metadata.FileName
		if fileName == "" {
			fileName = filepath.Base(doc.Metadata.FilePath)
		}
		index.Append(fileName, doc.ID)
	}
	return index, nil
}

// Docstore exposes the underlying document store.
func (s *Storage) Docstore() database.DocumentStore {
	return s.docstore
}

// MetadataIndex exposes the metadata index.
func (s *Storage) MetadataIndex() *MetadataIndex {
	return s.index
}

// Dir returns the storage directory ("" for wrapped stores).
func (s *Storage) Dir() string {
	return s.dir
}

// Save persists the metadata index next to the docstore. The docstore
// itself is already durable.
func (s *Storage) Save() error {
	if s.dir == "" {
		return fmt.Errorf("storage has no directory to save into")
	}
	return s.index.Save(filepath.Join(s.dir, MetadataIndexFile))
}

// Close releases the underlying document store.
func (s *Storage) Close() error {
	return s.docstore.Close()
}

// AddDocuments adds documents/nodes to the store. With generateID each
// document id is replaced by the SHA-256 hash of its text before the
// duplicate check. Documents whose id already exists are skipped with a
// notice unless update is set, in which case the stored row is replaced.
// The metadata index gains one row per accepted insertion.
func (s *Storage) AddDocuments(ctx context.Context, docs []*types.Document, generateID, update bool) error {
	for _, doc := range docs {
		if generateID {
			doc.ID = utils.ContentHash(doc.Text)
		}

		exists, err := s.docstore.DocumentExists(ctx, doc.ID)
		if err != nil {
			return err
		}
		if exists && !update {
			logrus.Warnf("Document with ID %s already exists. Skipping.", doc.ID)
			continue
		}

		if doc.CreatedAt == 0 {
			doc.CreatedAt = time.Now().Unix()
		}
		if err := s.docstore.AddDocument(ctx, doc, update); err != nil {
			return err
		}

		// An update replaces the row under the same hash; the index already
		// holds it.
		if !s.index.HasDoc(doc.ID) {
			fileName := doc.Metadata.FileName
			if fileName == "" {
				fileName = filepath.Base(doc.Metadata.FilePath)
			}
			s.index.Append(fileName, doc.ID)
		}
	}
	return nil
}

// ReadDocuments reads every regular file under path into a document with
// content-hash identity and probed file metadata. Subdirectories are only
// descended into when recursive is set.
func ReadDocuments(path string, recursive bool) ([]*types.Document, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory not found: %s: %w", path, types.ErrDirNotFound)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}

	docs := make([]*types.Document, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		meta, err := utils.ProbeFileMetadata(file)
		if err != nil {
			return nil, err
		}
		text := string(content)
		docs = append(docs, &types.Document{
			ID:        utils.ContentHash(text),
			Text:      text,
			Kind:      types.KindDocument,
			Metadata:  meta,
			CreatedAt: time.Now().Unix(),
		})
	}
	return docs, nil
}

// GetNodesByFileName resolves documents through the metadata index, by
// exact file name or substring match.
func (s *Storage) GetNodesByFileName(ctx context.Context, fileName string, exactMatch bool) ([]types.Document, error) {
	ids := s.index.DocIDsByFileName(fileName, exactMatch)
	return s.docstore.GetDocuments(ctx, ids)
}

// NodeIDs lists every stored id in insertion order.
func (s *Storage) NodeIDs(ctx context.Context) ([]string, error) {
	docs, err := s.docstore.ListDocuments(ctx, "")
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	return ids, nil
}

// DocumentMetadata summarizes each source document: its metadata and the
// ids of the nodes derived from it.
func (s *Storage) DocumentMetadata(ctx context.Context) (map[string]types.RefDocInfo, error) {
	docs, err := s.docstore.ListDocuments(ctx, types.KindDocument)
	if err != nil {
		return nil, err
	}
	result := make(map[string]types.RefDocInfo, len(docs))
	for _, doc := range docs {
		nodeIDs, err := s.docstore.ListBySource(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		result[doc.ID] = types.RefDocInfo{Metadata: doc.Metadata, NodeIDs: nodeIDs}
	}
	return result, nil
}

// DeleteDocument removes a document, its derived nodes and their metadata
// index rows.
func (s *Storage) DeleteDocument(ctx context.Context, id string) error {
	nodeIDs, err := s.docstore.ListBySource(ctx, id)
	if err != nil {
		return err
	}
	for _, nodeID := range nodeIDs {
		if err := s.docstore.DeleteDocument(ctx, nodeID); err != nil {
			return err
		}
		s.index.RemoveDoc(nodeID)
	}
	if err := s.docstore.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.index.RemoveDoc(id)
	return nil
}

// Count returns the number of stored documents and nodes.
func (s *Storage) Count(ctx context.Context) (int, error) {
	return s.docstore.Count(ctx)
}
