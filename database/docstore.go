package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/phamtrinli/ragstore/types"
)

// DocstoreFile is the SQLite file created inside a storage directory.
const DocstoreFile = "docstore.db"

const docstoreSchema = `
CREATE TABLE IF NOT EXISTS documents (
	doc_id     TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	source_id  TEXT NOT NULL DEFAULT '',
	text       TEXT NOT NULL,
	image      TEXT NOT NULL DEFAULT '',
	metadata   TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source_id);
`

// SQLiteDocStore is a DocumentStore backed by a single SQLite file.
// Insertion order is the implicit rowid order.
type SQLiteDocStore struct {
	db   *sql.DB
	path string
}

var _ DocumentStore = (*SQLiteDocStore)(nil)

// NewSQLiteDocStore opens (or creates) the docstore inside storeDir.
func NewSQLiteDocStore(storeDir string) (*SQLiteDocStore, error) {
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(storeDir, DocstoreFile)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open docstore: %w", err)
	}

	if _, err := db.Exec(docstoreSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize docstore schema: %w", err)
	}

	return &SQLiteDocStore{db: db, path: dbPath}, nil
}

// Path returns the docstore file path.
func (s *SQLiteDocStore) Path() string {
	return s.path
}

func (s *SQLiteDocStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteDocStore) AddDocument(ctx context.Context, doc *types.Document, allowUpdate bool) error {
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `INSERT INTO documents (doc_id, kind, source_id, text, image, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if allowUpdate {
		query += ` ON CONFLICT(doc_id) DO UPDATE SET
			kind = excluded.kind,
			source_id = excluded.source_id,
			text = excluded.text,
			image = excluded.image,
			metadata = excluded.metadata,
			created_at = excluded.created_at`
	}

	_, err = s.db.ExecContext(ctx, query,
		doc.ID, string(doc.Kind), doc.SourceID, doc.Text, doc.Image, string(meta), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
	}
	return nil
}

func (s *SQLiteDocStore) DocumentExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE doc_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check document %s: %w", id, err)
	}
	return true, nil
}

func (s *SQLiteDocStore) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT doc_id, kind, source_id, text, image, metadata, created_at
		 FROM documents WHERE doc_id = ?`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, types.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return doc, nil
}

func (s *SQLiteDocStore) GetDocuments(ctx context.Context, ids []string) ([]types.Document, error) {
	docs := make([]types.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.GetDocument(ctx, id)
		if errors.Is(err, types.ErrDocumentNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (s *SQLiteDocStore) ListDocuments(ctx context.Context, kind types.NodeKind) ([]types.Document, error) {
	query := `SELECT doc_id, kind, source_id, text, image, metadata, created_at
		FROM documents`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (s *SQLiteDocStore) ListBySource(ctx context.Context, sourceID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id FROM documents WHERE source_id = ? ORDER BY rowid`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes for source %s: %w", sourceID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteDocStore) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE doc_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("document %s: %w", id, types.ErrDocumentNotFound)
	}
	return nil
}

func (s *SQLiteDocStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*types.Document, error) {
	var doc types.Document
	var kind, meta string
	if err := row.Scan(&doc.ID, &kind, &doc.SourceID, &doc.Text, &doc.Image, &meta, &doc.CreatedAt); err != nil {
		return nil, err
	}
	doc.Kind = types.NodeKind(kind)
	if err := json.Unmarshal([]byte(meta), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &doc, nil
}
