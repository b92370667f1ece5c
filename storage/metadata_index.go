package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// MetadataIndexFile is the tabular index persisted next to the docstore.
const MetadataIndexFile = "metadata_index.csv"

var suffixPattern = regexp.MustCompile(`^(.*)_(\d+)$`)

// IndexRow maps an ingested file name to the content hash stored under it.
type IndexRow struct {
	FileName string
	DocID    string
}

// MetadataIndex is an ordered {file_name, doc_id} table. Row order is
// insertion order. Each doc_id appears at most once; repeated file names
// are disambiguated with an incrementing numeric suffix (name, name_1, ...)
// counted across the whole table, so the file_name column stays unique.
type MetadataIndex struct {
	rows      []IndexRow
	docIDs    map[string]int // doc_id -> row position
	nameCount map[string]int // base file name -> inserts seen
}

func NewMetadataIndex() *MetadataIndex {
	return &MetadataIndex{
		docIDs:    make(map[string]int),
		nameCount: make(map[string]int),
	}
}

// Append adds a row and returns the file name actually recorded, suffixed
// if the base name was already taken.
func (m *MetadataIndex) Append(fileName, docID string) string {
	assigned := fileName
	if n := m.nameCount[fileName]; n > 0 {
		assigned = fmt.Sprintf("%s_%d", fileName, n)
	}
	m.nameCount[fileName]++

	m.docIDs[docID] = len(m.rows)
	m.rows = append(m.rows, IndexRow{FileName: assigned, DocID: docID})
	return assigned
}

// HasDoc reports whether a content hash is already indexed.
func (m *MetadataIndex) HasDoc(docID string) bool {
	_, ok := m.docIDs[docID]
	return ok
}

// Len returns the number of rows.
func (m *MetadataIndex) Len() int {
	return len(m.rows)
}

// Rows returns the rows in insertion order.
func (m *MetadataIndex) Rows() []IndexRow {
	return m.rows
}

// DocIDsByFileName returns the hashes recorded under a file name, either by
// exact match or substring match, in row order.
func (m *MetadataIndex) DocIDsByFileName(fileName string, exactMatch bool) []string {
	var ids []string
	for _, row := range m.rows {
		if exactMatch {
			if row.FileName == fileName {
				ids = append(ids, row.DocID)
			}
		} else if strings.Contains(row.FileName, fileName) {
			ids = append(ids, row.DocID)
		}
	}
	return ids
}

// RemoveDoc drops the row holding a content hash, if present.
func (m *MetadataIndex) RemoveDoc(docID string) {
	pos, ok := m.docIDs[docID]
	if !ok {
		return
	}
	m.rows = append(m.rows[:pos], m.rows[pos+1:]...)
	delete(m.docIDs, docID)
	for id, p := range m.docIDs {
		if p > pos {
			m.docIDs[id] = p - 1
		}
	}
}

// Save writes the index as CSV: a positional index column followed by
// file_name and doc_id.
func (m *MetadataIndex) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metadata index file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"", "file_name", "doc_id"}); err != nil {
		return err
	}
	for i, row := range m.rows {
		if err := w.Write([]string{strconv.Itoa(i), row.FileName, row.DocID}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadMetadataIndex reads a CSV written by Save, rebuilding the suffix
// counters so later appends keep numbering where the file left off.
func LoadMetadataIndex(path string) (*MetadataIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata index file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata index: %w", err)
	}

	m := NewMetadataIndex()
	for i, rec := range records {
		if i == 0 || len(rec) < 3 {
			continue // header
		}
		fileName, docID := rec[1], rec[2]
		m.docIDs[docID] = len(m.rows)
		m.rows = append(m.rows, IndexRow{FileName: fileName, DocID: docID})

		base, n := fileName, 0
		if match := suffixPattern.FindStringSubmatch(fileName); match != nil {
			if parsed, err := strconv.Atoi(match[2]); err == nil {
				base, n = match[1], parsed
			}
		}
		if m.nameCount[base] <= n {
			m.nameCount[base] = n + 1
		}
	}
	return m, nil
}
