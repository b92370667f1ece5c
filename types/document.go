package types

// NodeKind distinguishes how a stored node was produced.
type NodeKind string

const (
	KindDocument NodeKind = "document" // raw ingested file
	KindNode     NodeKind = "node"     // chunk derived from a document
	KindImage    NodeKind = "image"    // figure extracted from converter output
)

// Document is the unit stored in the docstore. Its ID is the SHA-256 hex
// digest of Text unless the caller opts out of hash identities.
type Document struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Kind      NodeKind `json:"kind"`
	SourceID  string   `json:"source_id,omitempty"` // back-reference to the originating document, not ownership
	Image     string   `json:"image,omitempty"`     // base64-encoded raw bytes for image documents
	Metadata  Metadata `json:"metadata"`
	CreatedAt int64    `json:"created_at"`
}

// Metadata contains additional document information.
type Metadata struct {
	FilePath         string            `json:"file_path,omitempty"`
	FileName         string            `json:"file_name,omitempty"`
	FileType         string            `json:"file_type,omitempty"`
	FileSize         int64             `json:"file_size,omitempty"`
	CreationDate     string            `json:"creation_date,omitempty"`
	LastModifiedDate string            `json:"last_modified_date,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// SetExtra stores an extractor result under key, allocating the map on
// first use.
func (m *Metadata) SetExtra(key, value string) {
	if m.Extra == nil {
		m.Extra = make(map[string]string)
	}
	m.Extra[key] = value
}

// FigureRecord is an association between a figure label, its caption and
// the referenced image file, found in converted document text.
type FigureRecord struct {
	FigureNumber string `json:"figure_number"`
	CaptionText  string `json:"caption_text"`
	ImagePath    string `json:"image_path"`
}

// RefDocInfo summarizes a source document and the nodes derived from it.
type RefDocInfo struct {
	Metadata Metadata `json:"metadata"`
	NodeIDs  []string `json:"node_ids"`
}

// DocumentServiceConfig contains configuration options for text chunking.
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks
	OverlapSize  int // Size of overlap between chunks
}
