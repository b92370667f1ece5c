package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/phamtrinli/ragstore/types"
	"github.com/phamtrinli/ragstore/utils"
)

// Converter output marks each figure as a "Figure N." label, free-form
// caption text (possibly spanning lines), then an image reference on its
// own line. (?s) lets the caption group cross newlines.
var figurePattern = regexp.MustCompile(`(?s)(Figure\s+\d+\.\s*)(.*?)\n?!\[Image\]\((.*?)\)`)

// PDFService handles PDF and converter-markdown processing.
type PDFService struct {
	maxChunkSize int // Maximum size of each text chunk
	overlapSize  int // Size of overlap between chunks
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1024,
	OverlapSize:  128,
}

// NewPDFService creates a new PDF service with configurable chunk sizes.
func NewPDFService(config types.DocumentServiceConfig) *PDFService {
	if config.MaxChunkSize <= 0 {
		config = DefaultDocumentServiceConfig
	}
	return &PDFService{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
	}
}

// ExtractFigures scans converted document text for figure records in
// document order. Text without figure/image pairs yields an empty result,
// not an error.
func ExtractFigures(text string) []types.FigureRecord {
	matches := figurePattern.FindAllStringSubmatch(text, -1)

	figures := make([]types.FigureRecord, 0, len(matches))
	for _, match := range matches {
		// Upstream converters URL-escape Windows path separators.
		imagePath := strings.ReplaceAll(match[3], "%5C", "/")
		figures = append(figures, types.FigureRecord{
			FigureNumber: strings.TrimSpace(match[1]),
			CaptionText:  strings.TrimSpace(match[2]),
			ImagePath:    strings.TrimSpace(imagePath),
		})
	}
	return figures
}

// BuildImageDocument materializes an image file into a document: id
// "img-<name>", base64 body and the caption as searchable text. A missing
// file is a not-found error; no partial document is returned.
func BuildImageDocument(imagePath, caption string) (*types.Document, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file %s: %w", imagePath, types.ErrImageNotFound)
		}
		return nil, fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	text := ""
	if caption != "" {
		text = fmt.Sprintf("figure caption: %s\n", caption)
	}

	name := filepath.Base(imagePath)
	return &types.Document{
		ID:    "img-" + name,
		Text:  text,
		Kind:  types.KindImage,
		Image: base64.StdEncoding.EncodeToString(raw),
		Metadata: types.Metadata{
			FilePath: imagePath,
			FileName: name,
		},
		CreatedAt: time.Now().Unix(),
	}, nil
}

// ExtractPDFText pulls the plain text out of a PDF file.
func (s *PDFService) ExtractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return s.cleanText(buf.String()), nil
}

// ChunkText splits text into overlapping node documents, backing off to
// sentence and then word boundaries. Node ids are assigned from content
// hashes; sourceID records the originating document.
func (s *PDFService) ChunkText(text, sourceID string, metadata types.Metadata) []*types.Document {
	now := time.Now().Unix()
	chunks := s.splitText(text)
	nodes := make([]*types.Document, 0, len(chunks))
	for _, chunk := range chunks {
		nodes = append(nodes, &types.Document{
			ID:        utils.ContentHash(chunk),
			Text:      chunk,
			Kind:      types.KindNode,
			SourceID:  sourceID,
			Metadata:  metadata,
			CreatedAt: now,
		})
	}
	return nodes
}

func (s *PDFService) splitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	textLen := len(text)
	if textLen <= s.maxChunkSize {
		return []string{text}
	}

	var chunks []string
	currentPos := 0
	for currentPos < textLen {
		chunkEnd := currentPos + s.maxChunkSize
		if chunkEnd >= textLen {
			if chunk := strings.TrimSpace(text[currentPos:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		// Find nearest sentence end
		sentenceEnd := chunkEnd
		for i := chunkEnd; i > currentPos; i-- {
			if text[i] == '.' || text[i] == '?' || text[i] == '!' {
				sentenceEnd = i + 1
				break
			}
		}

		// If no sentence end found, use word boundary
		if sentenceEnd == chunkEnd {
			for i := chunkEnd; i > currentPos; i-- {
				if text[i] == ' ' {
					sentenceEnd = i
					break
				}
			}
		}

		if chunk := strings.TrimSpace(text[currentPos:sentenceEnd]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := sentenceEnd - s.overlapSize
		if next <= currentPos {
			next = sentenceEnd
		}
		currentPos = next
	}
	return chunks
}

func (s *PDFService) cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
