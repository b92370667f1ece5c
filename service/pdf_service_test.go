package service

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamtrinli/ragstore/types"
	"github.com/phamtrinli/ragstore/utils"
)

func TestExtractFigures(t *testing.T) {
	text := "Intro prose before any figure.\n" +
		"Figure 1. System overview diagram\n" +
		"![Image](figures%5Coverview.png)\n" +
		"More prose between figures.\n" +
		"Figure 2. Latency distribution\n" +
		"![Image](img/latency.png)\n"

	figures := ExtractFigures(text)
	require.Len(t, figures, 2)

	assert.Equal(t, "Figure 1.", figures[0].FigureNumber)
	assert.Equal(t, "System overview diagram", figures[0].CaptionText)
	assert.Equal(t, "figures/overview.png", figures[0].ImagePath)

	assert.Equal(t, "Figure 2.", figures[1].FigureNumber)
	assert.Equal(t, "Latency distribution", figures[1].CaptionText)
	assert.Equal(t, "img/latency.png", figures[1].ImagePath)
}

func TestExtractFiguresMultilineCaption(t *testing.T) {
	text := "Figure 3. A caption that\nspans two lines\n![Image](chart.png)"

	figures := ExtractFigures(text)
	require.Len(t, figures, 1)
	assert.Equal(t, "A caption that\nspans two lines", figures[0].CaptionText)
	assert.Equal(t, "chart.png", figures[0].ImagePath)
}

func TestExtractFiguresNoMatches(t *testing.T) {
	assert.Empty(t, ExtractFigures("plain text without any figures"))
	assert.Empty(t, ExtractFigures(""))
	// A figure label without an image reference is not a record.
	assert.Empty(t, ExtractFigures("Figure 1. Caption but no image"))
}

func TestBuildImageDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	require.NoError(t, os.WriteFile(path, raw, 0644))

	doc, err := BuildImageDocument(path, "Latency distribution")
	require.NoError(t, err)

	assert.Equal(t, "img-chart.png", doc.ID)
	assert.Equal(t, types.KindImage, doc.Kind)
	assert.Equal(t, "figure caption: Latency distribution\n", doc.Text)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), doc.Image)
	assert.Equal(t, "chart.png", doc.Metadata.FileName)
}

func TestBuildImageDocumentEmptyCaption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.png")
	require.NoError(t, os.WriteFile(path, []byte{0x01}, 0644))

	doc, err := BuildImageDocument(path, "")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Text)
}

func TestBuildImageDocumentMissingFile(t *testing.T) {
	doc, err := BuildImageDocument(filepath.Join(t.TempDir(), "absent.png"), "caption")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, types.ErrImageNotFound)
}

func TestChunkTextShortInput(t *testing.T) {
	svc := NewPDFService(DefaultDocumentServiceConfig)
	meta := types.Metadata{FileName: "short.txt"}

	nodes := svc.ChunkText("a short passage", "source-id", meta)
	require.Len(t, nodes, 1)
	assert.Equal(t, utils.ContentHash("a short passage"), nodes[0].ID)
	assert.Equal(t, types.KindNode, nodes[0].Kind)
	assert.Equal(t, "source-id", nodes[0].SourceID)
	assert.Equal(t, meta, nodes[0].Metadata)
}

func TestChunkTextEmptyInput(t *testing.T) {
	svc := NewPDFService(DefaultDocumentServiceConfig)
	assert.Empty(t, svc.ChunkText("   ", "source-id", types.Metadata{}))
}

func TestSplitTextBacksOffToSentences(t *testing.T) {
	svc := NewPDFService(types.DocumentServiceConfig{MaxChunkSize: 60, OverlapSize: 10})
	text := strings.Repeat("This sentence fills the chunk with words. ", 10)

	chunks := svc.splitText(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 60)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
	// Sentence backoff keeps chunk boundaries on punctuation.
	assert.True(t, strings.HasSuffix(chunks[0], "."), "chunk %q should end at a sentence", chunks[0])
}

func TestCleanText(t *testing.T) {
	svc := NewPDFService(DefaultDocumentServiceConfig)

	cleaned := svc.cleanText("a\u0000b\rc\fd  e ")
	assert.Equal(t, "abc\nd e", cleaned)
}
