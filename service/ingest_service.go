package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/phamtrinli/ragstore/storage"
	"github.com/phamtrinli/ragstore/types"
	"github.com/phamtrinli/ragstore/utils"
)

// IngestService ties ingestion together: reading sources, running the
// extractor pipeline, adding to the storage facade and pushing embeddings
// into the vector index.
type IngestService struct {
	store      *storage.Storage
	index      *IndexService
	pipeline   *ExtractorPipeline
	pdfService *PDFService
	collection string
}

func NewIngestService(
	store *storage.Storage,
	index *IndexService,
	pipeline *ExtractorPipeline,
	pdfService *PDFService,
	collection string,
) *IngestService {
	return &IngestService{
		store:      store,
		index:      index,
		pipeline:   pipeline,
		pdfService: pdfService,
		collection: collection,
	}
}

// IngestDirectory reads every file under dataDir into the store. Documents
// already present (by content hash) are skipped unless update is set.
// Returns the number of documents taken into the batch.
func (s *IngestService) IngestDirectory(ctx context.Context, dataDir string, recursive, update bool, tags []string) (int, error) {
	docs, err := storage.ReadDocuments(dataDir, recursive)
	if err != nil {
		return 0, err
	}

	kept := docs[:0]
	for _, doc := range docs {
		doc.Metadata.Tags = tags
		// PDFs carry extractable text; everything else is ingested verbatim.
		// A PDF that cannot be extracted is dropped from the batch, never
		// ingested as raw bytes.
		if filepath.Ext(doc.Metadata.FilePath) == ".pdf" {
			text, err := s.pdfService.ExtractPDFText(doc.Metadata.FilePath)
			if err != nil {
				logrus.Warnf("skipping %s: %v", doc.Metadata.FilePath, err)
				continue
			}
			doc.Text = text
			doc.ID = utils.ContentHash(text)
		}
		kept = append(kept, doc)
	}
	docs = kept

	if err := s.store.AddDocuments(ctx, docs, true, update); err != nil {
		return 0, err
	}

	nodes := docs
	if s.pipeline != nil {
		nodes, err = s.pipeline.Run(ctx, docs)
		if err != nil {
			return 0, err
		}
		if err := s.store.AddDocuments(ctx, nodes, true, update); err != nil {
			return 0, err
		}
	}

	if err := s.indexNodes(ctx, nodes); err != nil {
		return 0, err
	}
	if err := s.store.Save(); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// IngestMarkdown ingests the markdown produced by an external PDF
// converter: figures become image documents, the remaining text becomes a
// source document plus chunked nodes. Figures whose image file is missing
// are skipped with a notice; the rest of the document still lands.
func (s *IngestService) IngestMarkdown(ctx context.Context, mdPath string, update bool, tags []string) (int, error) {
	content, err := os.ReadFile(mdPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read markdown file: %w", err)
	}
	text := string(content)

	meta, err := utils.ProbeFileMetadata(mdPath)
	if err != nil {
		return 0, err
	}
	meta.Tags = tags

	sourceDoc := &types.Document{
		ID:       utils.ContentHash(text),
		Text:     text,
		Kind:     types.KindDocument,
		Metadata: meta,
	}

	docs := []*types.Document{sourceDoc}
	baseDir := filepath.Dir(mdPath)
	for _, figure := range ExtractFigures(text) {
		imagePath := figure.ImagePath
		if !filepath.IsAbs(imagePath) {
			imagePath = filepath.Join(baseDir, imagePath)
		}
		imageDoc, err := BuildImageDocument(imagePath, figure.CaptionText)
		if err != nil {
			logrus.Warnf("skipping %s: %v", figure.FigureNumber, err)
			continue
		}
		imageDoc.SourceID = sourceDoc.ID
		imageDoc.Metadata.Tags = tags
		docs = append(docs, imageDoc)
	}

	nodes := s.pdfService.ChunkText(text, sourceDoc.ID, meta)
	docs = append(docs, nodes...)

	// Image documents keep their img- prefixed ids; hashing applies to the
	// text documents, whose ids are precomputed above.
	if err := s.store.AddDocuments(ctx, docs, false, update); err != nil {
		return 0, err
	}
	if err := s.indexNodes(ctx, nodes); err != nil {
		return 0, err
	}
	if err := s.store.Save(); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *IngestService) indexNodes(ctx context.Context, nodes []*types.Document) error {
	if s.index == nil || len(nodes) == 0 {
		return nil
	}
	values := make([]types.Document, len(nodes))
	for i, node := range nodes {
		values[i] = *node
	}
	_, err := s.index.BuildIndex(ctx, s.collection, values)
	return err
}
