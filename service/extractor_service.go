package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/phamtrinli/ragstore/types"
)

const (
	titlePrompt = "Propose a single comprehensive title for a document, based on these excerpts:\n\n%s\n\nAnswer with the title only."

	questionsPrompt = "Generate %d question(s) that the following text can specifically answer:\n\n%s\n\nAnswer with the questions only, one per line."

	summaryPrompt = "Summarize the key topics and entities of this section:\n\n%s"

	keywordsPrompt = "Give %d unique keywords for this document, comma separated:\n\n%s"
)

// ExtractorPipeline runs the enabled extraction steps over documents: the
// splitter first, producing nodes, then the LLM-backed enrichments writing
// into node metadata.
type ExtractorPipeline struct {
	ai  AIService
	cfg types.ExtractorConfig
}

func NewExtractorPipeline(ai AIService, cfg types.ExtractorConfig) *ExtractorPipeline {
	return &ExtractorPipeline{ai: ai, cfg: cfg}
}

// needsLLM reports whether any enabled step requires a completion client.
func (p *ExtractorPipeline) needsLLM() bool {
	return p.cfg.Title != nil || p.cfg.QuestionsAnswered != nil ||
		p.cfg.Summary != nil || p.cfg.Keywords != nil
}

// Run processes documents and returns the resulting nodes. Without a
// splitter the input documents are enriched in place and returned.
func (p *ExtractorPipeline) Run(ctx context.Context, docs []*types.Document) ([]*types.Document, error) {
	if p.needsLLM() && p.ai == nil {
		return nil, types.ErrLLMUnavailable
	}

	nodes := docs
	if p.cfg.TextSplitter != nil {
		nodes = p.split(docs)
	}

	if p.cfg.Title != nil {
		if err := p.extractTitle(ctx, nodes); err != nil {
			return nil, err
		}
	}

	for _, node := range nodes {
		if p.cfg.Summary != nil {
			summary, err := p.ai.Complete(ctx, fmt.Sprintf(summaryPrompt, node.Text))
			if err != nil {
				return nil, fmt.Errorf("summary extraction failed: %w", err)
			}
			node.Metadata.SetExtra(types.MetaSectionSummary, strings.TrimSpace(summary))
		}
		if p.cfg.Keywords != nil {
			keywords, err := p.ai.Complete(ctx, fmt.Sprintf(keywordsPrompt, p.cfg.Keywords.Keywords, node.Text))
			if err != nil {
				return nil, fmt.Errorf("keyword extraction failed: %w", err)
			}
			node.Metadata.SetExtra(types.MetaExcerptKeywords, strings.TrimSpace(keywords))
		}
		if p.cfg.QuestionsAnswered != nil {
			questions, err := p.ai.Complete(ctx, fmt.Sprintf(questionsPrompt, p.cfg.QuestionsAnswered.Questions, node.Text))
			if err != nil {
				return nil, fmt.Errorf("question extraction failed: %w", err)
			}
			node.Metadata.SetExtra(types.MetaQuestionsAnswered, strings.TrimSpace(questions))
		}
	}

	logrus.Debugf("extractor pipeline produced %d nodes from %d documents", len(nodes), len(docs))
	return nodes, nil
}

// split turns each document into overlapping nodes carrying the document
// metadata and a back-reference to its id.
func (p *ExtractorPipeline) split(docs []*types.Document) []*types.Document {
	splitter := NewPDFService(types.DocumentServiceConfig{
		MaxChunkSize: p.cfg.TextSplitter.ChunkSize,
		OverlapSize:  p.cfg.TextSplitter.ChunkOverlap,
	})

	var nodes []*types.Document
	for _, doc := range docs {
		chunks := splitter.ChunkText(doc.Text, doc.ID, doc.Metadata)
		nodes = append(nodes, chunks...)
	}
	return nodes
}

// extractTitle proposes one title per source document from its leading
// nodes and stamps it on every node of that document.
func (p *ExtractorPipeline) extractTitle(ctx context.Context, nodes []*types.Document) error {
	bySource := make(map[string][]*types.Document)
	var order []string
	for _, node := range nodes {
		key := node.SourceID
		if key == "" {
			key = node.ID
		}
		if _, seen := bySource[key]; !seen {
			order = append(order, key)
		}
		bySource[key] = append(bySource[key], node)
	}

	for _, key := range order {
		group := bySource[key]
		limit := p.cfg.Title.Nodes
		if limit <= 0 || limit > len(group) {
			limit = len(group)
		}
		var excerpts []string
		for _, node := range group[:limit] {
			excerpts = append(excerpts, node.Text)
		}

		title, err := p.ai.Complete(ctx, fmt.Sprintf(titlePrompt, strings.Join(excerpts, "\n\n")))
		if err != nil {
			return fmt.Errorf("title extraction failed: %w", err)
		}
		title = strings.TrimSpace(title)
		for _, node := range group {
			node.Metadata.SetExtra(types.MetaDocumentTitle, title)
		}
	}
	return nil
}
