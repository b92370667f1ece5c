package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamtrinli/ragstore/types"
	"github.com/phamtrinli/ragstore/utils"
)

// fakeAI answers each prompt kind with a canned response.
type fakeAI struct {
	calls int
}

func (f *fakeAI) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	switch {
	case strings.HasPrefix(prompt, "Propose"):
		return " Annual Report \n", nil
	case strings.HasPrefix(prompt, "Summarize"):
		return "a section summary", nil
	case strings.HasPrefix(prompt, "Generate"):
		return "What does this cover?", nil
	case strings.HasPrefix(prompt, "Give"):
		return "alpha, beta, gamma", nil
	}
	return "", nil
}

func sourceDocument(text string) *types.Document {
	return &types.Document{
		ID:       utils.ContentHash(text),
		Text:     text,
		Kind:     types.KindDocument,
		Metadata: types.Metadata{FileName: "report.txt"},
	}
}

func TestPipelineRequiresCompleter(t *testing.T) {
	pipeline := NewExtractorPipeline(nil, types.ExtractorConfig{
		Title: &types.TitleParams{Nodes: 1},
	})

	_, err := pipeline.Run(context.Background(), []*types.Document{sourceDocument("text")})
	assert.ErrorIs(t, err, types.ErrLLMUnavailable)
}

func TestPipelineNoStepsPassesThrough(t *testing.T) {
	pipeline := NewExtractorPipeline(nil, types.ExtractorConfig{})
	docs := []*types.Document{sourceDocument("unchanged text")}

	nodes, err := pipeline.Run(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, docs, nodes)
}

func TestPipelineSplitsWithoutCompleter(t *testing.T) {
	pipeline := NewExtractorPipeline(nil, types.ExtractorConfig{
		TextSplitter: &types.TextSplitterParams{ChunkSize: 40, ChunkOverlap: 5},
	})
	doc := sourceDocument(strings.Repeat("A sentence that fills the chunk. ", 6))

	nodes, err := pipeline.Run(context.Background(), []*types.Document{doc})
	require.NoError(t, err)
	require.Greater(t, len(nodes), 1)
	for _, node := range nodes {
		assert.Equal(t, types.KindNode, node.Kind)
		assert.Equal(t, doc.ID, node.SourceID)
		assert.Equal(t, utils.ContentHash(node.Text), node.ID)
	}
}

func TestPipelineEnrichesNodeMetadata(t *testing.T) {
	ai := &fakeAI{}
	pipeline := NewExtractorPipeline(ai, types.ExtractorConfig{
		TextSplitter:      &types.TextSplitterParams{ChunkSize: 60, ChunkOverlap: 5},
		Title:             &types.TitleParams{Nodes: 1},
		Summary:           &types.SummaryParams{},
		Keywords:          &types.KeywordParams{Keywords: 3},
		QuestionsAnswered: &types.QuestionsAnsweredParams{Questions: 1},
	})
	doc := sourceDocument(strings.Repeat("Revenue grew across every region this year. ", 4))

	nodes, err := pipeline.Run(context.Background(), []*types.Document{doc})
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	for _, node := range nodes {
		assert.Equal(t, "Annual Report", node.Metadata.Extra[types.MetaDocumentTitle])
		assert.Equal(t, "a section summary", node.Metadata.Extra[types.MetaSectionSummary])
		assert.Equal(t, "alpha, beta, gamma", node.Metadata.Extra[types.MetaExcerptKeywords])
		assert.Equal(t, "What does this cover?", node.Metadata.Extra[types.MetaQuestionsAnswered])
	}
	// One title call per source document plus three calls per node.
	assert.Equal(t, 1+3*len(nodes), ai.calls)
}
