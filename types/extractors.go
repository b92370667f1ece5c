package types

// The set of supported extraction steps is small and fixed, so each step is
// a named struct with explicit parameters rather than a free-form registry.

// TextSplitterParams configures the chunking step that turns documents into
// nodes before any LLM-backed extraction runs.
type TextSplitterParams struct {
	Separator    string `mapstructure:"separator"`
	ChunkSize    int    `mapstructure:"chunk_size"`
	ChunkOverlap int    `mapstructure:"chunk_overlap"`
}

// TitleParams configures document title extraction. Nodes is how many
// leading nodes are considered when proposing the title.
type TitleParams struct {
	Nodes int `mapstructure:"nodes"`
}

// QuestionsAnsweredParams configures extraction of candidate questions a
// node can answer.
type QuestionsAnsweredParams struct {
	Questions int `mapstructure:"questions"`
}

// SummaryParams configures per-node summary extraction.
type SummaryParams struct{}

// KeywordParams configures keyword extraction.
type KeywordParams struct {
	Keywords int `mapstructure:"keywords"`
}

// ExtractorConfig enables individual extraction steps. A nil field disables
// the step. Steps always run in declaration order: split first, then the
// LLM-backed enrichments.
type ExtractorConfig struct {
	TextSplitter      *TextSplitterParams      `mapstructure:"text_splitter"`
	Title             *TitleParams             `mapstructure:"title"`
	QuestionsAnswered *QuestionsAnsweredParams `mapstructure:"question_answer"`
	Summary           *SummaryParams           `mapstructure:"summary"`
	Keywords          *KeywordParams           `mapstructure:"keyword"`
}

// Metadata keys written by the extraction steps.
const (
	MetaDocumentTitle     = "document_title"
	MetaQuestionsAnswered = "questions_this_excerpt_can_answer"
	MetaSectionSummary    = "section_summary"
	MetaExcerptKeywords   = "excerpt_keywords"
)
