package pipeline

import (
	"context"
	"fmt"
	"strings"

	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/schema"
	"docuhub/pkg/logger"
)

// RAGOptions configure one retrieval-augmented query.
type RAGOptions struct {
	OrganizationID   string
	DocType          string
	MaxContextChunks int
	MinSimilarity    float64
	IncludeMetadata  bool
	GenerateAnswer   bool
	Model            string
	Temperature      float32
	MaxTokens        int
}

// Assembler composes ranked chunks into a bounded context string with
// citations, optionally generating a final answer.
type Assembler struct {
	retrieval *RetrievalPipeline
	llm       interfaces.LLM
	log       *logger.Logger
}

// NewAssembler creates a new Assembler. llm may be nil when answer
// generation is never requested.
func NewAssembler(retrieval *RetrievalPipeline, llm interfaces.LLM, log *logger.Logger) *Assembler {
	return &Assembler{retrieval: retrieval, llm: llm, log: log}
}

// Run retrieves context for a query and optionally generates an
// answer. An empty retrieval is not an error: the caller receives an
// empty context and no answer. A failed generation call is an error,
// distinct from the zero-result case.
func (a *Assembler) Run(ctx context.Context, query string, opts RAGOptions) (*schema.RAGContext, error) {
	if opts.MaxContextChunks <= 0 {
		opts.MaxContextChunks = 5
	}

	results, err := a.retrieval.Run(ctx, query, SearchOptions{
		OrganizationID: opts.OrganizationID,
		DocType:        opts.DocType,
		MatchThreshold: opts.MinSimilarity,
		MatchCount:     opts.MaxContextChunks,
	})
	if err != nil {
		return nil, err
	}

	ragCtx := &schema.RAGContext{
		Query:   query,
		Results: results,
		Context: buildContext(results, opts.IncludeMetadata),
		Sources: buildSources(results),
	}

	if opts.GenerateAnswer && len(results) > 0 {
		if a.llm == nil {
			return nil, fmt.Errorf("answer generation requested but no llm is configured")
		}
		prompt := buildAnswerPrompt(query, ragCtx.Context)
		answer, err := a.llm.Generate(ctx, prompt, interfaces.GenerateOptions{
			Model:       opts.Model,
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
		})
		if err != nil {
			a.log.WithError(err).Error("Answer generation failed")
			return nil, err
		}
		ragCtx.Answer = answer
	}

	return ragCtx, nil
}

// buildContext concatenates result contents into one context string.
// With metadata enabled each segment is annotated with its source
// document title and type so the reader can attribute every passage.
func buildContext(results []schema.SearchResult, includeMetadata bool) string {
	if len(results) == 0 {
		return ""
	}

	segments := make([]string, len(results))
	for i, r := range results {
		if includeMetadata {
			segments[i] = fmt.Sprintf("[Source: %s (%s)]\n%s", r.DocTitle, r.DocType, r.Content)
		} else {
			segments[i] = r.Content
		}
	}
	return strings.Join(segments, "\n\n---\n\n")
}

func buildSources(results []schema.SearchResult) []schema.RAGSource {
	sources := make([]schema.RAGSource, len(results))
	for i, r := range results {
		sources[i] = schema.RAGSource{
			DocumentID: r.DocumentID,
			Title:      r.DocTitle,
			Path:       r.DocPath,
			ChunkIndex: r.ChunkIndex,
			Similarity: r.Similarity,
		}
	}
	return sources
}

// buildAnswerPrompt frames the assembled context and the original
// question for the generation call.
func buildAnswerPrompt(query, context string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question using only the context below. ")
	sb.WriteString("If the context does not contain the answer, say so.\n\nContext:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	return sb.String()
}

// FormatOptions control FormatContextForPrompt.
type FormatOptions struct {
	// MaxLength truncates the formatted text to this many characters
	// when > 0. Truncated output ends with an ellipsis.
	MaxLength int
	// OmitQuery leaves out the original query line, for callers that
	// embed the context into their own prompt.
	OmitQuery bool
}

// FormatContextForPrompt renders an assembled context for inclusion in
// a downstream prompt.
func FormatContextForPrompt(ragCtx *schema.RAGContext, opts FormatOptions) string {
	var sb strings.Builder
	if !opts.OmitQuery && ragCtx.Query != "" {
		sb.WriteString("Query: ")
		sb.WriteString(ragCtx.Query)
		sb.WriteString("\n\n")
	}
	sb.WriteString(ragCtx.Context)

	out := sb.String()
	if opts.MaxLength > 0 {
		runes := []rune(out)
		if len(runes) > opts.MaxLength {
			out = string(runes[:opts.MaxLength]) + "..."
		}
	}
	return out
}
