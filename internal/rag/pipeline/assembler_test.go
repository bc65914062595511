package pipeline

import (
	"context"
	"strings"
	"testing"

	"docuhub/internal/rag/schema"
)

func newTestAssembler(store *fakeVectorStore, llm *fakeLLM) *Assembler {
	embedder := &fakeEmbedder{dim: 8}
	retrieval := NewRetrievalPipeline(embedder, store, testLogger())
	return NewAssembler(retrieval, llm, testLogger())
}

func TestAssemblerContextAndSources(t *testing.T) {
	store := newFakeVectorStore()
	store.results = cannedResults(3, 0.9)
	a := newTestAssembler(store, nil)

	ragCtx, err := a.Run(context.Background(), "how do I file expenses", RAGOptions{
		OrganizationID:  "org-1",
		IncludeMetadata: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ragCtx.Sources) != len(ragCtx.Results) {
		t.Fatalf("sources and results diverge: %d vs %d", len(ragCtx.Sources), len(ragCtx.Results))
	}
	for i, r := range ragCtx.Results {
		if !strings.Contains(ragCtx.Context, r.Content) {
			t.Errorf("context missing content of result %d", i)
		}
		src := ragCtx.Sources[i]
		if src.DocumentID != r.DocumentID || src.ChunkIndex != r.ChunkIndex {
			t.Errorf("source %d does not match its result", i)
		}
	}
	if !strings.Contains(ragCtx.Context, "[Source: Document 0 (policy)]") {
		t.Error("metadata annotation missing from context")
	}
}

func TestAssemblerNoMetadata(t *testing.T) {
	store := newFakeVectorStore()
	store.results = cannedResults(2, 0.9)
	a := newTestAssembler(store, nil)

	ragCtx, err := a.Run(context.Background(), "query", RAGOptions{OrganizationID: "org-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(ragCtx.Context, "[Source:") {
		t.Error("context contains annotations without IncludeMetadata")
	}
}

func TestAssemblerMinSimilarity(t *testing.T) {
	store := newFakeVectorStore()
	store.results = cannedResults(6, 0.95)
	a := newTestAssembler(store, nil)

	ragCtx, err := a.Run(context.Background(), "query", RAGOptions{
		OrganizationID: "org-1",
		MinSimilarity:  0.9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range ragCtx.Results {
		if r.Similarity < 0.9 {
			t.Errorf("result %s below MinSimilarity: %.2f", r.ChunkID, r.Similarity)
		}
	}
}

func TestAssemblerEmptyRetrieval(t *testing.T) {
	store := newFakeVectorStore()
	llm := &fakeLLM{answer: "should not run"}
	a := newTestAssembler(store, llm)

	ragCtx, err := a.Run(context.Background(), "nothing matches", RAGOptions{
		OrganizationID: "org-1",
		GenerateAnswer: true,
	})
	if err != nil {
		t.Fatalf("empty retrieval must not be an error: %v", err)
	}
	if ragCtx.Context != "" {
		t.Errorf("expected empty context, got %q", ragCtx.Context)
	}
	if ragCtx.Answer != "" {
		t.Errorf("expected no answer, got %q", ragCtx.Answer)
	}
	if llm.calls != 0 {
		t.Errorf("llm must not be called with zero results, got %d calls", llm.calls)
	}
}

func TestAssemblerGeneratesAnswer(t *testing.T) {
	store := newFakeVectorStore()
	store.results = cannedResults(2, 0.9)
	llm := &fakeLLM{answer: "File expenses through the portal."}
	a := newTestAssembler(store, llm)

	ragCtx, err := a.Run(context.Background(), "how do I file expenses", RAGOptions{
		OrganizationID: "org-1",
		GenerateAnswer: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ragCtx.Answer != llm.answer {
		t.Errorf("answer not carried through: %q", ragCtx.Answer)
	}
	if !strings.Contains(llm.lastPrompt, "how do I file expenses") {
		t.Error("prompt missing the original question")
	}
	if !strings.Contains(llm.lastPrompt, store.results[0].Content) {
		t.Error("prompt missing the retrieved context")
	}
}

func TestFormatContextTruncation(t *testing.T) {
	ragCtx := &schema.RAGContext{
		Query:   "q",
		Context: strings.Repeat("lorem ipsum ", 200),
	}
	out := FormatContextForPrompt(ragCtx, FormatOptions{MaxLength: 100})
	if len([]rune(out)) > 103 {
		t.Errorf("truncated output too long: %d runes", len([]rune(out)))
	}
	if !strings.HasSuffix(out, "...") {
		t.Error("truncated output missing ellipsis")
	}

	short := &schema.RAGContext{Query: "q", Context: "small"}
	out = FormatContextForPrompt(short, FormatOptions{MaxLength: 100})
	if strings.HasSuffix(out, "...") {
		t.Error("short output must not be truncated")
	}
}

func TestFormatContextOmitQuery(t *testing.T) {
	ragCtx := &schema.RAGContext{Query: "the question", Context: "the context"}

	with := FormatContextForPrompt(ragCtx, FormatOptions{})
	if !strings.Contains(with, "Query: the question") {
		t.Error("query line missing by default")
	}

	without := FormatContextForPrompt(ragCtx, FormatOptions{OmitQuery: true})
	if strings.Contains(without, "the question") {
		t.Error("query leaked despite OmitQuery")
	}
}
