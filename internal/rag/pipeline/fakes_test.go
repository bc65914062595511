package pipeline

import (
	"context"
	"fmt"
	"sync"

	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/schema"
	"docuhub/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("pipeline-test", "")
}

// fakeEmbedder returns deterministic vectors of a fixed dimension and
// counts calls so tests can assert short-circuits and cache hits.
type fakeEmbedder struct {
	mu         sync.Mutex
	dim        int
	embedCalls int
	batchCalls int
	short      int // vectors to drop from the end of each batch
	err        error
}

func (f *fakeEmbedder) vector(seed string) []float32 {
	vec := make([]float32, f.dim)
	for i := range vec {
		vec[i] = float32(len(seed)%7+i%3) / 10
	}
	return vec
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.embedCalls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.batchCalls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, 0, len(texts))
	for i, t := range texts {
		if i >= len(texts)-f.short {
			break
		}
		out = append(out, f.vector(t))
	}
	return out, nil
}

func (f *fakeEmbedder) Model() string { return "fake-embedder" }

// fakeVectorStore records upserts and serves canned search results.
type fakeVectorStore struct {
	mu          sync.Mutex
	upserted    map[string][]schema.Chunk
	deleted     []string
	results     []schema.SearchResult
	searchCalls int
	lastSearch  struct {
		orgID     string
		docType   string
		threshold float64
		topK      int
	}
	err error
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{upserted: make(map[string][]schema.Chunk)}
}

func (f *fakeVectorStore) Upsert(_ context.Context, doc interfaces.DocumentMeta, chunks []schema.Chunk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.upserted[doc.ID] = chunks
	return nil
}

func (f *fakeVectorStore) DeleteDocument(_ context.Context, _, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, documentID)
	delete(f.upserted, documentID)
	return nil
}

func (f *fakeVectorStore) Search(_ context.Context, orgID string, _ []float32, docType string, threshold float64, topK int) ([]schema.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.lastSearch.orgID = orgID
	f.lastSearch.docType = docType
	f.lastSearch.threshold = threshold
	f.lastSearch.topK = topK
	if f.err != nil {
		return nil, f.err
	}
	var out []schema.SearchResult
	for _, r := range f.results {
		if r.Similarity >= threshold {
			out = append(out, r)
		}
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

// fakeChunkStore keeps chunk rows in memory.
type fakeChunkStore struct {
	mu     sync.Mutex
	chunks map[string][]schema.Chunk
	model  string
	err    error
}

func newFakeChunkStore() *fakeChunkStore {
	return &fakeChunkStore{chunks: make(map[string][]schema.Chunk)}
}

func (f *fakeChunkStore) Replace(_ context.Context, documentID string, chunks []schema.Chunk, embeddingModel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.chunks[documentID] = chunks
	f.model = embeddingModel
	return nil
}

func (f *fakeChunkStore) DeleteByDocument(_ context.Context, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.chunks, documentID)
	return nil
}

func (f *fakeChunkStore) CountByDocument(_ context.Context, documentID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.chunks[documentID])), nil
}

// fakeLLM echoes a canned answer and records the prompt it saw.
type fakeLLM struct {
	answer     string
	lastPrompt string
	calls      int
	err        error
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ interfaces.GenerateOptions) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// recordingReporter captures the progress sequence of a run.
type recordingReporter struct {
	mu     sync.Mutex
	stages []string
	values []int
}

func (r *recordingReporter) Report(_ context.Context, stage string, progress int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
	r.values = append(r.values, progress)
}

func (r *recordingReporter) last() (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stages) == 0 {
		return "", -1
	}
	return r.stages[len(r.stages)-1], r.values[len(r.values)-1]
}

// fakeChunker returns a fixed chunk set regardless of input.
type fakeChunker struct {
	chunks []schema.Chunk
}

func (f *fakeChunker) Chunk(string) []schema.Chunk { return f.chunks }

var (
	_ interfaces.Chunker        = (*fakeChunker)(nil)
	_ interfaces.EmbeddingModel = (*fakeEmbedder)(nil)
	_ interfaces.VectorStore    = (*fakeVectorStore)(nil)
	_ interfaces.ChunkStore     = (*fakeChunkStore)(nil)
	_ interfaces.LLM            = (*fakeLLM)(nil)
	_ ProgressReporter          = (*recordingReporter)(nil)
)

func cannedChunks(n int) []schema.Chunk {
	chunks := make([]schema.Chunk, n)
	for i := range chunks {
		chunks[i] = schema.Chunk{
			Index:      i,
			Content:    fmt.Sprintf("chunk %d content", i),
			TokenCount: 4,
		}
	}
	return chunks
}

func cannedResults(n int, baseSim float64) []schema.SearchResult {
	results := make([]schema.SearchResult, n)
	for i := range results {
		results[i] = schema.SearchResult{
			ChunkID:    fmt.Sprintf("chunk-%d", i),
			DocumentID: fmt.Sprintf("doc-%d", i%2),
			Content:    fmt.Sprintf("passage number %d", i),
			Similarity: baseSim - float64(i)*0.05,
			DocTitle:   fmt.Sprintf("Document %d", i%2),
			DocType:    "policy",
			DocPath:    fmt.Sprintf("docs/doc-%d.md", i%2),
			ChunkIndex: i,
		}
	}
	return results
}
