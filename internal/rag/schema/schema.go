// Package schema holds the data types carried through the ingestion
// and retrieval pipelines.
package schema

// Chunk is a bounded span of document text sized for embedding.
// Embedding is populated by the embedding stage; it is empty when the
// chunk leaves the chunker.
type Chunk struct {
	// Index is the ordinal position of the chunk within its document.
	Index int

	// Content is the chunk text, including any header prefix.
	Content string

	// TokenCount is the estimated token count of Content.
	TokenCount int

	// HeaderPath is the enclosing Markdown header trail, joined with
	// " > ", or empty when the chunk is not under a header.
	HeaderPath string

	// Embedding is the vector representation of Content.
	Embedding []float32
}

// SearchResult is one ranked chunk returned by semantic search. It is
// ephemeral and never persisted.
type SearchResult struct {
	ChunkID    string  `json:"chunkId"`
	DocumentID string  `json:"documentId"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	DocTitle   string  `json:"documentTitle"`
	DocType    string  `json:"documentType"`
	DocPath    string  `json:"documentPath"`
	ChunkIndex int     `json:"chunkIndex"`
}

// DocumentGroup buckets search results by their parent document,
// preserving per-bucket ranking. Used by grouped search mode.
type DocumentGroup struct {
	DocumentID string         `json:"documentId"`
	Title      string         `json:"documentTitle"`
	Path       string         `json:"documentPath"`
	DocType    string         `json:"documentType"`
	Results    []SearchResult `json:"results"`
}

// RAGSource is the citation record accompanying one context segment.
type RAGSource struct {
	DocumentID string  `json:"documentId"`
	Title      string  `json:"title"`
	Path       string  `json:"path"`
	ChunkIndex int     `json:"chunkIndex"`
	Similarity float64 `json:"similarity"`
}

// RAGContext is the assembled retrieval context for one query.
type RAGContext struct {
	Query   string         `json:"query"`
	Context string         `json:"context"`
	Results []SearchResult `json:"results"`
	Sources []RAGSource    `json:"sources"`
	Answer  string         `json:"answer,omitempty"`
}
