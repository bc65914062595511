// Package interfaces defines the collaborator boundaries of the
// ingestion and retrieval pipelines. Implementations live in their own
// packages and register a compile-time check against these types.
package interfaces

import (
	"context"

	"docuhub/internal/rag/schema"
)

// Chunker splits document text into ordered, overlapping chunks.
// Implementations must be pure: the same text and configuration always
// produce the same chunks.
type Chunker interface {
	Chunk(text string) []schema.Chunk
}

// EmbeddingModel is a text embedding provider.
type EmbeddingModel interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the provider model identifier, used for dimension
	// validation and stored alongside each chunk.
	Model() string
}

// LLM is a text generation provider.
type LLM interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions tune a single generation call. Zero values fall back
// to provider defaults.
type GenerateOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// VectorStore stores chunk embeddings and answers similarity queries.
type VectorStore interface {
	// Upsert replaces all vectors for a document with the given chunks.
	Upsert(ctx context.Context, doc DocumentMeta, chunks []schema.Chunk) error

	// DeleteDocument removes every vector belonging to a document.
	DeleteDocument(ctx context.Context, orgID, documentID string) error

	// Search returns chunks scoring at least threshold against the
	// query embedding, ordered by descending similarity, at most topK.
	// docType narrows the search when non-empty.
	Search(ctx context.Context, orgID string, embedding []float32, docType string, threshold float64, topK int) ([]schema.SearchResult, error)
}

// DocumentMeta is the denormalized document identity stored next to
// each vector so search results need no relational join.
type DocumentMeta struct {
	ID             string
	OrganizationID string
	Title          string
	Path           string
	DocType        string
}

// ChunkStore persists chunk rows in the relational store. Replace is
// transactional: either the full batch lands or nothing changes.
type ChunkStore interface {
	Replace(ctx context.Context, documentID string, chunks []schema.Chunk, embeddingModel string) error
	DeleteByDocument(ctx context.Context, documentID string) error
	CountByDocument(ctx context.Context, documentID string) (int64, error)
}
