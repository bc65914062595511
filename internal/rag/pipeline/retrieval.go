package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/schema"
	"docuhub/pkg/cache"
	"docuhub/pkg/logger"
)

// SearchOptions scope and bound one semantic search.
type SearchOptions struct {
	OrganizationID string
	DocType        string
	MatchThreshold float64 // minimum similarity, 0..1
	MatchCount     int     // maximum results
}

// RetrievalPipeline embeds a query and runs a scoped similarity
// search. Query embeddings are cached so repeated queries skip the
// provider round trip.
type RetrievalPipeline struct {
	embedder    interfaces.EmbeddingModel
	vectorStore interfaces.VectorStore
	queryCache  *cache.LRU[string, []float32]
	log         *logger.Logger
}

// NewRetrievalPipeline creates a new RetrievalPipeline.
func NewRetrievalPipeline(embedder interfaces.EmbeddingModel, vectorStore interfaces.VectorStore, log *logger.Logger) *RetrievalPipeline {
	queryCache, _ := cache.New[string, []float32](cache.Config{
		Capacity: 512,
		TTL:      10 * time.Minute,
	})
	return &RetrievalPipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		queryCache:  queryCache,
		log:         log,
	}
}

// Run executes a semantic search. A blank query returns an empty
// result set immediately without touching the embedding provider or
// the vector store.
func (p *RetrievalPipeline) Run(ctx context.Context, query string, opts SearchOptions) ([]schema.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []schema.SearchResult{}, nil
	}
	if opts.MatchCount <= 0 {
		opts.MatchCount = 10
	}

	embedding, err := p.queryEmbedding(ctx, query)
	if err != nil {
		p.log.WithError(err).Error("Failed to embed query")
		return nil, err
	}

	results, err := p.vectorStore.Search(ctx, opts.OrganizationID, embedding, opts.DocType, opts.MatchThreshold, opts.MatchCount)
	if err != nil {
		p.log.WithError(err).Error("Similarity search failed")
		return nil, err
	}

	p.log.Debug(fmt.Sprintf("Query returned %d results above threshold %.2f", len(results), opts.MatchThreshold))
	if results == nil {
		results = []schema.SearchResult{}
	}
	return results, nil
}

// RunGrouped executes a semantic search and buckets the results by
// parent document, preserving per-bucket ranking.
func (p *RetrievalPipeline) RunGrouped(ctx context.Context, query string, opts SearchOptions) ([]schema.DocumentGroup, error) {
	results, err := p.Run(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var groups []schema.DocumentGroup
	index := make(map[string]int)
	for _, r := range results {
		i, ok := index[r.DocumentID]
		if !ok {
			i = len(groups)
			index[r.DocumentID] = i
			groups = append(groups, schema.DocumentGroup{
				DocumentID: r.DocumentID,
				Title:      r.DocTitle,
				Path:       r.DocPath,
				DocType:    r.DocType,
			})
		}
		groups[i].Results = append(groups[i].Results, r)
	}
	if groups == nil {
		groups = []schema.DocumentGroup{}
	}
	return groups, nil
}

// queryEmbedding returns the embedding for a query, consulting the
// cache first. Cache keys include the model so a provider change never
// serves stale vectors.
func (p *RetrievalPipeline) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	key := p.embedder.Model() + "\x00" + query
	if vec, ok := p.queryCache.Get(key); ok {
		return vec, nil
	}
	vec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	p.queryCache.Put(key, vec)
	return vec, nil
}
