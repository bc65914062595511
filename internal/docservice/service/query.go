package service

import (
	"context"

	"docuhub/internal/docservice/store"
	"docuhub/internal/errs"
	"docuhub/internal/models"
	"docuhub/internal/rag/pipeline"
	"docuhub/internal/rag/schema"
)

// SearchInput is one semantic search request. Zero thresholds and
// counts fall back to the configured defaults.
type SearchInput struct {
	Query          string
	DocType        string
	MatchThreshold float64
	MatchCount     int
	Grouped        bool
}

// SearchOutput holds either ranked or grouped results, depending on
// the request.
type SearchOutput struct {
	Results []schema.SearchResult  `json:"results,omitempty"`
	Groups  []schema.DocumentGroup `json:"groups,omitempty"`
	Grouped bool                   `json:"grouped"`
}

// Search runs a semantic search scoped to the organization.
func (s *DocumentService) Search(ctx context.Context, orgID string, in SearchInput) (*SearchOutput, error) {
	if in.DocType != "" && !models.ValidDocType(models.DocType(in.DocType)) {
		return nil, &errs.ValidationError{Field: "documentType", Message: "unknown document type"}
	}

	opts := pipeline.SearchOptions{
		OrganizationID: orgID,
		DocType:        in.DocType,
		MatchThreshold: in.MatchThreshold,
		MatchCount:     in.MatchCount,
	}
	if opts.MatchThreshold == 0 {
		opts.MatchThreshold = s.cfg.Pipeline.Search.MatchThreshold
	}
	if opts.MatchCount == 0 {
		opts.MatchCount = s.cfg.Pipeline.Search.MatchCount
	}

	out := &SearchOutput{Grouped: in.Grouped}
	if in.Grouped {
		groups, err := s.retrieval.RunGrouped(ctx, in.Query, opts)
		if err != nil {
			return nil, err
		}
		out.Groups = groups
		return out, nil
	}

	results, err := s.retrieval.Run(ctx, in.Query, opts)
	if err != nil {
		return nil, err
	}
	out.Results = results
	return out, nil
}

// RAGInput is one retrieval-augmented query.
type RAGInput struct {
	Query            string
	DocType          string
	MaxContextChunks int
	MinSimilarity    float64
	IncludeMetadata  bool
	GenerateAnswer   bool
	Model            string
	Temperature      float32
	MaxTokens        int
}

// Query assembles retrieval context for a question and optionally
// generates an answer.
func (s *DocumentService) Query(ctx context.Context, orgID string, in RAGInput) (*schema.RAGContext, error) {
	if in.DocType != "" && !models.ValidDocType(models.DocType(in.DocType)) {
		return nil, &errs.ValidationError{Field: "documentType", Message: "unknown document type"}
	}

	opts := pipeline.RAGOptions{
		OrganizationID:   orgID,
		DocType:          in.DocType,
		MaxContextChunks: in.MaxContextChunks,
		MinSimilarity:    in.MinSimilarity,
		IncludeMetadata:  in.IncludeMetadata,
		GenerateAnswer:   in.GenerateAnswer,
		Model:            in.Model,
		Temperature:      in.Temperature,
		MaxTokens:        in.MaxTokens,
	}
	if opts.MinSimilarity == 0 {
		opts.MinSimilarity = s.cfg.Pipeline.Search.MatchThreshold
	}
	return s.assembler.Run(ctx, in.Query, opts)
}

// Metrics aggregates the organization's processing activity over a
// day window.
func (s *DocumentService) Metrics(ctx context.Context, orgID string, days int) (*store.JobMetrics, error) {
	return s.store.Metrics(ctx, orgID, days)
}
