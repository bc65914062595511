// Package vectorstore adapts the Milvus client to the VectorStore
// boundary used by the pipelines. Document metadata is stored
// denormalized next to each vector so search results are complete
// without a relational join.
package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"docuhub/internal/database/milvus"
	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/schema"
	"docuhub/pkg/logger"

	"github.com/google/uuid"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// MilvusStore implements interfaces.VectorStore on top of the shared
// Milvus client wrapper.
type MilvusStore struct {
	log        *logger.Logger
	client     client.Client
	collection string
}

// NewMilvusStore creates a new MilvusStore.
func NewMilvusStore(milvusClient *milvus.MilvusClient, log *logger.Logger) (*MilvusStore, error) {
	if milvusClient == nil || milvusClient.Client == nil {
		return nil, fmt.Errorf("milvus client is not initialized")
	}
	return &MilvusStore{
		log:        log,
		client:     milvusClient.Client,
		collection: milvusClient.Config.Collection,
	}, nil
}

// Upsert replaces all vectors for a document with the given chunks.
// Existing vectors are removed first so a reprocessing run never
// leaves stale chunks behind.
func (s *MilvusStore) Upsert(ctx context.Context, doc interfaces.DocumentMeta, chunks []schema.Chunk) error {
	if err := s.DeleteDocument(ctx, doc.OrganizationID, doc.ID); err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	n := len(chunks)
	ids := make([]string, n)
	docIDs := make([]string, n)
	orgIDs := make([]string, n)
	docTypes := make([]string, n)
	titles := make([]string, n)
	paths := make([]string, n)
	indexes := make([]int64, n)
	contents := make([]string, n)
	embeddings := make([][]float32, n)

	dim := 0
	for i, chunk := range chunks {
		ids[i] = uuid.New().String()
		docIDs[i] = doc.ID
		orgIDs[i] = doc.OrganizationID
		docTypes[i] = doc.DocType
		titles[i] = doc.Title
		paths[i] = doc.Path
		indexes[i] = int64(chunk.Index)
		contents[i] = chunk.Content
		embeddings[i] = chunk.Embedding
		if len(chunk.Embedding) > dim {
			dim = len(chunk.Embedding)
		}
	}

	columns := []entity.Column{
		entity.NewColumnVarChar(milvus.FieldID, ids),
		entity.NewColumnVarChar(milvus.FieldDocumentID, docIDs),
		entity.NewColumnVarChar(milvus.FieldOrgID, orgIDs),
		entity.NewColumnVarChar(milvus.FieldDocType, docTypes),
		entity.NewColumnVarChar(milvus.FieldDocTitle, titles),
		entity.NewColumnVarChar(milvus.FieldDocPath, paths),
		entity.NewColumnInt64(milvus.FieldChunkIndex, indexes),
		entity.NewColumnVarChar(milvus.FieldContent, contents),
		entity.NewColumnFloatVector(milvus.FieldEmbedding, dim, embeddings),
	}

	s.log.Info(fmt.Sprintf("Inserting %d vectors for document %s into collection %s", n, doc.ID, s.collection))
	if _, err := s.client.Insert(ctx, s.collection, "", columns...); err != nil {
		return fmt.Errorf("failed to insert vectors into Milvus: %w", err)
	}
	return nil
}

// DeleteDocument removes every vector belonging to a document.
func (s *MilvusStore) DeleteDocument(ctx context.Context, orgID, documentID string) error {
	expr := fmt.Sprintf(`%s == "%s" and %s == "%s"`,
		milvus.FieldOrgID, escape(orgID), milvus.FieldDocumentID, escape(documentID))
	if err := s.client.Delete(ctx, s.collection, "", expr); err != nil {
		return fmt.Errorf("failed to delete vectors from Milvus: %w", err)
	}
	return nil
}

// Search runs a similarity query scoped to one organization and an
// optional document type, keeping results at or above threshold,
// ordered by descending similarity, at most topK.
func (s *MilvusStore) Search(ctx context.Context, orgID string, embedding []float32, docType string, threshold float64, topK int) ([]schema.SearchResult, error) {
	filterExpr := fmt.Sprintf(`%s == "%s"`, milvus.FieldOrgID, escape(orgID))
	if docType != "" {
		filterExpr += fmt.Sprintf(` and %s == "%s"`, milvus.FieldDocType, escape(docType))
	}

	searchParams, _ := entity.NewIndexIvfFlatSearchParam(10)
	outputFields := []string{
		milvus.FieldID, milvus.FieldDocumentID, milvus.FieldDocType,
		milvus.FieldDocTitle, milvus.FieldDocPath, milvus.FieldChunkIndex,
		milvus.FieldContent,
	}

	s.log.Debug(fmt.Sprintf("Searching collection %s with filter %q topK=%d", s.collection, filterExpr, topK))

	searchResults, err := s.client.Search(
		ctx, s.collection, []string{}, filterExpr, outputFields,
		[]entity.Vector{entity.FloatVector(embedding)},
		milvus.FieldEmbedding, entity.COSINE, topK, searchParams,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search in Milvus: %w", err)
	}

	var results []schema.SearchResult
	for _, res := range searchResults {
		cols := columnIndex(res.Fields)

		for i := 0; i < res.ResultCount; i++ {
			score := float64(res.Scores[i])
			if score < threshold {
				continue
			}
			results = append(results, schema.SearchResult{
				ChunkID:    cols.varchar(milvus.FieldID, i),
				DocumentID: cols.varchar(milvus.FieldDocumentID, i),
				Content:    cols.varchar(milvus.FieldContent, i),
				Similarity: score,
				DocTitle:   cols.varchar(milvus.FieldDocTitle, i),
				DocType:    cols.varchar(milvus.FieldDocType, i),
				DocPath:    cols.varchar(milvus.FieldDocPath, i),
				ChunkIndex: int(cols.int64(milvus.FieldChunkIndex, i)),
			})
		}
	}

	return results, nil
}

// columns provides typed access to search result fields by name.
type columns map[string]entity.Column

func columnIndex(fields []entity.Column) columns {
	c := make(columns, len(fields))
	for _, f := range fields {
		c[f.Name()] = f
	}
	return c
}

func (c columns) varchar(name string, i int) string {
	if col, ok := c[name].(*entity.ColumnVarChar); ok {
		data := col.Data()
		if i < len(data) {
			return data[i]
		}
	}
	return ""
}

func (c columns) int64(name string, i int) int64 {
	if col, ok := c[name].(*entity.ColumnInt64); ok {
		data := col.Data()
		if i < len(data) {
			return data[i]
		}
	}
	return 0
}

// escape keeps identifiers safe inside a Milvus filter expression.
func escape(s string) string {
	return strings.ReplaceAll(s, `"`, ``)
}

var _ interfaces.VectorStore = (*MilvusStore)(nil)
