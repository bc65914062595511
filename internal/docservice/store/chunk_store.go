package store

import (
	"context"

	"docuhub/internal/models"
	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/schema"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChunkStore is the relational side of chunk persistence. Vectors live
// in Milvus; these rows carry the text and bookkeeping.
type ChunkStore struct {
	db *gorm.DB
}

// NewChunkStore creates a ChunkStore.
func NewChunkStore(db *gorm.DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// Replace swaps the document's chunk rows for the given set in one
// transaction. A failed replace leaves the previous rows intact.
func (c *ChunkStore) Replace(ctx context.Context, documentID string, chunks []schema.Chunk, embeddingModel string) error {
	rows := make([]models.DocumentChunk, len(chunks))
	for i, ch := range chunks {
		rows[i] = models.DocumentChunk{
			ID:             uuid.New().String(),
			DocumentID:     documentID,
			ChunkIndex:     ch.Index,
			Content:        ch.Content,
			TokenCount:     ch.TokenCount,
			HeaderPath:     ch.HeaderPath,
			EmbeddingModel: embeddingModel,
		}
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentID).Delete(&models.DocumentChunk{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

// DeleteByDocument removes every chunk row of a document.
func (c *ChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	return c.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&models.DocumentChunk{}).Error
}

// CountByDocument returns the number of stored chunk rows.
func (c *ChunkStore) CountByDocument(ctx context.Context, documentID string) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.DocumentChunk{}).
		Where("document_id = ?", documentID).
		Count(&count).Error
	return count, err
}

// ListByDocument returns a document's chunk rows in chunk order.
func (c *ChunkStore) ListByDocument(ctx context.Context, documentID string) ([]models.DocumentChunk, error) {
	var rows []models.DocumentChunk
	err := c.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("chunk_index ASC").
		Find(&rows).Error
	return rows, err
}

var _ interfaces.ChunkStore = (*ChunkStore)(nil)
