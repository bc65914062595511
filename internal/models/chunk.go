package models

import "time"

// DocumentChunk is one contiguous span of a document's content
// produced by the chunker. Chunks are created in bulk per processing
// run and replaced wholesale when a document is reprocessed.
type DocumentChunk struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	DocumentID     string    `gorm:"index;not null;size:36" json:"documentId"`
	ChunkIndex     int       `gorm:"not null" json:"chunkIndex"`
	Content        string    `gorm:"type:text" json:"content"`
	TokenCount     int       `json:"tokenCount"`
	HeaderPath     string    `gorm:"size:1024" json:"headerPath,omitempty"`
	EmbeddingModel string    `gorm:"size:128" json:"embeddingModel"`
	CreatedAt      time.Time `json:"createdAt"`
}
