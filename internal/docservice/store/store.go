// Package store persists documents, chunks and processing jobs in
// MySQL, with a Redis-backed cache in front of job status reads.
package store

import (
	"docuhub/internal/models"
	"docuhub/pkg/logger"

	"gorm.io/gorm"
)

// Store bundles all relational persistence for the document service.
type Store struct {
	DB  *gorm.DB
	log *logger.Logger
}

// NewStore creates a Store on an established database handle.
func NewStore(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{DB: db, log: log}
}

// AutoMigrate creates or updates the schema for all service tables.
func (s *Store) AutoMigrate() error {
	return s.DB.AutoMigrate(
		&models.Document{},
		&models.DocumentChunk{},
		&models.ProcessingJob{},
	)
}
