package store

import (
	"context"
	"errors"
	"strings"

	"docuhub/internal/errs"
	"docuhub/internal/models"

	"github.com/gobwas/glob"
	"gorm.io/gorm"
)

// ListFilter narrows a document listing. Zero values mean no filter.
type ListFilter struct {
	DocType string
	// PathGlob filters document paths with a glob pattern, e.g.
	// "policies/**" or "*.md".
	PathGlob string
	// Vectorized filters on vectorization state when non-nil.
	Vectorized *bool
	Limit      int
	Offset     int
}

// CreateDocument inserts a new document. Path collisions within the
// organization come back as a ValidationError, not a bare driver error.
func (s *Store) CreateDocument(ctx context.Context, doc *models.Document) error {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Document{}).
		Where("organization_id = ? AND path = ?", doc.OrganizationID, doc.Path).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return &errs.ValidationError{Field: "path", Message: "a document with this path already exists"}
	}
	return s.DB.WithContext(ctx).Create(doc).Error
}

// GetDocument fetches a document by id, scoped to the organization. A
// document owned by another organization is reported as not found, so
// identifiers never leak across tenants.
func (s *Store) GetDocument(ctx context.Context, orgID, id string) (*models.Document, error) {
	var doc models.Document
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if doc.OrganizationID != orgID {
		return nil, errs.ErrNotFound
	}
	return &doc, nil
}

// GetDocumentByPath fetches a document by its organization-unique path.
func (s *Store) GetDocumentByPath(ctx context.Context, orgID, path string) (*models.Document, error) {
	var doc models.Document
	err := s.DB.WithContext(ctx).
		Where("organization_id = ? AND path = ?", orgID, path).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns the organization's documents, newest first.
// The path glob is applied after the SQL filters since MySQL has no
// glob matching.
func (s *Store) ListDocuments(ctx context.Context, orgID string, filter ListFilter) ([]models.Document, error) {
	q := s.DB.WithContext(ctx).Where("organization_id = ?", orgID)
	if filter.DocType != "" {
		q = q.Where("doc_type = ?", filter.DocType)
	}
	if filter.Vectorized != nil {
		q = q.Where("vectorized = ?", *filter.Vectorized)
	}

	var docs []models.Document
	if err := q.Order("updated_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}

	if filter.PathGlob != "" {
		matcher, err := glob.Compile(filter.PathGlob, '/')
		if err != nil {
			return nil, &errs.ValidationError{Field: "pathGlob", Message: "invalid glob pattern"}
		}
		filtered := docs[:0]
		for _, d := range docs {
			if matcher.Match(d.Path) {
				filtered = append(filtered, d)
			}
		}
		docs = filtered
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(docs) {
			return []models.Document{}, nil
		}
		docs = docs[filter.Offset:]
	}
	if filter.Limit > 0 && len(docs) > filter.Limit {
		docs = docs[:filter.Limit]
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// UpdateDocument persists changes to an existing document after
// re-checking ownership. A path change is validated against the
// organization-unique constraint.
func (s *Store) UpdateDocument(ctx context.Context, orgID string, doc *models.Document) error {
	existing, err := s.GetDocument(ctx, orgID, doc.ID)
	if err != nil {
		return err
	}
	if doc.Path != existing.Path {
		var count int64
		err := s.DB.WithContext(ctx).Model(&models.Document{}).
			Where("organization_id = ? AND path = ? AND id <> ?", orgID, doc.Path, doc.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &errs.ValidationError{Field: "path", Message: "a document with this path already exists"}
		}
	}
	return s.DB.WithContext(ctx).Save(doc).Error
}

// DeleteDocument removes a document and its chunk rows. Vector cleanup
// is the caller's responsibility since it lives in a different store.
func (s *Store) DeleteDocument(ctx context.Context, orgID, id string) error {
	if _, err := s.GetDocument(ctx, orgID, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.DocumentChunk{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.ProcessingJob{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Document{}, "id = ?", id).Error
	})
}

// SetVectorized flips the document's vectorization flag.
func (s *Store) SetVectorized(ctx context.Context, id string, vectorized bool) error {
	return s.DB.WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", id).
		Update("vectorized", vectorized).Error
}

// NormalizePath collapses the separators of a client-supplied document
// path into the canonical form stored in the unique index.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
