package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"docuhub/internal/convert"
	"docuhub/internal/docservice/store"
	"docuhub/internal/errs"
	"docuhub/internal/models"
	"docuhub/internal/rag/validators"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"gorm.io/datatypes"
)

// UploadInput carries one multipart file upload.
type UploadInput struct {
	FileName    string
	Data        []byte
	Path        string
	Title       string
	Description string
	DocType     string
}

// UploadResult is the outcome of one upload. Job is nil when content
// validation blocked processing; the document is still created so the
// caller can inspect and fix it.
type UploadResult struct {
	Document   *models.Document
	Job        *models.ProcessingJob
	Validation validators.Result
}

// Upload converts an uploaded file to Markdown, archives the original,
// creates the document and enqueues processing.
func (s *DocumentService) Upload(ctx context.Context, orgID string, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, &errs.ValidationError{Field: "file", Message: "file is empty"}
	}

	content, err := s.converter.Convert(in.Data)
	if err != nil {
		return nil, &errs.ValidationError{Field: "file", Message: err.Error()}
	}

	meta, body, err := convert.SplitFrontmatter(content)
	if err != nil {
		return nil, &errs.ValidationError{Field: "file", Message: err.Error()}
	}

	doc := &models.Document{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Path:           store.NormalizePath(firstNonEmpty(in.Path, in.FileName)),
		Title:          firstNonEmpty(in.Title, metaString(meta, "title"), stemOf(in.FileName)),
		Description:    firstNonEmpty(in.Description, metaString(meta, "description")),
		Content:        body,
		DocType:        models.DocType(firstNonEmpty(in.DocType, metaString(meta, "type"), string(models.DocTypeOther))),
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err == nil {
			doc.Frontmatter = datatypes.JSON(raw)
		}
	}

	// A path collision fails before the original is archived so a
	// rejected upload never leaves an orphaned object behind.
	if _, err := s.store.GetDocumentByPath(ctx, orgID, doc.Path); err == nil {
		return nil, &errs.ValidationError{Field: "path", Message: "a document with this path already exists"}
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	objectKey := fmt.Sprintf("%s/%s/%s", orgID, doc.ID, filepath.Base(in.FileName))
	_, err = s.objects.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(in.Data), int64(len(in.Data)), minio.PutObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to archive original upload: %w", err)
	}
	doc.SourceObject = objectKey

	if err := s.store.CreateDocument(ctx, doc); err != nil {
		// Concurrent uploads can still collide inside CreateDocument.
		if rmErr := s.objects.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); rmErr != nil {
			s.log.WithError(rmErr).Warn("Failed to remove archived object of rejected upload")
		}
		return nil, err
	}

	result := &UploadResult{
		Document:   doc,
		Validation: validators.ValidateContent(body, s.validationOptions()),
	}
	if !result.Validation.Valid {
		s.log.WithPayload(map[string]interface{}{
			"document_id": doc.ID,
			"reason":      result.Validation.Error,
		}).Warn("Upload content failed validation, processing blocked")
		return result, nil
	}

	job, err := s.enqueueProcessing(ctx, orgID, doc.ID)
	if err != nil {
		return nil, err
	}
	result.Job = job
	return result, nil
}

// CreateInput carries a raw Markdown document creation.
type CreateInput struct {
	Path        string
	Title       string
	Description string
	Content     string
	DocType     string
	Frontmatter map[string]interface{}
}

// Create stores a Markdown document supplied directly in the request
// body and enqueues processing.
func (s *DocumentService) Create(ctx context.Context, orgID string, in CreateInput) (*models.Document, *models.ProcessingJob, error) {
	doc := &models.Document{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Path:           store.NormalizePath(in.Path),
		Title:          in.Title,
		Description:    in.Description,
		Content:        in.Content,
		DocType:        models.DocType(firstNonEmpty(in.DocType, string(models.DocTypeOther))),
	}
	if err := validateDocument(doc); err != nil {
		return nil, nil, err
	}
	if in.Frontmatter != nil {
		raw, err := json.Marshal(in.Frontmatter)
		if err == nil {
			doc.Frontmatter = datatypes.JSON(raw)
		}
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, nil, err
	}

	job, err := s.enqueueProcessing(ctx, orgID, doc.ID)
	if err != nil {
		return nil, nil, err
	}
	return doc, job, nil
}

// Get returns one document.
func (s *DocumentService) Get(ctx context.Context, orgID, id string) (*models.Document, error) {
	return s.store.GetDocument(ctx, orgID, id)
}

// List returns the organization's documents with optional filters.
func (s *DocumentService) List(ctx context.Context, orgID string, filter store.ListFilter) ([]models.Document, error) {
	if filter.DocType != "" && !models.ValidDocType(models.DocType(filter.DocType)) {
		return nil, &errs.ValidationError{Field: "type", Message: "unknown document type"}
	}
	return s.store.ListDocuments(ctx, orgID, filter)
}

// UpdateInput carries a document edit. Nil fields are left unchanged.
type UpdateInput struct {
	Path        *string
	Title       *string
	Description *string
	Content     *string
	DocType     *string
}

// Update edits a document. A content change resets the vectorization
// flag and enqueues reprocessing so search never serves stale chunks
// as current.
func (s *DocumentService) Update(ctx context.Context, orgID, id string, in UpdateInput) (*models.Document, *models.ProcessingJob, error) {
	doc, err := s.store.GetDocument(ctx, orgID, id)
	if err != nil {
		return nil, nil, err
	}

	contentChanged := false
	if in.Path != nil {
		doc.Path = store.NormalizePath(*in.Path)
	}
	if in.Title != nil {
		doc.Title = *in.Title
	}
	if in.Description != nil {
		doc.Description = *in.Description
	}
	if in.DocType != nil {
		doc.DocType = models.DocType(*in.DocType)
	}
	if in.Content != nil && *in.Content != doc.Content {
		doc.Content = *in.Content
		doc.Vectorized = false
		contentChanged = true
	}
	if err := validateDocument(doc); err != nil {
		return nil, nil, err
	}

	if err := s.store.UpdateDocument(ctx, orgID, doc); err != nil {
		return nil, nil, err
	}

	var job *models.ProcessingJob
	if contentChanged {
		job, err = s.enqueueProcessing(ctx, orgID, doc.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	return doc, job, nil
}

// Delete removes a document, its chunk rows, its vectors and the
// archived original.
func (s *DocumentService) Delete(ctx context.Context, orgID, id string) error {
	doc, err := s.store.GetDocument(ctx, orgID, id)
	if err != nil {
		return err
	}

	if err := s.vectorStore.DeleteDocument(ctx, orgID, id); err != nil {
		return fmt.Errorf("failed to delete vectors: %w", err)
	}
	if err := s.store.DeleteDocument(ctx, orgID, id); err != nil {
		return err
	}

	if doc.SourceObject != "" {
		if err := s.objects.RemoveObject(ctx, s.bucket, doc.SourceObject, minio.RemoveObjectOptions{}); err != nil {
			// The row is gone; an orphaned object is not worth failing
			// the request over.
			s.log.WithError(err).Warn("Failed to remove archived original")
		}
	}
	return nil
}

// Chunks returns a document's stored chunk rows in order.
func (s *DocumentService) Chunks(ctx context.Context, orgID, id string) ([]models.DocumentChunk, error) {
	if _, err := s.store.GetDocument(ctx, orgID, id); err != nil {
		return nil, err
	}
	return s.chunks.ListByDocument(ctx, id)
}

func (s *DocumentService) validationOptions() validators.Options {
	v := s.cfg.Pipeline.Validation
	return validators.Options{
		MinLength:   v.MinLength,
		MaxLength:   v.MaxLength,
		RequireText: v.RequireText,
	}
}

func validateDocument(doc *models.Document) error {
	if doc.Path == "" {
		return &errs.ValidationError{Field: "path", Message: "path is required"}
	}
	if doc.Title == "" {
		return &errs.ValidationError{Field: "title", Message: "title is required"}
	}
	if !models.ValidDocType(doc.DocType) {
		return &errs.ValidationError{Field: "docType", Message: "must be one of policy, procedure, manual, other"}
	}
	return nil
}

func metaString(meta map[string]interface{}, key string) string {
	if meta == nil {
		return ""
	}
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func stemOf(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
