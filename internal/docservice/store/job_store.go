package store

import (
	"context"
	"errors"
	"time"

	"docuhub/internal/errs"
	"docuhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StartJob creates a pending processing job for a document unless one
// is already active. The check and the insert run in one transaction,
// so two concurrent process requests for the same document resolve to
// a single job: the loser of the race gets the winner's job back with
// created=false.
func (s *Store) StartJob(ctx context.Context, orgID, documentID string) (*models.ProcessingJob, bool, error) {
	var job models.ProcessingJob
	created := false

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ProcessingJob
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("document_id = ? AND status IN ?", documentID, []models.JobStatus{models.JobPending, models.JobProcessing}).
			First(&existing).Error
		if err == nil {
			job = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		job = models.ProcessingJob{
			ID:             uuid.New().String(),
			DocumentID:     documentID,
			OrganizationID: orgID,
			Status:         models.JobPending,
			Stage:          models.StageQueued,
		}
		created = true
		return tx.Create(&job).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &job, created, nil
}

// GetJob fetches a job by id, scoped to the organization.
func (s *Store) GetJob(ctx context.Context, orgID, id string) (*models.ProcessingJob, error) {
	var job models.ProcessingJob
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if job.OrganizationID != orgID {
		return nil, errs.ErrNotFound
	}
	return &job, nil
}

// LatestJob returns the most recent job for a document, or ErrNotFound
// when the document was never processed.
func (s *Store) LatestJob(ctx context.Context, orgID, documentID string) (*models.ProcessingJob, error) {
	var job models.ProcessingJob
	err := s.DB.WithContext(ctx).
		Where("organization_id = ? AND document_id = ?", orgID, documentID).
		Order("created_at DESC").
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkProcessing transitions a job from pending to processing and
// stamps its start time.
func (s *Store) MarkProcessing(ctx context.Context, jobID string) error {
	now := time.Now()
	return s.DB.WithContext(ctx).Model(&models.ProcessingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":     models.JobProcessing,
			"started_at": &now,
		}).Error
}

// UpdateProgress records the current stage and percentage of a running
// job.
func (s *Store) UpdateProgress(ctx context.Context, jobID, stage string, progress int) error {
	return s.DB.WithContext(ctx).Model(&models.ProcessingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"stage":    stage,
			"progress": progress,
		}).Error
}

// CompleteJob marks a job finished.
func (s *Store) CompleteJob(ctx context.Context, jobID string) error {
	now := time.Now()
	return s.DB.WithContext(ctx).Model(&models.ProcessingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       models.JobCompleted,
			"stage":        models.StageDone,
			"progress":     100,
			"error":        "",
			"completed_at": &now,
		}).Error
}

// FailJob marks a job failed with its error message.
func (s *Store) FailJob(ctx context.Context, jobID, message string) error {
	now := time.Now()
	return s.DB.WithContext(ctx).Model(&models.ProcessingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       models.JobFailed,
			"error":        message,
			"completed_at": &now,
		}).Error
}

// FailedJobs lists the jobs of documents whose most recent run
// failed, one per document, so a retry sweep touches each broken
// document once and leaves healthy ones alone. A document with a
// failed run that was later reprocessed successfully is excluded.
func (s *Store) FailedJobs(ctx context.Context, orgID string) ([]models.ProcessingJob, error) {
	var jobs []models.ProcessingJob
	err := s.DB.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var failed []models.ProcessingJob
	for _, j := range jobs {
		if seen[j.DocumentID] {
			continue
		}
		seen[j.DocumentID] = true
		if j.Status == models.JobFailed {
			failed = append(failed, j)
		}
	}
	return failed, nil
}

// JobMetrics aggregates processing activity over a day window.
type JobMetrics struct {
	WindowDays     int   `json:"windowDays"`
	TotalDocuments int64 `json:"totalDocuments"`
	Vectorized     int64 `json:"vectorizedDocuments"`
	TotalChunks    int64 `json:"totalChunks"`
	JobsCompleted  int64 `json:"jobsCompleted"`
	JobsFailed     int64 `json:"jobsFailed"`
	JobsActive     int64 `json:"jobsActive"`
}

// Metrics computes the organization's processing metrics for the last
// N days. Document and chunk totals are point-in-time; job counts are
// bounded by the window.
func (s *Store) Metrics(ctx context.Context, orgID string, days int) (*JobMetrics, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	m := &JobMetrics{WindowDays: days}

	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.Document{}).Where("organization_id = ?", orgID).Count(&m.TotalDocuments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Document{}).Where("organization_id = ? AND vectorized = ?", orgID, true).Count(&m.Vectorized).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.DocumentChunk{}).
		Joins("JOIN documents ON documents.id = document_chunks.document_id").
		Where("documents.organization_id = ?", orgID).
		Count(&m.TotalChunks).Error; err != nil {
		return nil, err
	}

	jobs := db.Model(&models.ProcessingJob{}).Where("organization_id = ? AND created_at >= ?", orgID, since)
	if err := jobs.Session(&gorm.Session{}).Where("status = ?", models.JobCompleted).Count(&m.JobsCompleted).Error; err != nil {
		return nil, err
	}
	if err := jobs.Session(&gorm.Session{}).Where("status = ?", models.JobFailed).Count(&m.JobsFailed).Error; err != nil {
		return nil, err
	}
	if err := jobs.Session(&gorm.Session{}).Where("status IN ?", []models.JobStatus{models.JobPending, models.JobProcessing}).Count(&m.JobsActive).Error; err != nil {
		return nil, err
	}
	return m, nil
}
