package models

import "time"

// JobStatus is the lifecycle state of one processing run.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Pipeline stage labels written into ProcessingJob.Stage as the run
// advances.
const (
	StageQueued     = "queued"
	StageValidating = "validating"
	StageChunking   = "chunking"
	StageEmbedding  = "embedding"
	StageStoring    = "storing"
	StageDone       = "done"
)

// ProcessingJob tracks one document's chunk/embed/store pipeline run.
// Only the pipeline worker for the run writes to it; at most one
// pending or processing job exists per document.
type ProcessingJob struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	DocumentID     string     `gorm:"index;not null;size:36" json:"documentId"`
	OrganizationID string     `gorm:"index;not null;size:36" json:"organizationId"`
	Status         JobStatus  `gorm:"index;size:16;default:pending" json:"status"`
	Stage          string     `gorm:"size:32" json:"stage"`
	Progress       int        `json:"progress"` // 0..100
	Error          string     `gorm:"size:2048" json:"error,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Active reports whether the job still owns the document's pipeline.
func (j *ProcessingJob) Active() bool {
	return j.Status == JobPending || j.Status == JobProcessing
}
