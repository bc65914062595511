package store

import (
	"context"
	"testing"
	"time"

	"docuhub/internal/models"

	"github.com/google/uuid"
)

func seedJob(t *testing.T, st *Store, documentID string, status models.JobStatus, createdAt time.Time) models.ProcessingJob {
	t.Helper()
	job := models.ProcessingJob{
		ID:             uuid.New().String(),
		DocumentID:     documentID,
		OrganizationID: "org-1",
		Status:         status,
		CreatedAt:      createdAt,
	}
	if err := st.DB.Create(&job).Error; err != nil {
		t.Fatalf("failed to seed job: %v", err)
	}
	return job
}

func TestFailedJobsSkipsRecoveredDocuments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// doc-a failed once but a later run completed; a retry sweep must
	// leave it alone.
	seedJob(t, st, "doc-a", models.JobFailed, base)
	seedJob(t, st, "doc-a", models.JobCompleted, base.Add(time.Hour))

	// doc-b's latest run failed.
	seedJob(t, st, "doc-b", models.JobCompleted, base)
	latestB := seedJob(t, st, "doc-b", models.JobFailed, base.Add(time.Hour))

	// doc-c failed twice; only the latest run should come back.
	seedJob(t, st, "doc-c", models.JobFailed, base)
	latestC := seedJob(t, st, "doc-c", models.JobFailed, base.Add(time.Hour))

	failed, err := st.FailedJobs(ctx, "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failed) != 2 {
		t.Fatalf("got %d jobs, want 2", len(failed))
	}

	byDoc := make(map[string]string, len(failed))
	for _, j := range failed {
		byDoc[j.DocumentID] = j.ID
	}
	if _, ok := byDoc["doc-a"]; ok {
		t.Error("doc-a recovered but was still listed for retry")
	}
	if byDoc["doc-b"] != latestB.ID {
		t.Errorf("doc-b: got job %s, want latest failed %s", byDoc["doc-b"], latestB.ID)
	}
	if byDoc["doc-c"] != latestC.ID {
		t.Errorf("doc-c: got job %s, want latest failed %s", byDoc["doc-c"], latestC.ID)
	}
}

func TestFailedJobsScopedToOrganization(t *testing.T) {
	st := newTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedJob(t, st, "doc-a", models.JobFailed, base)

	failed, err := st.FailedJobs(context.Background(), "org-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failed) != 0 {
		t.Errorf("got %d jobs for a foreign organization, want 0", len(failed))
	}
}
