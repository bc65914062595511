package service

import (
	"context"
	"testing"
	"time"

	"docuhub/internal/models"

	"github.com/google/uuid"
)

func seedDocument(t *testing.T, ts *testService, orgID, path string) *models.Document {
	t.Helper()
	doc := &models.Document{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Path:           path,
		Title:          "Seeded Document",
		Content:        "# Seeded\n\nEnough content to pass validation.",
		DocType:        models.DocTypeManual,
	}
	if err := ts.store.DB.Create(doc).Error; err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return doc
}

func seedJobRow(t *testing.T, ts *testService, documentID, orgID string, status models.JobStatus, createdAt time.Time) *models.ProcessingJob {
	t.Helper()
	job := &models.ProcessingJob{
		ID:             uuid.New().String(),
		DocumentID:     documentID,
		OrganizationID: orgID,
		Status:         status,
		Stage:          models.StageDone,
		Progress:       100,
		CreatedAt:      createdAt,
	}
	if err := ts.store.DB.Create(job).Error; err != nil {
		t.Fatalf("failed to seed job: %v", err)
	}
	return job
}

func TestProcessStatusCacheMissFallsThroughToDatabase(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, ts, "org-1", "guides/setup.md")
	job := seedJobRow(t, ts, doc.ID, "org-1", models.JobCompleted, time.Now())

	got, err := ts.svc.ProcessStatus(ctx, "org-1", doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != job.ID {
		t.Errorf("got job %s, want %s from the job table", got.ID, job.ID)
	}

	// The miss repopulates the snapshot so the next poll skips MySQL.
	cached, err := ts.jobCache.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached == nil || cached.ID != job.ID {
		t.Errorf("snapshot not repopulated after miss: %+v", cached)
	}
}

func TestProcessStatusServesCachedSnapshot(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, ts, "org-1", "guides/setup.md")
	seedJobRow(t, ts, doc.ID, "org-1", models.JobProcessing, time.Now())

	// The worker's snapshot is ahead of what the test wrote to the
	// job table; polling must serve it without a second read.
	snapshot := &models.ProcessingJob{
		ID:             uuid.New().String(),
		DocumentID:     doc.ID,
		OrganizationID: "org-1",
		Status:         models.JobProcessing,
		Stage:          models.StageEmbedding,
		Progress:       60,
	}
	if err := ts.jobCache.Put(ctx, snapshot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ts.svc.ProcessStatus(ctx, "org-1", doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != snapshot.ID || got.Progress != 60 {
		t.Errorf("got %s/%d, want cached snapshot %s/60", got.ID, got.Progress, snapshot.ID)
	}
}

func TestProcessStatusUnknownDocument(t *testing.T) {
	ts := newTestService(t)

	if _, err := ts.svc.ProcessStatus(context.Background(), "org-1", "missing"); err == nil {
		t.Fatal("expected an error for an unknown document")
	}
}
