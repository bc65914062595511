package service

import (
	"context"

	"docuhub/internal/docservice/queue"
	"docuhub/internal/models"
)

// Process dispatches a processing run for a document. When a run is
// already pending or processing, the existing job comes back instead
// of a second one; the call is idempotent for concurrent requesters.
func (s *DocumentService) Process(ctx context.Context, orgID, documentID string) (*models.ProcessingJob, bool, error) {
	if _, err := s.store.GetDocument(ctx, orgID, documentID); err != nil {
		return nil, false, err
	}
	return s.startJob(ctx, orgID, documentID)
}

// ProcessStatus returns the state of the latest processing run for a
// document. The redis snapshot is tried first so hot polling skips
// MySQL; a miss falls through to the job table and repopulates it.
func (s *DocumentService) ProcessStatus(ctx context.Context, orgID, documentID string) (*models.ProcessingJob, error) {
	if _, err := s.store.GetDocument(ctx, orgID, documentID); err != nil {
		return nil, err
	}

	if cached, err := s.jobCache.Get(ctx, documentID); err == nil && cached != nil {
		return cached, nil
	}

	job, err := s.store.LatestJob(ctx, orgID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.jobCache.Put(ctx, job); err != nil {
		s.log.WithError(err).Debug("Failed to cache job snapshot")
	}
	return job, nil
}

// RetryFailed re-dispatches the most recent failed job of every
// document in the organization. Documents with an active run are left
// alone.
func (s *DocumentService) RetryFailed(ctx context.Context, orgID string) ([]models.ProcessingJob, error) {
	failed, err := s.store.FailedJobs(ctx, orgID)
	if err != nil {
		return nil, err
	}

	retried := make([]models.ProcessingJob, 0, len(failed))
	for _, old := range failed {
		job, created, err := s.startJob(ctx, orgID, old.DocumentID)
		if err != nil {
			s.log.WithError(err).WithPayload(map[string]interface{}{
				"document_id": old.DocumentID,
			}).Error("Failed to retry processing job")
			continue
		}
		if created {
			retried = append(retried, *job)
		}
	}
	return retried, nil
}

// startJob runs the guarded job insert and, for a fresh job, enqueues
// the processing message. An existing active job is returned as-is.
func (s *DocumentService) startJob(ctx context.Context, orgID, documentID string) (*models.ProcessingJob, bool, error) {
	job, created, err := s.store.StartJob(ctx, orgID, documentID)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return job, false, nil
	}

	err = s.publisher.Publish(ctx, queue.ProcessMessage{
		JobID:          job.ID,
		DocumentID:     documentID,
		OrganizationID: orgID,
	})
	if err != nil {
		// Without a queue message the job would hang pending forever.
		if failErr := s.store.FailJob(ctx, job.ID, "failed to enqueue processing message"); failErr != nil {
			s.log.WithError(failErr).Error("Failed to mark unqueued job as failed")
		}
		if cacheErr := s.jobCache.Invalidate(ctx, documentID); cacheErr != nil {
			s.log.WithError(cacheErr).Debug("Failed to invalidate job snapshot")
		}
		return nil, false, err
	}

	// Polling must see the fresh run, not the previous snapshot.
	if err := s.jobCache.Put(ctx, job); err != nil {
		s.log.WithError(err).Debug("Failed to cache job snapshot")
	}
	return job, true, nil
}

func (s *DocumentService) enqueueProcessing(ctx context.Context, orgID, documentID string) (*models.ProcessingJob, error) {
	job, _, err := s.startJob(ctx, orgID, documentID)
	return job, err
}
