package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"docuhub/internal/docservice/store"
	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/pipeline"
	"docuhub/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// WorkerPool consumes processing messages and runs the indexing
// pipeline. Pipeline failures become a failed job status, never a
// crashed worker; the message is committed either way since retry is
// an explicit user action.
type WorkerPool struct {
	reader   *kafka.Reader
	store    *store.Store
	jobCache *store.JobCache
	indexing *pipeline.IndexingPipeline
	workers  int
	log      *logger.Logger

	wg sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
func NewWorkerPool(reader *kafka.Reader, st *store.Store, jobCache *store.JobCache, indexing *pipeline.IndexingPipeline, workers int, log *logger.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 4
	}
	return &WorkerPool{
		reader:   reader,
		store:    st,
		jobCache: jobCache,
		indexing: indexing,
		workers:  workers,
		log:      log,
	}
}

// Start launches the worker goroutines. They run until ctx is
// cancelled; Close waits for in-flight jobs to finish.
func (w *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.run(ctx, id)
		}(i)
	}
	w.log.Info(fmt.Sprintf("Processing worker pool started with %d workers", w.workers))
}

func (w *WorkerPool) run(ctx context.Context, id int) {
	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.WithError(err).Error("Error fetching message from Kafka")
			continue
		}

		if err := w.handle(ctx, msg); err != nil {
			w.log.WithError(err).WithPayload(map[string]interface{}{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).Error("Error handling processing message")
		}

		if err := w.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			w.log.WithError(err).Error("Failed to commit Kafka message")
		}
	}
}

// handle runs one processing job end to end.
func (w *WorkerPool) handle(ctx context.Context, msg kafka.Message) error {
	var pm ProcessMessage
	if err := json.Unmarshal(msg.Value, &pm); err != nil {
		// A malformed message can never succeed; drop it.
		return fmt.Errorf("malformed processing message: %w", err)
	}

	log := w.log.WithPayload(map[string]interface{}{
		"job_id":      pm.JobID,
		"document_id": pm.DocumentID,
	})

	job, err := w.store.GetJob(ctx, pm.OrganizationID, pm.JobID)
	if err != nil {
		return fmt.Errorf("job %s not found: %w", pm.JobID, err)
	}
	if !job.Active() {
		// Already resolved, e.g. replayed after a rebalance.
		log.Debug("Skipping message for settled job")
		return nil
	}

	doc, err := w.store.GetDocument(ctx, pm.OrganizationID, pm.DocumentID)
	if err != nil {
		w.failJob(ctx, pm.JobID, pm.DocumentID, "document no longer exists")
		return nil
	}

	if err := w.store.MarkProcessing(ctx, pm.JobID); err != nil {
		return err
	}
	w.refreshCache(ctx, pm.OrganizationID, pm.JobID)

	reporter := &jobReporter{pool: w, orgID: pm.OrganizationID, jobID: pm.JobID}
	meta := interfaces.DocumentMeta{
		ID:             doc.ID,
		OrganizationID: doc.OrganizationID,
		Title:          doc.Title,
		Path:           doc.Path,
		DocType:        string(doc.DocType),
	}

	chunkCount, err := w.indexing.Run(ctx, meta, doc.Content, reporter)
	if err != nil {
		log.WithError(err).Error("Indexing pipeline failed")
		w.failJob(ctx, pm.JobID, pm.DocumentID, err.Error())
		return nil
	}

	if err := w.store.SetVectorized(ctx, doc.ID, chunkCount > 0); err != nil {
		return err
	}
	if err := w.store.CompleteJob(ctx, pm.JobID); err != nil {
		return err
	}
	w.refreshCache(ctx, pm.OrganizationID, pm.JobID)
	log.Info(fmt.Sprintf("Document processed: %d chunks", chunkCount))
	return nil
}

func (w *WorkerPool) failJob(ctx context.Context, jobID, documentID, message string) {
	if err := w.store.FailJob(ctx, jobID, message); err != nil {
		w.log.WithError(err).Error("Failed to record job failure")
	}
	// The stale snapshot is dropped; the next status read repopulates
	// it from the failed row.
	if err := w.jobCache.Invalidate(ctx, documentID); err != nil {
		w.log.WithError(err).Debug("Failed to invalidate job cache entry")
	}
}

func (w *WorkerPool) refreshCache(ctx context.Context, orgID, jobID string) {
	job, err := w.store.GetJob(ctx, orgID, jobID)
	if err != nil {
		return
	}
	if err := w.jobCache.Put(ctx, job); err != nil {
		w.log.WithError(err).Debug("Failed to refresh job cache entry")
	}
}

// Close waits for the workers to drain and releases the reader.
func (w *WorkerPool) Close() error {
	w.wg.Wait()
	return w.reader.Close()
}

// jobReporter forwards pipeline progress onto the job row and the
// status cache.
type jobReporter struct {
	pool  *WorkerPool
	orgID string
	jobID string
}

func (r *jobReporter) Report(ctx context.Context, stage string, progress int) {
	if err := r.pool.store.UpdateProgress(ctx, r.jobID, stage, progress); err != nil {
		r.pool.log.WithError(err).Debug("Failed to record job progress")
		return
	}
	r.pool.refreshCache(ctx, r.orgID, r.jobID)
}

var _ pipeline.ProgressReporter = (*jobReporter)(nil)
