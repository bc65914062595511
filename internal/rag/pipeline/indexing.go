// Package pipeline orchestrates the ingestion and retrieval flows:
// validate → chunk → embed → store on the way in, embed → search →
// assemble on the way out.
package pipeline

import (
	"context"
	"fmt"

	"docuhub/internal/errs"
	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/validators"
	"docuhub/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ProgressReporter receives stage and percentage updates as a
// processing run advances. Implementations must tolerate being called
// from the pipeline goroutine.
type ProgressReporter interface {
	Report(ctx context.Context, stage string, progress int)
}

// nopReporter is used when the caller does not care about progress.
type nopReporter struct{}

func (nopReporter) Report(context.Context, string, int) {}

// IndexingPipeline runs one document's content through validation,
// chunking, embedding and storage. Stages execute strictly in order; a
// failing stage aborts the run and nothing after it executes.
type IndexingPipeline struct {
	chunker     interfaces.Chunker
	embedder    interfaces.EmbeddingModel
	chunkStore  interfaces.ChunkStore
	vectorStore interfaces.VectorStore
	validation  validators.Options
	log         *logger.Logger
}

// NewIndexingPipeline creates a new IndexingPipeline.
func NewIndexingPipeline(
	chunker interfaces.Chunker,
	embedder interfaces.EmbeddingModel,
	chunkStore interfaces.ChunkStore,
	vectorStore interfaces.VectorStore,
	validation validators.Options,
	log *logger.Logger,
) *IndexingPipeline {
	return &IndexingPipeline{
		chunker:     chunker,
		embedder:    embedder,
		chunkStore:  chunkStore,
		vectorStore: vectorStore,
		validation:  validation,
		log:         log,
	}
}

// Stage labels reported while a run advances.
const (
	stageValidating = "validating"
	stageChunking   = "chunking"
	stageEmbedding  = "embedding"
	stageStoring    = "storing"
	stageDone       = "done"
)

// Run executes the full pipeline for one document. It returns the
// number of chunks stored. The chunk rows and the vectors are written
// as one logical batch: if either store fails the run fails as a whole
// and the caller is expected to retry the entire document, never
// individual chunks.
func (p *IndexingPipeline) Run(ctx context.Context, doc interfaces.DocumentMeta, content string, reporter ProgressReporter) (int, error) {
	if reporter == nil {
		reporter = nopReporter{}
	}

	p.log.Info(fmt.Sprintf("Starting indexing for document %s (org %s)", doc.ID, doc.OrganizationID))

	reporter.Report(ctx, stageValidating, 5)
	if res := validators.ValidateContent(content, p.validation); !res.Valid {
		return 0, &errs.ContentInvalid{Reason: res.Error}
	}

	reporter.Report(ctx, stageChunking, 15)
	chunks := p.chunker.Chunk(content)
	if len(chunks) == 0 {
		// Nothing to index; clear any stale state from a previous run.
		if err := p.vectorStore.DeleteDocument(ctx, doc.OrganizationID, doc.ID); err != nil {
			return 0, err
		}
		if err := p.chunkStore.DeleteByDocument(ctx, doc.ID); err != nil {
			return 0, err
		}
		reporter.Report(ctx, stageDone, 100)
		return 0, nil
	}
	p.log.Info(fmt.Sprintf("Document %s split into %d chunks", doc.ID, len(chunks)))

	reporter.Report(ctx, stageEmbedding, 35)
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	embeddings, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, err
	}
	if len(embeddings) != len(chunks) {
		// A short batch must fail the job, not crash the worker.
		return 0, fmt.Errorf("embedding batch returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	reporter.Report(ctx, stageStoring, 70)
	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := p.chunkStore.Replace(gCtx, doc.ID, chunks, p.embedder.Model()); err != nil {
			return fmt.Errorf("failed to store chunk rows: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		if err := p.vectorStore.Upsert(gCtx, doc, chunks); err != nil {
			return fmt.Errorf("failed to store vectors: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	reporter.Report(ctx, stageDone, 100)
	p.log.Info(fmt.Sprintf("Finished indexing document %s: %d chunks stored", doc.ID, len(chunks)))
	return len(chunks), nil
}
