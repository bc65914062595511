// Package service implements the document service use cases on top of
// the stores, the queue and the retrieval pipelines. Handlers stay
// thin; everything with business meaning happens here.
package service

import (
	"context"
	"io"

	"docuhub/internal/config"
	"docuhub/internal/convert"
	"docuhub/internal/docservice/queue"
	"docuhub/internal/docservice/store"
	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/pipeline"
	"docuhub/pkg/logger"

	"github.com/minio/minio-go/v7"
)

// ObjectStore is the slice of the MinIO client used for archived
// upload originals.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ ObjectStore = (*minio.Client)(nil)

// DocumentService exposes the document, processing and retrieval
// operations of the API.
type DocumentService struct {
	store       *store.Store
	chunks      *store.ChunkStore
	jobCache    *store.JobCache
	publisher   *queue.Publisher
	retrieval   *pipeline.RetrievalPipeline
	assembler   *pipeline.Assembler
	vectorStore interfaces.VectorStore
	converter   *convert.Registry
	objects     ObjectStore
	bucket      string
	cfg         *config.AppConfig
	log         *logger.Logger
}

// NewDocumentService wires a DocumentService.
func NewDocumentService(
	st *store.Store,
	chunks *store.ChunkStore,
	jobCache *store.JobCache,
	publisher *queue.Publisher,
	retrieval *pipeline.RetrievalPipeline,
	assembler *pipeline.Assembler,
	vectorStore interfaces.VectorStore,
	converter *convert.Registry,
	objects ObjectStore,
	cfg *config.AppConfig,
	log *logger.Logger,
) *DocumentService {
	return &DocumentService{
		store:       st,
		chunks:      chunks,
		jobCache:    jobCache,
		publisher:   publisher,
		retrieval:   retrieval,
		assembler:   assembler,
		vectorStore: vectorStore,
		converter:   converter,
		objects:     objects,
		bucket:      cfg.Databases.MinIO.Bucket,
		cfg:         cfg,
		log:         log,
	}
}
