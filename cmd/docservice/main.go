package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docuhub/internal/config"
	"docuhub/internal/convert"
	kafkadb "docuhub/internal/database/kafka"
	milvusdb "docuhub/internal/database/milvus"
	miniodb "docuhub/internal/database/minio"
	mysqldb "docuhub/internal/database/mysql"
	redisdb "docuhub/internal/database/redis"
	"docuhub/internal/docservice/api"
	"docuhub/internal/docservice/queue"
	"docuhub/internal/docservice/service"
	"docuhub/internal/docservice/store"
	"docuhub/internal/embedding"
	"docuhub/internal/llm"
	"docuhub/internal/rag/chunkers"
	"docuhub/internal/rag/pipeline"
	"docuhub/internal/rag/validators"
	"docuhub/internal/rag/vectorstore"
	"docuhub/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("DocService", "")
	appLogger.Info(fmt.Sprintf("Starting %s %s", cfg.App.Name, cfg.App.Version))

	ctx := context.Background()

	// Backing stores.
	db, err := mysqldb.GetDB(&cfg.Databases.MySQL)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	rdb, err := redisdb.GetClient(&cfg.Databases.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	milvusClient, err := milvusdb.GetClient(ctx, &cfg.Databases.Milvus)
	if err != nil {
		log.Fatalf("Failed to connect to Milvus: %v", err)
	}
	minioClient, err := miniodb.GetClient(&cfg.Databases.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	kafkaClient, err := kafkadb.GetClient(&cfg.Databases.Kafka)
	if err != nil {
		log.Fatalf("Failed to connect to Kafka: %v", err)
	}

	st := store.NewStore(db, logger.New("Store", ""))
	if err := st.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	chunkStore := store.NewChunkStore(db)
	jobCache := store.NewJobCache(rdb)

	// Model providers.
	baseEmbedder, err := embedding.NewModel(&cfg.Embedding)
	if err != nil {
		log.Fatalf("Failed to create embedding model: %v", err)
	}
	embedder := embedding.WithBreaker(baseEmbedder)
	llmModel, err := llm.NewModel(&cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create llm: %v", err)
	}

	vectorStore, err := vectorstore.NewMilvusStore(milvusClient, logger.New("VectorStore", ""))
	if err != nil {
		log.Fatalf("Failed to create vector store: %v", err)
	}

	// Pipelines.
	chunker := chunkers.New(chunkers.Config{
		Strategy:        chunkers.Strategy(cfg.Pipeline.Chunking.Strategy),
		ChunkSize:       cfg.Pipeline.Chunking.ChunkSize,
		ChunkOverlap:    cfg.Pipeline.Chunking.ChunkOverlap,
		PreserveHeaders: cfg.Pipeline.Chunking.PreserveHeaders,
	})
	validation := validators.Options{
		MinLength:   cfg.Pipeline.Validation.MinLength,
		MaxLength:   cfg.Pipeline.Validation.MaxLength,
		RequireText: cfg.Pipeline.Validation.RequireText,
	}
	indexing := pipeline.NewIndexingPipeline(chunker, embedder, chunkStore, vectorStore, validation, logger.New("IndexingPipeline", ""))
	retrieval := pipeline.NewRetrievalPipeline(embedder, vectorStore, logger.New("RetrievalPipeline", ""))
	assembler := pipeline.NewAssembler(retrieval, llmModel, logger.New("Assembler", ""))

	// Queue.
	publisher := queue.NewPublisher(kafkaClient, logger.New("Publisher", ""))
	workerCtx, stopWorkers := context.WithCancel(ctx)
	workers := queue.NewWorkerPool(
		kafkaClient.NewReader(),
		st,
		jobCache,
		indexing,
		cfg.Databases.Kafka.Workers,
		logger.New("WorkerPool", ""),
	)
	workers.Start(workerCtx)

	// HTTP.
	svc := service.NewDocumentService(
		st, chunkStore, jobCache, publisher,
		retrieval, assembler, vectorStore,
		convert.NewRegistry(), minioClient, cfg,
		logger.New("DocumentService", ""),
	)
	handlers := api.NewAPI(svc, map[string]api.HealthCheck{
		"mysql":  mysqldb.HealthCheck,
		"redis":  redisdb.HealthCheck,
		"milvus": milvusClient.HealthCheck,
		"minio":  miniodb.HealthCheck,
	}, logger.New("API", ""))
	router := api.NewRouter(handlers, cfg)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting requests, drain the workers,
	// then release the connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("HTTP shutdown failed")
	}

	stopWorkers()
	if err := workers.Close(); err != nil {
		appLogger.WithError(err).Error("Worker pool shutdown failed")
	}
	if err := kafkaClient.Close(); err != nil {
		appLogger.WithError(err).Error("Kafka shutdown failed")
	}
	milvusClient.Close()
	if err := redisdb.Close(); err != nil {
		appLogger.WithError(err).Error("Redis shutdown failed")
	}
	if err := mysqldb.Close(); err != nil {
		appLogger.WithError(err).Error("MySQL shutdown failed")
	}
	appLogger.Info("Shutdown complete")
}
