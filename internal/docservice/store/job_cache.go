package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docuhub/internal/models"

	"github.com/go-redis/redis/v8"
)

// JobCache fronts job status reads with Redis. Each document maps to
// a snapshot of its latest processing job. Status polling is by far
// the hottest read path while a document processes, so the worker
// writes every transition through here and the API reads the cache
// before touching MySQL.
type JobCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewJobCache creates a JobCache. A one hour TTL bounds entries for
// jobs nobody polls anymore.
func NewJobCache(rdb *redis.Client) *JobCache {
	return &JobCache{rdb: rdb, ttl: time.Hour}
}

func jobKey(documentID string) string {
	return fmt.Sprintf("docuhub:job:%s", documentID)
}

// Put stores the job as its document's latest snapshot.
func (c *JobCache) Put(ctx context.Context, job *models.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, jobKey(job.DocumentID), data, c.ttl).Err()
}

// Get returns the cached latest-job snapshot for a document, or
// (nil, nil) on a miss.
func (c *JobCache) Get(ctx context.Context, documentID string) (*models.ProcessingJob, error) {
	data, err := c.rdb.Get(ctx, jobKey(documentID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var job models.ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Invalidate drops a document's cached snapshot.
func (c *JobCache) Invalidate(ctx context.Context, documentID string) error {
	return c.rdb.Del(ctx, jobKey(documentID)).Err()
}
