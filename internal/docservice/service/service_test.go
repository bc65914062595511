package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"docuhub/internal/config"
	"docuhub/internal/convert"
	"docuhub/internal/docservice/store"
	"docuhub/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeObjectStore keeps archived originals in memory and records
// removals.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.mu.Lock()
	f.objects[objectName] = data
	f.mu.Unlock()
	return minio.UploadInfo{Key: objectName}, nil
}

func (f *fakeObjectStore) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	f.mu.Lock()
	delete(f.objects, objectName)
	f.removed = append(f.removed, objectName)
	f.mu.Unlock()
	return nil
}

func (f *fakeObjectStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

var _ ObjectStore = (*fakeObjectStore)(nil)

type testService struct {
	svc      *DocumentService
	store    *store.Store
	jobCache *store.JobCache
	objects  *fakeObjectStore
}

func newTestService(t *testing.T) *testService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	log := logger.New("service-test", "")
	st := store.NewStore(db, log)
	if err := st.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })

	objects := newFakeObjectStore()
	jobCache := store.NewJobCache(rdb)
	cfg := &config.AppConfig{}
	cfg.Databases.MinIO.Bucket = "docuhub-test"
	cfg.Pipeline.Validation.MinLength = 10

	svc := NewDocumentService(
		st, store.NewChunkStore(db), jobCache,
		nil, nil, nil, nil,
		convert.NewRegistry(), objects, cfg, log,
	)
	return &testService{svc: svc, store: st, jobCache: jobCache, objects: objects}
}
