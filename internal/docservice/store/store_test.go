package store

import (
	"testing"

	"docuhub/pkg/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestStore opens an in-memory database with the full schema. Each
// call gets its own database, so tests stay independent.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	st := NewStore(db, logger.New("store-test", ""))
	if err := st.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return st
}
