package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/imobiliaria-api/internal/db"
)

// NewDB abre um sqlite em memória já migrado. Uma única conexão para
// que todas as goroutines enxerguem o mesmo banco.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// FakeUploader guarda os objetos em memória no lugar do S3.
type FakeUploader struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewFakeUploader() *FakeUploader {
	return &FakeUploader{Objects: map[string][]byte{}}
}

func (f *FakeUploader) Upload(_ context.Context, key string, body []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[key] = body
	return fmt.Sprintf("https://fake.storage/test/%s", key), nil
}

func (f *FakeUploader) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Objects, key)
	return nil
}
