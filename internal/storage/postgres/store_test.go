package postgres

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/internal/storage/storetest"
	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
)

// newTestConn opens an isolated in-memory database. The pool is pinned to one
// connection so concurrent writers queue instead of tripping SQLite's
// single-writer lock.
func newTestConn(t *testing.T) *gorm.DB {
	t.Helper()

	silent := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open("file::memory:?_busy_timeout=5000"), &gorm.Config{
		Logger:                 silent,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
	))
	return conn
}

func TestGormStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return New(newTestConn(t))
	})
}
