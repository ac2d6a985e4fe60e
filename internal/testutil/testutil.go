// Package testutil provides shared utilities for testing.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/palemoky/dynasty-timeline/internal/database"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// FixedTime is the clock value used by NewStore
var FixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// SetupTestDB creates an in-memory SQLite database with migrations applied.
// Returns the DB wrapper and Repository. Automatically cleans up on test completion.
func SetupTestDB(t *testing.T) (*database.DB, *database.Repository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

	// Each connection to :memory: is a separate database
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.NewDBFromGorm(gormDB)
	require.NoError(t, db.Migrate(), "Failed to run migrations")

	repo := database.NewRepository(db)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, repo
}

// NewStore creates a store with a fixed clock and sequential ids ("id-1", "id-2", ...)
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	n := 0
	return store.New(
		store.WithClock(func() time.Time { return FixedTime }),
		store.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

// NewSampleStore creates a deterministic store loaded with the sample dataset
func NewSampleStore(t *testing.T) *store.Store {
	t.Helper()
	s := NewStore(t)
	require.NoError(t, s.ResetToSample())
	return s
}

// SetupTestGin creates a test Gin engine with test mode enabled.
func SetupTestGin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
