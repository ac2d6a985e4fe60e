package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory database for testing
func setupTestDB(t *testing.T) (*DB, *Repository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Each connection to :memory: is a separate database
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := NewDBFromGorm(gormDB)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return db, NewRepository(db)
}

func TestMigrate(t *testing.T) {
	db, _ := setupTestDB(t)

	version, err := db.GetSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	// Running again is a no-op
	require.NoError(t, db.Migrate())
	version, err = db.GetSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	assert.True(t, db.Migrator().HasTable(&KVEntry{}))
	assert.True(t, db.Migrator().HasTable(&Metadata{}))
}

func TestRepositoryGetPut(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "timeline_kings")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Put(ctx, "timeline_kings", []byte(`[{"id":"babur"}]`)))
	got, err := repo.Get(ctx, "timeline_kings")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"babur"}]`, string(got))

	// Upsert replaces the value
	require.NoError(t, repo.Put(ctx, "timeline_kings", []byte(`[]`)))
	got, err = repo.Get(ctx, "timeline_kings")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepositoryPutManyAndKeys(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.PutMany(ctx, map[string][]byte{
		"timeline_dynasties": []byte(`[]`),
		"timeline_wars":      []byte(`[]`),
		"other_kings":        []byte(`[]`),
		"timeline%x":         []byte(`{}`),
	}))

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"prefix", "timeline_", []string{"timeline_dynasties", "timeline_wars"}},
		{"wildcards are literal", "timeline%", []string{"timeline%x"}},
		{"everything", "", []string{"other_kings", "timeline%x", "timeline_dynasties", "timeline_wars"}},
		{"nothing", "missing_", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := repo.Keys(ctx, tt.prefix)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, keys)
				return
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestRepositoryDelete(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "a", []byte(`1`)))
	require.NoError(t, repo.Put(ctx, "b", []byte(`2`)))

	require.NoError(t, repo.Delete(ctx, "a", "missing"))
	require.NoError(t, repo.Delete(ctx))

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(ctx, "b")
	assert.NoError(t, err)
}
