package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/palemoky/dynasty-timeline/internal/database"
)

// SQLiteBackend stores documents in the kv_entries table
type SQLiteBackend struct {
	db   *database.DB
	repo *database.Repository
}

// NewSQLiteBackend wraps an open database, creating the tables if needed
func NewSQLiteBackend(db *database.DB) (*SQLiteBackend, error) {
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &SQLiteBackend{db: db, repo: database.NewRepository(db)}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.repo.Get(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *SQLiteBackend) Put(ctx context.Context, key string, value []byte) error {
	return s.repo.Put(ctx, key, value)
}

// PutMany writes all entries in a single transaction
func (s *SQLiteBackend) PutMany(ctx context.Context, entries map[string][]byte) error {
	return s.repo.PutMany(ctx, entries)
}

func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *SQLiteBackend) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
