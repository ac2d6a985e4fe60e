package persistence

import (
	"context"
	"fmt"

	"github.com/palemoky/dynasty-timeline/internal/config"
	"github.com/palemoky/dynasty-timeline/internal/database"
)

// Open creates the backend selected by the configuration and checks that it answers
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	var b Backend
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := database.Open(cfg.Storage.Path, cfg.Storage.MaxOpenConns, cfg.Storage.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		sb, err := NewSQLiteBackend(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		b = sb
	case config.BackendRedis:
		b = NewRedisBackend(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout)
	case config.BackendFile:
		fb, err := NewFileBackend(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		b = fb
	case config.BackendMemory:
		b = NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if err := b.Ping(ctx); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%s backend unavailable: %w", cfg.Storage.Backend, err)
	}
	return b, nil
}
