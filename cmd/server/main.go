package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/palemoky/dynasty-timeline/internal/api/rest"
	"github.com/palemoky/dynasty-timeline/internal/config"
	"github.com/palemoky/dynasty-timeline/internal/logger"
	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/persistence"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	// Initialize logger
	debug := os.Getenv("GIN_MODE") != "release"
	logger.Init(debug)
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Warn("Failed to load config file, using defaults", zap.Error(err))
		cfg, err = config.Load("")
		if err != nil {
			logger.Fatal("Invalid configuration", zap.Error(err))
		}
	}

	logger.Info("Starting dynasty timeline server",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
		zap.Int("port", cfg.Server.Port),
		zap.String("validation_level", cfg.Validation.DefaultLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := persistence.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() { _ = backend.Close() }()

	st, found, err := persistence.Bootstrap(ctx, backend, persistence.BootstrapOptions{
		Prefix:       cfg.Storage.KeyPrefix,
		SeedSample:   cfg.Storage.SeedSample,
		DefaultLevel: model.ValidationLevel(cfg.Validation.DefaultLevel),
	})
	if err != nil {
		logger.Fatal("Failed to load timeline data", zap.Error(err))
	}
	if !found {
		logger.Info("No stored data found, starting fresh", zap.Bool("sample", cfg.Storage.SeedSample))
		if err := persistence.Save(ctx, backend, cfg.Storage.KeyPrefix, st.Snapshot()); err != nil {
			logger.Fatal("Failed to save initial data", zap.Error(err))
		}
	}

	// Save changes in the background
	writer := persistence.NewWriter(backend, cfg.Storage.KeyPrefix, cfg.Storage.Debounce)
	if err := writer.Prime(st.Snapshot()); err != nil {
		logger.Fatal("Failed to prime writer", zap.Error(err))
	}
	st.Subscribe(writer.Notify)

	// Pick up edits made to the data files by other processes
	if fb, ok := backend.(*persistence.FileBackend); ok && cfg.Storage.Watch {
		watcher := persistence.NewWatcher(fb, cfg.Storage.KeyPrefix, cfg.Storage.Debounce, func(ctx context.Context) {
			reloaded, err := writer.Reload(ctx, st.Restore)
			if err != nil {
				logger.Warn("Failed to reload data files", zap.Error(err))
				return
			}
			if reloaded {
				logger.Info("Reloaded data changed on disk", zap.String("dir", fb.Dir()))
			}
		})
		if err := watcher.Start(ctx); err != nil {
			logger.Fatal("Failed to watch data directory", zap.Error(err))
		}
		defer watcher.Stop()
	}

	router := rest.SetupRouter(cfg, st, backend)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Server started",
			zap.Int("port", cfg.Server.Port),
			zap.String("rest_api", fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port)),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server forced to shutdown", zap.Error(err))
	}
	if err := writer.Close(shutdownCtx); err != nil {
		logger.Error("Failed to save pending changes", zap.Error(err))
	}

	logger.Info("Server exited")
}
