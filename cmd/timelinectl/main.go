// Command timelinectl inspects and maintains the stored timeline dataset
// without going through the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/dynasty-timeline/internal/config"
	"github.com/palemoky/dynasty-timeline/internal/logger"
	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/persistence"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "timelinectl",
		Short:         "Dynasty timeline maintenance tool",
		Long:          "Export, import, validate and reset the timeline dataset held by the configured storage backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newValidateCmd(),
		newStatsCmd(),
		newResetSampleCmd(),
		newClearCmd(),
	)
	return rootCmd
}

// session is an opened backend with the stored dataset loaded into a store
type session struct {
	cfg     *config.Config
	backend persistence.Backend
	store   *store.Store
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	backend, err := persistence.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	st, found, err := persistence.Bootstrap(ctx, backend, persistence.BootstrapOptions{
		Prefix:       cfg.Storage.KeyPrefix,
		DefaultLevel: model.ValidationLevel(cfg.Validation.DefaultLevel),
	})
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to load stored data: %w", err)
	}

	logger.Debug("Opened storage",
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("found", found),
	)
	return &session{cfg: cfg, backend: backend, store: st}, nil
}

// save writes the whole dataset back to the backend
func (s *session) save(ctx context.Context) error {
	return persistence.Save(ctx, s.backend, s.cfg.Storage.KeyPrefix, s.store.Snapshot())
}

func (s *session) Close() error {
	return s.backend.Close()
}
