package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/palemoky/dynasty-timeline/internal/logger"
	"github.com/palemoky/dynasty-timeline/internal/persistence"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dataset as an export file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			data, err := json.MarshalIndent(s.store.Export(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode export: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			logger.Info("Exported dataset", zap.String("file", output), zap.Int("bytes", len(data)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the dataset with an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readWithProgress(args[0], cmd.ErrOrStderr(), noProgress)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			summary, err := s.store.Import(data)
			if err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return fmt.Errorf("failed to save imported data: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d dynasties, %d kings, %d events, %d wars (%d warnings)\n",
				summary.Dynasties, summary.Kings, summary.Events, summary.Wars, summary.Warnings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	return cmd
}

// readWithProgress reads a file while drawing a byte counter to w
func readWithProgress(path string, w io.Writer, quiet bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat import file: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(int(info.Size()))
	if quiet {
		_, err = io.Copy(&buf, f)
		return buf.Bytes(), err
	}

	progress := mpb.New(
		mpb.WithOutput(w),
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100*time.Millisecond),
	)
	bar := progress.AddBar(info.Size(),
		mpb.PrependDecorators(
			decor.Name("Reading: ", decor.WC{W: 9, C: decor.DindentRight}),
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
		),
	)

	reader := bar.ProxyReader(f)
	_, err = io.Copy(&buf, reader)
	_ = reader.Close()
	if err != nil {
		bar.Abort(false)
		progress.Wait()
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	progress.Wait()
	return buf.Bytes(), nil
}

func newResetSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-sample",
		Short: "Replace the dataset with the built-in sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := s.store.ResetToSample(); err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}

			stats := s.store.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded sample data: %d dynasties, %d kings, %d events, %d wars\n",
				stats.TotalDynasties, stats.TotalKings, stats.TotalEvents, stats.TotalWars)
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every dynasty, king, event and war",
		Long:  "Remove every dynasty, king, event and war. Settings are kept unless --purge deletes every stored key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if purge {
				if err := persistence.Purge(cmd.Context(), s.backend, s.cfg.Storage.KeyPrefix); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Purged all stored keys")
				return nil
			}

			if err := s.store.ClearAll(); err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all data")
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Delete the stored keys, including settings")
	return cmd
}
