package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

func newValidateCmd() *cobra.Command {
	var (
		level  string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "List chronological warnings",
		Long:  "List chronological warnings for the stored data. With --strict, exits non-zero when any error or warning is found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.WarningLevel(level)
			switch filter {
			case "", model.LevelError, model.LevelWarning, model.LevelInfo:
			default:
				return fmt.Errorf("invalid level %q (must be error, warning or info)", level)
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			warnings := s.store.Warnings(filter)
			out := cmd.OutOrStdout()
			if len(warnings) == 0 {
				fmt.Fprintf(out, "No warnings (validation level: %s)\n", s.store.Settings().ValidationLevel)
				return nil
			}

			rows := make([][]string, len(warnings))
			for i, w := range warnings {
				rows[i] = []string{string(w.Level), string(w.Type), w.Message}
			}
			if err := renderTable(out, []string{"Level", "Type", "Message"}, rows); err != nil {
				return err
			}

			if strict && slices.ContainsFunc(warnings, func(w model.Warning) bool { return w.Level.Blocking() }) {
				return fmt.Errorf("%d warnings found", len(warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Only show warnings of this level (error, warning, info)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when errors or warnings are present")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dataset statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			stats := s.store.Stats()
			out := cmd.OutOrStdout()

			err = renderTable(out, []string{"Dynasties", "Kings", "One-time", "Events", "Wars", "Validation"}, [][]string{{
				strconv.Itoa(stats.TotalDynasties),
				strconv.Itoa(stats.TotalKings),
				strconv.Itoa(stats.OneTimeKings),
				strconv.Itoa(stats.TotalEvents),
				strconv.Itoa(stats.TotalWars),
				string(stats.ValidationLevel),
			}})
			if err != nil {
				return err
			}

			if len(stats.KingsPerDynasty) == 0 {
				return nil
			}
			var rows [][]string
			for _, d := range s.store.Dynasties() {
				rows = append(rows, []string{d.Name, strconv.Itoa(stats.KingsPerDynasty[d.Name])})
			}
			fmt.Fprintln(out)
			return renderTable(out, []string{"Dynasty", "Kings"}, rows)
		},
	}
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}
	table := tablewriter.NewWriter(w)
	table.Header(cols...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
