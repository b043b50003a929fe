package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"pillar2/internal/export"
	"pillar2/internal/generator"
	. "pillar2/internal/models"
	"pillar2/internal/session"
	"pillar2/internal/utils"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a week of testing records offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, _ := cmd.Flags().GetInt("runs")
			seed, _ := cmd.Flags().GetInt64("seed")
			out, _ := cmd.Flags().GetString("out")

			return generate(cmd.OutOrStdout(), runs, seed, out, time.Now)
		},
	}
	cmd.Flags().Int("runs", session.MaxRuns, "Number of runs to generate (at most 7 take effect)")
	cmd.Flags().Int64("seed", 0, "Random seed, 0 picks one")
	cmd.Flags().String("out", export.CSVFileName, "Output file, .parquet selects parquet")

	return cmd
}

func generate(w io.Writer, runs int, seed int64, out string, clock session.Clock) error {
	if runs < 0 {
		return fmt.Errorf("runs must not be negative, got %d", runs)
	}

	state := session.New(generator.New(generator.NewFakerSource(seed)), clock)
	for range runs {
		result := state.RequestGeneration()
		if !result.Ran {
			fmt.Fprintln(w, "Reached maximum allowed runs (generated 1 week of data)")
			break
		}
		fmt.Fprintf(w, "Run %d: %d records dated %s\n",
			state.RunCount(), result.Generated, utils.FormatDate(result.Date))
	}

	if err := writeRecords(out, state.Records()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %d records to %s\n", state.Len(), out)
	printSummary(w, state.Summarize())
	return nil
}

func writeRecords(path string, records []TestingRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		err = export.WriteParquet(file, records)
	} else {
		err = export.WriteCSV(file, records)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return file.Close()
}

func printSummary(w io.Writer, summary Summary) {
	fmt.Fprintf(w, "Total tests: %d\n", summary.Total)
	fmt.Fprintf(w, "Positive tests: %d\n", summary.Positive)
	fmt.Fprintf(w, "Positivity: %.2f%%\n", summary.Percentage)
	for _, day := range summary.ByDate {
		fmt.Fprintf(w, "  %s  %d\n", utils.FormatDate(day.Date), day.Count)
	}
}
