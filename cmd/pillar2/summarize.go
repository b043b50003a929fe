package main

import (
	"fmt"
	"io"
	"os"
	"pillar2/internal/export"
	"pillar2/internal/session"

	"github.com/spf13/cobra"
)

func summarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize FILE",
		Short: "Print totals and per-date counts of a generated CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return summarize(cmd.OutOrStdout(), args[0])
		},
	}
}

func summarize(w io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := export.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	printSummary(w, session.Summarize(records))
	return nil
}
