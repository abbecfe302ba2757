// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftask/internal/history"
	"github.com/pdiddy/pdftask/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded assignment runs or show one run",
	Long: `History reads runs recorded with "assign --history". Without an
argument it lists recent runs, newest first. With a run ID it prints every
assignment of that run, as a table or as YAML or JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("history-db", history.DefaultDBPath, "history database path")
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().Bool("yaml", false, "output a single run as YAML")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")

	if len(args) == 1 {
		switch {
		case jsonOutput:
			return store.ExportJSON(ctx, args[0], out)
		case yamlOutput:
			return store.ExportYAML(ctx, args[0], out)
		}
		run, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return formatRun(out, run)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	return formatRuns(out, runs)
}

func formatRuns(w io.Writer, runs []types.AssignmentRun) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-20s  %8s  %6s\n", "Run", "Started", "Mode", "Assigned", "Failed")
	fmt.Fprintln(w, strings.Repeat("-", 98))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-20s  %8d  %6d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Mode, r.Assigned, r.Failed)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

func formatRun(w io.Writer, run types.AssignmentRun) error {
	fmt.Fprintf(w, "Run %s (%s, %s)\n", run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Mode)
	fmt.Fprintf(w, "names: %s  source: %s  target: %s\n\n", run.NamesFile, run.SourceDir, run.TargetDir)
	for _, rec := range run.Records {
		fmt.Fprintf(w, "%-20s  %-30s  %s\n", rec.Name, rec.Source, rec.Target)
	}
	fmt.Fprintf(w, "\n%d assigned, %d failed\n", run.Assigned, run.Failed)
	return nil
}
