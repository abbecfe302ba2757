// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftask/internal/assign"
	"github.com/pdiddy/pdftask/internal/history"
	"github.com/pdiddy/pdftask/pkg/types"
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Randomly assign files to a list of names",
	Long: `Assign clears the target directory, then gives every name in the name
file (one per line) a randomly drawn file from the source directory. The
file is copied as <name><ext>; if that name is taken, _1, _2, ... is
appended. Each assignment is logged as "name, file" in the results log.

By default every name draws independently, so a file may go to several
names. --mode without-replacement deals files from a shuffled deck so each
file is used once before any file repeats.`,
	Args: cobra.NoArgs,
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().String("names", "name_list.txt", "text file with one name per line")
	assignCmd.Flags().String("source-dir", "split_pdfs", "directory holding the candidate files")
	assignCmd.Flags().String("target-dir", "assigned", "directory receiving the renamed copies (cleared first)")
	assignCmd.Flags().String("log", "assignment_results.txt", "results log path")
	assignCmd.Flags().String("ext", assign.DefaultExtension, "candidate file extension (case-insensitive)")
	assignCmd.Flags().String("mode", string(types.SampleWithReplacement), "sampling mode: with-replacement or without-replacement")
	assignCmd.Flags().Uint64("seed", 0, "random seed for a reproducible run (0 = random)")
	assignCmd.Flags().Bool("history", false, "record the run in the history database")
	assignCmd.Flags().String("history-db", history.DefaultDBPath, "history database path")

	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	cfg := types.AssignConfig{
		NamesFile: stringSetting(cmd, "names", "assign.names_file"),
		SourceDir: stringSetting(cmd, "source-dir", "assign.source_dir"),
		TargetDir: stringSetting(cmd, "target-dir", "assign.target_dir"),
		LogPath:   stringSetting(cmd, "log", "assign.log_path"),
		Extension: stringSetting(cmd, "ext", "assign.extension"),
		Mode:      types.SamplingMode(stringSetting(cmd, "mode", "assign.mode")),
	}

	seed, _ := cmd.Flags().GetUint64("seed")
	var rng *rand.Rand
	if seed != 0 {
		rng = assign.NewSeededRand(seed)
	} else {
		rng = assign.NewRand()
	}

	started := time.Now()
	out := cmd.OutOrStdout()
	result, err := assign.Run(cfg, rng, out)
	if err != nil {
		return err
	}

	record, _ := cmd.Flags().GetBool("history")
	if record || viper.GetBool("history.enabled") {
		id, err := recordRun(cmd, cfg, started, result)
		if err != nil {
			fmt.Fprintf(out, "warning: could not record history: %v\n", err)
		} else {
			fmt.Fprintf(out, "recorded run %s\n", id)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d name(s) failed assignment", result.Failed)
	}
	return nil
}

func recordRun(cmd *cobra.Command, cfg types.AssignConfig, started time.Time, result assign.Result) (string, error) {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return "", err
	}
	defer store.Close()

	mode := cfg.Mode
	if mode == "" {
		mode = types.SampleWithReplacement
	}
	return store.Record(context.Background(), types.AssignmentRun{
		StartedAt: started,
		NamesFile: cfg.NamesFile,
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		LogPath:   cfg.LogPath,
		Mode:      mode,
		Assigned:  result.Assigned,
		Failed:    result.Failed,
		Records:   result.Records,
	})
}

func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	return types.HistoryConfig{
		DBPath:     stringSetting(cmd, "history-db", "history.db_path"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}
