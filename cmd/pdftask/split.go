// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftask/internal/split"
	"github.com/pdiddy/pdftask/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split [source.pdf]",
	Short: "Split a PDF into numbered files by page range",
	Long: `Split writes one PDF per page range to the output directory, named
split_1.pdf, split_2.pdf, ... by the range's position in the list. Ranges
are inclusive and 1-based. Ranges outside the document are reported and
skipped; the remaining ranges are still written.

Ranges come from --ranges ("47-55,56-64"), from a YAML plan file (--plan),
or from split.ranges in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("out", "split_pdfs", "output directory (created if absent)")
	splitCmd.Flags().String("ranges", "", `comma-separated page ranges, e.g. "1-3,4-9,12"`)
	splitCmd.Flags().String("plan", "", "YAML plan file with source, output_dir, and ranges")
	splitCmd.Flags().String("name-template", split.DefaultNameTemplate, "output filename pattern; %d is the range position")
	splitCmd.Flags().String("save-plan", "", "write the effective plan to this YAML file")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := splitConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Source == "" {
		return fmt.Errorf("provide a source PDF as an argument, in --plan, or as split.source in the config")
	}
	if len(cfg.Ranges) == 0 {
		return fmt.Errorf("no page ranges given: use --ranges, --plan, or split.ranges in the config")
	}

	if savePath, _ := cmd.Flags().GetString("save-plan"); savePath != "" {
		if err := split.WritePlan(savePath, cfg); err != nil {
			return err
		}
	}

	result, err := split.SplitFile(split.PDFCPU{}, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d range(s) failed to write", result.Failed)
	}
	return nil
}

// splitConfig layers settings: config file, then plan file, then flags
// and arguments.
func splitConfig(cmd *cobra.Command, args []string) (types.SplitConfig, error) {
	cfg := types.SplitConfig{
		Source:       viper.GetString("split.source"),
		OutputDir:    stringSetting(cmd, "out", "split.output_dir"),
		NameTemplate: stringSetting(cmd, "name-template", "split.name_template"),
	}
	if viper.IsSet("split.ranges") {
		if err := viper.UnmarshalKey("split.ranges", &cfg.Ranges); err != nil {
			return cfg, fmt.Errorf("reading split.ranges from config: %w", err)
		}
	}

	if planPath, _ := cmd.Flags().GetString("plan"); planPath != "" {
		plan, err := split.LoadPlan(planPath)
		if err != nil {
			return cfg, err
		}
		if plan.Source != "" {
			cfg.Source = plan.Source
		}
		if plan.OutputDir != "" && !cmd.Flags().Changed("out") {
			cfg.OutputDir = plan.OutputDir
		}
		if plan.NameTemplate != "" && !cmd.Flags().Changed("name-template") {
			cfg.NameTemplate = plan.NameTemplate
		}
		if len(plan.Ranges) > 0 {
			cfg.Ranges = plan.Ranges
		}
	}

	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if rangesText, _ := cmd.Flags().GetString("ranges"); rangesText != "" {
		ranges, err := split.ParseRanges(rangesText)
		if err != nil {
			return cfg, err
		}
		cfg.Ranges = ranges
	}
	return cfg, nil
}
