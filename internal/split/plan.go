// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftask/pkg/types"
)

// LoadPlan reads a split plan (source, output_dir, name_template, ranges)
// from a YAML file.
func LoadPlan(path string) (types.SplitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SplitConfig{}, fmt.Errorf("reading plan file: %w", err)
	}
	var cfg types.SplitConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.SplitConfig{}, fmt.Errorf("parsing plan file: %w", err)
	}
	return cfg, nil
}

// WritePlan saves a split plan as YAML so a run can be repeated later.
func WritePlan(path string, cfg types.SplitConfig) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling plan file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
