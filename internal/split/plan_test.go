// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftask/pkg/types"
)

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	content := `source: motion.pdf
output_dir: split_pdfs
ranges:
  - {start: 47, end: 55}
  - {start: 56, end: 64}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "motion.pdf", cfg.Source)
	assert.Equal(t, "split_pdfs", cfg.OutputDir)
	assert.Equal(t, []types.PageRange{{Start: 47, End: 55}, {Start: 56, End: 64}}, cfg.Ranges)
}

func TestLoadPlan_Errors(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading plan file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ranges: [oops"), 0o644))
	_, err = LoadPlan(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing plan file")
}

func TestWritePlanThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	want := types.SplitConfig{
		Source:       "a.pdf",
		OutputDir:    "out",
		NameTemplate: "part_%d.pdf",
		Ranges:       []types.PageRange{{Start: 1, End: 2}},
	}
	require.NoError(t, WritePlan(path, want))

	got, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
