// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assign

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftask/pkg/types"
)

// fixture lays out a names file, a source directory of candidates, and
// paths for the target directory and results log under one temp dir.
type fixture struct {
	cfg types.AssignConfig
}

func newFixture(t *testing.T, names string, candidates ...string) fixture {
	t.Helper()
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "split_pdfs")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	for _, c := range candidates {
		writeFile(t, filepath.Join(srcDir, c), "content of "+c)
	}
	namesFile := filepath.Join(dir, "name_list.txt")
	writeFile(t, namesFile, names)

	return fixture{cfg: types.AssignConfig{
		NamesFile: namesFile,
		SourceDir: srcDir,
		TargetDir: filepath.Join(dir, "assigned"),
		LogPath:   filepath.Join(dir, "assignment_results.txt"),
	}}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func logLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func targetFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestRun_RepeatedNameGetsSuffix(t *testing.T) {
	f := newFixture(t, "Alice\nAlice\n", "a.jpg")
	var out bytes.Buffer

	result, err := Run(f.cfg, NewSeededRand(1), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, 0, result.Failed)
	assert.ElementsMatch(t, []string{"Alice.jpg", "Alice_1.jpg"}, targetFiles(t, f.cfg.TargetDir))
	assert.Equal(t, []types.AssignmentRecord{
		{Name: "Alice", Source: "a.jpg", Target: "Alice.jpg"},
		{Name: "Alice", Source: "a.jpg", Target: "Alice_1.jpg"},
	}, result.Records)

	assert.Equal(t, []string{
		"Assignment results:",
		strings.Repeat("=", 30),
		"Alice, a.jpg",
		"Alice, a.jpg",
	}, logLines(t, f.cfg.LogPath))
	assert.Contains(t, out.String(), "assigned: Alice -> a.jpg (saved as Alice_1.jpg)")
}

func TestRun_EveryNameGetsOneFile(t *testing.T) {
	names := []string{"Ann", "Bo", "Cy", "Di", "Ed", "Bo"}
	candidates := []string{"split_1.jpg", "split_2.jpg", "split_3.jpg"}
	f := newFixture(t, strings.Join(names, "\n"), candidates...)

	result, err := Run(f.cfg, NewSeededRand(42), io.Discard)
	require.NoError(t, err)

	require.Len(t, result.Records, len(names))
	assert.Len(t, targetFiles(t, f.cfg.TargetDir), len(names))

	seen := map[string]bool{}
	for i, rec := range result.Records {
		assert.Equal(t, names[i], rec.Name, "records follow name-list order")
		assert.Contains(t, candidates, rec.Source)
		assert.False(t, seen[rec.Target], "target %s assigned twice", rec.Target)
		seen[rec.Target] = true

		data, err := os.ReadFile(filepath.Join(f.cfg.TargetDir, rec.Target))
		require.NoError(t, err)
		assert.Equal(t, "content of "+rec.Source, string(data))
	}
	assert.Len(t, logLines(t, f.cfg.LogPath), 2+len(names))
}

func TestRun_ClearsTargetDirectory(t *testing.T) {
	f := newFixture(t, "Ann\n", "a.jpg")
	require.NoError(t, os.MkdirAll(filepath.Join(f.cfg.TargetDir, "old", "nested"), 0o755))
	writeFile(t, filepath.Join(f.cfg.TargetDir, "Ann.jpg"), "stale")
	writeFile(t, filepath.Join(f.cfg.TargetDir, "stale.txt"), "stale")
	var out bytes.Buffer

	_, err := Run(f.cfg, NewSeededRand(1), &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ann.jpg"}, targetFiles(t, f.cfg.TargetDir))
	data, err := os.ReadFile(filepath.Join(f.cfg.TargetDir, "Ann.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "content of a.jpg", string(data))
	assert.Contains(t, out.String(), "cleared target directory")
}

func TestRun_CreatesTargetDirectory(t *testing.T) {
	f := newFixture(t, "Ann\n", "a.jpg")
	var out bytes.Buffer

	_, err := Run(f.cfg, NewSeededRand(1), &out)
	require.NoError(t, err)
	assert.DirExists(t, f.cfg.TargetDir)
	assert.Contains(t, out.String(), "created target directory")
}

func TestRun_AbortConditions(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, cfg *types.AssignConfig)
		wantErr error
		errMsg  string
	}{
		{
			name: "missing name file",
			setup: func(t *testing.T, cfg *types.AssignConfig) {
				require.NoError(t, os.Remove(cfg.NamesFile))
			},
			wantErr: ErrNamesNotFound,
		},
		{
			name: "blank name file",
			setup: func(t *testing.T, cfg *types.AssignConfig) {
				writeFile(t, cfg.NamesFile, "\n   \n\t\n")
			},
			wantErr: ErrNoNames,
		},
		{
			name: "no matching candidates",
			setup: func(t *testing.T, cfg *types.AssignConfig) {
				require.NoError(t, os.Remove(filepath.Join(cfg.SourceDir, "a.jpg")))
				writeFile(t, filepath.Join(cfg.SourceDir, "notes.txt"), "x")
			},
			wantErr: ErrNoCandidates,
		},
		{
			name: "missing source directory",
			setup: func(t *testing.T, cfg *types.AssignConfig) {
				cfg.SourceDir = filepath.Join(cfg.SourceDir, "nope")
			},
			errMsg: "reading source directory",
		},
		{
			name: "unknown sampling mode",
			setup: func(t *testing.T, cfg *types.AssignConfig) {
				cfg.Mode = "round-robin"
			},
			errMsg: "unknown sampling mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "Ann\nBo\n", "a.jpg")
			tt.setup(t, &f.cfg)

			result, err := Run(f.cfg, NewSeededRand(1), io.Discard)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
			assert.Zero(t, result.Total())
			assert.NoFileExists(t, f.cfg.LogPath)
			if entries, err := os.ReadDir(f.cfg.TargetDir); err == nil {
				assert.Empty(t, entries)
			}
		})
	}
}

func TestRun_PerNameFailureContinues(t *testing.T) {
	f := newFixture(t, "Ann\nbad/name\nBo\n", "a.jpg")
	var out bytes.Buffer

	result, err := Run(f.cfg, NewSeededRand(1), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())
	assert.Contains(t, out.String(), "failed:  bad/name")
	assert.ElementsMatch(t, []string{"Ann.jpg", "Bo.jpg"}, targetFiles(t, f.cfg.TargetDir))
	assert.Equal(t, []string{
		"Assignment results:",
		strings.Repeat("=", 30),
		"Ann, a.jpg",
		"Bo, a.jpg",
	}, logLines(t, f.cfg.LogPath))
}

func TestRun_ExtensionFilter(t *testing.T) {
	f := newFixture(t, "Ann\n", "SCAN.JPG", "doc.pdf")

	result, err := Run(f.cfg, NewSeededRand(1), io.Discard)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "SCAN.JPG", result.Records[0].Source)
	assert.Equal(t, "Ann.JPG", result.Records[0].Target)

	f = newFixture(t, "Ann\n", "a.jpg", "doc.pdf")
	f.cfg.Extension = "pdf"
	result, err = Run(f.cfg, NewSeededRand(1), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Ann.pdf", result.Records[0].Target)
}

func TestRun_PreservesModTime(t *testing.T) {
	f := newFixture(t, "Ann\n", "a.jpg")
	past := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(f.cfg.SourceDir, "a.jpg"), past, past))

	_, err := Run(f.cfg, NewSeededRand(1), io.Discard)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(f.cfg.TargetDir, "Ann.jpg"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "mod time = %v, want %v", info.ModTime(), past)
}

func TestRun_WithoutReplacementUsesEveryCandidate(t *testing.T) {
	f := newFixture(t, "A\nB\nC\n", "1.jpg", "2.jpg", "3.jpg")
	f.cfg.Mode = types.SampleWithoutReplacement

	result, err := Run(f.cfg, NewSeededRand(7), io.Discard)
	require.NoError(t, err)

	var sources []string
	for _, rec := range result.Records {
		sources = append(sources, rec.Source)
	}
	assert.ElementsMatch(t, []string{"1.jpg", "2.jpg", "3.jpg"}, sources)
}

// failingLog accepts a fixed number of writes and rejects the rest.
type failingLog struct {
	bytes.Buffer
	allowed int
}

func (l *failingLog) Write(p []byte) (int, error) {
	if l.allowed == 0 {
		return 0, errors.New("no space left on device")
	}
	l.allowed--
	return l.Buffer.Write(p)
}

func TestAssignAll_LogFailureReportedPerName(t *testing.T) {
	f := newFixture(t, "", "a.jpg")
	require.NoError(t, os.MkdirAll(f.cfg.TargetDir, 0o755))
	draw := func() string { return "a.jpg" }
	logW := &failingLog{allowed: 1}
	var out bytes.Buffer

	result := assignAll(f.cfg, []string{"Ann", "Bo"}, draw, logW, &out)

	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "Ann, a.jpg\n", logW.String())
	assert.Contains(t, out.String(), "assigned: Ann -> a.jpg")
	assert.Contains(t, out.String(), "failed:  Bo (writing results log: no space left on device)")
	// The copy for the unlogged name is removed.
	assert.Equal(t, []string{"Ann.jpg"}, targetFiles(t, f.cfg.TargetDir))
}

func TestRun_SymlinkedCandidates(t *testing.T) {
	f := newFixture(t, "Ann\n")
	linkTarget := filepath.Join(t.TempDir(), "real.jpg")
	writeFile(t, linkTarget, "linked image")
	require.NoError(t, os.Symlink(linkTarget, filepath.Join(f.cfg.SourceDir, "a.jpg")))

	result, err := Run(f.cfg, NewSeededRand(1), io.Discard)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	info, err := os.Lstat(filepath.Join(f.cfg.TargetDir, "Ann.jpg"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "copy should be a regular file, not a link")
	assert.Equal(t, "linked image", readFile(t, filepath.Join(f.cfg.TargetDir, "Ann.jpg")))
}
