// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assign gives every name in a list a randomly drawn candidate file.
// Each draw is copied into a target directory under the name and recorded
// in a plain-text results log.
package assign

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdftask/pkg/types"
)

const (
	// DefaultExtension selects candidate files when none is configured.
	DefaultExtension = ".jpg"

	logHeader = "Assignment results:"
	logRule   = 30
)

var (
	// ErrNamesNotFound is returned when the name file does not exist.
	ErrNamesNotFound = errors.New("name file not found")

	// ErrNoNames is returned when the name file holds no non-empty lines.
	ErrNoNames = errors.New("name file is empty")

	// ErrNoCandidates is returned when the source directory holds no
	// files with the configured extension.
	ErrNoCandidates = errors.New("no candidate files found")
)

// Result holds the outcome of an assignment run.
type Result struct {
	Assigned int
	Failed   int
	Records  []types.AssignmentRecord
}

// Total returns the number of names processed.
func (r Result) Total() int {
	return r.Assigned + r.Failed
}

// HasFailures reports whether any name could not be assigned.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run clears cfg.TargetDir, reads names, lists candidates, and assigns one
// candidate per name, printing per-name status to w. Missing names, an
// empty name list, or an empty candidate set abort the run before any file
// is copied. A failure for a single name is reported and the run continues.
func Run(cfg types.AssignConfig, rng *rand.Rand, w io.Writer) (Result, error) {
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if err := ValidateMode(cfg.Mode); err != nil {
		return Result{}, err
	}

	if err := PrepareTarget(cfg.TargetDir, w); err != nil {
		return Result{}, err
	}

	names, err := ReadNames(cfg.NamesFile)
	if err != nil {
		return Result{}, err
	}

	candidates, err := ListCandidates(cfg.SourceDir, cfg.Extension)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(w, "found %d candidate file(s) in %s\n", len(candidates), cfg.SourceDir)

	draw, err := NewSampler(cfg.Mode, candidates, rng)
	if err != nil {
		return Result{}, err
	}

	logFile, err := os.Create(cfg.LogPath)
	if err != nil {
		return Result{}, fmt.Errorf("creating results log: %w", err)
	}
	defer logFile.Close()

	if _, err := fmt.Fprintf(logFile, "%s\n%s\n", logHeader, strings.Repeat("=", logRule)); err != nil {
		return Result{}, fmt.Errorf("writing results log: %w", err)
	}

	result := assignAll(cfg, names, draw, logFile, w)

	if err := logFile.Close(); err != nil {
		return result, fmt.Errorf("closing results log: %w", err)
	}

	fmt.Fprintf(w, "\nAssignment summary: %d assigned, %d failed (total: %d); results saved to %s\n",
		result.Assigned, result.Failed, result.Total(), cfg.LogPath)
	return result, nil
}

// assignAll assigns one draw per name, writing each log line as soon as its
// copy succeeds. A name whose copy or log line fails is reported to w and
// its copy, if any, is removed so the target directory matches the log.
func assignAll(cfg types.AssignConfig, names []string, draw func() string, log, w io.Writer) Result {
	var result Result
	for _, name := range names {
		rec, err := assignOne(cfg, name, draw())
		if err == nil {
			if _, logErr := fmt.Fprintf(log, "%s, %s\n", rec.Name, rec.Source); logErr != nil {
				os.Remove(filepath.Join(cfg.TargetDir, rec.Target))
				err = fmt.Errorf("writing results log: %w", logErr)
			}
		}
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "assigned: %s -> %s (saved as %s)\n", rec.Name, rec.Source, rec.Target)
		result.Assigned++
		result.Records = append(result.Records, rec)
	}
	return result
}

// assignOne copies source into the target directory under name, keeping
// the candidate's extension and never overwriting an existing file.
func assignOne(cfg types.AssignConfig, name, source string) (types.AssignmentRecord, error) {
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return types.AssignmentRecord{}, fmt.Errorf("name %q is not a valid filename", name)
	}

	target, err := ResolveTarget(cfg.TargetDir, name, filepath.Ext(source))
	if err != nil {
		return types.AssignmentRecord{}, err
	}
	if err := copyFile(filepath.Join(cfg.SourceDir, source), target); err != nil {
		return types.AssignmentRecord{}, err
	}
	return types.AssignmentRecord{
		Name:   name,
		Source: source,
		Target: filepath.Base(target),
	}, nil
}
