// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split cuts a PDF into sub-documents by inclusive page ranges.
// Each valid range produces one output file named by its 1-based position
// in the range list; invalid ranges are reported and skipped.
package split

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdftask/pkg/types"
)

// DefaultNameTemplate names outputs split_1.pdf, split_2.pdf, ...
const DefaultNameTemplate = "split_%d.pdf"

// ErrBadTemplate is returned when a name template has no %d verb.
var ErrBadTemplate = errors.New("name template must contain exactly one %d")

// Document is an opened source document.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// WritePages writes a new document holding the given 1-based pages,
	// in the given order, to w.
	WritePages(pages []int, w io.Writer) error
}

// Opener opens a source document from a filesystem path. The pdfcpu backend
// implements it; tests substitute fakes.
type Opener interface {
	Open(path string) (Document, error)
}

// BatchResult holds the outcome of a split run.
type BatchResult struct {
	Created int
	Skipped int
	Failed  int

	// Files lists the written output paths in range order.
	Files []string

	// Invalid lists the 1-based positions of ranges skipped as out of bounds.
	Invalid []int
}

// Total returns the number of ranges processed.
func (r BatchResult) Total() int {
	return r.Created + r.Skipped + r.Failed
}

// HasFailures reports whether any valid range failed to be written.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputName returns the output filename for the range at 1-based position idx.
func OutputName(template string, idx int) (string, error) {
	if template == "" {
		template = DefaultNameTemplate
	}
	if strings.Count(template, "%d") != 1 || strings.Count(template, "%") != 1 {
		return "", fmt.Errorf("%w: %q", ErrBadTemplate, template)
	}
	name := fmt.Sprintf(template, idx)
	if name != filepath.Base(name) {
		return "", fmt.Errorf("name template %q must not contain a path separator", template)
	}
	return name, nil
}

// SplitFile writes one document per valid range in cfg.Ranges to
// cfg.OutputDir, printing per-range status to w. The output directory is
// created if absent. A source that cannot be opened aborts the run; a range
// that fails validation or writing is reported and processing continues.
func SplitFile(o Opener, cfg types.SplitConfig, w io.Writer) (BatchResult, error) {
	if _, err := OutputName(cfg.NameTemplate, 1); err != nil {
		return BatchResult{}, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	doc, err := o.Open(cfg.Source)
	if err != nil {
		return BatchResult{}, fmt.Errorf("opening %s: %w", cfg.Source, err)
	}
	total := doc.PageCount()

	var result BatchResult
	for i, r := range cfg.Ranges {
		idx := i + 1
		if !r.Valid(total) {
			fmt.Fprintf(w, "warning: range %d (%s) out of bounds for %d pages, skipped\n", idx, r, total)
			result.Skipped++
			result.Invalid = append(result.Invalid, idx)
			continue
		}

		name, _ := OutputName(cfg.NameTemplate, idx)
		outPath := filepath.Join(cfg.OutputDir, name)
		if err := writeFile(outPath, func(f io.Writer) error {
			return doc.WritePages(r.Pages(), f)
		}); err != nil {
			fmt.Fprintf(w, "failed:  range %d (%s): %v\n", idx, r, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "created: %s (pages %s)\n", outPath, r)
		result.Created++
		result.Files = append(result.Files, outPath)
	}

	fmt.Fprintf(w, "\nBatch summary: %d created, %d skipped, %d failed (total: %d)\n",
		result.Created, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// writeFile streams content into a temp file beside destPath and renames it
// into place, so a failed write never leaves a truncated output behind.
func writeFile(destPath string, content func(io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".split-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := content(tmpFile)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing pages: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
