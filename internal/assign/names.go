// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assign

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadNames returns the trimmed, non-empty lines of path in file order.
// Duplicates are kept; each occurrence receives its own assignment.
func ReadNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNamesNotFound, path)
		}
		return nil, fmt.Errorf("reading name file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading name file: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoNames, path)
	}
	return names, nil
}

// ListCandidates returns the names of regular files (or symlinks to them) in dir whose extension
// matches ext case-insensitively, sorted for reproducible draws.
func ListCandidates(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var files []string
	for _, entry := range entries {
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ext) {
			continue
		}
		if isRegularFile(dir, entry) {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrNoCandidates, ext, dir)
	}
	sort.Strings(files)
	return files, nil
}

// isRegularFile reports whether entry is a regular file, following a
// symlink to its target.
func isRegularFile(dir string, entry os.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}
