// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assign

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// maxSuffix bounds the collision search in ResolveTarget.
const maxSuffix = 10000

// PrepareTarget empties dir, or creates it if absent. Entries that cannot
// be removed are reported to w and left in place.
func PrepareTarget(dir string, w io.Writer) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating target directory %s: %w", dir, err)
		}
		fmt.Fprintf(w, "created target directory: %s\n", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading target directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			fmt.Fprintf(w, "warning: could not remove %s: %v\n", path, err)
		}
	}
	fmt.Fprintf(w, "cleared target directory: %s\n", dir)
	return nil
}

// ResolveTarget returns dir/name+ext, or the first free dir/name_N+ext
// (N = 1, 2, ...) when that path is taken.
func ResolveTarget(dir, name, ext string) (string, error) {
	path := filepath.Join(dir, name+ext)
	for n := 1; ; n++ {
		if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
		if n > maxSuffix {
			return "", fmt.Errorf("no free filename for %q after %d attempts", name, maxSuffix)
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, n, ext))
	}
}

// copyFile copies src to dst, keeping the source's permission bits and
// modification time. dst must not exist.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating target: %w", err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(dst)
		return fmt.Errorf("copying: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(dst)
		return fmt.Errorf("closing target: %w", closeErr)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserving modification time: %w", err)
	}
	return nil
}
