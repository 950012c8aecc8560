// Package fileutil provides atomic file replacement.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// AtomicFile is a temporary file next to its destination. Data written to it
// becomes visible under the destination name only on Commit.
type AtomicFile struct {
	*os.File

	source    os.FileInfo
	dst       string
	committed bool
}

// Create stats the source file and opens a temporary file in the directory of
// dst. Callers must defer Abort.
func Create(src, dst string) (*AtomicFile, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &AtomicFile{File: tmp, source: info, dst: dst}, nil
}

// Executable reports whether any execute bit is set on the source file.
func (a *AtomicFile) Executable() bool {
	return a.source.Mode()&executableBits != 0
}

// Commit sets owner-only permissions (plus execute bits when executable),
// renames the temporary file onto the destination and returns its size.
// With preserveTimestamps the source modification time is copied over.
func (a *AtomicFile) Commit(executable, preserveTimestamps bool) (int64, error) {
	perm := os.FileMode(ownerReadWrite)

	if executable {
		perm |= executableBits
	}

	if err := os.Chmod(a.Name(), perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := a.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(a.Name(), a.dst); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	a.committed = true

	if preserveTimestamps {
		modTime := a.source.ModTime()

		if err := os.Chtimes(a.dst, time.Time{}, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(a.dst)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", a.dst, err)
	}

	return info.Size(), nil
}

// Abort removes the temporary file unless Commit succeeded.
func (a *AtomicFile) Abort() {
	if a.committed {
		return
	}

	a.Close()           //nolint:errcheck,gosec // best-effort cleanup
	os.Remove(a.Name()) //nolint:errcheck,gosec // best-effort cleanup
}
