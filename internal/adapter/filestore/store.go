// Package filestore writes encoded measurements to the local filesystem.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Store implements pipeline.ByteSink on the local filesystem.
type Store struct{}

// New creates a Store.
func New() *Store {
	return &Store{}
}

// EnsureDir creates dir and any missing parents. It succeeds if dir already
// exists, including when another writer created it concurrently.
func (s *Store) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile replaces the contents of path with data. The bytes go to a
// temporary file in the same directory which is then renamed over path, so
// readers see either the old file or the new one, never a partial write.
func (s *Store) WriteFile(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	// Cleanup is best effort; the caller gets the error that stopped the write.
	discard := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		discard()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		discard()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		discard()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		discard()
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
