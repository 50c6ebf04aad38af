// Package cache persists a generated bindings directory for reuse by later
// installs. The cache is a verbatim directory copy: no eviction, no version
// keying. A reinstall with reuse enabled takes whatever is there.
package cache

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/brlbind/internal/logfields"
)

// Store manages the cached bindings directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the cache directory path.
func (s *Store) Dir() string { return s.dir }

// Exists reports whether a cached bindings directory is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// Restore copies the cached bindings into dst.
func (s *Store) Restore(dst string) error {
	if !s.Exists() {
		return fmt.Errorf("no cached bindings at %s", s.dir)
	}
	slog.Debug("Restoring cached bindings", logfields.Path(s.dir))
	if err := copyDir(s.dir, dst); err != nil {
		return fmt.Errorf("restore cached bindings: %w", err)
	}
	return nil
}

// Persist replaces the cache contents with a copy of src.
func (s *Store) Persist(src string) error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove stale cache: %w", err)
	}
	slog.Debug("Caching bindings", logfields.Path(s.dir))
	if err := copyDir(src, s.dir); err != nil {
		return fmt.Errorf("cache bindings: %w", err)
	}
	return nil
}

// copyDir recursively copies a directory tree, handling cross-device scenarios
func copyDir(src, dst string) error {
	// Get properties of source dir
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	// Create destination directory
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	// Read all directory contents
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyFile copies a single file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	// Preserve file permissions
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
