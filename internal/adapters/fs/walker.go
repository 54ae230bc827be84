// Package fs provides file system adapters for walking workspaces and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/prism/internal/core/domain"
)

// Walker provides directory walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkBuildFiles yields the BUILD files below root, skipping version control
// and output directories. Paths include root.
func (w *Walker) WalkBuildFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees hold no packages we could load.
				if path == root {
					return err
				}
				return nil
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.Name() != domain.BuildFileName {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkipDir reports whether a directory is excluded from package discovery.
func (w *Walker) shouldSkipDir(name string, ignores []string) bool {
	switch name {
	case ".git", ".jj", domain.PrismDirName:
		return true
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
