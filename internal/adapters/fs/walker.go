// Package fs provides file system adapters for resolving, writing and copying build files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root in lexical order, skipping
// VCS metadata and node_modules. Paths are prefixed with root.
// A missing root yields nothing.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && skippedDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}
