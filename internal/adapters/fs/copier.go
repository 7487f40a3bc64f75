package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Copier = (*Copier)(nil)

// Copier mirrors static directories byte for byte.
type Copier struct {
	walker *Walker
}

// NewCopier creates a new Copier.
func NewCopier(walker *Walker) *Copier {
	return &Copier{walker: walker}
}

// CopyDir copies every file below src to the same relative path below dst.
// Files already identical at the destination are left alone.
func (c *Copier) CopyDir(src, dst string) (int, bool, error) {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "src", src)
	}
	if !info.IsDir() {
		return 0, false, nil
	}

	copied := 0
	for path := range c.walker.WalkFiles(src) {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return copied, true, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", path)
		}

		data, err := os.ReadFile(path) //nolint:gosec // path comes from walking src
		if err != nil {
			return copied, true, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", path)
		}

		changed, err := WriteFileIfChanged(filepath.Join(dst, rel), data)
		if err != nil {
			return copied, true, zerr.With(err, "src", src)
		}
		if changed {
			copied++
		}
	}

	return copied, true, nil
}
