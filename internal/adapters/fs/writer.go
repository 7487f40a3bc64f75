package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer persists assets, leaving files whose contents are unchanged untouched.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write stores asset and its companion files in dir.
func (w *Writer) Write(dir string, asset *domain.Asset) ([]string, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "dir", dir)
	}

	var written []string

	files := append([]domain.Asset{*asset}, asset.Extra...)
	for i := range files {
		path := filepath.Join(dir, files[i].Base)
		changed, err := WriteFileIfChanged(path, files[i].Contents)
		if err != nil {
			return written, err
		}
		if changed {
			written = append(written, path)
		}
	}

	return written, nil
}

// WriteFileIfChanged writes data to path unless the file already holds the same bytes.
// The write goes through a temporary file in the same directory and a rename.
func WriteFileIfChanged(path string, data []byte) (bool, error) {
	same, err := sameContents(path, data)
	if err != nil {
		return false, err
	}
	if same {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	return true, nil
}

// sameContents compares by size, then by xxhash digest, then bytewise.
func sameContents(path string, data []byte) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if !info.Mode().IsRegular() || info.Size() != int64(len(data)) {
		return false, nil
	}

	existing, err := os.ReadFile(path) //nolint:gosec // path is an output location
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	return xxhash.Sum64(existing) == xxhash.Sum64(data) && bytes.Equal(existing, data), nil
}
