package fs

import (
	"errors"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using gobwas/glob.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Resolve resolves the given input patterns to inputs sorted by absolute path.
// Literal paths must exist. Patterns that match nothing contribute nothing.
// A file matched by several patterns keeps the layout of the first.
func (r *Resolver) Resolve(root string, patterns []string) ([]domain.Input, error) {
	unique := make(map[string]domain.Input)
	add := func(path, rel string) {
		if _, ok := unique[path]; !ok {
			unique[path] = domain.Input{Path: path, Rel: rel}
		}
	}

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		if !HasMeta(path) {
			info, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, iofs.ErrNotExist) {
					return nil, zerr.With(domain.ErrInputNotFound, "path", path)
				}
				return nil, zerr.With(zerr.Wrap(err, domain.ErrInputResolveFailed.Error()), "path", path)
			}
			if !info.IsDir() {
				add(filepath.Clean(path), filepath.Base(path))
			}
			continue
		}

		p, err := CompilePattern(path)
		if err != nil {
			return nil, err
		}

		for file := range r.walker.WalkFiles(p.Base()) {
			if p.Match(file) {
				add(file, p.Rel(file))
			}
		}
	}

	result := slices.Collect(maps.Values(unique))
	slices.SortFunc(result, func(a, b domain.Input) int {
		return strings.Compare(a.Path, b.Path)
	})

	return result, nil
}
