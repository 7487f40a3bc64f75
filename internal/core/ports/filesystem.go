package ports

import "go.trai.ch/bundle/internal/core/domain"

//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks

// InputResolver expands input patterns into concrete files.
type InputResolver interface {
	// Resolve expands each pattern. Literal paths must exist; globs may match nothing.
	// Results are de-duplicated and sorted by absolute path. A literal path is
	// relative to its own directory, a glob match to the pattern's base.
	Resolve(root string, patterns []string) ([]domain.Input, error)
}

// OutputWriter persists pipeline results.
type OutputWriter interface {
	// Write stores asset and its companions below dir and returns the paths
	// whose contents changed.
	Write(dir string, asset *domain.Asset) (written []string, err error)
}

// Copier mirrors a directory tree.
type Copier interface {
	// CopyDir copies src into dst recursively. It reports found=false when src
	// does not exist, in which case nothing is created.
	CopyDir(src, dst string) (copied int, found bool, err error)
}

// Matcher is a compiled path pattern.
type Matcher interface {
	// Match reports whether the absolute path matches the pattern.
	Match(path string) bool
	// Base returns the longest directory prefix of the pattern without metacharacters.
	Base() string
}

// GlobCompiler compiles path patterns supporting `*`, `?`, `[...]`, `{a,b}` and `**`.
type GlobCompiler interface {
	Compile(pattern string) (Matcher, error)
}
