package fs

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GlobCompiler = (*GlobCompiler)(nil)

// metaChars are the characters that make a path segment a pattern.
const metaChars = "*?[{\\"

// Pattern is a compiled glob anchored at an absolute directory.
type Pattern struct {
	raw   string
	base  string
	globs []glob.Glob
}

// GlobCompiler compiles patterns with gobwas/glob.
type GlobCompiler struct{}

// NewGlobCompiler creates a new GlobCompiler.
func NewGlobCompiler() *GlobCompiler {
	return &GlobCompiler{}
}

// Compile implements ports.GlobCompiler.
func (c *GlobCompiler) Compile(pattern string) (ports.Matcher, error) {
	return CompilePattern(pattern)
}

// CompilePattern compiles pattern. `**` matches any number of directories,
// including none, the way shell globstar does.
func CompilePattern(pattern string) (*Pattern, error) {
	slashed := filepath.ToSlash(filepath.Clean(pattern))

	exprs := expandGlobstar(slashed)
	globs := make([]glob.Glob, 0, len(exprs))
	for _, expr := range exprs {
		g, err := glob.Compile(expr, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidGlob.Error()), "pattern", pattern)
		}
		globs = append(globs, g)
	}

	return &Pattern{
		raw:   pattern,
		base:  staticBase(slashed),
		globs: globs,
	}, nil
}

// expandGlobstar returns one pattern per way of reading each `/**/` as either
// one or more directories or none. gobwas/glob only knows the former.
func expandGlobstar(slashed string) []string {
	head, tail, found := strings.Cut(slashed, "/**/")
	if !found {
		return []string{slashed}
	}

	rest := expandGlobstar(tail)
	out := make([]string, 0, 2*len(rest))
	for _, r := range rest {
		out = append(out, head+"/**/"+r, head+"/"+r)
	}
	return out
}

// Match reports whether path matches the pattern.
func (p *Pattern) Match(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range p.globs {
		if g.Match(slashed) {
			return true
		}
	}
	return false
}

// Rel returns path relative to the pattern's base.
func (p *Pattern) Rel(path string) string {
	rel, err := filepath.Rel(p.base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return rel
}

// Base returns the directory to walk or watch for this pattern.
func (p *Pattern) Base() string {
	return p.base
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// HasMeta reports whether path contains glob metacharacters.
func HasMeta(path string) bool {
	return strings.ContainsAny(filepath.ToSlash(path), metaChars)
}

// staticBase returns the leading segments of a slash pattern that hold no metacharacters.
func staticBase(slashed string) string {
	segments := strings.Split(slashed, "/")
	end := len(segments)
	for i, seg := range segments {
		if strings.ContainsAny(seg, metaChars) {
			end = i
			break
		}
	}

	if end == len(segments) {
		return filepath.Dir(filepath.FromSlash(slashed))
	}

	base := strings.Join(segments[:end], "/")
	if base == "" {
		base = "/"
	}
	return filepath.FromSlash(base)
}
