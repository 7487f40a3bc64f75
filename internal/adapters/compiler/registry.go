// Package compiler resolves and runs the stylesheet preprocessors.
package compiler

import (
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CompilerRegistry = (*Registry)(nil)

// Registry maps each preprocessor to its compiler.
type Registry struct {
	sass      *Sass
	compilers map[domain.Preprocessor]ports.StyleCompiler
}

// NewRegistry creates a registry for every supported preprocessor.
func NewRegistry(executor ports.Executor, logger ports.Logger) *Registry {
	sass := NewSass(logger)
	return &Registry{
		sass: sass,
		compilers: map[domain.Preprocessor]ports.StyleCompiler{
			domain.PreprocessorNone:   Passthrough{},
			domain.PreprocessorLess:   NewExternal(executor, domain.PreprocessorLess),
			domain.PreprocessorStylus: NewExternal(executor, domain.PreprocessorStylus),
			domain.PreprocessorSass:   sass,
			domain.PreprocessorSCSS:   sass,
		},
	}
}

// For implements ports.CompilerRegistry.
func (r *Registry) For(p domain.Preprocessor) (ports.StyleCompiler, error) {
	c, ok := r.compilers[p]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownPreprocessor, "preprocessor", string(p))
	}
	return c, nil
}

// Close implements ports.CompilerRegistry.
func (r *Registry) Close() error {
	return r.sass.Close()
}
