// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/bundle/internal/core/domain"
)

//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks

// StyleCompiler turns preprocessor sources into CSS.
type StyleCompiler interface {
	// Compile replaces the asset contents with compiled CSS. When asset.TrackMap
	// is set it also fills asset.SourceMap.
	Compile(ctx context.Context, asset *domain.Asset, cfg domain.StyleConfig) error
}

// CompilerRegistry resolves the compiler for a preprocessor.
type CompilerRegistry interface {
	For(p domain.Preprocessor) (StyleCompiler, error)
	// Close stops long-running compiler processes.
	Close() error
}

// StyleTransformer post-processes compiled CSS.
type StyleTransformer interface {
	// Prefix adds vendor prefixes required by the given browser targets.
	Prefix(ctx context.Context, asset *domain.Asset, targets []string) error
	// Minify compresses the stylesheet.
	Minify(ctx context.Context, asset *domain.Asset) error
	// Map makes sure a tracked asset carries a source map.
	Map(ctx context.Context, asset *domain.Asset, includeSources bool) error
}

// BundleOptions tunes a single script bundle.
type BundleOptions struct {
	Root string
	// OutDir is the directory the bundle will be written to. Source map paths are relative to it.
	OutDir         string
	Target         string
	Format         domain.ScriptFormat
	Paths          []string
	IncludeSources bool
}

// ScriptBundler bundles, transpiles and minifies script entries.
type ScriptBundler interface {
	// Bundle resolves the entry at asset.Path with its imports into asset.Contents.
	Bundle(ctx context.Context, asset *domain.Asset, opts BundleOptions) error
	// Minify compresses a bundled script.
	Minify(ctx context.Context, asset *domain.Asset, target string) error
	// Map makes sure a tracked asset carries a source map.
	Map(ctx context.Context, asset *domain.Asset, includeSources bool) error
}
