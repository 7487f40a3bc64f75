package esbuild

import (
	"context"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
)

var _ ports.StyleTransformer = (*StyleTransformer)(nil)

// StyleTransformer prefixes, minifies and maps compiled CSS.
type StyleTransformer struct{}

// NewStyleTransformer creates a StyleTransformer.
func NewStyleTransformer() *StyleTransformer {
	return &StyleTransformer{}
}

// Prefix lowers the stylesheet for targets, adding vendor prefixes where required.
func (s *StyleTransformer) Prefix(ctx context.Context, asset *domain.Asset, targets []string) error {
	eng, err := ParseEngines(targets)
	if err != nil {
		return err
	}
	return transform(ctx, domain.TaskStyle, asset, api.TransformOptions{Engines: eng})
}

// Minify implements ports.StyleTransformer.
func (s *StyleTransformer) Minify(ctx context.Context, asset *domain.Asset) error {
	return transform(ctx, domain.TaskStyle, asset, api.TransformOptions{
		MinifyWhitespace: true,
		MinifySyntax:     true,
	})
}

// Map implements ports.StyleTransformer.
func (s *StyleTransformer) Map(ctx context.Context, asset *domain.Asset, includeSources bool) error {
	return ensureMap(ctx, domain.TaskStyle, asset, includeSources)
}

func ensureMap(ctx context.Context, task domain.TaskKind, asset *domain.Asset, includeSources bool) error {
	if !asset.TrackMap || len(asset.SourceMap) > 0 {
		return nil
	}
	return transform(ctx, task, asset, api.TransformOptions{
		SourcesContent: cond(includeSources, api.SourcesContentInclude, api.SourcesContentExclude),
	})
}
