package esbuild

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScriptBundler = (*ScriptBundler)(nil)

// ScriptBundler bundles script entries with their imports and lowers them to a target.
type ScriptBundler struct {
	logger ports.Logger
}

// NewScriptBundler creates a ScriptBundler. Bundle warnings are forwarded to logger.
func NewScriptBundler(logger ports.Logger) *ScriptBundler {
	return &ScriptBundler{logger: logger}
}

// Bundle implements ports.ScriptBundler.
func (b *ScriptBundler) Bundle(ctx context.Context, asset *domain.Asset, opts ports.BundleOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := ParseTarget(opts.Target)
	if err != nil {
		return err
	}

	outDir := cond(opts.OutDir != "", opts.OutDir, filepath.Dir(asset.Path))
	result := api.Build(api.BuildOptions{
		EntryPoints:    []string{asset.Path},
		Bundle:         true,
		Write:          false,
		Outfile:        filepath.Join(outDir, asset.Base),
		AbsWorkingDir:  opts.Root,
		Platform:       api.PlatformBrowser,
		Format:         format(opts.Format),
		Target:         target,
		NodePaths:      opts.Paths,
		Sourcemap:      cond(asset.TrackMap, api.SourceMapExternal, api.SourceMapNone),
		SourcesContent: cond(opts.IncludeSources, api.SourcesContentInclude, api.SourcesContentExclude),
		LogLevel:       api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		return compileError(domain.TaskScript, result.Errors, opts.Root, asset.Path)
	}
	if len(result.Warnings) > 0 {
		for _, msg := range api.FormatMessages(result.Warnings, api.FormatMessagesOptions{Kind: api.WarningMessage}) {
			b.logger.Warn(strings.TrimRight(msg, "\n"))
		}
	}

	var found bool
	for _, f := range result.OutputFiles {
		if strings.HasSuffix(f.Path, domain.MapSuffix) {
			asset.SourceMap = f.Contents
			continue
		}
		asset.Contents = f.Contents
		found = true
	}
	if !found {
		return zerr.With(domain.ErrCompileFailed, "file", asset.Path)
	}
	return nil
}

// Minify implements ports.ScriptBundler.
func (b *ScriptBundler) Minify(ctx context.Context, asset *domain.Asset, target string) error {
	t, err := ParseTarget(target)
	if err != nil {
		return err
	}
	return transform(ctx, domain.TaskScript, asset, api.TransformOptions{
		Target:            t,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
}

// Map implements ports.ScriptBundler.
func (b *ScriptBundler) Map(ctx context.Context, asset *domain.Asset, includeSources bool) error {
	return ensureMap(ctx, domain.TaskScript, asset, includeSources)
}
