package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
)

// Stage names.
const (
	StageMapInit  = "sourcemaps:init"
	StageCompile  = "compile"
	StagePrefix   = "autoprefix"
	StageMinify   = "minify"
	StageMapWrite = "sourcemaps:write"
	StageRename   = "rename"
	StageDest     = "dest"
	StageBundle   = "bundle"
)

func (r *Runner) stylePipeline(ru *run, compiler ports.StyleCompiler) Pipeline {
	style := ru.cfg.Style

	return Pipeline{
		Task: domain.TaskStyle,
		Stages: []Stage{
			{
				Name:    StageMapInit,
				Enabled: development,
				Apply: func(_ context.Context, asset *domain.Asset) error {
					asset.TrackMap = true
					return nil
				},
			},
			{
				Name:    StageCompile,
				Enabled: always,
				Apply: func(ctx context.Context, asset *domain.Asset) error {
					return compiler.Compile(ctx, asset, style)
				},
			},
			{
				Name: StagePrefix,
				Enabled: func(cfg domain.Config) bool {
					return cfg.Style.AutoPrefixer.Enabled
				},
				Apply: func(ctx context.Context, asset *domain.Asset) error {
					return r.styles.Prefix(ctx, asset, style.AutoPrefixer.Targets)
				},
			},
			{
				Name: StageMinify,
				Enabled: func(cfg domain.Config) bool {
					return cfg.Production && cfg.Style.MinifyOnProduction
				},
				Apply: func(ctx context.Context, asset *domain.Asset) error {
					return r.styles.Minify(ctx, asset)
				},
			},
			{
				Name:    StageMapWrite,
				Enabled: development,
				Apply: func(ctx context.Context, asset *domain.Asset) error {
					if err := r.styles.Map(ctx, asset, style.SourceMaps.IncludeSources); err != nil {
						return err
					}
					writeMap(asset, style.SourceMaps)
					return nil
				},
			},
			{
				Name: StageRename,
				Enabled: func(cfg domain.Config) bool {
					return cfg.Style.OutputFileName != "" || cfg.Style.Suffix != ""
				},
				Apply: func(_ context.Context, asset *domain.Asset) error {
					renameStyle(asset, style.OutputFileName, style.Suffix)
					return nil
				},
			},
			{
				Name:    StageDest,
				Enabled: always,
				Apply: func(_ context.Context, asset *domain.Asset) error {
					return r.dest(ru, style.OutputPath, asset)
				},
			},
		},
	}
}

func (r *Runner) scriptPipeline(ru *run) Pipeline {
	cfg := ru.cfg
	script := cfg.Script

	return Pipeline{
		Task: domain.TaskScript,
		Stages: []Stage{
			{
				Name:    StageBundle,
				Enabled: always,
				Apply: func(ctx context.Context, asset *domain.Asset) error {
					asset.TrackMap = !cfg.Production
					err := r.scripts.Bundle(ctx, asset, ports.BundleOptions{
						Root:           cfg.Root,
						OutDir:         script.OutputPath,
						Target:         script.Target,
						Format:         script.Format,
						Paths:          script.Paths,
						IncludeSources: script.SourceMaps.IncludeSources,
					})
					if err != nil {
						return err
					}
					asset.SetExt(".js")
					return nil
				},
			},
			{
				Name: StageMinify,
				Enabled: func(cfg domain.Config) bool {
					return cfg.Production && cfg.Script.MinifyOnProduction
				},
				Apply: func(ctx context.Context, asset *domain.Asset) error {
					return r.scripts.Minify(ctx, asset, script.Target)
				},
			},
			{
				Name:    StageMapWrite,
				Enabled: development,
				Apply: func(ctx context.Context, asset *domain.Asset) error {
					if err := r.scripts.Map(ctx, asset, script.SourceMaps.IncludeSources); err != nil {
						return err
					}
					writeMap(asset, script.SourceMaps)
					return nil
				},
			},
			{
				Name:    StageRename,
				Enabled: always,
				Apply: func(_ context.Context, asset *domain.Asset) error {
					if asset.Output != "" {
						asset.Base = asset.Output
					}
					return nil
				},
			},
			{
				Name:    StageDest,
				Enabled: always,
				Apply: func(_ context.Context, asset *domain.Asset) error {
					return r.dest(ru, script.OutputPath, asset)
				},
			},
		},
	}
}

// renameStyle applies a fixed output name, then the suffix before the extension.
// The directory part of the output is kept.
func renameStyle(asset *domain.Asset, name, suffix string) {
	if name != "" {
		asset.Base = filepath.Join(filepath.Dir(asset.Base), name)
	}
	if suffix != "" {
		ext := filepath.Ext(asset.Base)
		asset.Base = strings.TrimSuffix(asset.Base, ext) + suffix + ext
	}
}
