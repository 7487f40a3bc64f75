package esbuild

import (
	"context"
	"encoding/base64"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bundle/internal/core/domain"
)

const dataURLPrefix = "data:application/json;base64,"

// transform runs a single esbuild transform over the asset in place. A tracked
// asset keeps a source map; an existing map is chained through an inline comment.
func transform(ctx context.Context, task domain.TaskKind, asset *domain.Asset, opts api.TransformOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opts.Loader = loader(asset.Base)
	opts.Sourcefile = asset.Path
	opts.LogLevel = api.LogLevelSilent

	code := asset.Contents
	if asset.TrackMap {
		opts.Sourcemap = api.SourceMapExternal
		if len(asset.SourceMap) > 0 {
			code = withInlineMap(code, asset.SourceMap, opts.Loader)
		}
	}

	res := api.Transform(string(code), opts)
	if len(res.Errors) > 0 {
		return compileError(task, res.Errors, "", asset.Path)
	}

	asset.Contents = res.Code
	if asset.TrackMap {
		asset.SourceMap = res.Map
	} else {
		asset.SourceMap = nil
	}
	return nil
}

func withInlineMap(code, sourceMap []byte, l api.Loader) []byte {
	url := dataURLPrefix + base64.StdEncoding.EncodeToString(sourceMap)
	out := append([]byte{}, code...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	if l == api.LoaderCSS {
		return append(out, "/*# sourceMappingURL="+url+" */\n"...)
	}
	return append(out, "//# sourceMappingURL="+url+"\n"...)
}
