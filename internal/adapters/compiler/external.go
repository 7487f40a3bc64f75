package compiler

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
)

var _ ports.StyleCompiler = (*External)(nil)

// External runs a command line preprocessor (lessc or stylus) that writes CSS to stdout.
//
// When the asset tracks a source map the compiler is asked for an inline map
// with embedded sources, which is lifted into Asset.SourceMap so later stages
// chain it back to the .less or .styl file. A compiler that prints no map
// leaves the asset unmapped; the sourcemaps stage then maps the compiled CSS
// only, and sourcesContent holds CSS rather than the preprocessor source.
type External struct {
	executor     ports.Executor
	preprocessor domain.Preprocessor
}

// NewExternal creates a compiler that shells out for preprocessor p.
func NewExternal(executor ports.Executor, p domain.Preprocessor) *External {
	return &External{executor: executor, preprocessor: p}
}

// Compile implements ports.StyleCompiler.
func (e *External) Compile(ctx context.Context, asset *domain.Asset, cfg domain.StyleConfig) error {
	dir := filepath.Dir(asset.Path)
	out, err := e.executor.Execute(ctx, ports.Invocation{
		Program: cfg.Compiler(e.preprocessor),
		Args:    e.args(asset.Path, dir, cfg.IncludePaths, asset.TrackMap),
		Dir:     dir,
	})
	if err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			return parseDiagnostic(cmdErr.Output, asset.Path)
		}
		return err
	}

	asset.Contents = out
	if asset.TrackMap {
		if code, sourceMap, ok := extractInlineMap(out); ok {
			asset.Contents = code
			asset.SourceMap = sourceMap
		}
	}
	asset.SetExt(".css")
	return nil
}

func (e *External) args(path, dir string, includePaths []string, withMap bool) []string {
	paths := append([]string{dir}, includePaths...)
	switch e.preprocessor {
	case domain.PreprocessorStylus:
		args := []string{"--print"}
		if withMap {
			args = append(args, "--sourcemap-inline")
		}
		for _, p := range paths {
			args = append(args, "--include", p)
		}
		return append(args, path)
	default:
		args := []string{"--no-color"}
		if withMap {
			args = append(args, "--source-map-inline", "--source-map-include-source")
		}
		return append(args,
			"--include-path="+strings.Join(paths, string(filepath.ListSeparator)),
			path,
		)
	}
}

var inlineMapPattern = regexp.MustCompile(
	`/\*#\s*sourceMappingURL=data:application/json;(?:charset=utf-8;)?base64,([A-Za-z0-9+/=]+)\s*\*/\s*$`,
)

// extractInlineMap splits a trailing inline source map comment off css.
func extractInlineMap(css []byte) (code, sourceMap []byte, ok bool) {
	loc := inlineMapPattern.FindSubmatchIndex(css)
	if loc == nil {
		return css, nil, false
	}

	sourceMap, err := base64.StdEncoding.DecodeString(string(css[loc[2]:loc[3]]))
	if err != nil {
		return css, nil, false
	}

	code = append(bytes.Clone(bytes.TrimRight(css[:loc[0]], " \t\r\n")), '\n')
	return code, sourceMap, true
}

var locationPatterns = []*regexp.Regexp{
	// lessc: "... in /src/app.less on line 3, column 8:"
	regexp.MustCompile(`in (\S+) on line (\d+), column (\d+)`),
	// stylus: "Error: /src/app.styl:3:8"
	regexp.MustCompile(`(\S+?):(\d+):(\d+)`),
}

// parseDiagnostic turns compiler stderr into a CompileError. The first line is
// the message and the remaining lines are the source frame.
func parseDiagnostic(out, path string) *domain.CompileError {
	out = strings.TrimSpace(out)
	msg, frame, _ := strings.Cut(out, "\n")

	ce := &domain.CompileError{
		Task:    string(domain.TaskStyle),
		File:    path,
		Message: strings.TrimSpace(msg),
		Frame:   frame,
	}

	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(out)
		if m == nil {
			continue
		}
		ce.File = m[1]
		ce.Line, _ = strconv.Atoi(m[2])
		ce.Column, _ = strconv.Atoi(m[3])
		break
	}

	return ce
}
