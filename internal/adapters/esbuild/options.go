// Package esbuild implements script bundling and stylesheet post-processing
// on top of the esbuild Go API.
package esbuild

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/zerr"
)

var targets = map[string]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es6":    api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseTarget maps an ECMAScript version name to an esbuild target.
func ParseTarget(name string) (api.Target, error) {
	t, ok := targets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return api.DefaultTarget, zerr.With(domain.ErrUnknownScriptTarget, "target", name)
	}
	return t, nil
}

var engines = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"opera":   api.EngineOpera,
	"safari":  api.EngineSafari,
}

var browserTarget = regexp.MustCompile(`^([a-z]+)(\d+(?:\.\d+){0,2})$`)

// ParseEngines converts browser targets like "chrome58" or "safari11.1" to esbuild engines.
func ParseEngines(names []string) ([]api.Engine, error) {
	out := make([]api.Engine, 0, len(names))
	for _, name := range names {
		m := browserTarget.FindStringSubmatch(strings.ToLower(strings.TrimSpace(name)))
		if m == nil {
			return nil, zerr.With(domain.ErrUnknownBrowserTarget, "target", name)
		}
		engine, ok := engines[m[1]]
		if !ok {
			return nil, zerr.With(domain.ErrUnknownBrowserTarget, "target", name)
		}
		out = append(out, api.Engine{Name: engine, Version: m[2]})
	}
	return out, nil
}

func format(f domain.ScriptFormat) api.Format {
	switch f {
	case domain.FormatESM:
		return api.FormatESModule
	case domain.FormatCJS:
		return api.FormatCommonJS
	default:
		return api.FormatIIFE
	}
}

func loader(path string) api.Loader {
	if strings.EqualFold(filepath.Ext(path), ".css") {
		return api.LoaderCSS
	}
	return api.LoaderJS
}

// compileError converts esbuild messages to a CompileError for the first
// message. root makes relative locations absolute.
func compileError(task domain.TaskKind, msgs []api.Message, root, fallback string) *domain.CompileError {
	first := msgs[0]
	ce := &domain.CompileError{
		Task:    string(task),
		File:    fallback,
		Message: first.Text,
	}
	if n := len(msgs) - 1; n > 0 {
		ce.Message += fmt.Sprintf(" (and %d more)", n)
	}
	if loc := first.Location; loc != nil {
		if loc.File != "" {
			ce.File = loc.File
			if !filepath.IsAbs(ce.File) && root != "" {
				ce.File = filepath.Join(root, ce.File)
			}
		}
		ce.Line = loc.Line
		ce.Column = loc.Column + 1
	}

	frames := api.FormatMessages(msgs[:1], api.FormatMessagesOptions{Kind: api.ErrorMessage})
	if len(frames) > 0 {
		ce.Frame = frame(frames[0])
	}
	return ce
}

// frame drops the headline esbuild repeats above its code excerpt.
func frame(formatted string) string {
	lines := strings.Split(strings.TrimRight(formatted, "\n"), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	return strings.TrimLeft(strings.TrimRight(strings.Join(lines, "\n"), " \n"), "\n")
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
