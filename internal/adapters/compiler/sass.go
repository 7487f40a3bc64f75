package compiler

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

const sassTimeout = 30 * time.Second

var _ ports.StyleCompiler = (*Sass)(nil)

// Sass compiles .scss and .sass sources through the embedded Dart Sass protocol.
// One transpiler process is started per binary on first use and reused until Close.
type Sass struct {
	logger ports.Logger

	mu          sync.Mutex
	transpilers map[string]*godartsass.Transpiler
}

// NewSass creates a Sass compiler. No process is started until the first Compile.
func NewSass(logger ports.Logger) *Sass {
	return &Sass{
		logger:      logger,
		transpilers: make(map[string]*godartsass.Transpiler),
	}
}

// Compile implements ports.StyleCompiler.
func (s *Sass) Compile(_ context.Context, asset *domain.Asset, cfg domain.StyleConfig) error {
	bin := cfg.Compiler(cfg.Preprocessor)
	t, err := s.transpiler(bin)
	if err != nil {
		return err
	}

	url := fileURL(asset.Path)
	res, err := t.Execute(godartsass.Args{
		Source:                  string(asset.Contents),
		URL:                     url,
		SourceSyntax:            sourceSyntax(asset.Path),
		OutputStyle:             godartsass.OutputStyleExpanded,
		EnableSourceMap:         asset.TrackMap,
		SourceMapIncludeSources: cfg.SourceMaps.IncludeSources,
		IncludePaths:            append([]string{filepath.Dir(asset.Path)}, cfg.IncludePaths...),
	})
	if err != nil {
		var sassErr godartsass.SassError
		if errors.As(err, &sassErr) {
			return sassCompileError(sassErr, asset, url)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "file", asset.Path)
	}

	asset.Contents = []byte(res.CSS)
	if asset.TrackMap && res.SourceMap != "" {
		asset.SourceMap = []byte(res.SourceMap)
	}
	asset.SetExt(".css")
	return nil
}

// Close shuts down every started transpiler.
func (s *Sass) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for bin, t := range s.transpilers {
		if err := t.Close(); err != nil && !errors.Is(err, godartsass.ErrShutdown) {
			errs = append(errs, err)
		}
		delete(s.transpilers, bin)
	}
	return errors.Join(errs...)
}

func (s *Sass) transpiler(bin string) (*godartsass.Transpiler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transpilers[bin]; ok && !t.IsShutDown() {
		return t, nil
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: bin,
		Timeout:                  sassTimeout,
		LogEventHandler: func(ev godartsass.LogEvent) {
			s.logger.Warn(ev.Message)
		},
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompilerNotFound.Error()), "program", bin)
	}
	s.transpilers[bin] = t
	return t, nil
}

func sourceSyntax(path string) godartsass.SourceSyntax {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sass":
		return godartsass.SourceSyntaxSASS
	case ".css":
		return godartsass.SourceSyntaxCSS
	default:
		return godartsass.SourceSyntaxSCSS
	}
}

func fileURL(path string) string {
	return "file://" + filepath.ToSlash(path)
}

func sassCompileError(e godartsass.SassError, asset *domain.Asset, url string) *domain.CompileError {
	ce := &domain.CompileError{
		Task:    string(domain.TaskStyle),
		File:    asset.Path,
		Message: e.Message,
		Frame:   e.Span.Context,
	}
	if e.Span.Url != "" && e.Span.Url != url {
		ce.File = filepath.FromSlash(strings.TrimPrefix(e.Span.Url, "file://"))
		ce.Column = e.Span.Start.Column + 1
		return ce
	}
	if off := e.Span.Start.Offset; off >= 0 && off <= len(asset.Contents) {
		ce.Line = bytes.Count(asset.Contents[:off], []byte{'\n'}) + 1
		ce.Column = e.Span.Start.Column + 1
	}
	return ce
}
