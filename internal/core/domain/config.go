// Package domain holds the configuration, task and asset types shared by every layer.
package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Preprocessor names the stylesheet language compiled by the css task.
type Preprocessor string

const (
	// PreprocessorNone passes plain CSS through unchanged.
	PreprocessorNone Preprocessor = "none"
	// PreprocessorLess compiles .less sources with the lessc binary.
	PreprocessorLess Preprocessor = "less"
	// PreprocessorSass compiles indented .sass sources with dart-sass.
	PreprocessorSass Preprocessor = "sass"
	// PreprocessorSCSS compiles .scss sources with dart-sass.
	PreprocessorSCSS Preprocessor = "scss"
	// PreprocessorStylus compiles .styl sources with the stylus binary.
	PreprocessorStylus Preprocessor = "stylus"
)

// ParsePreprocessor validates a preprocessor name. An empty name selects less.
func ParsePreprocessor(name string) (Preprocessor, error) {
	switch p := Preprocessor(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return PreprocessorLess, nil
	case PreprocessorNone, PreprocessorLess, PreprocessorSass, PreprocessorSCSS, PreprocessorStylus:
		return p, nil
	default:
		return "", zerr.With(ErrUnknownPreprocessor, "preprocessor", name)
	}
}

// ScriptFormat is the module format of bundled script output.
type ScriptFormat string

const (
	// FormatIIFE wraps the bundle in an immediately invoked function.
	FormatIIFE ScriptFormat = "iife"
	// FormatESM emits an ECMAScript module.
	FormatESM ScriptFormat = "esm"
	// FormatCJS emits a CommonJS module.
	FormatCJS ScriptFormat = "cjs"
)

// ParseScriptFormat validates a script format name. An empty name selects iife.
func ParseScriptFormat(name string) (ScriptFormat, error) {
	switch f := ScriptFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatIIFE, nil
	case FormatIIFE, FormatESM, FormatCJS:
		return f, nil
	default:
		return "", zerr.With(ErrUnknownScriptFormat, "format", name)
	}
}

// SourceMaps controls how source maps are emitted in development mode.
type SourceMaps struct {
	// External writes a sibling .map file instead of an inline data URL.
	External bool
	// IncludeSources embeds original sources in the map.
	IncludeSources bool
}

// AutoPrefixer configures vendor prefixing of compiled CSS.
type AutoPrefixer struct {
	Enabled bool
	// Targets are browser versions such as "chrome58" or "safari11".
	Targets []string
}

// StyleConfig is the css task configuration.
type StyleConfig struct {
	Preprocessor       Preprocessor
	WatchGlob          string
	Inputs             []string
	OutputPath         string
	OutputFileName     string
	Suffix             string
	IncludePaths       []string
	MinifyOnProduction bool
	AutoPrefixer       AutoPrefixer
	SourceMaps         SourceMaps
	// Compilers maps a preprocessor to the executable that implements it.
	Compilers map[Preprocessor]string
}

// Compiler returns the executable configured for p, falling back to the conventional binary name.
func (s StyleConfig) Compiler(p Preprocessor) string {
	if bin, ok := s.Compilers[p]; ok && bin != "" {
		return bin
	}
	switch p {
	case PreprocessorLess:
		return "lessc"
	case PreprocessorStylus:
		return "stylus"
	case PreprocessorSass, PreprocessorSCSS:
		return "sass"
	default:
		return ""
	}
}

// ScriptEntry is one bundle entry point and the file name it is written to.
type ScriptEntry struct {
	Path string
	// Output is the output file name; empty means the entry's base name.
	Output string
}

// ScriptConfig is the js task configuration.
type ScriptConfig struct {
	WatchGlob          string
	OutputPath         string
	Entries            []ScriptEntry
	FilesGlob          string
	Target             string
	Format             ScriptFormat
	Paths              []string
	MinifyOnProduction bool
	SourceMaps         SourceMaps
}

// LogConfig selects where task errors are reported.
type LogConfig struct {
	DisplayToast   bool
	PrintToConsole bool
	Sound          bool
	Title          string
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	Debounce time.Duration
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	// Address to serve /metrics on while watching. Empty disables the endpoint.
	Address string
}

// CopyMapping is a static-file copy from a source directory to a destination directory.
type CopyMapping struct {
	Source      string
	Destination string
}

// Config is the complete, immutable build configuration for one process.
type Config struct {
	// Root is the absolute project root every relative path was resolved against.
	Root string
	// File is the absolute path of the configuration file that produced this value.
	File        string
	Production  bool
	StaticFiles []CopyMapping
	Style       StyleConfig
	Script      ScriptConfig
	Log         LogConfig
	Watch       WatchConfig
	Metrics     MetricsConfig
}

// WithProduction returns a copy of c with the production switch set.
func (c Config) WithProduction(production bool) Config {
	c.Production = production
	return c
}

// NewCopyMappings converts a source to destination map into mappings sorted by source.
func NewCopyMappings(m map[string]string) []CopyMapping {
	mappings := make([]CopyMapping, 0, len(m))
	for src, dst := range m {
		mappings = append(mappings, CopyMapping{Source: src, Destination: dst})
	}
	slices.SortFunc(mappings, func(a, b CopyMapping) int {
		return strings.Compare(a.Source, b.Source)
	})
	return mappings
}
