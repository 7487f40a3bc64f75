package config

import (
	"fmt"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var errAutoPrefixerShape = zerr.New("autoPrefixer must be a boolean or a table with a targets array of strings")

// Bundlefile represents the structure of the bundle.yaml / bundle.toml configuration file.
type Bundlefile struct {
	Version     string            `yaml:"version" toml:"version"`
	Root        string            `yaml:"root" toml:"root"`
	Production  bool              `yaml:"production" toml:"production"`
	StaticFiles map[string]string `yaml:"staticFiles" toml:"staticFiles"`
	CSS         *StyleDTO         `yaml:"css" toml:"css"`
	JS          *ScriptDTO        `yaml:"js" toml:"js"`
	Log         *LogDTO           `yaml:"log" toml:"log"`
	Watch       WatchDTO          `yaml:"watch" toml:"watch"`
	Metrics     MetricsDTO        `yaml:"metrics" toml:"metrics"`
}

// StyleDTO represents the css section.
type StyleDTO struct {
	Preprocessor       string            `yaml:"preprocessor" toml:"preprocessor"`
	WatchGlob          string            `yaml:"watchGlob" toml:"watchGlob"`
	InputFileNames     []string          `yaml:"inputFileNames" toml:"inputFileNames"`
	OutputPath         string            `yaml:"outputPath" toml:"outputPath"`
	OutputFileName     string            `yaml:"outputFileName" toml:"outputFileName"`
	Suffix             string            `yaml:"suffix" toml:"suffix"`
	IncludePaths       []string          `yaml:"includePaths" toml:"includePaths"`
	MinifyOnProduction *bool             `yaml:"minifyOnProduction" toml:"minifyOnProduction"`
	AutoPrefixer       AutoPrefixerDTO   `yaml:"autoPrefixer" toml:"autoPrefixer"`
	SourceMaps         *SourceMapsDTO    `yaml:"sourceMaps" toml:"sourceMaps"`
	Compilers          map[string]string `yaml:"compilers" toml:"compilers"`
}

// ScriptDTO represents the js section.
type ScriptDTO struct {
	WatchGlob          string            `yaml:"watchGlob" toml:"watchGlob"`
	OutputPath         string            `yaml:"outputPath" toml:"outputPath"`
	Files              map[string]string `yaml:"files" toml:"files"`
	FilesGlob          *string           `yaml:"filesGlob" toml:"filesGlob"`
	Target             string            `yaml:"target" toml:"target"`
	Format             string            `yaml:"format" toml:"format"`
	Paths              []string          `yaml:"paths" toml:"paths"`
	MinifyOnProduction *bool             `yaml:"minifyOnProduction" toml:"minifyOnProduction"`
	SourceMaps         *SourceMapsDTO    `yaml:"sourceMaps" toml:"sourceMaps"`
}

// SourceMapsDTO represents a sourceMaps block.
type SourceMapsDTO struct {
	External       bool  `yaml:"external" toml:"external"`
	IncludeSources *bool `yaml:"includeSources" toml:"includeSources"`
}

// LogDTO represents the log section.
type LogDTO struct {
	DisplayToast   *bool  `yaml:"displayToast" toml:"displayToast"`
	PrintToConsole bool   `yaml:"printToConsole" toml:"printToConsole"`
	Sound          *bool  `yaml:"sound" toml:"sound"`
	Title          string `yaml:"title" toml:"title"`
}

// WatchDTO represents the watch section.
type WatchDTO struct {
	Debounce string `yaml:"debounce" toml:"debounce"`
}

// MetricsDTO represents the metrics section.
type MetricsDTO struct {
	Address string `yaml:"address" toml:"address"`
}

// AutoPrefixerDTO accepts either `false`/`true` or a mapping with browser targets.
type AutoPrefixerDTO struct {
	// Set reports whether the key was present in the file.
	Set     bool
	Enabled bool
	Targets []string
}

type autoPrefixerFields struct {
	Targets []string `yaml:"targets"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AutoPrefixerDTO) UnmarshalYAML(value *yaml.Node) error {
	a.Set = true
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&a.Enabled)
	}

	var fields autoPrefixerFields
	if err := value.Decode(&fields); err != nil {
		return err
	}
	a.Enabled = true
	a.Targets = fields.Targets
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (a *AutoPrefixerDTO) UnmarshalTOML(data any) error {
	a.Set = true
	switch v := data.(type) {
	case bool:
		a.Enabled = v
		return nil
	case map[string]any:
		a.Enabled = true
		raw, ok := v["targets"]
		if !ok {
			return nil
		}
		list, ok := raw.([]any)
		if !ok {
			return zerr.With(errAutoPrefixerShape, "targets", fmt.Sprintf("%T", raw))
		}
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return zerr.With(errAutoPrefixerShape, "target", fmt.Sprintf("%T", item))
			}
			a.Targets = append(a.Targets, s)
		}
		return nil
	default:
		return zerr.With(errAutoPrefixerShape, "value", fmt.Sprintf("%T", data))
	}
}
