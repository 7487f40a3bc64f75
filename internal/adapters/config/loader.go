// Package config provides the configuration loader for bundle.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a section or key is absent.
const (
	defaultStyleWatchGlob  = "./src/css/**/*.less"
	defaultStyleInput      = "./src/css/app.less"
	defaultStyleOutputPath = "./css/"
	defaultScriptWatchGlob = "./src/js/**/*.js"
	defaultScriptFilesGlob = "./src/js/*.js"
	defaultScriptOutput    = "./js/"
)

// DefaultBrowserTargets are used when the autoprefixer is enabled without targets.
var DefaultBrowserTargets = []string{"chrome58", "edge16", "firefox57", "safari11"}

// Loader implements ports.ConfigLoader for YAML and TOML files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
	// LookupEnv resolves ${VAR} references before the .env file is consulted.
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader backed by the OS filesystem and environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:    logger,
		FS:        NewOSFS(),
		LookupEnv: os.LookupEnv,
	}
}

// Load reads the configuration file and returns the validated domain.Config.
func (l *Loader) Load(cwd, explicitPath string) (domain.Config, error) {
	configPath := explicitPath
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(cwd, configPath)
		}
		if _, err := l.FS.Stat(configPath); err != nil {
			return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
		}
	} else {
		found, err := l.findConfiguration(cwd)
		if err != nil {
			return domain.Config{}, err
		}
		configPath = found
	}

	var file Bundlefile
	if err := l.readAndUnmarshal(configPath, &file); err != nil {
		return domain.Config{}, err
	}

	env, err := l.newExpander(filepath.Dir(configPath))
	if err != nil {
		return domain.Config{}, err
	}

	cfg, err := l.buildConfig(configPath, &file, env)
	if err != nil {
		return domain.Config{}, zerr.With(err, "config", configPath)
	}

	l.Logger.Debug("loaded configuration from " + configPath)
	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		for _, name := range domain.ConfigFileNames() {
			candidate := filepath.Join(currentDir, name)
			if _, err := l.FS.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) readAndUnmarshal(configPath string, target *Bundlefile) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		err = toml.Unmarshal(data, target)
	} else {
		err = yaml.Unmarshal(data, target)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}

func (l *Loader) buildConfig(configPath string, file *Bundlefile, env *expander) (domain.Config, error) {
	root := resolveRoot(configPath, env.expand(file.Root))

	cfg := domain.Config{
		Root:       root,
		File:       configPath,
		Production: file.Production,
	}

	staticFiles := make(map[string]string, len(file.StaticFiles))
	for src, dst := range file.StaticFiles {
		staticFiles[resolvePath(root, env.expand(src))] = resolvePath(root, env.expand(dst))
	}
	cfg.StaticFiles = domain.NewCopyMappings(staticFiles)

	style, err := buildStyle(root, file.CSS, env)
	if err != nil {
		return domain.Config{}, err
	}
	cfg.Style = style

	script, err := buildScript(root, file.JS, env)
	if err != nil {
		return domain.Config{}, err
	}
	cfg.Script = script

	cfg.Log = buildLog(file.Log)

	cfg.Watch.Debounce = domain.DefaultDebounce
	if file.Watch.Debounce != "" {
		d, err := time.ParseDuration(file.Watch.Debounce)
		if err != nil || d <= 0 {
			return domain.Config{}, zerr.With(domain.ErrInvalidDebounce, "debounce", file.Watch.Debounce)
		}
		cfg.Watch.Debounce = d
	}

	cfg.Metrics.Address = env.expand(file.Metrics.Address)

	return cfg, nil
}

func buildStyle(root string, dto *StyleDTO, env *expander) (domain.StyleConfig, error) {
	if dto == nil {
		dto = &StyleDTO{}
	}

	pre, err := domain.ParsePreprocessor(dto.Preprocessor)
	if err != nil {
		return domain.StyleConfig{}, err
	}

	inputs := dto.InputFileNames
	if inputs == nil {
		inputs = []string{defaultStyleInput}
	}
	watchGlob := orDefault(dto.WatchGlob, defaultStyleWatchGlob)
	outputPath := orDefault(dto.OutputPath, defaultStyleOutputPath)
	if len(inputs) > 0 && strings.TrimSpace(outputPath) == "" {
		return domain.StyleConfig{}, zerr.With(domain.ErrMissingOutputPath, "section", "css")
	}

	style := domain.StyleConfig{
		Preprocessor:       pre,
		WatchGlob:          resolvePath(root, env.expand(watchGlob)),
		Inputs:             resolvePaths(root, env.expandAll(inputs)),
		OutputPath:         resolvePath(root, env.expand(outputPath)),
		OutputFileName:     env.expand(dto.OutputFileName),
		Suffix:             dto.Suffix,
		IncludePaths:       resolvePaths(root, env.expandAll(dto.IncludePaths)),
		MinifyOnProduction: boolOr(dto.MinifyOnProduction, true),
		SourceMaps:         buildSourceMaps(dto.SourceMaps),
		AutoPrefixer:       domain.AutoPrefixer{Enabled: true, Targets: DefaultBrowserTargets},
	}

	if dto.AutoPrefixer.Set {
		style.AutoPrefixer.Enabled = dto.AutoPrefixer.Enabled
		if len(dto.AutoPrefixer.Targets) > 0 {
			style.AutoPrefixer.Targets = slices.Clone(dto.AutoPrefixer.Targets)
		}
	}

	if len(dto.Compilers) > 0 {
		style.Compilers = make(map[domain.Preprocessor]string, len(dto.Compilers))
		for name, bin := range dto.Compilers {
			p, err := domain.ParsePreprocessor(name)
			if err != nil {
				return domain.StyleConfig{}, zerr.With(err, "section", "css.compilers")
			}
			style.Compilers[p] = env.expand(bin)
		}
	}

	return style, nil
}

func buildScript(root string, dto *ScriptDTO, env *expander) (domain.ScriptConfig, error) {
	if dto == nil {
		dto = &ScriptDTO{}
	}

	format, err := domain.ParseScriptFormat(dto.Format)
	if err != nil {
		return domain.ScriptConfig{}, err
	}

	filesGlob := defaultScriptFilesGlob
	if dto.FilesGlob != nil {
		filesGlob = *dto.FilesGlob
	}

	outputPath := orDefault(dto.OutputPath, defaultScriptOutput)
	if strings.TrimSpace(outputPath) == "" {
		return domain.ScriptConfig{}, zerr.With(domain.ErrMissingOutputPath, "section", "js")
	}

	script := domain.ScriptConfig{
		WatchGlob:          resolvePath(root, env.expand(orDefault(dto.WatchGlob, defaultScriptWatchGlob))),
		OutputPath:         resolvePath(root, env.expand(outputPath)),
		Target:             strings.ToLower(orDefault(dto.Target, domain.DefaultScriptTarget)),
		Format:             format,
		Paths:              resolvePaths(root, env.expandAll(dto.Paths)),
		MinifyOnProduction: boolOr(dto.MinifyOnProduction, true),
		SourceMaps:         buildSourceMaps(dto.SourceMaps),
	}
	if filesGlob != "" {
		script.FilesGlob = resolvePath(root, env.expand(filesGlob))
	}

	for entry, out := range dto.Files {
		script.Entries = append(script.Entries, domain.ScriptEntry{
			Path:   resolvePath(root, env.expand(entry)),
			Output: env.expand(out),
		})
	}
	slices.SortFunc(script.Entries, func(a, b domain.ScriptEntry) int {
		return strings.Compare(a.Path, b.Path)
	})

	return script, nil
}

func buildLog(dto *LogDTO) domain.LogConfig {
	if dto == nil {
		dto = &LogDTO{}
	}
	return domain.LogConfig{
		DisplayToast:   boolOr(dto.DisplayToast, true),
		PrintToConsole: dto.PrintToConsole,
		Sound:          boolOr(dto.Sound, true),
		Title:          orDefault(dto.Title, domain.DefaultToastTitle),
	}
}

func buildSourceMaps(dto *SourceMapsDTO) domain.SourceMaps {
	if dto == nil {
		return domain.SourceMaps{IncludeSources: true}
	}
	return domain.SourceMaps{
		External:       dto.External,
		IncludeSources: boolOr(dto.IncludeSources, true),
	}
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// resolvePath anchors p at root. Glob metacharacters are preserved.
func resolvePath(root, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func resolvePaths(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(root, p)
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
