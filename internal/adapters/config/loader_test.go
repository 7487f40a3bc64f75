package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundle/internal/adapters/config"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, root string, files fstest.MapFS, env map[string]string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	return &config.Loader{
		Logger: mockLogger,
		FS:     config.NewMapFSAdapter(root, files),
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}

func TestLoader_Load_FullYAML(t *testing.T) {
	files := fstest.MapFS{
		"project/bundle.yaml": &fstest.MapFile{Data: []byte(`
version: "1"
staticFiles:
  ./src/images: ./images
  ./src/fonts: ./fonts
css:
  preprocessor: scss
  watchGlob: ./src/css/**/*.scss
  inputFileNames: [./src/css/app.scss, ./src/css/print.scss]
  outputPath: ./public/css
  suffix: .min
  includePaths: [./node_modules]
  minifyOnProduction: false
  autoPrefixer:
    targets: [chrome90]
  sourceMaps:
    external: true
    includeSources: false
  compilers:
    sass: /usr/local/bin/sass
js:
  outputPath: ./public/js
  files:
    ./src/js/main.js: app.bundle.js
  filesGlob: ""
  target: ES2018
  format: esm
  paths: [./src/lib]
log:
  displayToast: false
  printToConsole: true
  title: Assets
watch:
  debounce: 250ms
metrics:
  address: ":9464"
`)},
	}
	loader := newLoader(t, "/work", files, nil)

	cfg, err := loader.Load("/work/project/src", "")
	require.NoError(t, err)

	assert.Equal(t, "/work/project", cfg.Root)
	assert.Equal(t, "/work/project/bundle.yaml", cfg.File)
	assert.False(t, cfg.Production)

	assert.Equal(t, []domain.CopyMapping{
		{Source: "/work/project/src/fonts", Destination: "/work/project/fonts"},
		{Source: "/work/project/src/images", Destination: "/work/project/images"},
	}, cfg.StaticFiles)

	assert.Equal(t, domain.PreprocessorSCSS, cfg.Style.Preprocessor)
	assert.Equal(t, "/work/project/src/css/**/*.scss", cfg.Style.WatchGlob)
	assert.Equal(t, []string{"/work/project/src/css/app.scss", "/work/project/src/css/print.scss"}, cfg.Style.Inputs)
	assert.Equal(t, "/work/project/public/css", cfg.Style.OutputPath)
	assert.Equal(t, ".min", cfg.Style.Suffix)
	assert.Equal(t, []string{"/work/project/node_modules"}, cfg.Style.IncludePaths)
	assert.False(t, cfg.Style.MinifyOnProduction)
	assert.Equal(t, domain.AutoPrefixer{Enabled: true, Targets: []string{"chrome90"}}, cfg.Style.AutoPrefixer)
	assert.Equal(t, domain.SourceMaps{External: true, IncludeSources: false}, cfg.Style.SourceMaps)
	assert.Equal(t, "/usr/local/bin/sass", cfg.Style.Compiler(domain.PreprocessorSass))

	assert.Equal(t, "/work/project/public/js", cfg.Script.OutputPath)
	assert.Equal(t, []domain.ScriptEntry{{Path: "/work/project/src/js/main.js", Output: "app.bundle.js"}}, cfg.Script.Entries)
	assert.Empty(t, cfg.Script.FilesGlob)
	assert.Equal(t, "es2018", cfg.Script.Target)
	assert.Equal(t, domain.FormatESM, cfg.Script.Format)
	assert.Equal(t, []string{"/work/project/src/lib"}, cfg.Script.Paths)
	assert.True(t, cfg.Script.MinifyOnProduction)

	assert.Equal(t, domain.LogConfig{DisplayToast: false, PrintToConsole: true, Sound: true, Title: "Assets"}, cfg.Log)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, ":9464", cfg.Metrics.Address)
}

func TestLoader_Load_Defaults(t *testing.T) {
	files := fstest.MapFS{
		"app/bundle.yml": &fstest.MapFile{Data: []byte("version: \"1\"\n")},
	}
	loader := newLoader(t, "/", files, nil)

	cfg, err := loader.Load("/app", "")
	require.NoError(t, err)

	assert.Equal(t, domain.PreprocessorLess, cfg.Style.Preprocessor)
	assert.Equal(t, "/app/src/css/**/*.less", cfg.Style.WatchGlob)
	assert.Equal(t, []string{"/app/src/css/app.less"}, cfg.Style.Inputs)
	assert.Equal(t, "/app/css", cfg.Style.OutputPath)
	assert.True(t, cfg.Style.MinifyOnProduction)
	assert.True(t, cfg.Style.AutoPrefixer.Enabled)
	assert.Equal(t, config.DefaultBrowserTargets, cfg.Style.AutoPrefixer.Targets)
	assert.Equal(t, domain.SourceMaps{IncludeSources: true}, cfg.Style.SourceMaps)

	assert.Equal(t, "/app/src/js/**/*.js", cfg.Script.WatchGlob)
	assert.Equal(t, "/app/src/js/*.js", cfg.Script.FilesGlob)
	assert.Equal(t, "/app/js", cfg.Script.OutputPath)
	assert.Equal(t, domain.DefaultScriptTarget, cfg.Script.Target)
	assert.Equal(t, domain.FormatIIFE, cfg.Script.Format)

	assert.True(t, cfg.Log.DisplayToast)
	assert.False(t, cfg.Log.PrintToConsole)
	assert.True(t, cfg.Log.Sound)
	assert.Equal(t, domain.DefaultToastTitle, cfg.Log.Title)
	assert.Equal(t, domain.DefaultDebounce, cfg.Watch.Debounce)
	assert.Empty(t, cfg.StaticFiles)
}

func TestLoader_Load_AutoPrefixerDisabled(t *testing.T) {
	files := fstest.MapFS{
		"bundle.yaml": &fstest.MapFile{Data: []byte("css:\n  autoPrefixer: false\n")},
	}
	loader := newLoader(t, "/p", files, nil)

	cfg, err := loader.Load("/p", "")
	require.NoError(t, err)
	assert.False(t, cfg.Style.AutoPrefixer.Enabled)
}

func TestLoader_Load_TOML(t *testing.T) {
	files := fstest.MapFS{
		"bundle.toml": &fstest.MapFile{Data: []byte(`
version = "1"
production = true

[staticFiles]
"./src/fonts" = "./fonts"

[css]
preprocessor = "stylus"
inputFileNames = ["./src/css/app.styl"]
outputPath = "./dist/css"
autoPrefixer = false

[js]
outputPath = "./dist/js"
format = "cjs"

[js.files]
"./src/js/app.js" = ""

[watch]
debounce = "40ms"
`)},
	}
	loader := newLoader(t, "/p", files, nil)

	cfg, err := loader.Load("/p", "")
	require.NoError(t, err)

	assert.True(t, cfg.Production)
	assert.Equal(t, domain.PreprocessorStylus, cfg.Style.Preprocessor)
	assert.False(t, cfg.Style.AutoPrefixer.Enabled)
	assert.Equal(t, "/p/dist/css", cfg.Style.OutputPath)
	assert.Equal(t, domain.FormatCJS, cfg.Script.Format)
	assert.Equal(t, []domain.ScriptEntry{{Path: "/p/src/js/app.js"}}, cfg.Script.Entries)
	assert.Equal(t, []domain.CopyMapping{{Source: "/p/src/fonts", Destination: "/p/fonts"}}, cfg.StaticFiles)
	assert.Equal(t, 40*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoader_Load_TOMLAutoPrefixerTargets(t *testing.T) {
	files := fstest.MapFS{
		"bundle.toml": &fstest.MapFile{Data: []byte("[css.autoPrefixer]\ntargets = [\"safari12\"]\n")},
	}
	loader := newLoader(t, "/p", files, nil)

	cfg, err := loader.Load("/p", "")
	require.NoError(t, err)
	assert.Equal(t, domain.AutoPrefixer{Enabled: true, Targets: []string{"safari12"}}, cfg.Style.AutoPrefixer)
}

func TestLoader_Load_EnvExpansion(t *testing.T) {
	files := fstest.MapFS{
		"bundle.yaml": &fstest.MapFile{Data: []byte(`
css:
  outputPath: ${PUBLIC_DIR}/css
js:
  outputPath: ${PUBLIC_DIR}/js
  paths:
    - ${VENDOR}
`)},
		".env": &fstest.MapFile{Data: []byte("PUBLIC_DIR=./from-dotenv\nVENDOR=./vendor\n")},
	}
	loader := newLoader(t, "/p", files, map[string]string{"PUBLIC_DIR": "./from-env"})

	cfg, err := loader.Load("/p", "")
	require.NoError(t, err)

	assert.Equal(t, "/p/from-env/css", cfg.Style.OutputPath, "process environment wins over .env")
	assert.Equal(t, "/p/from-env/js", cfg.Script.OutputPath)
	assert.Equal(t, []string{"/p/vendor"}, cfg.Script.Paths)
}

func TestLoader_Load_Discovery(t *testing.T) {
	t.Run("walks up to the nearest config", func(t *testing.T) {
		files := fstest.MapFS{
			"bundle.yaml":          &fstest.MapFile{Data: []byte("root: .\n")},
			"nested/bundle.toml":   &fstest.MapFile{Data: []byte("root = \".\"\n")},
			"nested/deep/dir/file": &fstest.MapFile{Data: []byte("x")},
		}
		loader := newLoader(t, "/r", files, nil)

		cfg, err := loader.Load("/r/nested/deep/dir", "")
		require.NoError(t, err)
		assert.Equal(t, "/r/nested/bundle.toml", cfg.File)
	})

	t.Run("yaml preferred over toml", func(t *testing.T) {
		files := fstest.MapFS{
			"bundle.yaml": &fstest.MapFile{Data: []byte("production: true\n")},
			"bundle.toml": &fstest.MapFile{Data: []byte("production = false\n")},
		}
		loader := newLoader(t, "/r", files, nil)

		cfg, err := loader.Load("/r", "")
		require.NoError(t, err)
		assert.Equal(t, "/r/bundle.yaml", cfg.File)
		assert.True(t, cfg.Production)
	})

	t.Run("not found", func(t *testing.T) {
		loader := newLoader(t, "/r", fstest.MapFS{}, nil)

		_, err := loader.Load("/r/a", "")
		require.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
	})

	t.Run("explicit path", func(t *testing.T) {
		files := fstest.MapFS{
			"configs/site.yaml": &fstest.MapFile{Data: []byte("root: ..\n")},
		}
		loader := newLoader(t, "/r", files, nil)

		cfg, err := loader.Load("/r", "configs/site.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/r", cfg.Root)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		loader := newLoader(t, "/r", fstest.MapFS{}, nil)

		_, err := loader.Load("/r", "missing.yaml")
		require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
	})
}

func TestLoader_Load_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "unknown preprocessor",
			content:     "css:\n  preprocessor: postcss\n",
			errContains: domain.ErrUnknownPreprocessor.Error(),
		},
		{
			name:        "unknown compiler key",
			content:     "css:\n  compilers:\n    postcss: postcss\n",
			errContains: domain.ErrUnknownPreprocessor.Error(),
		},
		{
			name:        "unknown script format",
			content:     "js:\n  format: umd\n",
			errContains: domain.ErrUnknownScriptFormat.Error(),
		},
		{
			name:        "invalid debounce",
			content:     "watch:\n  debounce: soon\n",
			errContains: domain.ErrInvalidDebounce.Error(),
		},
		{
			name:        "negative debounce",
			content:     "watch:\n  debounce: -5ms\n",
			errContains: domain.ErrInvalidDebounce.Error(),
		},
		{
			name:        "malformed yaml",
			content:     "css: [unclosed\n",
			errContains: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:        "autoprefixer wrong shape",
			content:     "css:\n  autoPrefixer: [chrome58]\n",
			errContains: domain.ErrConfigParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := fstest.MapFS{"bundle.yaml": &fstest.MapFile{Data: []byte(tt.content)}}
			loader := newLoader(t, "/p", files, nil)

			_, err := loader.Load("/p", "")
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestLoader_Load_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileYAML), []byte("css:\n  outputPath: ./out\n"), domain.FilePerm))

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	cfg, err := config.NewLoader(mockLogger).Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Style.OutputPath)
}
