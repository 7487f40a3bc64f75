package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no configuration file is found walking up from the working directory.
	ErrConfigNotFound = zerr.New("could not find bundle.yaml, bundle.yml or bundle.toml in any parent directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileReadFailed is returned when the .env file next to the config cannot be parsed.
	ErrEnvFileReadFailed = zerr.New("failed to read .env file")

	// ErrUnknownPreprocessor is returned when css.preprocessor names no supported compiler.
	ErrUnknownPreprocessor = zerr.New("unknown css preprocessor, expected less, sass, scss, stylus or none")

	// ErrUnknownScriptFormat is returned when js.format is not iife, esm or cjs.
	ErrUnknownScriptFormat = zerr.New("unknown js format, expected iife, esm or cjs")

	// ErrUnknownScriptTarget is returned when js.target is not an ECMAScript version esbuild understands.
	ErrUnknownScriptTarget = zerr.New("unknown js target")

	// ErrUnknownBrowserTarget is returned when an autoprefixer target cannot be parsed.
	ErrUnknownBrowserTarget = zerr.New("unknown browser target, expected e.g. chrome58 or safari11")

	// ErrInvalidDebounce is returned when watch.debounce is not a positive duration.
	ErrInvalidDebounce = zerr.New("invalid watch debounce, expected a positive duration such as 100ms")

	// ErrMissingOutputPath is returned when a task with inputs has no output path.
	ErrMissingOutputPath = zerr.New("missing output path")

	// ErrUnknownTask is returned when a task name is not part of the command set.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrInputNotFound is returned when a literal input file does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrInputReadFailed is returned when a resolved input file cannot be read.
	ErrInputReadFailed = zerr.New("failed to read input")

	// ErrInputResolveFailed is returned when an input glob cannot be expanded.
	ErrInputResolveFailed = zerr.New("failed to resolve inputs")

	// ErrInvalidGlob is returned when a glob pattern cannot be compiled.
	ErrInvalidGlob = zerr.New("invalid glob pattern")

	// ErrCompileFailed is returned when a style or script compiler fails.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrCompilerNotFound is returned when an external preprocessor binary cannot be located.
	ErrCompilerNotFound = zerr.New("compiler binary not found")

	// ErrTransformFailed is returned when a post-processing stage (prefix, minify, map) fails.
	ErrTransformFailed = zerr.New("transform failed")

	// ErrOutputWriteFailed is returned when an output file cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write output")

	// ErrOutputCollision is returned when two inputs of one run map to the same output file.
	ErrOutputCollision = zerr.New("inputs write the same output file")

	// ErrCopyFailed is returned when a static file mapping cannot be copied.
	ErrCopyFailed = zerr.New("failed to copy static files")

	// ErrCommandStartFailed is returned when an external command cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrMetricsServerFailed is returned when the metrics endpoint cannot be served.
	ErrMetricsServerFailed = zerr.New("metrics server failed")

	// ErrBuildFailed is returned by one-shot commands when at least one task run reported a failure.
	ErrBuildFailed = zerr.New("build failed")
)
