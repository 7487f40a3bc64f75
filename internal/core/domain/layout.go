package domain

import "time"

const (
	// ConfigFileYAML is the primary project configuration file name.
	ConfigFileYAML = "bundle.yaml"

	// ConfigFileYML is the alternate YAML configuration file name.
	ConfigFileYML = "bundle.yml"

	// ConfigFileTOML is the TOML configuration file name.
	ConfigFileTOML = "bundle.toml"

	// EnvFileName is the dotenv file read next to the configuration file.
	EnvFileName = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DefaultDebounce is the quiet window used when watch.debounce is unset.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultScriptTarget is the ECMAScript version scripts are lowered to.
	DefaultScriptTarget = "es2015"

	// DefaultToastTitle is the notification title used when log.title is unset.
	DefaultToastTitle = "Bundle"

	// MapSuffix is appended to an output file name to form its external source map name.
	MapSuffix = ".map"
)

// ConfigFileNames returns the configuration file names in discovery order.
func ConfigFileNames() []string {
	return []string{ConfigFileYAML, ConfigFileYML, ConfigFileTOML}
}
