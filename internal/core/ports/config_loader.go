package ports

import "go.trai.ch/bundle/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the config file by walking up from cwd, unless explicitPath is set,
	// and returns the validated configuration.
	Load(cwd, explicitPath string) (domain.Config, error)
}
