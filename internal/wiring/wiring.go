// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bundle/internal/adapters/compiler"
	_ "go.trai.ch/bundle/internal/adapters/config"
	_ "go.trai.ch/bundle/internal/adapters/esbuild"
	_ "go.trai.ch/bundle/internal/adapters/fs"
	_ "go.trai.ch/bundle/internal/adapters/linear"
	_ "go.trai.ch/bundle/internal/adapters/logger"
	_ "go.trai.ch/bundle/internal/adapters/metrics"
	_ "go.trai.ch/bundle/internal/adapters/notify"
	_ "go.trai.ch/bundle/internal/adapters/shell"
	_ "go.trai.ch/bundle/internal/adapters/telemetry"
	_ "go.trai.ch/bundle/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/bundle/internal/app"
	_ "go.trai.ch/bundle/internal/engine/pipeline"
	_ "go.trai.ch/bundle/internal/engine/watch"
)
