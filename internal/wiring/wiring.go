// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/prism/internal/adapters/clock"
	_ "go.trai.ch/prism/internal/adapters/configfactory"
	_ "go.trai.ch/prism/internal/adapters/fs"
	_ "go.trai.ch/prism/internal/adapters/logger"
	_ "go.trai.ch/prism/internal/adapters/metrics"
	_ "go.trai.ch/prism/internal/adapters/options"
	_ "go.trai.ch/prism/internal/adapters/packages"
	_ "go.trai.ch/prism/internal/adapters/policy"
	_ "go.trai.ch/prism/internal/adapters/rules"
	_ "go.trai.ch/prism/internal/adapters/telemetry"
	_ "go.trai.ch/prism/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/prism/internal/app"
	_ "go.trai.ch/prism/internal/engine/analysis"
)
