// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/knin/internal/adapters/config"
	_ "go.trai.ch/knin/internal/adapters/logger"
	_ "go.trai.ch/knin/internal/adapters/ninja"
	_ "go.trai.ch/knin/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/knin/internal/app"
)
