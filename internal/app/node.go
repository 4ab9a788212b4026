package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/knin/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/knin/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/knin/internal/adapters/ninja"  //nolint:depguard // Wired in app layer
	"go.trai.ch/knin/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/knin/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the initialized application with the adapters the CLI
// boundary needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			ninja.NodeID,
			shell.RunnerNodeID,
			shell.ToolNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ProjectLoader](ctx)
	if err != nil {
		return nil, err
	}
	emitter, err := graft.Dep[ports.Emitter](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.BuildRunner](ctx)
	if err != nil {
		return nil, err
	}
	tools, err := graft.Dep[ports.ToolRunner](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, emitter, runner, tools, log), nil
}
