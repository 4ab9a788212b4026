package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/knin/internal/adapters/logger"
	"go.trai.ch/knin/internal/core/ports"
)

const (
	// RunnerNodeID is the unique identifier for the build runner Graft node.
	RunnerNodeID graft.ID = "adapter.build_runner"

	// ToolNodeID is the unique identifier for the tool runner Graft node.
	ToolNodeID graft.ID = "adapter.tool_runner"
)

func init() {
	graft.Register(graft.Node[ports.BuildRunner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewNinjaRunner(log), nil
		},
	})

	graft.Register(graft.Node[ports.ToolRunner]{
		ID:        ToolNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewToolRunner(log), nil
		},
	})
}
