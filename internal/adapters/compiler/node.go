package compiler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundle/internal/adapters/logger"
	"go.trai.ch/bundle/internal/adapters/shell"
	"go.trai.ch/bundle/internal/core/ports"
)

// NodeID is the unique identifier for the compiler registry Graft node.
const NodeID graft.ID = "adapter.compiler_registry"

func init() {
	graft.Register(graft.Node[ports.CompilerRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CompilerRegistry, error) {
			exec, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(exec, log), nil
		},
	})
}
