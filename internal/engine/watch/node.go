package watch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundle/internal/adapters/fs"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/adapters/watcher" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/core/ports"
)

// NodeID is the unique identifier for the watch loop Graft node.
const NodeID graft.ID = "engine.watch"

func init() {
	graft.Register(graft.Node[*Loop]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{watcher.NodeID, fs.GlobNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Loop, error) {
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			globs, err := graft.Dep[ports.GlobCompiler](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewLoop(w, globs, log), nil
		},
	})
}
