package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundle/internal/adapters/compiler"  //nolint:depguard // Wired in app layer
	"go.trai.ch/bundle/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bundle/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bundle/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/bundle/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/bundle/internal/engine/pipeline"
	"go.trai.ch/bundle/internal/engine/watch"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			watch.NodeID,
			compiler.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
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
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[*pipeline.Runner](ctx)
	if err != nil {
		return nil, err
	}

	loop, err := graft.Dep[*watch.Loop](ctx)
	if err != nil {
		return nil, err
	}

	compilers, err := graft.Dep[ports.CompilerRegistry](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, runner, loop, compilers, tracer, recorder, log), nil
}
