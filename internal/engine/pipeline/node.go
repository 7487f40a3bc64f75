package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundle/internal/adapters/compiler" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/adapters/esbuild"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/adapters/notify"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundle/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the pipeline runner Graft node.
	NodeID graft.ID = "engine.pipeline"
	// FunnelNodeID is the unique identifier for the error funnel Graft node.
	FunnelNodeID graft.ID = "engine.funnel"
)

func init() {
	graft.Register(graft.Node[*Funnel]{
		ID:        FunnelNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, notify.NodeID},
		Run: func(ctx context.Context) (*Funnel, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			notifier, err := graft.Dep[ports.Notifier](ctx)
			if err != nil {
				return nil, err
			}

			return NewFunnel(log, notifier), nil
		},
	})

	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.WriterNodeID,
			fs.CopierNodeID,
			compiler.NodeID,
			esbuild.StyleNodeID,
			esbuild.ScriptNodeID,
			FunnelNodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.OutputWriter](ctx)
			if err != nil {
				return nil, err
			}

			copier, err := graft.Dep[ports.Copier](ctx)
			if err != nil {
				return nil, err
			}

			compilers, err := graft.Dep[ports.CompilerRegistry](ctx)
			if err != nil {
				return nil, err
			}

			styles, err := graft.Dep[ports.StyleTransformer](ctx)
			if err != nil {
				return nil, err
			}

			scripts, err := graft.Dep[ports.ScriptBundler](ctx)
			if err != nil {
				return nil, err
			}

			funnel, err := graft.Dep[*Funnel](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(resolver, writer, copier, compilers, styles, scripts, funnel), nil
		},
	})
}
