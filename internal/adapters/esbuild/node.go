package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundle/internal/adapters/logger"
	"go.trai.ch/bundle/internal/core/ports"
)

const (
	// StyleNodeID is the unique identifier for the style transformer Graft node.
	StyleNodeID graft.ID = "adapter.style_transformer"
	// ScriptNodeID is the unique identifier for the script bundler Graft node.
	ScriptNodeID graft.ID = "adapter.script_bundler"
)

func init() {
	graft.Register(graft.Node[ports.StyleTransformer]{
		ID:        StyleNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StyleTransformer, error) {
			return NewStyleTransformer(), nil
		},
	})

	graft.Register(graft.Node[ports.ScriptBundler]{
		ID:        ScriptNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ScriptBundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScriptBundler(log), nil
		},
	})
}
