package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundle/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ResolverNodeID is the unique identifier for the input resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// WriterNodeID is the unique identifier for the output writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
	// CopierNodeID is the unique identifier for the copier Graft node.
	CopierNodeID graft.ID = "adapter.fs.copier"
	// GlobNodeID is the unique identifier for the glob compiler Graft node.
	GlobNodeID graft.ID = "adapter.fs.glob"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.InputResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.InputResolver, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(walker), nil
		},
	})

	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputWriter, error) {
			return NewWriter(), nil
		},
	})

	graft.Register(graft.Node[ports.Copier]{
		ID:        CopierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Copier, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewCopier(walker), nil
		},
	})

	graft.Register(graft.Node[ports.GlobCompiler]{
		ID:        GlobNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GlobCompiler, error) {
			return NewGlobCompiler(), nil
		},
	})
}
