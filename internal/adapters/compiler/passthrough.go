package compiler

import (
	"context"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
)

var _ ports.StyleCompiler = Passthrough{}

// Passthrough treats the input as plain CSS.
type Passthrough struct{}

// Compile implements ports.StyleCompiler.
func (Passthrough) Compile(_ context.Context, asset *domain.Asset, _ domain.StyleConfig) error {
	asset.SetExt(".css")
	return nil
}
