// Package pipeline runs the css, js and copy tasks as ordered stage chains.
package pipeline

import (
	"context"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stage is one step of a task pipeline.
type Stage struct {
	Name string
	// Enabled reports whether the stage takes part in a run with cfg. A nil
	// predicate means the stage always runs.
	Enabled func(cfg domain.Config) bool
	Apply   func(ctx context.Context, asset *domain.Asset) error
}

// Pipeline is an ordered list of stages for one task.
type Pipeline struct {
	Task   domain.TaskKind
	Stages []Stage
}

// Build returns the pipeline restricted to the stages active for cfg.
func (p Pipeline) Build(cfg domain.Config) Pipeline {
	active := make([]Stage, 0, len(p.Stages))
	for _, s := range p.Stages {
		if s.Enabled == nil || s.Enabled(cfg) {
			active = append(active, s)
		}
	}
	return Pipeline{Task: p.Task, Stages: active}
}

// Names returns the stage names in execution order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		names[i] = s.Name
	}
	return names
}

// Process feeds asset through every stage in order. The first failing stage
// stops the chain.
func (p Pipeline) Process(ctx context.Context, asset *domain.Asset) error {
	for _, s := range p.Stages {
		if err := s.Apply(ctx, asset); err != nil {
			return zerr.With(err, "stage", s.Name)
		}
	}
	return nil
}

func always(domain.Config) bool { return true }

func development(cfg domain.Config) bool { return !cfg.Production }
