package pipeline

import "go.trai.ch/bundle/internal/core/domain"

// StyleStages returns the css stages active for cfg.
func StyleStages(r *Runner, cfg domain.Config) []string {
	return r.stylePipeline(newRun(domain.TaskStyle, cfg, nil), nil).Build(cfg).Names()
}

// ScriptStages returns the js stages active for cfg.
func ScriptStages(r *Runner, cfg domain.Config) []string {
	return r.scriptPipeline(newRun(domain.TaskScript, cfg, nil)).Build(cfg).Names()
}

// AppendMapComment exposes appendMapComment for tests.
var AppendMapComment = appendMapComment
