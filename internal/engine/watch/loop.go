package watch

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
)

// Target is a task rebuilt whenever a file matching Glob changes.
type Target struct {
	Task domain.TaskKind
	Glob string
	Run  func(ctx context.Context)
}

// Loop routes file system events to per-task debouncers and queues.
type Loop struct {
	watcher ports.Watcher
	globs   ports.GlobCompiler
	logger  ports.Logger
}

// NewLoop creates a new Loop.
func NewLoop(watcher ports.Watcher, globs ports.GlobCompiler, logger ports.Logger) *Loop {
	return &Loop{watcher: watcher, globs: globs, logger: logger}
}

type route struct {
	task      domain.TaskKind
	matcher   ports.Matcher
	debouncer *Debouncer
	queue     *SerialQueue
}

// Run watches the targets until ctx is done. Changes within window are
// collapsed into one run per task. Runs already started are never cancelled:
// on shutdown pending changes are flushed and Run waits for every queued run.
func (l *Loop) Run(ctx context.Context, window time.Duration, targets []Target) error {
	if window <= 0 {
		window = domain.DefaultDebounce
	}

	runCtx := context.WithoutCancel(ctx)
	routes := make([]route, 0, len(targets))
	roots := make([]string, 0, len(targets))

	for _, t := range targets {
		if t.Glob == "" {
			continue
		}

		m, err := l.globs.Compile(t.Glob)
		if err != nil {
			return err
		}

		run := t.Run
		q := NewSerialQueue(func() { run(runCtx) })
		task := t.Task
		d := NewDebouncer(window, func(paths []string) {
			l.logger.Debug(fmt.Sprintf("%s: %s changed", task, strings.Join(paths, ", ")))
			q.Submit()
		})

		routes = append(routes, route{task: task, matcher: m, debouncer: d, queue: q})
		roots = append(roots, m.Base())
	}

	if len(routes) == 0 {
		l.logger.Warn("no watch globs configured, nothing to watch")
		return nil
	}

	slices.Sort(roots)
	roots = slices.Compact(roots)

	if err := l.watcher.Start(ctx, roots); err != nil {
		return err
	}
	for _, t := range targets {
		if t.Glob != "" {
			l.logger.Info(fmt.Sprintf("Watching %s for %s", t.Glob, t.Task))
		}
	}

	for event := range l.watcher.Events() {
		for _, r := range routes {
			if r.matcher.Match(event.Path) {
				r.debouncer.Add(event.Path)
			}
		}
	}

	stopErr := l.watcher.Stop()
	for _, r := range routes {
		r.debouncer.Flush()
	}
	for _, r := range routes {
		r.queue.Wait()
	}
	return stopErr
}
