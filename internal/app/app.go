// Package app implements the application layer for bundle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.trai.ch/bundle/internal/adapters/metrics"
	"go.trai.ch/bundle/internal/adapters/telemetry"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/bundle/internal/engine/watch"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TaskRunner executes single runs of the css, js and copy tasks.
type TaskRunner interface {
	Style(ctx context.Context, cfg domain.Config, out io.Writer) *domain.Report
	Script(ctx context.Context, cfg domain.Config, out io.Writer) *domain.Report
	Copy(ctx context.Context, cfg domain.Config, out io.Writer) *domain.Report
}

// WatchLoop rebuilds targets on file changes until its context is done.
type WatchLoop interface {
	Run(ctx context.Context, window time.Duration, targets []watch.Target) error
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Production overrides the production switch of the config file when set.
	Production *bool
	// ConfigPath selects a config file instead of discovering one.
	ConfigPath string
	// NoWatch makes the default task stop after the initial build.
	NoWatch bool
}

type handler func(ctx context.Context, cfg domain.Config, opts RunOptions) error

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       TaskRunner
	loop         WatchLoop
	compilers    ports.CompilerRegistry
	tracer       ports.Tracer
	recorder     ports.Recorder
	logger       ports.Logger

	handlers map[domain.TaskKind]handler
	getwd    func() (string, error)
}

// New creates a new App instance. A nil tracer or recorder disables progress
// output or metrics respectively.
func New(
	loader ports.ConfigLoader,
	runner TaskRunner,
	loop WatchLoop,
	compilers ports.CompilerRegistry,
	tracer ports.Tracer,
	recorder ports.Recorder,
	log ports.Logger,
) *App {
	if tracer == nil {
		tracer = telemetry.NewNoOpTracer()
	}
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	a := &App{
		configLoader: loader,
		runner:       runner,
		loop:         loop,
		compilers:    compilers,
		tracer:       tracer,
		recorder:     recorder,
		logger:       log,
		getwd:        os.Getwd,
	}
	a.handlers = map[domain.TaskKind]handler{
		domain.TaskStyle:   a.once(domain.TaskStyle),
		domain.TaskScript:  a.once(domain.TaskScript),
		domain.TaskCopy:    a.once(domain.TaskCopy),
		domain.TaskWatch:   a.watch,
		domain.TaskProd:    a.prod,
		domain.TaskDefault: a.defaultTask,
	}
	return a
}

// WithWorkingDir fixes the directory config discovery starts from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// Tasks lists the command set.
func (a *App) Tasks() []domain.CommandInfo {
	return domain.Commands()
}

// Run executes the task named by cmd.
func (a *App) Run(ctx context.Context, cmd domain.Command, opts RunOptions) error {
	h, ok := a.handlers[cmd.Kind()]
	if !ok {
		return zerr.With(domain.ErrUnknownTask, "task", string(cmd))
	}

	cwd, err := a.getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Production != nil {
		cfg = cfg.WithProduction(*opts.Production)
	}

	defer a.shutdown()

	a.logger.Debug(fmt.Sprintf("using %s (production: %t)", cfg.File, cfg.Production))
	return h(ctx, cfg, opts)
}

func (a *App) shutdown() {
	if err := a.compilers.Close(); err != nil {
		a.logger.Warn("failed to stop compilers: " + err.Error())
	}
	if err := a.tracer.Shutdown(context.Background()); err != nil {
		a.logger.Warn("failed to flush progress output: " + err.Error())
	}
}

// runTask performs one run of task inside a span. A started run is never
// cancelled.
func (a *App) runTask(ctx context.Context, cfg domain.Config, task domain.TaskKind) *domain.Report {
	ctx, span := a.tracer.Start(context.WithoutCancel(ctx), string(task))
	start := time.Now()

	var report *domain.Report
	switch task {
	case domain.TaskStyle:
		report = a.runner.Style(ctx, cfg, span)
	case domain.TaskScript:
		report = a.runner.Script(ctx, cfg, span)
	default:
		report = a.runner.Copy(ctx, cfg, span)
	}

	span.SetAttribute("run.id", report.RunID)
	span.SetAttribute("files.written", len(report.Written))
	if !report.OK() {
		span.RecordError(errors.Join(report.Failed...))
	}
	span.End()

	a.recorder.ObserveRun(string(task), time.Since(start), !report.OK())
	return report
}

func (a *App) once(task domain.TaskKind) handler {
	return func(ctx context.Context, cfg domain.Config, _ RunOptions) error {
		if report := a.runTask(ctx, cfg, task); !report.OK() {
			return zerr.With(domain.ErrBuildFailed, "task", string(task))
		}
		return nil
	}
}

// buildAll runs css, js and copy concurrently and returns the failed tasks.
func (a *App) buildAll(ctx context.Context, cfg domain.Config) []string {
	tasks := []domain.TaskKind{domain.TaskStyle, domain.TaskScript, domain.TaskCopy}
	reports := make([]*domain.Report, len(tasks))

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			reports[i] = a.runTask(ctx, cfg, task)
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	for _, r := range reports {
		if !r.OK() {
			failed = append(failed, r.Task)
		}
	}
	return failed
}

func (a *App) prod(ctx context.Context, cfg domain.Config, _ RunOptions) error {
	if failed := a.buildAll(ctx, cfg.WithProduction(true)); len(failed) > 0 {
		return zerr.With(domain.ErrBuildFailed, "tasks", strings.Join(failed, ","))
	}
	return nil
}

func (a *App) defaultTask(ctx context.Context, cfg domain.Config, opts RunOptions) error {
	failed := a.buildAll(ctx, cfg)
	if opts.NoWatch {
		if len(failed) > 0 {
			return zerr.With(domain.ErrBuildFailed, "tasks", strings.Join(failed, ","))
		}
		return nil
	}
	return a.watch(ctx, cfg, opts)
}

// watch rebuilds css and js on change and serves metrics when configured.
// Task failures never end it.
func (a *App) watch(ctx context.Context, cfg domain.Config, _ RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group

	if addr := cfg.Metrics.Address; addr != "" {
		g.Go(func() error {
			if err := a.recorder.Serve(ctx, addr); err != nil {
				a.logger.Warn("metrics endpoint disabled: " + err.Error())
			}
			return nil
		})
		a.logger.Info("Serving metrics on http://" + addr + "/metrics")
	}

	g.Go(func() error {
		defer cancel()
		return a.loop.Run(ctx, cfg.Watch.Debounce, a.watchTargets(cfg))
	})

	return g.Wait()
}

func (a *App) watchTargets(cfg domain.Config) []watch.Target {
	target := func(task domain.TaskKind, glob string) watch.Target {
		return watch.Target{
			Task: task,
			Glob: glob,
			Run: func(ctx context.Context) {
				a.runTask(ctx, cfg, task)
			},
		}
	}
	return []watch.Target{
		target(domain.TaskStyle, cfg.Style.WatchGlob),
		target(domain.TaskScript, cfg.Script.WatchGlob),
	}
}
