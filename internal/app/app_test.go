package app_test

import (
	"context"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundle/internal/app"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/bundle/internal/core/ports/mocks"
	"go.trai.ch/bundle/internal/engine/watch"
	"go.uber.org/mock/gomock"
)

type fakeRunner struct {
	mu   sync.Mutex
	cfgs map[domain.TaskKind]domain.Config
	outs map[domain.TaskKind]io.Writer
	fail map[domain.TaskKind]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		cfgs: make(map[domain.TaskKind]domain.Config),
		outs: make(map[domain.TaskKind]io.Writer),
		fail: make(map[domain.TaskKind]bool),
	}
}

func (f *fakeRunner) run(task domain.TaskKind, cfg domain.Config, out io.Writer) *domain.Report {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cfgs[task] = cfg
	f.outs[task] = out
	r := &domain.Report{Task: string(task), RunID: "run-" + string(task), Written: []string{"/project/out/" + string(task)}}
	if f.fail[task] {
		r.Failed = []error{&domain.CompileError{Message: "boom"}}
	}
	return r
}

func (f *fakeRunner) called() []domain.TaskKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tasks []domain.TaskKind
	for task := range f.cfgs {
		tasks = append(tasks, task)
	}
	slices.Sort(tasks)
	return tasks
}

func (f *fakeRunner) Style(_ context.Context, cfg domain.Config, out io.Writer) *domain.Report {
	return f.run(domain.TaskStyle, cfg, out)
}

func (f *fakeRunner) Script(_ context.Context, cfg domain.Config, out io.Writer) *domain.Report {
	return f.run(domain.TaskScript, cfg, out)
}

func (f *fakeRunner) Copy(_ context.Context, cfg domain.Config, out io.Writer) *domain.Report {
	return f.run(domain.TaskCopy, cfg, out)
}

type fakeLoop struct {
	window  time.Duration
	targets []watch.Target
	run     func(ctx context.Context) error
}

func (l *fakeLoop) Run(ctx context.Context, window time.Duration, targets []watch.Target) error {
	l.window = window
	l.targets = targets
	if l.run != nil {
		return l.run(ctx)
	}
	return nil
}

type harness struct {
	app       *app.App
	runner    *fakeRunner
	loop      *fakeLoop
	loader    *mocks.MockConfigLoader
	compilers *mocks.MockCompilerRegistry
	cfg       domain.Config
}

func newHarness(t *testing.T, opts ...func(*harness)) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		runner:    newFakeRunner(),
		loop:      &fakeLoop{},
		loader:    mocks.NewMockConfigLoader(ctrl),
		compilers: mocks.NewMockCompilerRegistry(ctrl),
		cfg: domain.Config{
			Root:   "/project",
			File:   "/project/bundle.yaml",
			Style:  domain.StyleConfig{WatchGlob: "/project/src/css/**/*.less"},
			Script: domain.ScriptConfig{WatchGlob: "/project/src/js/**/*.js"},
			Watch:  domain.WatchConfig{Debounce: 250 * time.Millisecond},
		},
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	h.app = app.New(h.loader, h.runner, h.loop, h.compilers, nil, nil, logger).WithWorkingDir("/project")
	return h
}

func (h *harness) expectLoad() {
	h.loader.EXPECT().Load("/project", "").Return(h.cfg, nil)
	h.compilers.EXPECT().Close().Return(nil)
}

func TestApp_Run_UnknownTask(t *testing.T) {
	h := newHarness(t)

	err := h.app.Run(context.Background(), domain.Command("deploy"), app.RunOptions{})
	require.ErrorContains(t, err, domain.ErrUnknownTask.Error())
	assert.Empty(t, h.runner.called())
}

func TestApp_Run_ConfigError(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("/project", "custom.yaml").Return(domain.Config{}, domain.ErrConfigNotFound)

	err := h.app.Run(context.Background(), domain.CommandCSS, app.RunOptions{ConfigPath: "custom.yaml"})
	require.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
	assert.Empty(t, h.runner.called())
}

func TestApp_Run_SingleTasks(t *testing.T) {
	tests := []struct {
		cmd  domain.Command
		want domain.TaskKind
	}{
		{domain.CommandCSS, domain.TaskStyle},
		{domain.CommandLess, domain.TaskStyle},
		{domain.CommandSass, domain.TaskStyle},
		{domain.CommandJS, domain.TaskScript},
		{domain.CommandBabel, domain.TaskScript},
		{domain.CommandCopy, domain.TaskCopy},
	}

	for _, tt := range tests {
		t.Run(string(tt.cmd), func(t *testing.T) {
			h := newHarness(t)
			h.expectLoad()

			require.NoError(t, h.app.Run(context.Background(), tt.cmd, app.RunOptions{}))
			assert.Equal(t, []domain.TaskKind{tt.want}, h.runner.called())
			assert.Nil(t, h.loop.targets, "single tasks do not watch")
		})
	}
}

func TestApp_Run_SingleTaskFailure(t *testing.T) {
	h := newHarness(t)
	h.expectLoad()
	h.runner.fail[domain.TaskScript] = true

	err := h.app.Run(context.Background(), domain.CommandJS, app.RunOptions{})
	require.ErrorContains(t, err, domain.ErrBuildFailed.Error())
}

func TestApp_Run_ProductionOverride(t *testing.T) {
	h := newHarness(t)
	h.cfg.Production = true
	h.expectLoad()

	off := false
	require.NoError(t, h.app.Run(context.Background(), domain.CommandCSS, app.RunOptions{Production: &off}))
	assert.False(t, h.runner.cfgs[domain.TaskStyle].Production)
}

func TestApp_Run_Prod(t *testing.T) {
	h := newHarness(t)
	h.expectLoad()

	require.NoError(t, h.app.Run(context.Background(), domain.CommandProd, app.RunOptions{}))
	assert.Equal(t, []domain.TaskKind{domain.TaskCopy, domain.TaskStyle, domain.TaskScript}, h.runner.called())
	for task, cfg := range h.runner.cfgs {
		assert.True(t, cfg.Production, "%s must run in production mode", task)
	}
	assert.False(t, h.cfg.Production, "the loaded config is not modified")
}

func TestApp_Run_ProdFailure(t *testing.T) {
	h := newHarness(t)
	h.expectLoad()
	h.runner.fail[domain.TaskStyle] = true

	err := h.app.Run(context.Background(), domain.CommandProd, app.RunOptions{})
	require.ErrorContains(t, err, domain.ErrBuildFailed.Error())
	assert.Len(t, h.runner.called(), 3, "a failing task does not stop the others")
}

func TestApp_Run_DefaultBuildsThenWatches(t *testing.T) {
	h := newHarness(t)
	h.expectLoad()
	h.runner.fail[domain.TaskStyle] = true

	require.NoError(t, h.app.Run(context.Background(), domain.CommandDefault, app.RunOptions{}),
		"default keeps watching after a failed build")
	assert.Len(t, h.runner.called(), 3)
	assert.False(t, h.runner.cfgs[domain.TaskStyle].Production)

	assert.Equal(t, 250*time.Millisecond, h.loop.window)
	require.Len(t, h.loop.targets, 2)
	assert.Equal(t, domain.TaskStyle, h.loop.targets[0].Task)
	assert.Equal(t, "/project/src/css/**/*.less", h.loop.targets[0].Glob)
	assert.Equal(t, domain.TaskScript, h.loop.targets[1].Task)
	assert.Equal(t, "/project/src/js/**/*.js", h.loop.targets[1].Glob)
}

func TestApp_Run_DefaultNoWatch(t *testing.T) {
	h := newHarness(t)
	h.expectLoad()
	h.runner.fail[domain.TaskCopy] = true

	err := h.app.Run(context.Background(), domain.CommandDefault, app.RunOptions{NoWatch: true})
	require.ErrorContains(t, err, domain.ErrBuildFailed.Error())
	assert.Nil(t, h.loop.targets)
}

func TestApp_Run_WatchTargetsRunTasks(t *testing.T) {
	h := newHarness(t)
	h.expectLoad()
	h.loop.run = func(ctx context.Context) error {
		for _, target := range h.loop.targets {
			target.Run(ctx)
		}
		return nil
	}

	require.NoError(t, h.app.Run(context.Background(), domain.CommandWatch, app.RunOptions{}))
	assert.Equal(t, []domain.TaskKind{domain.TaskStyle, domain.TaskScript}, h.runner.called())
}

func TestApp_Run_WatchServesMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)
	h := newHarness(t)
	h.cfg.Metrics.Address = "127.0.0.1:9464"
	h.expectLoad()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info("Serving metrics on http://127.0.0.1:9464/metrics")
	h.app = app.New(h.loader, h.runner, h.loop, h.compilers, nil, recorder, logger).WithWorkingDir("/project")

	served := make(chan struct{})
	recorder.EXPECT().Serve(gomock.Any(), "127.0.0.1:9464").DoAndReturn(func(ctx context.Context, _ string) error {
		close(served)
		<-ctx.Done()
		return nil
	})
	h.loop.run = func(context.Context) error {
		<-served
		return nil
	}

	require.NoError(t, h.app.Run(context.Background(), domain.CommandWatch, app.RunOptions{}))
}

func TestApp_RunTask_Telemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	h := newHarness(t)
	h.runner.fail[domain.TaskStyle] = true
	h.expectLoad()
	h.app = app.New(h.loader, h.runner, h.loop, h.compilers, tracer, recorder, logger).WithWorkingDir("/project")

	tracer.EXPECT().Start(gomock.Any(), "css").DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
		return ctx, span
	})
	gomock.InOrder(
		span.EXPECT().SetAttribute("run.id", "run-css"),
		span.EXPECT().SetAttribute("files.written", 1),
		span.EXPECT().RecordError(gomock.Any()),
		span.EXPECT().End(),
	)
	recorder.EXPECT().ObserveRun("css", gomock.Any(), true)
	tracer.EXPECT().Shutdown(gomock.Any()).Return(nil)

	err := h.app.Run(context.Background(), domain.CommandCSS, app.RunOptions{})
	require.ErrorContains(t, err, domain.ErrBuildFailed.Error())
	assert.Same(t, span, h.runner.outs[domain.TaskStyle])
}

func TestApp_Tasks(t *testing.T) {
	h := newHarness(t)

	tasks := h.app.Tasks()
	require.Len(t, tasks, 9)
	assert.Equal(t, domain.CommandDefault, tasks[0].Name)
}
