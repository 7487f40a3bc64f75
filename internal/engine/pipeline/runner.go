package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes one run of the css, js or copy task.
type Runner struct {
	resolver  ports.InputResolver
	writer    ports.OutputWriter
	copier    ports.Copier
	compilers ports.CompilerRegistry
	styles    ports.StyleTransformer
	scripts   ports.ScriptBundler
	funnel    *Funnel
}

// NewRunner creates a new Runner.
func NewRunner(
	resolver ports.InputResolver,
	writer ports.OutputWriter,
	copier ports.Copier,
	compilers ports.CompilerRegistry,
	styles ports.StyleTransformer,
	scripts ports.ScriptBundler,
	funnel *Funnel,
) *Runner {
	return &Runner{
		resolver:  resolver,
		writer:    writer,
		copier:    copier,
		compilers: compilers,
		styles:    styles,
		scripts:   scripts,
		funnel:    funnel,
	}
}

// run is the state of a single task run.
type run struct {
	task   domain.TaskKind
	cfg    domain.Config
	report *domain.Report
	out    io.Writer
	// outputs maps each output file of the run to the input that produced it.
	outputs map[string]string
}

func newRun(task domain.TaskKind, cfg domain.Config, out io.Writer) *run {
	if out == nil {
		out = io.Discard
	}
	return &run{
		task:    task,
		cfg:     cfg,
		report:  &domain.Report{Task: string(task), RunID: uuid.NewString()},
		out:     out,
		outputs: make(map[string]string),
	}
}

func (ru *run) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ru.out, format+"\n", args...)
}

// rel shortens path for messages.
func (ru *run) rel(path string) string {
	if ru.cfg.Root == "" {
		return path
	}
	rel, err := filepath.Rel(ru.cfg.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (r *Runner) fail(ctx context.Context, ru *run, err error) {
	ru.report.Failed = append(ru.report.Failed, err)
	r.funnel.Report(ctx, ru.cfg.Log, ru.task, err)
}

// Style runs the css task. Progress lines go to out; failures are funneled
// and collected in the returned report.
func (r *Runner) Style(ctx context.Context, cfg domain.Config, out io.Writer) *domain.Report {
	ru := newRun(domain.TaskStyle, cfg, out)

	compiler, err := r.compilers.For(cfg.Style.Preprocessor)
	if err != nil {
		r.fail(ctx, ru, err)
		return ru.report
	}

	inputs, err := r.resolver.Resolve(cfg.Root, cfg.Style.Inputs)
	if err != nil {
		r.fail(ctx, ru, err)
		return ru.report
	}

	p := r.stylePipeline(ru, compiler).Build(cfg)
	for _, in := range inputs {
		r.process(ctx, ru, p, in, "")
	}
	return ru.report
}

// Script runs the js task, producing one output per entry.
func (r *Runner) Script(ctx context.Context, cfg domain.Config, out io.Writer) *domain.Report {
	ru := newRun(domain.TaskScript, cfg, out)

	entries, err := r.scriptEntries(cfg)
	if err != nil {
		r.fail(ctx, ru, err)
		return ru.report
	}

	p := r.scriptPipeline(ru).Build(cfg)
	for _, e := range entries {
		r.process(ctx, ru, p, domain.Input{Path: e.Path}, e.Output)
	}
	return ru.report
}

// Copy runs the copy task over every static file mapping.
func (r *Runner) Copy(ctx context.Context, cfg domain.Config, out io.Writer) *domain.Report {
	ru := newRun(domain.TaskCopy, cfg, out)

	for _, m := range cfg.StaticFiles {
		copied, found, err := r.copier.CopyDir(m.Source, m.Destination)
		if !found && err == nil {
			ru.printf("Folder %s not found, skipped", ru.rel(m.Source))
			ru.report.Skipped = append(ru.report.Skipped, m.Source)
			continue
		}
		ru.printf("Copying %s to %s", ru.rel(m.Source), ru.rel(m.Destination))
		if err != nil {
			r.fail(ctx, ru, err)
			continue
		}
		if copied > 0 {
			ru.printf("%d files updated", copied)
		}
	}
	return ru.report
}

// process reads one input and pushes it through p. A failure is funneled and
// does not stop the remaining inputs.
func (r *Runner) process(ctx context.Context, ru *run, p Pipeline, in domain.Input, output string) {
	data, err := os.ReadFile(in.Path) //nolint:gosec // path comes from the resolved inputs
	if err != nil {
		r.fail(ctx, ru, zerr.With(zerr.Wrap(err, domain.ErrInputReadFailed.Error()), "path", in.Path))
		return
	}

	asset := domain.NewAsset(in.Path, data)
	if in.Rel != "" {
		asset.Base = in.Rel
	}
	asset.Output = output
	if err := p.Process(ctx, asset); err != nil {
		r.fail(ctx, ru, err)
	}
}

// scriptEntries merges the explicit entries with the files matched by the
// entry glob. Explicit entries win on duplicates. Glob matches keep their
// layout below the glob base.
func (r *Runner) scriptEntries(cfg domain.Config) ([]domain.ScriptEntry, error) {
	entries := slices.Clone(cfg.Script.Entries)
	if cfg.Script.FilesGlob == "" {
		return entries, nil
	}

	matches, err := r.resolver.Resolve(cfg.Root, []string{cfg.Script.FilesGlob})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Path] = struct{}{}
	}
	for _, in := range matches {
		if _, ok := seen[in.Path]; ok {
			continue
		}
		output := strings.TrimSuffix(in.Rel, filepath.Ext(in.Rel)) + ".js"
		entries = append(entries, domain.ScriptEntry{Path: in.Path, Output: output})
	}

	slices.SortFunc(entries, func(a, b domain.ScriptEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// dest links a pending external map and writes the asset below dir. An
// output already written by another input of the run fails this input.
func (r *Runner) dest(ru *run, dir string, asset *domain.Asset) error {
	target := filepath.Join(dir, asset.Base)
	if prev, ok := ru.outputs[target]; ok && prev != asset.Path {
		err := zerr.With(domain.ErrOutputCollision, "output", target)
		return zerr.With(zerr.With(err, "input", asset.Path), "previous_input", prev)
	}
	ru.outputs[target] = asset.Path

	linkMap(asset)

	written, err := r.writer.Write(dir, asset)
	for _, path := range written {
		ru.printf("Wrote %s", ru.rel(path))
	}
	ru.report.Written = append(ru.report.Written, written...)
	return err
}
