// Package shell provides an os/exec based executor for external compilers.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger  ports.Logger
	environ func() []string
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:  logger,
		environ: os.Environ,
	}
}

// Execute runs the program and returns its standard output. Standard error of
// a successful run is forwarded to the logger as warnings; on failure it becomes
// the error message.
func (e *Executor) Execute(ctx context.Context, inv ports.Invocation) ([]byte, error) {
	env := resolveEnvironment(e.environ())

	executable := inv.Program
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		lp, err := lookPath(executable, env)
		if err != nil {
			return nil, zerr.With(domain.ErrCompilerNotFound, "program", inv.Program)
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, inv.Args...) //nolint:gosec // configured compiler binary
	cmd.Args[0] = inv.Program
	cmd.Dir = inv.Dir
	cmd.Env = env
	cmd.Stdin = inv.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "program", inv.Program)
	}

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = err.Error()
		}

		failure := zerr.Wrap(&domain.CommandError{
			Program:  inv.Program,
			ExitCode: exitCode,
			Output:   msg,
		}, "command failed")
		failure = zerr.With(failure, "program", inv.Program)
		return nil, zerr.With(failure, "exit_code", exitCode)
	}

	if stderr.Len() > 0 {
		w := &logWriter{logger: e.logger}
		_, _ = w.Write(stderr.Bytes())
		_ = w.Close()
	}

	return stdout.Bytes(), nil
}

// logWriter forwards complete lines to the logger as warnings.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}
	w.logger.Warn(msg)
}

// allowListedEnvVars are the system environment variables inherited by compilers.
// Node based compilers need NODE_PATH to find globally installed plugins.
var allowListedEnvVars = map[string]struct{}{
	"HOME":       {},
	"TERM":       {},
	"USER":       {},
	"PATH":       {},
	"NODE_PATH":  {},
	"TMPDIR":     {},
	"SYSTEMROOT": {},
}

// resolveEnvironment filters the system environment down to the allow-list.
// The result is sorted so runs are reproducible.
func resolveEnvironment(sysEnv []string) []string {
	var result []string
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			result = append(result, entry)
		}
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
