// Package process launches helper scripts either with captured output or with
// full ownership of the terminal.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/netops-tools/dnac-console/internal/logging/events"
)

// Mode selects how a child process interacts with the terminal.
type Mode int

const (
	// Captured collects stdout/stderr and never touches the terminal.
	Captured Mode = iota
	// Interactive hands the terminal to the child until it exits.
	Interactive
)

func (m Mode) String() string {
	if m == Interactive {
		return "interactive"
	}
	return "captured"
}

// Command names the executable and its arguments.
type Command struct {
	Path string
	Args []string
	Dir  string
	// Env entries are appended after the runner's overlay.
	Env []string
}

// String renders the command line with shell quoting.
func (c Command) String() string {
	return shellescape.QuoteCommand(append([]string{c.Path}, c.Args...))
}

// Result describes how a child finished. A non-zero exit is reported through
// ExitCode with a nil Err; Err is set only when the child could not be run or
// the terminal could not be handed back.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// OK reports a clean zero exit.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Terminal is the session resource released around interactive children.
type Terminal interface {
	Release() error
	Acquire() error
}

// Runner starts child processes with the project environment overlay.
type Runner struct {
	terminal    Terminal
	projectRoot string
	baseEnv     []string
	extraEnv    []string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}

// Option customises a Runner.
type Option func(*Runner)

// WithEnv appends variables exported to every child.
func WithEnv(vars ...string) Option {
	return func(r *Runner) {
		r.extraEnv = append(r.extraEnv, vars...)
	}
}

// WithBaseEnv replaces the inherited process environment.
func WithBaseEnv(env []string) Option {
	return func(r *Runner) {
		r.baseEnv = append([]string(nil), env...)
	}
}

// WithStdio overrides the streams given to interactive children.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(r *Runner) {
		r.stdin = in
		r.stdout = out
		r.stderr = errOut
	}
}

// NewRunner returns a Runner that prepends projectRoot to PYTHONPATH.
func NewRunner(term Terminal, projectRoot string, opts ...Option) *Runner {
	r := &Runner{
		terminal:    term,
		projectRoot: projectRoot,
		baseEnv:     os.Environ(),
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Environ builds the child environment: the base environment with PYTHONPATH
// prefixed by the project root, then the runner's and the command's extras.
func (r *Runner) Environ(extra []string) []string {
	env := make([]string, 0, len(r.baseEnv)+len(r.extraEnv)+len(extra)+1)
	pythonPath := ""
	for _, kv := range r.baseEnv {
		if v, ok := strings.CutPrefix(kv, "PYTHONPATH="); ok {
			pythonPath = v
			continue
		}
		env = append(env, kv)
	}
	if r.projectRoot != "" {
		if pythonPath == "" {
			pythonPath = r.projectRoot
		} else {
			pythonPath = r.projectRoot + string(os.PathListSeparator) + pythonPath
		}
	}
	if pythonPath != "" {
		env = append(env, "PYTHONPATH="+pythonPath)
	}
	env = append(env, r.extraEnv...)
	return append(env, extra...)
}

// Run executes cmd in the given mode and waits for it to exit.
func (r *Runner) Run(ctx context.Context, cmd Command, mode Mode) Result {
	line := cmd.String()
	events.Process.Start(line, mode.String())
	var res Result
	if mode == Interactive {
		res = r.runInteractive(ctx, cmd)
	} else {
		res = r.runCaptured(ctx, cmd)
	}
	events.Process.Exit(line, res.ExitCode, res.Err)
	return res
}

func (r *Runner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = r.Environ(cmd.Env)
	return c
}

func (r *Runner) runCaptured(ctx context.Context, cmd Command) Result {
	c := r.command(ctx, cmd)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	res := resultFrom(c.Run())
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	return res
}

// runInteractive releases the terminal, runs the child on the real stdio and
// reacquires the terminal on every return path.
func (r *Runner) runInteractive(ctx context.Context, cmd Command) (res Result) {
	if r.terminal != nil {
		if err := r.terminal.Release(); err != nil {
			events.Process.Terminal("release", err)
			return Result{ExitCode: -1, Err: fmt.Errorf("release terminal: %w", err)}
		}
		events.Process.Terminal("release", nil)
		defer func() {
			err := r.terminal.Acquire()
			events.Process.Terminal("acquire", err)
			if err != nil && res.Err == nil {
				res.Err = fmt.Errorf("reacquire terminal: %w", err)
			}
		}()
	}
	c := r.command(ctx, cmd)
	c.Stdin = r.stdin
	c.Stdout = r.stdout
	c.Stderr = r.stderr
	return resultFrom(c.Run())
}

func resultFrom(err error) Result {
	if err == nil {
		return Result{}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode()}
	}
	return Result{ExitCode: -1, Err: err}
}
