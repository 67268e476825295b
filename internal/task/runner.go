package task

import (
	"context"
	"fmt"
	"io"

	"github.com/juiceinc/jbwatch/internal/exec"
	"github.com/juiceinc/jbwatch/internal/log"
)

// Runner executes command lines via "sh -c" in the working directory and
// environment of the current process.
type Runner struct {
	out   io.Writer
	logFn func(format string, v ...any)
}

// NewRunner returns a Runner that streams the output of commands to out.
func NewRunner(out io.Writer) *Runner {
	return &Runner{
		out:   out,
		logFn: exec.DefaultLogFn,
	}
}

// RunCommand runs cmdline and blocks until it terminated.
// If the command exits with a code != 0 an *exec.ExitCodeError is returned.
// There is no timeout, the command only terminates early when ctx is
// canceled.
func (r *Runner) RunCommand(ctx context.Context, taskName, cmdline string) error {
	log.Debugf("%s: running: %s\n", taskName, cmdline)

	_, err := exec.ShellCommand(cmdline).
		Stream(r.out).
		LogFn(r.logFn).
		LogPrefix(taskName + ": ").
		ExpectSuccess().
		Run(ctx)
	if err != nil {
		return fmt.Errorf("task %s failed: %w", taskName, err)
	}

	return nil
}

// Run renders the command of t and runs it.
func (r *Runner) Run(ctx context.Context, t *Task, container string, args ...string) error {
	cmdline, err := t.Command.Render(container, args...)
	if err != nil {
		return fmt.Errorf("task %s: %w", t.Name, err)
	}

	return r.RunCommand(ctx, t.Name, cmdline)
}
