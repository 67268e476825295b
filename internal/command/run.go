package command

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/juiceinc/jbwatch/internal/command/term"
	"github.com/juiceinc/jbwatch/internal/task"
)

func init() {
	rootCmd.AddCommand(&newRunCmd().Command)
}

type runCmd struct {
	cobra.Command
}

const runLongHelp = `
Run a task of the configuration once.
Tasks with a parameter require the argument as second parameter.
`

func newRunCmd() *runCmd {
	const example = `
run makejs		build the javascript files and collect the static files
run loadapp store	load the app store
`

	cmd := runCmd{
		Command: cobra.Command{
			Use:     "run <TASK> [<ARG>]",
			Short:   "run a task",
			Long:    strings.TrimSpace(runLongHelp),
			Example: strings.TrimSpace(example),
			Args:    cobra.RangeArgs(1, 2),
		},
	}

	cmd.Run = cmd.run

	return &cmd
}

func (c *runCmd) run(_ *cobra.Command, args []string) {
	conf := mustLoadConfig()

	tasks, err := task.FromConfig(conf)
	exitOnErr(err)

	t, exist := tasks[args[0]]
	if !exist {
		exitOnErr(fmt.Errorf("%w: %q", task.ErrUnknownTask, args[0]))
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmdline, err := t.Command.Render(conf.Container, args[1:]...)
	exitOnErr(err)

	startTime := time.Now()

	stdout.TaskPrintf(t.Name, "running %s\n", cmdline)
	stdout.PrintSep()

	err = task.NewRunner(stdout).RunCommand(ctx, t.Name, cmdline)
	stdout.PrintSep()
	exitOnErr(err)

	stdout.TaskPrintf(t.Name, "%s in %s\n",
		term.GreenHighlight("finished"), time.Since(startTime).Round(time.Millisecond))
}
