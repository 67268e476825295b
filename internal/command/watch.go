package command

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/command/term"
	"github.com/juiceinc/jbwatch/internal/container"
	"github.com/juiceinc/jbwatch/internal/log"
	"github.com/juiceinc/jbwatch/internal/runner"
	"github.com/juiceinc/jbwatch/internal/task"
	"github.com/juiceinc/jbwatch/internal/validation"
)

func init() {
	rootCmd.AddCommand(&newWatchCmd().Command)
}

type watchCmd struct {
	cobra.Command

	// Cmdline parameters
	app                string
	skipContainerCheck bool

	// containerRunning reports if the container with the given name is
	// running, it is replaced in tests.
	containerRunning func(name string) (bool, error)
}

var watchLongHelp = fmt.Sprintf(`
Watch the current directory for changes and run the tasks of the watch
group of a changed file.

The configuration is read from %s in the current directory. If it does
not exist, the built-in configuration is used. Changes of the
configuration file are applied without restarting.

Before watching starts, it is verified that the docker container that
runs the tasks is running.

The following Environment Variables are supported:
    %s

  Docker:
    %s
    %s
    %s
    %s
`,
	term.Highlight(cfg.DefaultFile),
	term.Highlight(envVarConfig),
	term.Highlight("DOCKER_HOST"),
	term.Highlight("DOCKER_API_VERSION"),
	term.Highlight("DOCKER_CERT_PATH"),
	term.Highlight("DOCKER_TLS_VERIFY"))

func newWatchCmd() *watchCmd {
	const example = `
watch			watch for changes of all apps and js files
watch --app store	only load the app store when it changes
`

	cmd := watchCmd{
		Command: cobra.Command{
			Use:     "watch",
			Short:   "watch for file changes and run tasks",
			Long:    strings.TrimSpace(watchLongHelp),
			Example: strings.TrimSpace(example),
			Args:    cobra.NoArgs,
		},
		containerRunning: dockerContainerRunning,
	}

	cmd.Run = cmd.run

	cmd.Flags().StringVar(&cmd.app, "app", "",
		"only run tasks for changes of the app with this name")
	cmd.Flags().BoolVar(&cmd.skipContainerCheck, "skip-container-check", false,
		"do not verify that the container is running")

	return &cmd
}

func (c *watchCmd) run(_ *cobra.Command, _ []string) {
	if c.app != "" {
		exitOnErrf(validation.Identifier(c.app), "invalid app name %q", c.app)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := mustGetwd()

	r, err := runner.New(root, configPath(), &runner.Options{
		TaskRunner: task.NewRunner(stdout),
		Out:        stdout,
		App:        c.app,
	})
	exitOnErr(err)

	if !c.skipContainerCheck {
		c.mustHaveContainer(r)
	}

	c.printStartInfo(r)

	err = r.Run(ctx)
	exitOnErr(err)

	stdout.Println("watching stopped")
}

func (c *watchCmd) mustHaveContainer(r *runner.Runner) {
	name := r.Config().Container

	running, err := c.containerRunning(name)
	if err != nil {
		stderr.ErrPrintf(err, "checking if container %q is running failed", name)
	} else if !running {
		stderr.Printf("container %s is not running\n", term.Highlight(name))
	}

	if err != nil || !running {
		_ = r.Close()

		stderr.Println("Failed to start project watcher.")
		exitFunc(exitCodeError)
	}
}

func (c *watchCmd) printStartInfo(r *runner.Runner) {
	conf := r.Config()

	if conf.FilePath() == "" {
		stdout.Printf("using built-in configuration, run '%s' to customize it\n", term.Highlight("jbwatch init"))
	} else {
		stdout.Printf("using configuration %s\n", term.Highlight(conf.FilePath()))
	}

	for _, g := range conf.Watch {
		log.Debugf("watch group %s: %s\n", g.Name, strings.Join(g.Files, ", "))
	}

	if c.app != "" {
		stdout.Printf("only changes of app %s are handled\n", term.Highlight(c.app))
	}

	stdout.Printf("watching %s for changes, press CTRL+C to stop\n", term.Highlight(r.Root()))
}

func dockerContainerRunning(name string) (bool, error) {
	clt, err := container.NewClient(log.StdLogger.Debugf)
	if err != nil {
		return false, err
	}
	defer clt.Close()

	return clt.Running(ctx, name)
}
