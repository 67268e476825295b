package command

import (
	"github.com/spf13/cobra"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/command/term"
	"github.com/juiceinc/jbwatch/internal/format"
	"github.com/juiceinc/jbwatch/internal/format/jsonformat"
	"github.com/juiceinc/jbwatch/internal/format/table"
	"github.com/juiceinc/jbwatch/internal/prettyprint"
)

const (
	lsNameHeader     = "Name"
	lsActionHeader   = "Action"
	lsDebounceHeader = "Debounce"
	lsTasksHeader    = "Tasks"
	lsFilesHeader    = "Files"
	lsParamHeader    = "Parameter"
	lsCommandHeader  = "Command"

	// lsMaxListElems is the max. number of files and tasks that are shown
	// per watch group in the table output.
	lsMaxListElems = 4
)

func init() {
	rootCmd.AddCommand(&newLsCmd().Command)
}

type lsCmd struct {
	cobra.Command

	// Cmdline parameters
	json  bool
	quiet bool
}

func newLsCmd() *lsCmd {
	cmd := lsCmd{
		Command: cobra.Command{
			Use:   "ls",
			Short: "list watch groups and tasks",
			Args:  cobra.NoArgs,
		},
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVar(&cmd.json, "json", false,
		"list watch groups and tasks as 2 JSON arrays")
	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"suppress printing headers")

	return &cmd
}

func (c *lsCmd) run(_ *cobra.Command, _ []string) {
	conf := mustLoadConfig()

	groupHeaders := []string{lsNameHeader, lsActionHeader, lsDebounceHeader, lsTasksHeader, lsFilesHeader}
	taskHeaders := []string{lsNameHeader, lsParamHeader, lsCommandHeader}

	exitOnErr(c.writeGroups(c.newFormatter(groupHeaders), conf))

	if !c.json {
		stdout.Println()
	}

	exitOnErr(c.writeTasks(c.newFormatter(taskHeaders), conf))
}

func (c *lsCmd) newFormatter(headers []string) format.Formatter {
	if c.json {
		return jsonformat.New(headers, stdout)
	}

	if c.quiet {
		return table.New(nil, stdout)
	}

	return table.New(headers, stdout)
}

func (c *lsCmd) writeGroups(f format.Formatter, conf *cfg.Config) error {
	for _, g := range conf.Watch {
		var tasks []string

		switch g.Action {
		case cfg.ActionTasks:
			tasks = g.Tasks
		case cfg.ActionApp:
			tasks = []string{g.Task}
		}

		action := string(g.Action)
		if !c.json {
			action = term.ColoredAction(action)
		}

		err := f.WriteRow(
			g.Name,
			action,
			g.Debounce().String(),
			c.list(tasks),
			c.list(g.Files),
		)
		if err != nil {
			return err
		}
	}

	return f.Flush()
}

func (c *lsCmd) writeTasks(f format.Formatter, conf *cfg.Config) error {
	for _, t := range conf.Task {
		if err := f.WriteRow(t.Name, t.Param, t.Command); err != nil {
			return err
		}
	}

	return f.Flush()
}

func (c *lsCmd) list(elems []string) any {
	if c.json {
		if elems == nil {
			return []string{}
		}

		return elems
	}

	return prettyprint.TruncatedStrSlice(elems, lsMaxListElems)
}
