package command

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/command/term"
)

func init() {
	rootCmd.AddCommand(&newInitCmd().Command)
}

const initLongHelp = `
Create a configuration file with the built-in watch groups and tasks.
If no argument is passed, the file is created in the current directory.
`

type initCmd struct {
	cobra.Command
}

func newInitCmd() *initCmd {
	cmd := initCmd{
		Command: cobra.Command{
			Use:   "init [<DIR>]",
			Short: "create a configuration file",
			Long:  strings.TrimSpace(initLongHelp),
			Args:  cobra.MaximumNArgs(1),
		},
	}

	cmd.Run = cmd.run

	return &cmd
}

func (c *initCmd) run(_ *cobra.Command, args []string) {
	var dir string

	if len(args) == 1 {
		dir = args[0]
	} else {
		dir = mustGetwd()
	}

	cfgPath := filepath.Join(dir, cfg.DefaultFile)

	err := cfg.Default().ToFile(cfgPath)
	if err != nil {
		if os.IsExist(err) {
			stderr.Printf("%s already exists\n", cfgPath)
			exitFunc(exitCodeAlreadyExist)
		}

		exitOnErr(err)
	}

	stdout.Printf("Configuration was written to %s\n", term.Highlight(cfgPath))
	stdout.Printf("\nNext Steps:\n"+
		"1. Adapt the watch groups and tasks in '%s'\n"+
		"2. Run '%s' to list them\n"+
		"3. Run '%s' to start watching\n",
		term.Highlight(cfg.DefaultFile),
		term.Highlight("jbwatch ls"),
		term.Highlight("jbwatch watch"))
}
