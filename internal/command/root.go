// Package command implements the jbwatch commandline interface.
package command

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/command/term"
	"github.com/juiceinc/jbwatch/internal/exec"
	"github.com/juiceinc/jbwatch/internal/log"
	"github.com/juiceinc/jbwatch/internal/version"
)

// envVarConfig contains the name of an environment variable in that the
// path of the configuration file can be stored
const envVarConfig = "JBWATCH_CONFIG"

var rootCmd = &cobra.Command{
	Use:              "jbwatch",
	Short:            "jbwatch runs tasks in the juicebox container when files of a project change.",
	PersistentPreRun: initSb,
	SilenceUsage:     true,
}

var verboseFlag bool
var noColorFlag bool
var configFlag string

var ctx = context.Background()

var stdout = term.NewStream(os.Stdout)
var stderr = term.NewStream(os.Stderr)

var exitFunc = func(code int) { os.Exit(code) }

func initSb(_ *cobra.Command, _ []string) {
	if verboseFlag {
		log.StdLogger.EnableDebug(verboseFlag)
		exec.DefaultLogFn = log.StdLogger.Debugf
	}

	if noColorFlag {
		color.NoColor = true
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", cfg.DefaultFile,
		"path of the configuration file, relative to the current directory,\n"+
			"can also be set via the $"+envVarConfig+" environment variable")
}

// Execute parses commandline flags and execute their actions
func Execute() {
	rootCmd.Version = version.String()

	err := rootCmd.Execute()
	exitOnErr(err)
}
