package command

import (
	"os"
	"path/filepath"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/log"
)

// configPath returns the path of the configuration file.
// The --config flag has precedence when it was passed, otherwise
// $JBWATCH_CONFIG is used if it is set.
func configPath() string {
	if rootCmd.PersistentFlags().Changed("config") {
		return configFlag
	}

	if p := os.Getenv(envVarConfig); p != "" {
		log.Debugf("using configuration file path from $%s environment variable\n", envVarConfig)
		return p
	}

	return configFlag
}

func mustGetwd() string {
	wd, err := os.Getwd()
	exitOnErr(err)

	return wd
}

// mustLoadConfig loads the configuration file, the built-in configuration is
// returned if it does not exist.
func mustLoadConfig() *cfg.Config {
	path := configPath()

	var c *cfg.Config
	var err error

	if filepath.IsAbs(path) {
		c, err = cfg.Load(filepath.Dir(path), filepath.Base(path))
	} else {
		c, err = cfg.Load(mustGetwd(), path)
	}
	exitOnErr(err, "loading configuration failed")

	if c.FilePath() == "" {
		log.Debugf("%s does not exist, using built-in configuration\n", path)
	}

	return c
}

func exitOnErrf(err error, format string, v ...any) {
	if err == nil {
		return
	}

	stderr.ErrPrintf(err, format, v...)
	exitFunc(exitCodeError)
}

func exitOnErr(err error, msg ...any) {
	if err == nil {
		return
	}

	stderr.ErrPrintln(err, msg...)
	exitFunc(exitCodeError)
}
