package command

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/testutils/ostest"
)

func TestInitWritesDefaultConfig(t *testing.T) {
	initTest(t)

	dir := t.TempDir()
	stdoutBuf, _ := interceptCmdOutput(t)

	initCmd := newInitCmd()
	initCmd.SetArgs([]string{dir})
	execCheck(t, initCmd, exitCodeSuccess)

	cfgPath := filepath.Join(dir, cfg.DefaultFile)
	assert.Contains(t, stdoutBuf.String(), cfgPath)

	c, err := cfg.FromFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Default().Watch, c.Watch)
	assert.Equal(t, cfg.Default().Task, c.Task)
}

func TestInitFailsWhenConfigExists(t *testing.T) {
	initTest(t)

	dir := t.TempDir()
	ostest.Chdir(t, dir)

	initCmd := newInitCmd()
	initCmd.SetArgs([]string{})
	execCheck(t, initCmd, exitCodeSuccess)

	_, stderrBuf := interceptCmdOutput(t)

	initCmd = newInitCmd()
	initCmd.SetArgs([]string{})
	execCheck(t, initCmd, exitCodeAlreadyExist)

	assert.Contains(t, stderrBuf.String(), "already exists")
}
