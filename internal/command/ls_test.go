package command

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/testutils/ostest"
)

func TestLsBuiltinConfig(t *testing.T) {
	initTest(t)
	ostest.Chdir(t, t.TempDir())

	stdoutBuf, _ := interceptCmdOutput(t)

	lsCmd := newLsCmd()
	lsCmd.SetArgs([]string{})
	execCheck(t, lsCmd, exitCodeSuccess)

	out := stdoutBuf.String()
	for _, s := range []string{"Name", "Debounce", "config", "apps", "js", "loadapp", "makejs", "2s", "500ms", "apps/**/*.yaml"} {
		assert.Contains(t, out, s)
	}
}

func TestLsJSON(t *testing.T) {
	initTest(t)
	dir := t.TempDir()
	ostest.Chdir(t, dir)

	c := cfg.Default()
	c.Task = append(c.Task, cfg.Task{Name: "lint", Command: "echo lint"})
	c.Watch[2].Tasks = []string{"makejs", "lint"}
	require.NoError(t, c.ToFile(filepath.Join(dir, cfg.DefaultFile)))

	stdoutBuf, _ := interceptCmdOutput(t)

	lsCmd := newLsCmd()
	lsCmd.SetArgs([]string{"--json"})
	execCheck(t, lsCmd, exitCodeSuccess)

	dec := json.NewDecoder(strings.NewReader(stdoutBuf.String()))

	var groups []map[string]any
	require.NoError(t, dec.Decode(&groups))
	require.Len(t, groups, 3)
	assert.Equal(t, "js", groups[2]["Name"])
	assert.Equal(t, []any{"makejs", "lint"}, groups[2]["Tasks"])
	assert.Equal(t, "reload", groups[0]["Action"])

	var tasks []map[string]any
	require.NoError(t, dec.Decode(&tasks))
	require.Len(t, tasks, 3)
	assert.Equal(t, "lint", tasks[2]["Name"])
}

func TestLsUsesConfigFromEnv(t *testing.T) {
	initTest(t)
	dir := t.TempDir()
	ostest.Chdir(t, dir)

	c := cfg.Default()
	c.Watch[2].Name = "javascript"
	require.NoError(t, c.ToFile(filepath.Join(dir, "custom.toml")))

	t.Setenv(envVarConfig, "custom.toml")

	stdoutBuf, _ := interceptCmdOutput(t)

	lsCmd := newLsCmd()
	lsCmd.SetArgs([]string{})
	execCheck(t, lsCmd, exitCodeSuccess)

	assert.Contains(t, stdoutBuf.String(), "javascript")
}

func TestLsInvalidConfigFails(t *testing.T) {
	initTest(t)
	dir := t.TempDir()
	ostest.Chdir(t, dir)

	c := cfg.Default()
	c.Container = "juicebox; rm -rf /"
	require.NoError(t, c.ToFile(filepath.Join(dir, cfg.DefaultFile)))

	_, stderrBuf := interceptCmdOutput(t)

	lsCmd := newLsCmd()
	lsCmd.SetArgs([]string{})
	execCheck(t, lsCmd, exitCodeError)

	assert.Contains(t, stderrBuf.String(), "container")
}
