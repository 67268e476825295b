package cfg

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juiceinc/jbwatch/internal/testutils/fstest"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultIsStable(t *testing.T) {
	assert.Equal(t, Default(), Default())
}

func TestDefaultTasks(t *testing.T) {
	c := Default()

	loadapp, exist := c.TaskByName("loadapp")
	require.True(t, exist)
	assert.Equal(t, "app", loadapp.Param)
	assert.Contains(t, loadapp.Command, "loadjuiceboxapp {{ .Arg }}")
	assert.Contains(t, loadapp.Command, `|| echo "\nFailed!"`)

	makejs, exist := c.TaskByName("makejs")
	require.True(t, exist)
	assert.Empty(t, makejs.Param)
	assert.Contains(t, makejs.Command, "make js collectstatic")
	assert.NotContains(t, makejs.Command, "Failed!")
}

func TestDefaultReloadGroup(t *testing.T) {
	g := Default().Watch[0]

	assert.Equal(t, ActionReload, g.Action)
	assert.True(t, g.Reload)
	assert.Equal(t, []string{DefaultFile}, g.Files)
	assert.Equal(t, "2s", g.Debounce().String())
}

func TestToFileAndFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	c := Default()
	require.NoError(t, c.ToFile(path))

	loaded, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, loaded.FilePath())
	assert.Equal(t, c.Watch, loaded.Watch)
	assert.Equal(t, c.Task, loaded.Task)
	assert.Equal(t, c.Container, loaded.Container)
	assert.Equal(t, c.Ignore, loaded.Ignore)
}

func TestToFileDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	require.NoError(t, Default().ToFile(path))
	require.Error(t, Default().ToFile(path))
	require.NoError(t, Default().ToFile(path, ToFileOptOverwrite()))
}

func TestLoadWithoutFileReturnsDefault(t *testing.T) {
	c, err := Load(t.TempDir(), filepath.Join("conf", "watch.toml"))
	require.NoError(t, err)

	assert.Empty(t, c.FilePath())
	assert.Equal(t, []string{"conf/watch.toml"}, c.Watch[0].Files)
}

func TestLoadTwiceReturnsEqualConfigs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Default().ToFile(filepath.Join(root, DefaultFile)))

	first, err := Load(root, DefaultFile)
	require.NoError(t, err)

	second, err := Load(root, DefaultFile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestFromFileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	fstest.WriteToFile(t, []byte("config_version = 1\ncontainer = \"juicebox\"\nunknown = 1\n"), path)

	_, err := FromFile(path)
	require.Error(t, err)
}

func TestFromFileReturnsSyntaxErrorPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	fstest.WriteToFile(t, []byte("config_version = 1\ncontainer = \n"), path)

	_, err := FromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":2:")
}

func TestValidate(t *testing.T) {
	testcases := []struct {
		name        string
		modify      func(*Config)
		elementPath string
	}{
		{
			name:        "missing version",
			modify:      func(c *Config) { c.ConfigVersion = 0 },
			elementPath: "config_version",
		},
		{
			name:        "container with shell characters",
			modify:      func(c *Config) { c.Container = "juicebox;id" },
			elementPath: "container",
		},
		{
			name:        "duplicate group name",
			modify:      func(c *Config) { c.Watch[2].Name = "apps" },
			elementPath: "Watch[2].name",
		},
		{
			name:        "duplicate task name",
			modify:      func(c *Config) { c.Task[1].Name = "loadapp" },
			elementPath: "Task[1].name",
		},
		{
			name:        "unknown task",
			modify:      func(c *Config) { c.Watch[2].Tasks = []string{"makecss"} },
			elementPath: "Watch[2].tasks[0]",
		},
		{
			name:        "app action with task without parameter",
			modify:      func(c *Config) { c.Watch[1].Task = "makejs" },
			elementPath: "Watch[1].task",
		},
		{
			name:        "tasks action with task with parameter",
			modify:      func(c *Config) { c.Watch[2].Tasks = []string{"loadapp"} },
			elementPath: "Watch[2].tasks[0]",
		},
		{
			name:        "reload flag without reload action",
			modify:      func(c *Config) { c.Watch[1].Reload = true },
			elementPath: "Watch[1].reload",
		},
		{
			name:        "malformed pattern",
			modify:      func(c *Config) { c.Watch[1].Files = []string{"apps/[*.yaml"} },
			elementPath: "Watch[1].files[0]",
		},
		{
			name:        "unsupported action",
			modify:      func(c *Config) { c.Watch[2].Action = "restart" },
			elementPath: "Watch[2].action",
		},
		{
			name:        "negative debounce",
			modify:      func(c *Config) { c.Watch[1].DebounceMs = -1 },
			elementPath: "Watch[1].debounce_ms",
		},
		{
			name:        "empty command",
			modify:      func(c *Config) { c.Task[0].Command = "" },
			elementPath: "Task[0].command",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.modify(c)

			err := c.Validate()
			require.Error(t, err)

			var fErr *FieldError
			require.True(t, errors.As(err, &fErr), "error is not a FieldError: %s", err)
			assert.Equal(t, tc.elementPath, fErr.ElementPath())
		})
	}
}
