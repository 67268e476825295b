package cfg

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/juiceinc/jbwatch/internal/validation"
)

const (
	// Version identifies the format of the configuration files that the
	// package can parse. Whenever an incompatible change is made, the
	// Version number is increased.
	Version int = 1

	// DefaultFile is the name of the configuration file that is used when
	// none is specified.
	DefaultFile = "jbwatch.toml"

	// DefaultContainer is the name of the container in that commands are
	// executed.
	DefaultContainer = "juicebox"
)

// Config is the jbwatch configuration.
// A Config is not modified after it was loaded and validated.
type Config struct {
	ConfigVersion int          `toml:"config_version" comment:"Internal field, version of the jbwatch configuration format"`
	Container     string       `toml:"container" comment:"Name of the container in that tasks run, available in task commands as {{ .Container }}.\n The watch command refuses to start when no running container matches the name."`
	Ignore        []string     `toml:"ignore" comment:"Names of directories that are not watched."`
	Watch         []WatchGroup `toml:"Watch" comment:"Groups of files that are watched and the action that runs when one of them changes."`
	Task          []Task       `toml:"Task" comment:"Shell commands that are run by watch groups or via 'jbwatch run'."`

	filePath string
}

// Default returns the built-in configuration.
// It watches DefaultFile for changes and reloads itself, loads application
// fixtures when app files change and rebuilds the JavaScript assets when
// their sources change.
func Default() *Config {
	return defaultConfig(DefaultFile)
}

func defaultConfig(cfgFile string) *Config {
	return &Config{
		ConfigVersion: Version,
		Container:     DefaultContainer,
		Ignore:        []string{".git", ".idea", "node_modules", "builds"},
		Watch: []WatchGroup{
			{
				Name:       "config",
				Files:      []string{cfgFile},
				Action:     ActionReload,
				Reload:     true,
				DebounceMs: ReloadDebounceMs,
			},
			{
				Name: "apps",
				Files: []string{
					"apps/**/*.yaml",
					"apps/**/*.json",
					"apps/**/*.png",
					"apps/**/*.jpg",
					"apps/**/*.gif",
					"apps/**/*.md",
					"apps/**/*.html",
				},
				Action: ActionApp,
				Task:   "loadapp",
			},
			{
				Name: "js",
				Files: []string{
					"public/js/src/**/*",
					"public/test/js/spec/v3/**/*",
				},
				Action: ActionTasks,
				Tasks:  []string{"makejs"},
			},
		},
		Task: []Task{
			{
				Name:    "loadapp",
				Param:   "app",
				Command: `docker exec -t {{ .Container }} bash -c "python manage.py loadjuiceboxapp {{ .Arg }}" || echo "\nFailed!"`,
			},
			{
				Name:    "makejs",
				Command: `docker exec -t {{ .Container }} bash -c "make js collectstatic"`,
			},
		},
	}
}

// FromFile reads and validates the configuration from a file.
func FromFile(cfgPath string) (*Config, error) {
	var config Config

	content, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}

	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", cfgPath, row, col, err)
		}

		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}

	config.filePath = cfgPath

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}

	return &config, nil
}

// Load reads the configuration file relPath in the directory root.
// If the file does not exist, the built-in configuration is returned, its
// reload watch group watches relPath, creating the file triggers a reload.
func Load(root, relPath string) (*Config, error) {
	path := filepath.Join(root, relPath)

	config, err := FromFile(path)
	if err == nil {
		return config, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return defaultConfig(filepath.ToSlash(filepath.Clean(relPath))), nil
}

// ToFile writes the configuration in TOML format to filepath.
func (c *Config) ToFile(filepath string, opts ...toFileOpt) error {
	return toFile(c, filepath, opts...)
}

// FilePath returns the path of the file the configuration was read from.
// It is empty for the built-in configuration.
func (c *Config) FilePath() string {
	return c.filePath
}

// TaskByName returns the task with the given name.
func (c *Config) TaskByName(name string) (*Task, bool) {
	for i := range c.Task {
		if c.Task[i].Name == name {
			return &c.Task[i], true
		}
	}

	return nil, false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ConfigVersion == 0 {
		return newFieldError("can not be unset or 0", "config_version")
	}

	if c.ConfigVersion != Version {
		return fmt.Errorf("incompatible configuration file\n"+
			"config_version value is %d, expecting version: %d", c.ConfigVersion, Version)
	}

	if err := validation.Identifier(c.Container); err != nil {
		return fieldErrorWrap(err, "container")
	}

	for i, name := range c.Ignore {
		if err := validation.StrID(name); err != nil {
			return fieldErrorWrap(err, fmt.Sprintf("ignore[%d]", i))
		}
	}

	taskNames := make(map[string]struct{}, len(c.Task))
	for i := range c.Task {
		t := &c.Task[i]

		if err := t.validate(); err != nil {
			return fieldErrorWrap(err, fmt.Sprintf("Task[%d]", i))
		}

		if _, exist := taskNames[t.Name]; exist {
			return newFieldError(fmt.Sprintf("task name %q is not unique", t.Name), fmt.Sprintf("Task[%d]", i), "name")
		}
		taskNames[t.Name] = struct{}{}
	}

	groupNames := make(map[string]struct{}, len(c.Watch))
	for i := range c.Watch {
		g := &c.Watch[i]

		if err := g.validate(c); err != nil {
			return fieldErrorWrap(err, fmt.Sprintf("Watch[%d]", i))
		}

		if _, exist := groupNames[g.Name]; exist {
			return newFieldError(fmt.Sprintf("watch group name %q is not unique", g.Name), fmt.Sprintf("Watch[%d]", i), "name")
		}
		groupNames[g.Name] = struct{}{}
	}

	return nil
}
