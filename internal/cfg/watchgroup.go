package cfg

import (
	"fmt"
	"time"

	"github.com/juiceinc/jbwatch/internal/fs"
	"github.com/juiceinc/jbwatch/internal/validation"
)

const (
	// DefaultDebounceMs is the debounce delay of watch groups that do not
	// specify one.
	DefaultDebounceMs = 500
	// ReloadDebounceMs is the debounce delay of the built-in reload group.
	ReloadDebounceMs = 2000
)

// Action defines what happens when a file of a watch group changes.
type Action string

const (
	// ActionReload reloads the configuration.
	ActionReload Action = "reload"
	// ActionTasks runs the tasks of the group, independent of the changed file.
	ActionTasks Action = "tasks"
	// ActionApp runs the task of the group with the application name
	// (second path element of the changed file) as argument.
	ActionApp Action = "app"
)

// WatchGroup is a [[Watch]] section.
type WatchGroup struct {
	Name       string   `toml:"name" comment:"Identifier of the group"`
	Files      []string `toml:"files" comment:"Glob patterns of watched files, relative to the watched directory.\n '**' matches directories recursively."`
	Action     Action   `toml:"action" comment:"What happens on changes, one of:\n reload - reload the configuration file\n tasks  - run the tasks listed in 'tasks'\n app    - run 'task' with the application name (second path element) as argument"`
	Tasks      []string `toml:"tasks,omitempty" comment:"Names of tasks without parameter that run for the 'tasks' action, in order."`
	Task       string   `toml:"task,omitempty" comment:"Name of the task with a parameter that runs for the 'app' action."`
	Reload     bool     `toml:"reload,omitempty" comment:"Must be true for the group watching the configuration file itself."`
	DebounceMs int      `toml:"debounce_ms,omitempty" comment:"Milliseconds to wait for further changes of the same file before the action runs.\n 0 uses the default of 500."`
}

// Debounce returns the debounce delay of the group.
func (g *WatchGroup) Debounce() time.Duration {
	if g.DebounceMs == 0 {
		return DefaultDebounceMs * time.Millisecond
	}

	return time.Duration(g.DebounceMs) * time.Millisecond
}

func (g *WatchGroup) validate(c *Config) error {
	if err := validation.StrID(g.Name); err != nil {
		return fieldErrorWrap(err, "name")
	}

	if len(g.Files) == 0 {
		return newFieldError("can not be empty", "files")
	}

	for i, pattern := range g.Files {
		if err := fs.ValidateGlob(pattern); err != nil {
			return fieldErrorWrap(err, fmt.Sprintf("files[%d]", i))
		}
	}

	if g.DebounceMs < 0 {
		return newFieldError("can not be negative", "debounce_ms")
	}

	if g.Reload != (g.Action == ActionReload) {
		return newFieldError(fmt.Sprintf("must be true if and only if action is %q", ActionReload), "reload")
	}

	switch g.Action {
	case ActionReload:
		if len(g.Tasks) != 0 {
			return newFieldError(fmt.Sprintf("must be empty for action %q", g.Action), "tasks")
		}
		if g.Task != "" {
			return newFieldError(fmt.Sprintf("must be empty for action %q", g.Action), "task")
		}

	case ActionTasks:
		if len(g.Tasks) == 0 {
			return newFieldError(fmt.Sprintf("can not be empty for action %q", g.Action), "tasks")
		}
		if g.Task != "" {
			return newFieldError(fmt.Sprintf("must be empty for action %q, use tasks", g.Action), "task")
		}

		for i, name := range g.Tasks {
			t, exist := c.TaskByName(name)
			if !exist {
				return newFieldError(fmt.Sprintf("task %q does not exist", name), fmt.Sprintf("tasks[%d]", i))
			}

			if t.Param != "" {
				return newFieldError(fmt.Sprintf("task %q requires the parameter %q, only tasks without parameter can be run by action %q", name, t.Param, g.Action), fmt.Sprintf("tasks[%d]", i))
			}
		}

	case ActionApp:
		if g.Task == "" {
			return newFieldError(fmt.Sprintf("can not be empty for action %q", g.Action), "task")
		}
		if len(g.Tasks) != 0 {
			return newFieldError(fmt.Sprintf("must be empty for action %q, use task", g.Action), "tasks")
		}

		t, exist := c.TaskByName(g.Task)
		if !exist {
			return newFieldError(fmt.Sprintf("task %q does not exist", g.Task), "task")
		}

		if t.Param == "" {
			return newFieldError(fmt.Sprintf("task %q has no parameter, action %q requires a task with a parameter", g.Task, g.Action), "task")
		}

	case "":
		return newFieldError("can not be empty", "action")

	default:
		return newFieldError(fmt.Sprintf("unsupported value %q, must be one of %q, %q, %q", g.Action, ActionReload, ActionTasks, ActionApp), "action")
	}

	return nil
}
