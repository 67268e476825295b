package cfg

import (
	"github.com/juiceinc/jbwatch/internal/validation"
)

// Task is a [[Task]] section.
type Task struct {
	Name    string `toml:"name" comment:"Identifier of the task"`
	Command string `toml:"command" comment:"Shell command line, it is run via 'sh -c'.\n The command is a Go template, {{ .Container }} is replaced with the container name\n and {{ .Arg }} with the argument of the task."`
	Param   string `toml:"param,omitempty" comment:"Name of the argument of the task, if empty the task has no argument."`
}

func (t *Task) validate() error {
	if err := validation.Identifier(t.Name); err != nil {
		return fieldErrorWrap(err, "name")
	}

	if t.Command == "" {
		return newFieldError("can not be empty", "command")
	}

	if t.Param != "" {
		if err := validation.Identifier(t.Param); err != nil {
			return fieldErrorWrap(err, "param")
		}
	}

	return nil
}
