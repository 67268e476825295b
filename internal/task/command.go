// Package task renders the shell commands of tasks and runs them.
package task

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/validation"
)

var (
	// ErrInvalidArgument is returned when an argument contains characters
	// that are not allowed in a command line.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrArgumentCount is returned when a command is rendered with a wrong
	// number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")
	// ErrUnknownTask is returned when a task does not exist.
	ErrUnknownTask = errors.New("unknown task")
)

// argMarker is rendered into SingleArgCommand templates to verify that they
// reference their argument.
const argMarker = "jbwatch-arg-marker"

// Command is a shell command template.
// The implementations are NoArgCommand and SingleArgCommand.
type Command interface {
	// Render returns the command line with all template variables replaced.
	Render(container string, args ...string) (string, error)
	// String returns the template text.
	String() string

	isCommand()
}

type noArgData struct {
	Container string
}

type singleArgData struct {
	Container string
	Arg       string
}

// NoArgCommand is a command template without parameters.
type NoArgCommand struct {
	text string
	tmpl *template.Template
}

// NewNoArgCommand parses text.
func NewNoArgCommand(text string) (*NoArgCommand, error) {
	tmpl, err := parse(text)
	if err != nil {
		return nil, err
	}

	c := NoArgCommand{text: text, tmpl: tmpl}
	if _, err := execute(c.tmpl, &noArgData{Container: "container"}); err != nil {
		return nil, err
	}

	return &c, nil
}

// Render returns the command line. No arguments must be passed.
func (c *NoArgCommand) Render(container string, args ...string) (string, error) {
	if len(args) != 0 {
		return "", fmt.Errorf("%w: command has no parameter, got %d arguments", ErrArgumentCount, len(args))
	}

	return execute(c.tmpl, &noArgData{Container: container})
}

func (c *NoArgCommand) String() string {
	return c.text
}

func (*NoArgCommand) isCommand() {}

// SingleArgCommand is a command template with exactly one parameter.
type SingleArgCommand struct {
	text  string
	param string
	tmpl  *template.Template
}

// NewSingleArgCommand parses text, param is the name of the argument.
// An error is returned if the template does not reference {{ .Arg }}.
func NewSingleArgCommand(text, param string) (*SingleArgCommand, error) {
	tmpl, err := parse(text)
	if err != nil {
		return nil, err
	}

	c := SingleArgCommand{text: text, param: param, tmpl: tmpl}

	sample, err := execute(c.tmpl, &singleArgData{Container: "container", Arg: argMarker})
	if err != nil {
		return nil, err
	}

	if !strings.Contains(sample, argMarker) {
		return nil, errors.New("command does not reference the parameter via {{ .Arg }}")
	}

	return &c, nil
}

// Param returns the name of the parameter.
func (c *SingleArgCommand) Param() string {
	return c.param
}

// Render returns the command line with {{ .Arg }} replaced by the only
// element of args.
func (c *SingleArgCommand) Render(container string, args ...string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: command requires the parameter %q, got %d arguments", ErrArgumentCount, c.param, len(args))
	}

	if err := validation.Identifier(args[0]); err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrInvalidArgument, c.param, err)
	}

	return execute(c.tmpl, &singleArgData{Container: container, Arg: args[0]})
}

func (c *SingleArgCommand) String() string {
	return c.text
}

func (*SingleArgCommand) isCommand() {}

func parse(text string) (*template.Template, error) {
	tmpl, err := template.New("command").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing command template failed: %w", err)
	}

	return tmpl, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("evaluating command template failed: %w", err)
	}

	return buf.String(), nil
}

// Task is a named command.
type Task struct {
	Name    string
	Command Command
}

// New converts a task configuration into a Task.
func New(t *cfg.Task) (*Task, error) {
	var cmd Command
	var err error

	if t.Param == "" {
		cmd, err = NewNoArgCommand(t.Command)
	} else {
		cmd, err = NewSingleArgCommand(t.Command, t.Param)
	}
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", t.Name, err)
	}

	return &Task{Name: t.Name, Command: cmd}, nil
}

// FromConfig converts all tasks of c.
func FromConfig(c *cfg.Config) (map[string]*Task, error) {
	result := make(map[string]*Task, len(c.Task))

	for i := range c.Task {
		t, err := New(&c.Task[i])
		if err != nil {
			return nil, err
		}

		result[t.Name] = t
	}

	return result, nil
}

func (t *Task) String() string {
	return t.Name
}
