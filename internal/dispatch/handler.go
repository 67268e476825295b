package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/juiceinc/jbwatch/internal/log"
	"github.com/juiceinc/jbwatch/internal/task"
	"github.com/juiceinc/jbwatch/internal/watch"
)

// ErrMalformedPath is returned by AppName when a path does not contain an
// application directory.
var ErrMalformedPath = errors.New("path has no application directory element")

// TaskRunner runs rendered command lines.
type TaskRunner interface {
	RunCommand(ctx context.Context, taskName, cmdline string) error
}

// Handler reacts to a change event of a watch group.
// The implementations are ReloadHandler, TasksHandler and AppHandler.
type Handler interface {
	Handle(ctx context.Context, ev watch.Event) error

	isHandler()
}

// ReloadHandler reloads the configuration.
type ReloadHandler struct {
	reload func(context.Context) error
}

func (h *ReloadHandler) Handle(ctx context.Context, ev watch.Event) error {
	log.Debugf("%s was %s, reloading configuration\n", ev.Path, ev.Op)
	return h.reload(ctx)
}

func (*ReloadHandler) isHandler() {}

// TasksHandler runs a fixed list of tasks without parameter, the path of the
// changed file is not used.
type TasksHandler struct {
	tasks     []*task.Task
	container string
	runner    TaskRunner
}

// Handle runs the tasks in order. When a task fails, the remaining ones are
// not run.
func (h *TasksHandler) Handle(ctx context.Context, _ watch.Event) error {
	for _, t := range h.tasks {
		cmdline, err := t.Command.Render(h.container)
		if err != nil {
			return fmt.Errorf("task %s: %w", t.Name, err)
		}

		if err := h.runner.RunCommand(ctx, t.Name, cmdline); err != nil {
			return err
		}
	}

	return nil
}

// Tasks returns the names of the tasks that are run.
func (h *TasksHandler) Tasks() []string {
	names := make([]string, 0, len(h.tasks))
	for _, t := range h.tasks {
		names = append(names, t.Name)
	}

	return names
}

func (*TasksHandler) isHandler() {}

// AppHandler runs a task with the name of the application that the changed
// file belongs to as argument.
type AppHandler struct {
	task      *task.Task
	container string
	runner    TaskRunner
	out       io.Writer
	// onlyApp restricts the handler to a single application when it is
	// not empty.
	onlyApp string
}

func (h *AppHandler) Handle(ctx context.Context, ev watch.Event) error {
	app, err := AppName(ev.Path)
	if err != nil {
		log.Warnf("%s: %s, ignoring change\n", ev.Path, err)
		return nil
	}

	if h.onlyApp != "" && app != h.onlyApp {
		log.Debugf("%s: ignoring change of app %q, only %q is watched\n", ev.Path, app, h.onlyApp)
		return nil
	}

	fmt.Fprintf(h.out, "App %s modified. Reloading\n", app)

	cmdline, err := h.task.Command.Render(h.container, app)
	if err != nil {
		return fmt.Errorf("task %s: app %q not loaded: %w", h.task.Name, app, err)
	}

	return h.runner.RunCommand(ctx, h.task.Name, cmdline)
}

func (*AppHandler) isHandler() {}

// AppName returns the application name of a path of the apps directory,
// it is the second element of the slash-separated path.
func AppName(path string) (string, error) {
	elems := strings.Split(path, "/")
	if len(elems) < 2 || elems[1] == "" {
		return "", fmt.Errorf("%q: %w", path, ErrMalformedPath)
	}

	return elems[1], nil
}
