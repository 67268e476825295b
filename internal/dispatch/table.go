// Package dispatch maps change events of watch groups to the actions that
// are configured for them.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/log"
	"github.com/juiceinc/jbwatch/internal/task"
	"github.com/juiceinc/jbwatch/internal/watch"
)

// Options are the dependencies of the handlers of a Table.
type Options struct {
	Runner TaskRunner
	// Reload is called by the handler of the self-reload group.
	Reload func(context.Context) error
	// Out receives messages for the user.
	Out io.Writer
	// App restricts app handlers to one application when it is not
	// empty.
	App string
}

// Table is the immutable mapping of watch group names to handlers that was
// built from a configuration.
type Table struct {
	cfg      *cfg.Config
	handlers map[string]Handler
	matcher  *watch.Matcher
}

// Build resolves the action of every watch group of c into a Handler.
func Build(c *cfg.Config, opts *Options) (*Table, error) {
	if opts.Runner == nil {
		return nil, errors.New("runner is nil")
	}
	if opts.Reload == nil {
		return nil, errors.New("reload function is nil")
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	tasks, err := task.FromConfig(c)
	if err != nil {
		return nil, err
	}

	lookup := func(name string) (*task.Task, error) {
		t, exist := tasks[name]
		if !exist {
			return nil, fmt.Errorf("%w: %q", task.ErrUnknownTask, name)
		}

		return t, nil
	}

	table := Table{
		cfg:      c,
		handlers: make(map[string]Handler, len(c.Watch)),
	}

	groups := make([]watch.Group, 0, len(c.Watch))

	for i := range c.Watch {
		g := &c.Watch[i]

		var h Handler

		switch g.Action {
		case cfg.ActionReload:
			h = &ReloadHandler{reload: opts.Reload}

		case cfg.ActionTasks:
			th := TasksHandler{container: c.Container, runner: opts.Runner}

			for _, name := range g.Tasks {
				t, err := lookup(name)
				if err != nil {
					return nil, fmt.Errorf("watch group %q: %w", g.Name, err)
				}

				th.tasks = append(th.tasks, t)
			}

			h = &th

		case cfg.ActionApp:
			t, err := lookup(g.Task)
			if err != nil {
				return nil, fmt.Errorf("watch group %q: %w", g.Name, err)
			}

			h = &AppHandler{
				task:      t,
				container: c.Container,
				runner:    opts.Runner,
				out:       out,
				onlyApp:   opts.App,
			}

		default:
			return nil, fmt.Errorf("watch group %q: unsupported action %q", g.Name, g.Action)
		}

		table.handlers[g.Name] = h
		groups = append(groups, watch.Group{
			Name:     g.Name,
			Patterns: g.Files,
			Debounce: g.Debounce(),
			// the tasks of the group do not depend on the changed file,
			// a burst of changes runs them once
			Coalesce: g.Action == cfg.ActionTasks,
		})
	}

	table.matcher, err = watch.NewMatcher(groups)
	if err != nil {
		return nil, err
	}

	return &table, nil
}

// Config returns the configuration the table was built from.
func (t *Table) Config() *cfg.Config {
	return t.cfg
}

// Matcher returns a matcher for the watch groups of the table.
func (t *Table) Matcher() *watch.Matcher {
	return t.matcher
}

// Handler returns the handler of a watch group.
func (t *Table) Handler(group string) (Handler, bool) {
	h, exist := t.handlers[group]
	return h, exist
}

// Dispatch runs the handler of the group of ev.
func (t *Table) Dispatch(ctx context.Context, ev watch.Event) error {
	h, exist := t.handlers[ev.Group]
	if !exist {
		return fmt.Errorf("no handler for watch group %q", ev.Group)
	}

	runID := uuid.NewString()
	startTime := time.Now()

	log.Debugf("dispatch: run %s: %s\n", runID, ev)

	err := h.Handle(ctx, ev)

	log.Debugf("dispatch: run %s: finished in %s\n", runID, time.Since(startTime).Round(time.Millisecond))

	if err != nil {
		return fmt.Errorf("%s: %w", ev.Group, err)
	}

	return nil
}
