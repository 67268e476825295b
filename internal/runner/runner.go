// Package runner watches a directory and runs the actions of the watch
// groups of the configuration for changed files.
package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/juiceinc/jbwatch/internal/cfg"
	"github.com/juiceinc/jbwatch/internal/dispatch"
	"github.com/juiceinc/jbwatch/internal/fs"
	"github.com/juiceinc/jbwatch/internal/log"
	"github.com/juiceinc/jbwatch/internal/prettyprint"
	"github.com/juiceinc/jbwatch/internal/routines"
	"github.com/juiceinc/jbwatch/internal/watch"
)

// Options configure a Runner.
type Options struct {
	TaskRunner dispatch.TaskRunner
	// Out receives messages for the user, it must be safe for concurrent
	// use.
	Out io.Writer
	// App restricts the actions of app watch groups to one application.
	App string
}

// Runner ties the configuration, the dispatch table and the file watcher
// together.
// Events of the same watch group are handled serially in the order they
// happened, events of different groups are handled concurrently.
type Runner struct {
	root    string
	cfgPath string
	out     io.Writer
	opts    dispatch.Options

	table   atomic.Pointer[dispatch.Table]
	watcher *watch.Watcher

	poolsMu sync.Mutex
	pools   map[string]*routines.Pool
}

// New loads the configuration file cfgPath and creates a watcher for the
// directory root.
// cfgPath is either relative to root or an absolute path in root.
// If the configuration file does not exist, the built-in configuration is
// used.
func New(root, cfgPath string, opts *Options) (*Runner, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	relCfgPath := cfgPath
	if filepath.IsAbs(cfgPath) {
		relCfgPath, err = fs.RelSlashPath(absRoot, cfgPath)
		if err != nil {
			return nil, fmt.Errorf("configuration file %s must be in the directory %s: %w", cfgPath, absRoot, err)
		}
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	r := Runner{
		root:    absRoot,
		cfgPath: relCfgPath,
		out:     out,
		pools:   map[string]*routines.Pool{},
	}

	r.opts = dispatch.Options{
		Runner: opts.TaskRunner,
		Reload: r.Reload,
		Out:    out,
		App:    opts.App,
	}

	table, err := r.load()
	if err != nil {
		return nil, err
	}

	r.table.Store(table)

	r.watcher, err = watch.New(absRoot, table.Config().Ignore, table.Matcher())
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (r *Runner) load() (*dispatch.Table, error) {
	c, err := cfg.Load(r.root, r.cfgPath)
	if err != nil {
		return nil, err
	}

	if c.FilePath() == "" {
		log.Debugf("configuration file %s does not exist, using built-in configuration\n", r.cfgPath)
	} else {
		log.Debugf("loaded configuration from %s\n", c.FilePath())
	}

	if log.DebugEnabled() {
		log.Debugf("configuration: %s\n", prettyprint.AsString(c))
	}

	return dispatch.Build(c, &r.opts)
}

// Config returns the current configuration.
func (r *Runner) Config() *cfg.Config {
	return r.table.Load().Config()
}

// Root returns the absolute path of the watched directory.
func (r *Runner) Root() string {
	return r.root
}

// Reload loads the configuration again and replaces the current one.
// If loading fails, the current configuration stays active.
func (r *Runner) Reload(_ context.Context) error {
	table, err := r.load()
	if err != nil {
		return fmt.Errorf("reloading configuration failed, keeping the previous configuration: %w", err)
	}

	old := r.table.Swap(table)
	r.watcher.SetMatcher(table.Matcher())

	if !slices.Equal(old.Config().Ignore, table.Config().Ignore) {
		log.Warnf("changes of the ignore list take effect after a restart\n")
	}

	fmt.Fprintln(r.out, "configuration reloaded")

	return nil
}

// Run watches for changes and handles them until ctx is canceled.
// When it returns, all started actions have terminated.
func (r *Runner) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- r.watcher.Run(ctx)
	}()

	defer r.waitPools()

	for {
		select {
		case <-ctx.Done():
			return <-errCh

		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("watching %s failed: %w", r.root, err)
			}

			return nil

		case ev := <-r.watcher.Events():
			r.queue(ctx, ev)
		}
	}
}

// Close releases the resources of a Runner that was not run.
func (r *Runner) Close() error {
	return r.watcher.Close()
}

func (r *Runner) queue(ctx context.Context, ev watch.Event) {
	pool := r.pool(ev.Group)

	if pending := pool.Pending(); pending > 0 {
		log.Debugf("%s: queued behind %d pending actions\n", ev, pending)
	}

	pool.Queue(func() {
		if ctx.Err() != nil {
			log.Debugf("%s: not handled, shutting down\n", ev)
			return
		}

		table := r.table.Load()
		if _, exist := table.Handler(ev.Group); !exist {
			log.Debugf("%s: watch group does not exist anymore\n", ev)
			return
		}

		if err := table.Dispatch(ctx, ev); err != nil {
			log.Errorf("%s\n", err)
		}
	})
}

func (r *Runner) pool(group string) *routines.Pool {
	r.poolsMu.Lock()
	defer r.poolsMu.Unlock()

	p, exist := r.pools[group]
	if !exist {
		p = routines.NewPool(1)
		r.pools[group] = p
	}

	return p
}

func (r *Runner) waitPools() {
	r.poolsMu.Lock()
	defer r.poolsMu.Unlock()

	for _, p := range r.pools {
		p.Wait()
	}

	r.pools = map[string]*routines.Pool{}
}
