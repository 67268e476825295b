package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/juiceinc/jbwatch/internal/fs"
	"github.com/juiceinc/jbwatch/internal/log"
	"github.com/juiceinc/jbwatch/internal/set"
)

const eventBufferSize = 64

// Watcher watches a directory tree recursively and emits Events for changed
// files that match a watch group.
// Events of a group are debounced by the delay of the group, per file or,
// for coalescing groups, for all files of the group together.
// When a directory is created, the files that already exist in it are
// reported as created.
type Watcher struct {
	root   string
	ignore set.Set[string]

	fsw       *fsnotify.Watcher
	matcher   atomic.Pointer[Matcher]
	debouncer *debouncer

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Watcher for the directory root and all its subdirectories.
// Directories with a name in ignore are not watched, changes in them are
// ignored.
func New(root string, ignore []string, m *Matcher) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	isDir, err := fs.IsDir(absRoot)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, fmt.Errorf("%s is not a directory", absRoot)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher failed: %w", err)
	}

	w := Watcher{
		root:      absRoot,
		ignore:    set.From(ignore),
		fsw:       fsw,
		debouncer: newDebouncer(),
		events:    make(chan Event, eventBufferSize),
		done:      make(chan struct{}),
	}
	w.matcher.Store(m)

	cnt, err := w.addDirs(absRoot)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	log.Debugf("watch: watching %d directories in %s\n", cnt, absRoot)

	return &w, nil
}

// Root returns the absolute path of the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Events returns the channel on that matching changes are sent.
// The channel is not closed.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// SetMatcher replaces the watch groups that changes are matched against.
func (w *Watcher) SetMatcher(m *Matcher) {
	w.matcher.Store(m)
}

// Run processes filesystem notifications until ctx is canceled.
// Afterwards the Watcher is closed and can not be used anymore.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("fsnotify events channel was closed")
			}

			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel was closed")
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				log.Warnf("watch: %s, changes might have been missed\n", err)
				continue
			}

			log.Errorf("watch: %s\n", err)
		}
	}
}

// Close releases the resources of a Watcher that is not running.
func (w *Watcher) Close() error {
	return w.close()
}

func (w *Watcher) close() error {
	var err error

	w.closeOnce.Do(func() {
		close(w.done)
		w.debouncer.stop()
		err = w.fsw.Close()
	})

	return err
}

func (w *Watcher) handle(ev fsnotify.Event) {
	op, ok := opFromFsnotify(ev.Op)
	if !ok {
		return
	}

	rel, err := fs.RelSlashPath(w.root, ev.Name)
	if err != nil {
		log.Debugf("watch: ignoring event for %q: %s\n", ev.Name, err)
		return
	}

	if w.isIgnored(rel) {
		return
	}

	if op == Created {
		if isDir, _ := fs.IsDir(ev.Name); isDir {
			w.addNewDir(ev.Name, rel)
			return
		}
	}

	w.process(op, rel)
}

// addNewDir watches a directory that was created while the watcher runs.
// Files that were created in it before the watch was added are processed
// as Created events.
func (w *Watcher) addNewDir(path, rel string) {
	if _, err := w.addDirs(path); err != nil {
		log.Warnf("watch: could not watch new directory %s: %s\n", rel, err)
	}

	files, err := fs.Files(path, w.ignore.Contains)
	if err != nil {
		log.Warnf("watch: could not list files of new directory %s: %s\n", rel, err)
		return
	}

	for _, file := range files {
		fileRel, err := fs.RelSlashPath(w.root, file)
		if err != nil {
			continue
		}

		w.process(Created, fileRel)
	}
}

// process emits an event for the changed file rel if it matches a group.
func (w *Watcher) process(op Op, rel string) {
	group, ok := w.matcher.Load().Match(rel)
	if !ok {
		return
	}

	event := Event{Op: op, Path: rel, Group: group.Name}

	if group.Debounce <= 0 {
		w.emit(event)
		return
	}

	key := group.Name + "\x00" + rel
	if group.Coalesce {
		key = group.Name
	}

	if w.debouncer.schedule(key, event, group.Debounce, w.emit) {
		log.Debugf("watch: coalesced event %s\n", event)
	}
}

func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	return w.ignore.ContainsAny(strings.Split(rel, "/"))
}

func (w *Watcher) addDirs(path string) (int, error) {
	dirs, err := fs.Dirs(path, w.ignore.Contains)
	if err != nil {
		return 0, err
	}

	var cnt int
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			if dir == path {
				return cnt, fmt.Errorf("watching %s failed: %w", dir, err)
			}

			log.Warnf("watch: watching %s failed: %s\n", dir, err)
			continue
		}

		cnt++
	}

	return cnt, nil
}
