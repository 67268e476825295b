// Package watch watches a directory tree for changes of files that belong to
// watch groups.
package watch

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change of a file.
type Op int

const (
	Created Op = iota
	Changed
	Deleted
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// opFromFsnotify maps an fsnotify operation to an Op.
// false is returned for operations that are not changes of the file content
// (chmod).
func opFromFsnotify(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return Deleted, true
	case op.Has(fsnotify.Create):
		return Created, true
	case op.Has(fsnotify.Write):
		return Changed, true
	default:
		return 0, false
	}
}

// Event is a change of a file that matched a watch group.
type Event struct {
	Op Op
	// Path is the path of the file relative to the watched root directory,
	// elements are separated by '/'.
	Path string
	// Group is the name of the matching watch group.
	Group string
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s (%s)", e.Path, e.Op, e.Group)
}

// Group is a named set of glob patterns.
type Group struct {
	Name     string
	Patterns []string
	Debounce time.Duration
	// Coalesce debounces the changes of all files of the group together,
	// only the last event of a burst is emitted. Otherwise changes are
	// debounced per file.
	Coalesce bool
}
