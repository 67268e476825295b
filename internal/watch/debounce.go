package watch

import (
	"sync"
	"time"
)

type debounceEntry struct {
	timer *time.Timer
	event Event
	seq   uint64
}

// debouncer delays events per key, an event that is scheduled while one with
// the same key is pending replaces it and restarts the delay.
type debouncer struct {
	mu      sync.Mutex
	entries map[string]*debounceEntry
	seq     uint64
	stopped bool
}

func newDebouncer() *debouncer {
	return &debouncer{
		entries: make(map[string]*debounceEntry),
	}
}

// schedule calls flush with event when no other event was scheduled for key
// within delay. It returns true if a pending event was replaced.
func (d *debouncer) schedule(key string, event Event, delay time.Duration, flush func(Event)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}

	entry, replaced := d.entries[key]
	if replaced {
		// if the timer already fired, the callback finds a different
		// seq and does nothing
		entry.timer.Stop()
	} else {
		entry = &debounceEntry{}
		d.entries[key] = entry
	}

	d.seq++
	seq := d.seq

	entry.event = event
	entry.seq = seq
	entry.timer = time.AfterFunc(delay, func() {
		if ev, ok := d.pop(key, seq); ok {
			flush(ev)
		}
	})

	return replaced
}

func (d *debouncer) pop(key string, seq uint64) (Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.entries[key]
	if !ok || entry.seq != seq {
		return Event{}, false
	}

	delete(d.entries, key)

	return entry.event, true
}

// pending returns the number of scheduled events.
func (d *debouncer) pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entries)
}

// stop discards all pending events.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, entry := range d.entries {
		entry.timer.Stop()
	}

	d.entries = nil
	d.stopped = true
}
