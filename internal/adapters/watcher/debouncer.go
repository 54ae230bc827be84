// Package watcher detects workspace changes between updates with fsnotify.
package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"

	"github.com/jonboulle/clockwork"
)

// Debouncer coalesces rapid file system events into batches of paths.
type Debouncer struct {
	mu       sync.Mutex
	deliver  sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    clockwork.Timer
	clock    clockwork.Clock
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a debouncer that hands sorted batches of paths to callback
// once no event arrived for window.
func NewDebouncer(clock clockwork.Clock, window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		clock:    clock,
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.window, d.fire)
}

// fire runs on the timer's goroutine when the window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()

	d.drain()
}

// Flush delivers every pending path before returning, without waiting for the window.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.drain()
}

// drain hands the pending set to the callback. Deliveries are serialized, so a
// Flush that races with an expiring timer returns only after that batch is delivered.
func (d *Debouncer) drain() {
	d.deliver.Lock()
	defer d.deliver.Unlock()

	d.mu.Lock()
	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.Value())
	}
	d.pending = make(map[unique.Handle[string]]struct{})
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		slices.Sort(paths)
		d.callback(paths)
	}
}
