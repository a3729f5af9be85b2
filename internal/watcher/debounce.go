package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of file system events into one batched
// callback. Editors and build tools commonly emit several events per
// logical change; invalidating once per batch keeps the UI quiet.
type debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

func newDebouncer(window time.Duration, callback func(paths []string)) *debouncer {
	return &debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		callback: callback,
	}
}

// add records a path and (re)arms the flush timer.
func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// addAll records several paths at once without rearming per path.
func (d *debouncer) addAll(paths []string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range paths {
		d.pending[p] = struct{}{}
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]struct{})
	d.timer = nil
	d.mu.Unlock()

	d.callback(paths)
}

// stop cancels any armed timer; pending paths are discarded.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
