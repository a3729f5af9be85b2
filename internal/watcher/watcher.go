// Package watcher monitors directories for external changes and
// delivers debounced batches of affected paths. The UI consumes batches
// through a channel and turns them into cache invalidations and
// directory refreshes; nothing here touches UI state directly.
package watcher

import (
	"errors"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the event-coalescing window.
const DefaultDebounce = 200 * time.Millisecond

// ErrClosed is returned from Add after Close.
var ErrClosed = errors.New("watcher: closed")

// Batch is one debounced group of changed paths.
type Batch struct {
	Paths []string
}

// Watcher wraps fsnotify with debouncing. Watched directories are added
// as the tree expands them.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce *debouncer
	batches  chan Batch
	done     chan struct{}
	closed   bool
}

// New creates and starts a watcher. window <= 0 selects
// DefaultDebounce.
func New(window time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = DefaultDebounce
	}

	w := &Watcher{
		fs:      fs,
		batches: make(chan Batch, 16),
		done:    make(chan struct{}),
	}
	w.debounce = newDebouncer(window, w.emit)

	go w.loop()
	return w, nil
}

// Batches returns the channel of debounced change batches.
func (w *Watcher) Batches() <-chan Batch { return w.batches }

// Add watches a directory. Errors (permissions, deleted dirs) are
// returned but typically ignorable: an unwatched directory just means
// no proactive invalidation for it.
func (w *Watcher) Add(dir string) error {
	if w.closed {
		return ErrClosed
	}
	return w.fs.Add(dir)
}

// Remove stops watching a directory.
func (w *Watcher) Remove(dir string) error {
	return w.fs.Remove(dir)
}

// Close stops the watcher and its goroutine.
func (w *Watcher) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	w.debounce.stop()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.debounce.add(ev.Name)
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the tree still refreshes on
			// demand.
		}
	}
}

// emit forwards a batch without blocking the debounce timer goroutine.
// If the UI is behind, the paths are folded into the next batch instead
// of being dropped.
func (w *Watcher) emit(paths []string) {
	select {
	case w.batches <- Batch{Paths: paths}:
	case <-w.done:
	default:
		w.debounce.addAll(paths)
	}
}
