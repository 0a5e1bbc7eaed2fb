// Package backend watches the launcher's INI file and reports changes so the
// open menu can be rebuilt.
package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is how long the file must stay untouched before a change is
// reported. Editors tend to write in several steps.
const DefaultQuiet = 150 * time.Millisecond

// minReloadInterval bounds how often reloads are emitted.
const minReloadInterval = 500 * time.Millisecond

// Event reports a settled change to the watched file, or a watch error.
type Event struct {
	Path string
	Op   fsnotify.Op
	Err  error
}

// Watcher emits an Event after the watched file changes.
type Watcher struct {
	path  string
	quiet time.Duration
	fs    *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher watches path. The parent directory is watched rather than the
// file so rename-on-save editors keep working.
func NewWatcher(path string, quiet time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:   abs,
		quiet:  quiet,
		fs:     fw,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 4),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel of change events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch goroutine has exited and Events is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	limit := newThrottle(minReloadInterval)
	timer := time.NewTimer(w.quiet)
	timer.Stop()
	defer timer.Stop()

	var pending fsnotify.Op
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.matches(ev) {
				continue
			}
			pending |= ev.Op
			timer.Reset(w.quiet)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		case <-timer.C:
			if pending == 0 {
				continue
			}
			if !limit.wait(w.ctx) {
				return
			}
			if !w.emit(Event{Path: w.path, Op: pending}) {
				return
			}
			pending = 0
		}
	}
}

func (w *Watcher) matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
