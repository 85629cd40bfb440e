// Package watch reports when a file on disk changes, so a model can be reloaded
// after it is saved from a spreadsheet tool.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls a function after changes to one file settle.
type Watcher struct {
	w        *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	onError  func(error)

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

// Watch starts watching path. The parent directory is watched rather than the file, since
// spreadsheet tools usually save by writing a temp file and renaming it over the original.
// onChange runs on its own goroutine, once per burst of events within debounce.
// onError may be nil.
func Watch(path string, debounce time.Duration, onChange func(), onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		w:        fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.trigger()
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
		default:
			w.onChange()
		}
	})
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching. Pending callbacks are dropped.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.w.Close()
	})
	return err
}
