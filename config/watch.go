package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the configuration after a successful reload.
type ReloadFunc func(Config)

// ErrorFunc receives reload and watch failures.
type ErrorFunc func(error)

// Watcher reloads a config file whenever it changes on disk. The parent
// directory is watched rather than the file itself, so editors that save
// through a temp file and a rename are still seen.
type Watcher struct {
	path string
	dir  string
	name string

	debounce time.Duration
	onReload ReloadFunc
	onError  ErrorFunc

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	timer   *time.Timer
	running bool
	closeCh chan struct{}
	doneCh  chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long changes must stay quiet before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler routes watch and reload failures. Without one they are
// dropped.
func WithErrorHandler(fn ErrorFunc) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a watcher for the config file at path. onReload runs
// after every successful reload.
func NewWatcher(path string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		dir:      filepath.Dir(absPath),
		name:     filepath.Base(absPath),
		debounce: 100 * time.Millisecond,
		onReload: onReload,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	w.fsw = fsw
	w.closeCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.processLoop(fsw, w.closeCh, w.doneCh)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	fsw := w.fsw
	doneCh := w.doneCh
	w.mu.Unlock()

	fsw.Close()
	<-doneCh
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) processLoop(fsw *fsnotify.Watcher, closeCh, doneCh chan struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-closeCh:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.name {
		return
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	w.scheduleReload()
}

// scheduleReload resets the debounce timer, so only the last change in a
// burst triggers a reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
