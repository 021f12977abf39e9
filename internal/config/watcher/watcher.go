// Package watcher reports changes to a settings file.
//
// Saves replace the settings file by renaming a temporary file onto it, so
// the watcher observes the file's directory and filters events by name.
// Bursts of events are coalesced and delivered once the file has been quiet
// for the debounce duration.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a change to the watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the last coalesced change was seen.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified in place.
	OpWrite Operation = iota

	// OpCreate indicates the file appeared, including by rename onto it.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when the watched file changes.
type Handler func(event Event)

// Watcher monitors one file for changes.
type Watcher struct {
	mu sync.RWMutex

	path string
	dir  string
	name string

	handlers []Handler
	debounce time.Duration
	logger   *slog.Logger

	fsw *fsnotify.Watcher

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	closed  bool

	pendingMu sync.Mutex
	pending   *Event
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before an event is
// delivered. Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for watch errors and handler panics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher for path. The file need not exist, but its
// directory must exist by the time Start is called.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		name:     filepath.Base(abs),
		debounce: 100 * time.Millisecond,
		logger:   slog.Default(),
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// OnChange registers a handler for change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins watching. Calling Start on a running watcher does nothing.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("watcher for %s is closed", w.path)
	}
	if w.running {
		return nil
	}
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.running = true

	w.wg.Add(1)
	go w.processLoop(w.ctx)
	if w.debounce > 0 {
		w.wg.Add(1)
		go w.debounceLoop(w.ctx)
	}
	return nil
}

// Stop stops watching. Pending events are discarded.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.running = false
	_ = w.fsw.Remove(w.dir)
	w.mu.Unlock()

	w.wg.Wait()

	w.pendingMu.Lock()
	w.pending = nil
	w.pendingMu.Unlock()
}

// Close stops the watcher and releases its resources. A closed watcher
// cannot be restarted.
func (w *Watcher) Close() error {
	w.Stop()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) processLoop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	if filepath.Base(fsEvent.Name) != w.name {
		return
	}
	op, ok := convertOp(fsEvent.Op)
	if !ok {
		return
	}
	event := Event{Path: w.path, Op: op, Time: time.Now()}
	if w.debounce > 0 {
		w.queueEvent(event)
	} else {
		w.emitEvent(event)
	}
}

func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	}
	return 0, false
}

// queueEvent coalesces an event with the pending one:
//   - any + remove => remove
//   - create + write => create
//   - remove or rename + create => create (the file was replaced)
func (w *Watcher) queueEvent(event Event) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.pending == nil {
		w.pending = &event
		return
	}
	if event.Op == OpWrite && w.pending.Op != OpWrite {
		event.Op = w.pending.Op
	}
	w.pending = &event
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending emits the pending event once it has been stable.
func (w *Watcher) processPending() {
	w.pendingMu.Lock()
	var event *Event
	if w.pending != nil && w.pending.Time.Before(time.Now().Add(-w.debounce)) {
		event, w.pending = w.pending, nil
	}
	w.pendingMu.Unlock()

	if event != nil {
		w.emitEvent(*event)
	}
}

func (w *Watcher) emitEvent(event Event) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		w.safeCallHandler(handler, event)
	}
}

// safeCallHandler keeps a panicking handler from killing the watch loop.
func (w *Watcher) safeCallHandler(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("settings watch handler panicked", "path", event.Path, "panic", r)
		}
	}()
	handler(event)
}
