package catalog

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// EventType defines the type of catalog event.
type EventType int

const (
	EventCatalogChanged EventType = iota
	EventError
)

// Event is emitted when the catalog file changes or fails to reload.
type Event struct {
	Type    EventType
	Catalog *Catalog
	Error   error
}

// Watcher holds the current catalog and reloads it when its file changes.
// A watcher without a path serves the embedded default and never emits events.
type Watcher struct {
	mu            sync.RWMutex
	current       *Catalog
	filePath      string
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounceTimer *time.Timer
}

// NewWatcher loads the catalog at path and starts watching it.
func NewWatcher(path string) (*Watcher, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		current:   c,
		filePath:  path,
		eventChan: make(chan Event, 10),
		stopChan:  make(chan struct{}),
	}

	if path == "" {
		return w, nil
	}

	if err := w.start(); err != nil {
		return nil, fmt.Errorf("failed to start catalog watcher: %w", err)
	}
	return w, nil
}

// Current returns the most recently loaded valid catalog.
func (w *Watcher) Current() *Catalog {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Path returns the watched file, empty for the embedded default.
func (w *Watcher) Path() string {
	return w.filePath
}

// Events returns the event channel.
func (w *Watcher) Events() <-chan Event {
	return w.eventChan
}

func (w *Watcher) start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	// Watch the directory so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(w.filePath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go w.watchLoop()
	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.debounceTimer = time.AfterFunc(debounceInterval, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendEvent(Event{Type: EventError, Error: err})

		case <-w.stopChan:
			return
		}
	}
}

// reload keeps the previous catalog when the new file does not validate.
func (w *Watcher) reload() {
	c, err := Load(w.filePath)
	if err != nil {
		logger.Warn("catalog reload rejected", "path", w.filePath, "error", err)
		w.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	w.mu.Lock()
	w.current = c
	w.mu.Unlock()

	logger.Info("catalog reloaded", "path", w.filePath, "points", len(c.Points), "composites", len(c.Composites))
	w.sendEvent(Event{Type: EventCatalogChanged, Catalog: c})
}

// sendEvent sends without blocking, dropping the oldest event when full.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.eventChan <- event:
	default:
		select {
		case <-w.eventChan:
		default:
		}
		select {
		case w.eventChan <- event:
		default:
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)

		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()

		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}
