package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultBufferSize is the capacity of the event and error channels.
const DefaultBufferSize = 16

// FileWatcher watches a single file using fsnotify.
type FileWatcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	dir     string
	target  string
	closed  bool

	events chan Event
	errors chan error

	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher that is not yet watching anything.
func New(bufferSize int) (*FileWatcher, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &FileWatcher{
		watcher: fsw,
		events:  make(chan Event, bufferSize),
		errors:  make(chan error, bufferSize),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch switches the watcher to path. The file itself need not exist, but
// its directory must.
func (w *FileWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrPathNotExist
		}
		return err
	}

	if dir != w.dir {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		if w.dir != "" {
			_ = w.watcher.Remove(w.dir)
		}
		w.dir = dir
	}
	w.target = absPath
	return nil
}

// Target returns the absolute path being watched, or "".
func (w *FileWatcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Events returns the channel of changes to the watched file.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. The event and error channels are closed once
// the processing goroutine exits.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.watcher.Close()
	w.closedWg.Wait()
	return err
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()
	defer close(w.events)
	defer close(w.errors)

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.Target() {
				continue
			}
			w.send(Event{Path: filepath.Clean(ev.Name), Op: convertOp(ev.Op), Timestamp: time.Now()})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// send delivers an event, dropping it when the consumer is behind.
func (w *FileWatcher) send(ev Event) {
	select {
	case w.events <- ev:
	case <-w.closeCh:
	default:
	}
}

func convertOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	if op.Has(fsnotify.Chmod) {
		out |= OpChmod
	}
	return out
}
