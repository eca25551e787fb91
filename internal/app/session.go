package app

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/moons03/rm-editor/internal/config"
	"github.com/moons03/rm-editor/internal/engine"
	"github.com/moons03/rm-editor/internal/project/vfs"
	"github.com/moons03/rm-editor/internal/project/watcher"
)

// selfWriteWindow is how long after our own save watcher events for the
// file are treated as echoes of that save.
const selfWriteWindow = time.Second

// Options configures a Session.
type Options struct {
	// Config holds the settings. Nil means config.Default().
	Config *config.Config
	// Logger receives session logs. Nil means NullLogger.
	Logger *Logger
	// FS is the persistence backend. Nil means the OS file system.
	FS vfs.FS
}

// Session is one editing session over a single document.
type Session struct {
	id     uuid.UUID
	doc    *engine.Document
	cfg    *config.Config
	logger *Logger
	fsys   vfs.FS

	watcher   *watcher.FileWatcher
	changes   chan watcher.Event
	lastWrite atomic.Int64 // unix nanos of our last save

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewSession creates a session holding an empty document. When the config
// enables it, a file watcher is started; failure to start one is logged
// and the session continues without it.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = vfs.NewOSFS()
	}

	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	logger = logger.WithComponent("session").WithField("session", id.String())

	s := &Session{
		id:      id,
		doc:     engine.New(engine.WithFS(fsys), engine.WithFileMode(cfg.FileMode())),
		cfg:     cfg,
		logger:  logger,
		fsys:    fsys,
		changes: make(chan watcher.Event, watcher.DefaultBufferSize),
	}

	if cfg.Editor.WatchExternalChanges {
		w, err := watcher.New(watcher.DefaultBufferSize)
		if err != nil {
			logger.Warn("file watching disabled: %v", err)
		} else {
			s.watcher = w
			s.wg.Add(1)
			go s.forward()
		}
	}

	logger.Debug("session started")
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Document returns the session's document.
func (s *Session) Document() *engine.Document {
	return s.doc
}

// Config returns the session's settings.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Edit applies a UI edit: the new flat text and cursor, followed by a
// sync so the rope and line index reflect the text.
func (s *Session) Edit(text string, cursor int) {
	wasModified := s.doc.IsModified()
	s.doc.SetText(text)
	s.doc.SetCursor(cursor)
	s.doc.SyncToRope()
	if !wasModified && s.doc.IsModified() {
		s.logger.Debug("document modified")
	}
}

// Open loads path into the document. Relative paths are resolved against
// the working directory. On failure the document is unchanged and the
// error is an *engine.IOError, or an *OperationError if path could not be
// resolved.
func (s *Session) Open(path string) error {
	abs, err := s.fsys.Abs(path)
	if err != nil {
		return NewOperationError("open", path, err)
	}
	if err := s.doc.Open(abs); err != nil {
		s.logger.Error("open failed: %v", err)
		return err
	}
	s.logger.Info("opened %s (%d lines)", abs, s.doc.LineCount())
	s.watch(abs)
	return nil
}

// Save writes the document to its current path. It returns
// engine.ErrNoPath when the document has none.
func (s *Session) Save() error {
	path, _ := s.doc.FilePath()
	s.markWrite()
	if err := s.doc.Save(); err != nil {
		if errors.Is(err, engine.ErrNoPath) {
			s.logger.Debug("save requested without a path")
		} else {
			s.logger.Error("save failed: %v", err)
		}
		return err
	}
	s.markWrite()
	s.logger.Info("saved %s", path)
	return nil
}

// SaveAs writes the document to path and adopts it as the file path.
func (s *Session) SaveAs(path string) error {
	if path == "" {
		return engine.ErrNoPath
	}
	abs, err := s.fsys.Abs(path)
	if err != nil {
		return NewOperationError("save as", path, err)
	}
	s.markWrite()
	if err := s.doc.SaveAs(abs); err != nil {
		s.logger.Error("save as failed: %v", err)
		return err
	}
	s.markWrite()
	s.logger.Info("saved as %s", abs)
	s.watch(abs)
	return nil
}

// ExternalChanges reports changes to the backing file made by other
// programs. The channel is closed by Close.
func (s *Session) ExternalChanges() <-chan watcher.Event {
	return s.changes
}

// Watching reports whether a file watcher is running.
func (s *Session) Watching() bool {
	return s.watcher != nil
}

// Close stops the watcher and closes ExternalChanges.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.watcher != nil {
			err = s.watcher.Close()
		}
		s.wg.Wait()
		close(s.changes)
		s.logger.Debug("session closed")
	})
	return err
}

func (s *Session) markWrite() {
	s.lastWrite.Store(time.Now().UnixNano())
}

func (s *Session) watch(path string) {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Watch(path); err != nil {
		s.logger.Warn("cannot watch %s: %v", path, err)
	}
}

// forward relays watcher events that are not echoes of our own saves.
func (s *Session) forward() {
	defer s.wg.Done()

	events := s.watcher.Events()
	errs := s.watcher.Errors()
	for events != nil || errs != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Timestamp.Sub(time.Unix(0, s.lastWrite.Load())) < selfWriteWindow {
				continue
			}
			select {
			case s.changes <- ev:
			default:
				s.logger.Debug("dropped external change event for %s", ev.Path)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.logger.Warn("watcher: %v", err)
		}
	}
}
