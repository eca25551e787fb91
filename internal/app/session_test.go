package app

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moons03/rm-editor/internal/config"
	"github.com/moons03/rm-editor/internal/engine"
	"github.com/moons03/rm-editor/internal/project/vfs"
	"github.com/moons03/rm-editor/internal/project/watcher"
)

func memSession(t *testing.T, mem *vfs.MemFS, logger *Logger) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Editor.WatchExternalChanges = false
	s, err := NewSession(Options{Config: cfg, Logger: logger, FS: mem})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewSession(t *testing.T) {
	s := memSession(t, vfs.NewMemFS(), nil)

	if s.ID() == uuid.Nil {
		t.Error("session id should be set")
	}
	if s.Watching() {
		t.Error("watcher should be off")
	}
	doc := s.Document()
	if doc.Text() != "" || doc.IsModified() || doc.Name() != "Untitled" {
		t.Errorf("unexpected initial state %+v", doc.State())
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabWidth = 0
	if _, err := NewSession(Options{Config: cfg, FS: vfs.NewMemFS()}); err == nil {
		t.Error("expected validation error")
	}
}

func TestSessionEditSaveAs(t *testing.T) {
	mem := vfs.NewMemFS()
	var logs bytes.Buffer
	s := memSession(t, mem, NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &logs}))

	s.Edit("a\nb", 3)
	doc := s.Document()
	if !doc.IsModified() || doc.LineCount() != 2 || doc.Cursor() != 3 {
		t.Fatalf("after edit: modified=%v lines=%d cursor=%d", doc.IsModified(), doc.LineCount(), doc.Cursor())
	}

	if err := s.Save(); !errors.Is(err, engine.ErrNoPath) {
		t.Fatalf("Save() error = %v, want ErrNoPath", err)
	}
	if err := s.SaveAs(""); !errors.Is(err, engine.ErrNoPath) {
		t.Fatalf("SaveAs(\"\") error = %v, want ErrNoPath", err)
	}

	if err := s.SaveAs("notes/x.txt"); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	if p, ok := doc.FilePath(); !ok || p != "/notes/x.txt" {
		t.Errorf("FilePath() = %q, %v", p, ok)
	}
	if doc.IsModified() {
		t.Error("document should be clean after save")
	}
	data, err := mem.ReadFile("/notes/x.txt")
	if err != nil || string(data) != "a\nb" {
		t.Errorf("saved content = %q, %v", data, err)
	}

	if !strings.Contains(logs.String(), "session=") {
		t.Errorf("logs should carry the session id: %q", logs.String())
	}
	if !strings.Contains(logs.String(), "saved as /notes/x.txt") {
		t.Errorf("save not logged: %q", logs.String())
	}
}

func TestSessionOpen(t *testing.T) {
	mem := vfs.NewMemFS()
	mem.AddFile("/doc.txt", "one\ntwo\n", 0o644)
	s := memSession(t, mem, nil)

	if err := s.Open("doc.txt"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	doc := s.Document()
	if doc.Text() != "one\ntwo\n" || doc.LineCount() != 3 || doc.IsModified() {
		t.Errorf("after open: %+v lines=%d", doc.State(), doc.LineCount())
	}

	before := doc.State()
	err := s.Open("/missing.txt")
	var ioErr *engine.IOError
	if !errors.As(err, &ioErr) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Open(missing) error = %v", err)
	}
	if doc.State() != before {
		t.Error("failed open changed the document")
	}
}

func TestSessionSaveFailure(t *testing.T) {
	mem := vfs.NewMemFS()
	mem.AddFile("/doc.txt", "x", 0o644)
	s := memSession(t, mem, nil)
	if err := s.Open("/doc.txt"); err != nil {
		t.Fatal(err)
	}
	s.Edit("xy", 2)

	mem.FailWrites(true)
	err := s.Save()
	if !errors.Is(err, vfs.ErrInjected) {
		t.Fatalf("Save() error = %v, want injected failure", err)
	}
	if !s.Document().IsModified() {
		t.Error("failed save cleared the modified flag")
	}
}

func TestSessionCloseClosesChanges(t *testing.T) {
	s := memSession(t, vfs.NewMemFS(), nil)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, ok := <-s.ExternalChanges(); ok {
		t.Error("ExternalChanges should be closed")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSessionReportsExternalChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSession(Options{})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()
	if !s.Watching() {
		t.Skip("file watching unavailable")
	}

	if err := s.Open(path); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// Our own save must not be reported.
	s.Edit("v2", 0)
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	select {
	case ev := <-s.ExternalChanges():
		t.Fatalf("own save reported as external change: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}

	time.Sleep(selfWriteWindow)
	if err := os.WriteFile(path, []byte("v3"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-s.ExternalChanges():
		if ev.Path != path {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
		if !ev.Op.Has(watcher.OpWrite) && !ev.Op.Has(watcher.OpCreate) {
			t.Errorf("unexpected op %v", ev.Op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("external write not reported")
	}

	if s.Document().Text() != "v2" {
		t.Error("external change must not alter the document")
	}
}
