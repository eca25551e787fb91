package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/quick"

	"github.com/moons03/rm-editor/internal/project/vfs"
)

func newMemDocument(t *testing.T) (*Document, *vfs.MemFS) {
	t.Helper()
	m := vfs.NewMemFS()
	return New(WithFS(m)), m
}

func TestNew(t *testing.T) {
	d := New()

	if d.Text() != "" {
		t.Errorf("Text() = %q, want empty", d.Text())
	}
	if _, ok := d.FilePath(); ok {
		t.Error("new document should have no path")
	}
	if d.IsModified() {
		t.Error("new document should not be modified")
	}
	if d.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", d.Cursor())
	}
	if !d.Rope().IsEmpty() {
		t.Error("new document rope should be empty")
	}
	if d.LineCount() != 0 {
		t.Errorf("line index should start empty, got %d entries", d.LineCount())
	}
	if d.Name() != "Untitled" {
		t.Errorf("Name() = %q, want Untitled", d.Name())
	}
}

func TestSyncToRopeScenario(t *testing.T) {
	d := New()

	d.SyncToRope()
	if got := d.LineStarts(); !slices.Equal(got, []int{0}) {
		t.Errorf("LineStarts() = %v, want [0]", got)
	}
	if d.IsModified() {
		t.Error("syncing an unchanged empty document should not mark it modified")
	}

	d.SetText("a\nb\nc")
	d.SyncToRope()
	if d.Rope().LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", d.Rope().LineCount())
	}
	if got := d.LineStarts(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("LineStarts() = %v, want [0 1 2]", got)
	}
	if !d.IsModified() {
		t.Error("document should be modified after text changed")
	}
}

func TestSyncToRopeIdempotent(t *testing.T) {
	d := New()
	d.SetText("one\ntwo\n")
	d.SyncToRope()

	r1 := d.Rope()
	lines1 := d.LineStarts()
	mod1 := d.IsModified()

	d.SyncToRope()

	if !d.Rope().Equals(r1) {
		t.Error("rope changed on second sync")
	}
	if !slices.Equal(d.LineStarts(), lines1) {
		t.Error("line index changed on second sync")
	}
	if d.IsModified() != mod1 {
		t.Error("modified flag changed on second sync")
	}
}

func TestSyncInvariantsQuick(t *testing.T) {
	f := func(texts []string) bool {
		d := New()
		for _, s := range texts {
			d.SetText(s)
			d.SyncToRope()
			if d.Rope().String() != d.Text() {
				return false
			}
			if len(d.LineStarts()) != d.Rope().LineCount() {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSyncFromRope(t *testing.T) {
	d, m := newMemDocument(t)
	m.AddFile("/a.txt", "from disk", vfs.DefaultFileMode)
	if err := d.Open("/a.txt"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	d.SetText("scribbled")
	d.SyncFromRope()

	if d.Text() != "from disk" {
		t.Errorf("Text() = %q, want rope content", d.Text())
	}
	if d.IsModified() {
		t.Error("SyncFromRope should not touch the modified flag")
	}
}

func TestSetTextClampsCursor(t *testing.T) {
	d := New()
	d.SetText("héllo")
	d.SetCursor(5)
	if d.Cursor() != 5 {
		t.Fatalf("Cursor() = %d, want 5", d.Cursor())
	}

	d.SetText("hé")
	if d.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2 after shrinking text", d.Cursor())
	}

	d.SetCursor(-3)
	if d.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", d.Cursor())
	}
	d.SetCursor(100)
	if d.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", d.Cursor())
	}
}

func TestOpen(t *testing.T) {
	d, m := newMemDocument(t)
	content := "line one\r\nline two\r\n"
	m.AddFile("/docs/a.txt", content, vfs.DefaultFileMode)

	d.SetText("old")
	d.SetCursor(2)
	d.SyncToRope()

	if err := d.Open("/docs/a.txt"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if d.Text() != content {
		t.Errorf("Text() = %q, want %q", d.Text(), content)
	}
	if d.Rope().String() != content {
		t.Error("rope does not match loaded content")
	}
	if path, ok := d.FilePath(); !ok || path != "/docs/a.txt" {
		t.Errorf("FilePath() = %q, %v", path, ok)
	}
	if d.IsModified() {
		t.Error("document should not be modified after open")
	}
	if d.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", d.Cursor())
	}
	if got := d.LineStarts(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("LineStarts() = %v, want [0 1 2]", got)
	}
	if d.LineEnding() != vfs.LineEndingCRLF {
		t.Errorf("LineEnding() = %q, want crlf", d.LineEnding())
	}
	if d.Name() != "a.txt" {
		t.Errorf("Name() = %q, want a.txt", d.Name())
	}

	// Opening then syncing must not flag a modification.
	d.SyncToRope()
	if d.IsModified() {
		t.Error("sync right after open should not mark the document modified")
	}
}

func TestOpenFailureLeavesDocumentUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *vfs.MemFS)
		path    string
		wantErr error
	}{
		{
			name:    "missing file",
			setup:   func(m *vfs.MemFS) {},
			path:    "/nonexistent",
			wantErr: fs.ErrNotExist,
		},
		{
			name:    "unreadable",
			setup:   func(m *vfs.MemFS) { m.AddFile("/locked.txt", "x", 0o200) },
			path:    "/locked.txt",
			wantErr: fs.ErrPermission,
		},
		{
			name:    "invalid utf8",
			setup:   func(m *vfs.MemFS) { m.AddFile("/bin.dat", "ok\xff\xfe", vfs.DefaultFileMode) },
			path:    "/bin.dat",
			wantErr: ErrInvalidEncoding,
		},
		{
			name:    "read error",
			setup:   func(m *vfs.MemFS) { m.AddFile("/a.txt", "x", vfs.DefaultFileMode); m.FailReads(true) },
			path:    "/a.txt",
			wantErr: vfs.ErrInjected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, m := newMemDocument(t)
			m.AddFile("/current.txt", "current\ntext", vfs.DefaultFileMode)
			if err := d.Open("/current.txt"); err != nil {
				t.Fatal(err)
			}
			d.SetText("current\ntext edited")
			d.SetCursor(4)
			d.SyncToRope()
			tt.setup(m)

			before := d.State()
			ropeBefore := d.Rope()
			linesBefore := d.LineStarts()

			err := d.Open(tt.path)

			var ioErr *IOError
			if !errors.As(err, &ioErr) {
				t.Fatalf("Open() error = %v, want *IOError", err)
			}
			if ioErr.Op != "open" || ioErr.Path != tt.path {
				t.Errorf("IOError = %+v", ioErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
			if d.State() != before {
				t.Errorf("state changed: got %+v, want %+v", d.State(), before)
			}
			if !d.Rope().Equals(ropeBefore) {
				t.Error("rope changed after failed open")
			}
			if !slices.Equal(d.LineStarts(), linesBefore) {
				t.Error("line index changed after failed open")
			}
		})
	}
}

func TestSaveWithoutPath(t *testing.T) {
	d, m := newMemDocument(t)
	d.SetText("unsaved")
	d.SyncToRope()

	before := d.State()
	if err := d.Save(); !errors.Is(err, ErrNoPath) {
		t.Fatalf("Save() error = %v, want ErrNoPath", err)
	}
	if err := d.SaveAs(""); !errors.Is(err, ErrNoPath) {
		t.Fatalf(`SaveAs("") error = %v, want ErrNoPath`, err)
	}
	if d.State() != before {
		t.Error("state changed after ErrNoPath")
	}
	if len(m.Files()) != 0 {
		t.Errorf("files written: %v", m.Files())
	}
}

func TestSavePreservesPathUnlessOverridden(t *testing.T) {
	d, m := newMemDocument(t)
	m.AddFile("/a.txt", "original", vfs.DefaultFileMode)
	if err := d.Open("/a.txt"); err != nil {
		t.Fatal(err)
	}

	d.SetText("edited")
	d.SyncToRope()
	if err := d.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path, _ := d.FilePath(); path != "/a.txt" {
		t.Errorf("FilePath() = %q after Save, want /a.txt", path)
	}
	if d.IsModified() {
		t.Error("document should not be modified after save")
	}
	if got, _ := m.ReadFile("/a.txt"); string(got) != "edited" {
		t.Errorf("file content = %q, want edited", got)
	}

	d.SetText("edited again")
	d.SyncToRope()
	if err := d.SaveAs("/b.txt"); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	if path, _ := d.FilePath(); path != "/b.txt" {
		t.Errorf("FilePath() = %q after SaveAs, want /b.txt", path)
	}
	if got, _ := m.ReadFile("/b.txt"); string(got) != "edited again" {
		t.Errorf("b.txt content = %q", got)
	}
	if got, _ := m.ReadFile("/a.txt"); string(got) != "edited" {
		t.Errorf("a.txt should be untouched by SaveAs, got %q", got)
	}
}

func TestSaveWritesTextVerbatim(t *testing.T) {
	d, m := newMemDocument(t)
	text := "mixed\r\nendings\nand\rcr\xEF\xBB\xBF 世界"
	d.SetText(text)
	d.SyncToRope()

	if err := d.SaveAs("/out.txt"); err != nil {
		t.Fatal(err)
	}
	got, _ := m.ReadFile("/out.txt")
	if string(got) != text {
		t.Errorf("saved %q, want %q", got, text)
	}
}

func TestSaveBeforeSync(t *testing.T) {
	d, m := newMemDocument(t)
	m.AddFile("/a.txt", "a", vfs.DefaultFileMode)
	if err := d.Open("/a.txt"); err != nil {
		t.Fatal(err)
	}

	// The UI saved before it got to sync.
	d.SetText("a\nb")
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	if d.Rope().String() != "a\nb" {
		t.Error("rope should follow the saved text")
	}
	if got := d.LineStarts(); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("LineStarts() = %v, want [0 1]", got)
	}

	d.SyncToRope()
	if d.IsModified() {
		t.Error("sync after save of the same text should not mark modified")
	}
}

func TestSaveFailureLeavesDocumentUnchanged(t *testing.T) {
	d, m := newMemDocument(t)
	m.AddFile("/a.txt", "disk", vfs.DefaultFileMode)
	if err := d.Open("/a.txt"); err != nil {
		t.Fatal(err)
	}
	d.SetText("memory")
	d.SyncToRope()
	m.FailWrites(true)

	before := d.State()

	for _, save := range []func() error{d.Save, func() error { return d.SaveAs("/b.txt") }} {
		err := save()
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("error = %v, want *IOError", err)
		}
		if !errors.Is(err, vfs.ErrInjected) {
			t.Errorf("error = %v, want wrapped ErrInjected", err)
		}
		if d.State() != before {
			t.Errorf("state changed: %+v", d.State())
		}
	}
	if !d.IsModified() {
		t.Error("document should still be modified")
	}
}

func TestOpenSaveOnDisk(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	content := strings.Repeat("línea\r\n", 500)
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d := New()
	if err := d.Open(src); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if d.LineCount() != 501 {
		t.Errorf("LineCount() = %d, want 501", d.LineCount())
	}

	dst := filepath.Join(dir, "dst.txt")
	if err := d.SaveAs(dst); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Error("content changed through open/save round trip")
	}

	if err := d.Open(filepath.Join(dir, "nonexistent")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(nonexistent) error = %v", err)
	}
	if path, _ := d.FilePath(); path != dst {
		t.Errorf("FilePath() = %q after failed open, want %q", path, dst)
	}
}

func TestIOError(t *testing.T) {
	err := &IOError{Op: "save", Path: "/x", Err: fs.ErrPermission}
	if err.Error() != "save /x: permission denied" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("IOError should unwrap to its cause")
	}

	var nilErr *IOError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil IOError should be safe")
	}
}
