package engine

import (
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/moons03/rm-editor/internal/engine/lineindex"
	"github.com/moons03/rm-editor/internal/engine/rope"
	"github.com/moons03/rm-editor/internal/project/vfs"
)

// Document is the single in-memory record of the open file.
type Document struct {
	text     string
	path     string
	hasPath  bool
	modified bool
	cursor   int // rune offset into text

	rope  rope.Rope
	lines []int

	fsys vfs.FS
	perm fs.FileMode
}

// State is the editable part of a Document. The rope and the line index
// are derived and not included, so two States compare equal with == when
// the user-visible content matches.
type State struct {
	Text     string
	Path     string
	HasPath  bool
	Modified bool
	Cursor   int
}

// New creates an empty, unmodified document with no path.
func New(opts ...Option) *Document {
	d := &Document{
		fsys: vfs.NewOSFS(),
		perm: vfs.DefaultFileMode,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Text returns the flat text.
func (d *Document) Text() string {
	return d.text
}

// SetText replaces the flat text, as the UI text control does on every
// edit. The cursor is clamped into the new text. The rope is not touched;
// call SyncToRope before reading line data.
func (d *Document) SetText(s string) {
	d.text = s
	d.cursor = clamp(d.cursor, 0, utf8.RuneCountInString(s))
}

// FilePath returns the backing file path and whether one is set.
func (d *Document) FilePath() (string, bool) {
	return d.path, d.hasPath
}

// Name returns the base name of the backing file, or "Untitled".
func (d *Document) Name() string {
	if !d.hasPath {
		return "Untitled"
	}
	return filepath.Base(d.path)
}

// IsModified reports whether the text differs from what was last loaded
// or saved.
func (d *Document) IsModified() bool {
	return d.modified
}

// Cursor returns the cursor as a rune offset into the text.
func (d *Document) Cursor() int {
	return d.cursor
}

// SetCursor moves the cursor, clamped to [0, rune count of text].
func (d *Document) SetCursor(offset int) {
	d.cursor = clamp(offset, 0, utf8.RuneCountInString(d.text))
}

// Rope returns the rope as of the last synchronization.
func (d *Document) Rope() rope.Rope {
	return d.rope
}

// LineStarts returns a copy of the line index.
func (d *Document) LineStarts() []int {
	out := make([]int, len(d.lines))
	copy(out, d.lines)
	return out
}

// LineCount returns the number of entries in the line index.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineEnding reports the terminator style of the current text.
func (d *Document) LineEnding() vfs.LineEnding {
	return vfs.DetectLineEnding([]byte(d.text))
}

// State returns the editable state.
func (d *Document) State() State {
	return State{
		Text:     d.text,
		Path:     d.path,
		HasPath:  d.hasPath,
		Modified: d.modified,
		Cursor:   d.cursor,
	}
}

// SyncToRope reconciles the rope with the flat text. When they differ the
// rope is rebuilt and the document is marked modified. The line index is
// regenerated on every call.
func (d *Document) SyncToRope() {
	if !d.rope.EqualString(d.text) {
		d.rope = rope.FromString(d.text)
		d.modified = true
	}
	d.lines = lineindex.Rebuild(d.rope)
}

// SyncFromRope replaces the flat text with the rope's content. It is used
// after a load, where the rope is authoritative. The modified flag is left
// alone.
func (d *Document) SyncFromRope() {
	d.text = d.rope.String()
}

// Open loads path into the document. On failure, including content that is
// not valid UTF-8, the document is unchanged and an *IOError is returned.
func (d *Document) Open(path string) error {
	data, err := d.fsys.ReadFile(path)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return &IOError{Op: "open", Path: path, Err: ErrInvalidEncoding}
	}

	d.rope = rope.FromString(string(data))
	d.SyncFromRope()
	d.path = path
	d.hasPath = true
	d.modified = false
	d.cursor = 0
	d.lines = lineindex.Rebuild(d.rope)
	return nil
}

// Save writes the text to the current file path. It returns ErrNoPath when
// the document has never been opened or saved under a name.
func (d *Document) Save() error {
	if !d.hasPath {
		return ErrNoPath
	}
	return d.write("save", d.path)
}

// SaveAs writes the text to path and makes path the document's file path.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := d.write("save as", path); err != nil {
		return err
	}
	d.path = path
	d.hasPath = true
	return nil
}

// write stores the flat text verbatim. On success the rope is brought in
// line with what was written so the saved content becomes the new
// baseline for modification tracking.
func (d *Document) write(op, path string) error {
	if err := d.fsys.WriteFile(path, []byte(d.text), d.perm); err != nil {
		return &IOError{Op: op, Path: path, Err: err}
	}

	if !d.rope.EqualString(d.text) {
		d.rope = rope.FromString(d.text)
		d.lines = lineindex.Rebuild(d.rope)
	}
	d.modified = false
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
