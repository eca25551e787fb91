package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope. The zero value is an empty rope.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{}
}

// FromString builds a rope holding s. It never fails; any byte sequence
// round-trips through String unchanged.
func FromString(s string) Rope {
	if len(s) == 0 {
		return Rope{}
	}
	return Rope{root: build(splitIntoChunks(s))}
}

// FromReader builds a rope from everything r yields.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// Summary returns the aggregated metrics for the whole rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.summary
}

// Len returns the length in bytes.
func (r Rope) Len() int {
	return r.Summary().Bytes
}

// RuneCount returns the number of code points.
func (r Rope) RuneCount() int {
	return r.Summary().Runes
}

// LineCount returns the number of '\n' bytes plus one.
func (r Rope) LineCount() int {
	return r.Summary().Newlines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String materializes the rope.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// LineStart returns the byte offset at which line begins. Lines are
// 0-indexed; out-of-range lines clamp to 0 or Len.
func (r Rope) LineStart(line int) int {
	if line <= 0 || r.root == nil {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.newlineOffset(line) + 1
}

// LineEnd returns the byte offset of the end of line, excluding its '\n'.
func (r Rope) LineEnd(line int) int {
	if r.root == nil || line < 0 {
		return 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.root.newlineOffset(line + 1)
}

// Line returns the text of line without its terminator, or "" when line
// is out of range.
func (r Rope) Line(line int) string {
	if line < 0 || line >= r.LineCount() {
		return ""
	}
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// EqualString reports whether the rope holds exactly s. It compares chunk
// by chunk without materializing the rope.
func (r Rope) EqualString(s string) bool {
	if r.Len() != len(s) {
		return false
	}
	it := r.Chunks()
	for it.Next() {
		c := it.Chunk().String()
		if s[:len(c)] != c {
			return false
		}
		s = s[len(c):]
	}
	return len(s) == 0
}

// Equals reports whether two ropes hold the same text. Structure is ignored.
func (r Rope) Equals(other Rope) bool {
	if r.root == other.root {
		return true
	}
	if r.Len() != other.Len() {
		return false
	}
	return other.EqualString(r.String())
}

// Height returns the tree height; 0 for an empty rope.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}
