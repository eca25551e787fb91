package rope

import (
	"errors"
	"io"
	"strings"
)

// readBufferSize is the read size used by ReadFrom.
const readBufferSize = 64 * 1024

// Builder accumulates text and produces a rope. The zero value is ready
// to use.
type Builder struct {
	chunks []Chunk
	buf    strings.Builder
	total  int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]Chunk, 0, 64)}
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	b.total += len(s)
	b.buf.WriteString(s)
	if b.buf.Len() >= MaxChunkSize*2 {
		b.flush()
	}
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.total
}

// Reset discards everything written.
func (b *Builder) Reset() {
	b.chunks = nil
	b.buf.Reset()
	b.total = 0
}

// flush moves buffered text into chunks. A trailing partial rune stays
// buffered so chunk cuts never split a code point written across calls.
func (b *Builder) flush() {
	s := b.buf.String()
	keep := trailingPartialRune(s)
	head := s[:len(s)-keep]
	if len(head) == 0 {
		return
	}
	b.chunks = append(b.chunks, splitIntoChunks(head)...)
	b.buf.Reset()
	b.buf.WriteString(s[len(s)-keep:])
}

// Build returns the rope and resets the builder.
func (b *Builder) Build() Rope {
	if s := b.buf.String(); len(s) > 0 {
		b.chunks = append(b.chunks, splitIntoChunks(s)...)
	}
	chunks := b.chunks
	b.Reset()
	if len(chunks) == 0 {
		return Rope{}
	}
	return Rope{root: build(chunks)}
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, readBufferSize)
	var n int64
	for {
		m, err := r.Read(buf)
		if m > 0 {
			b.WriteString(string(buf[:m]))
			n += int64(m)
		}
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

// trailingPartialRune returns how many bytes at the end of s form an
// incomplete UTF-8 sequence.
func trailingPartialRune(s string) int {
	for i := 1; i <= 3 && i <= len(s); i++ {
		c := s[len(s)-i]
		if c < 0x80 {
			return 0
		}
		if c >= 0xC0 {
			var size int
			switch {
			case c >= 0xF0:
				size = 4
			case c >= 0xE0:
				size = 3
			default:
				size = 2
			}
			if size > i {
				return i
			}
			return 0
		}
	}
	return 0
}
