// Package rope provides an immutable rope for storing document text.
//
// A rope is a balanced tree whose leaves hold bounded text chunks and whose
// internal nodes cache aggregated metrics (bytes, runes, newlines) for their
// subtree. Line counting and line lookup walk the cached metrics instead of
// scanning the text.
//
// Ropes are values. Nothing mutates a rope once built; callers replace it
// with a new one:
//
//	r := rope.FromString("a\nb\nc")
//	r.LineCount()  // 3
//	r.Line(1)      // "b"
//	r.String()     // "a\nb\nc"
//
// Line convention: a line ends at each '\n'. The line count is the number
// of '\n' bytes plus one, so an empty rope has one (empty) line and text
// ending in '\n' has a trailing empty line. '\r' is ordinary line content.
package rope
