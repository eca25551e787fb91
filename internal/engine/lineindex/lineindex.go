// Package lineindex derives the line identifiers shown in the gutter.
package lineindex

import "github.com/moons03/rm-editor/internal/engine/rope"

// Rebuild returns the identifiers [0, 1, ..., r.LineCount()-1].
// The result is always freshly allocated and owned by the caller.
func Rebuild(r rope.Rope) []int {
	n := r.LineCount()
	lines := make([]int, n)
	for i := range lines {
		lines[i] = i
	}
	return lines
}
