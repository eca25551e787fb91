package ui

import (
	"strings"
	"unicode/utf8"
)

// Text positions in this file are rune offsets, matching the document
// cursor. Lines are separated by '\n' only.

// byteOffset converts a rune offset into a byte offset, clamping to the
// end of text.
func byteOffset(text string, runeOff int) int {
	if runeOff <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == runeOff {
			return i
		}
		n++
	}
	return len(text)
}

// insertText inserts s at cursor and returns the new text and cursor.
func insertText(text string, cursor int, s string) (string, int) {
	cursor = min(max(cursor, 0), utf8.RuneCountInString(text))
	at := byteOffset(text, cursor)
	return text[:at] + s + text[at:], cursor + utf8.RuneCountInString(s)
}

// deleteBackward removes the rune before cursor.
func deleteBackward(text string, cursor int) (string, int) {
	if cursor <= 0 {
		return text, 0
	}
	start := byteOffset(text, cursor-1)
	end := byteOffset(text, cursor)
	return text[:start] + text[end:], cursor - 1
}

// deleteForward removes the rune at cursor.
func deleteForward(text string, cursor int) (string, int) {
	start := byteOffset(text, cursor)
	if start >= len(text) {
		return text, cursor
	}
	_, size := utf8.DecodeRuneInString(text[start:])
	return text[:start] + text[start+size:], cursor
}

// lineCol returns the zero-based line and rune column of cursor.
func lineCol(text string, cursor int) (line, col int) {
	n := 0
	for _, r := range text {
		if n == cursor {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		n++
	}
	return line, col
}

// offsetOf returns the rune offset of (line, col), clamping col to the
// line's length and line to the last line.
func offsetOf(text string, line, col int) int {
	if line < 0 {
		return 0
	}
	off := 0
	for l := 0; l < line; l++ {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			// Past the last line: clamp to it.
			return off + min(col, utf8.RuneCountInString(text))
		}
		off += utf8.RuneCountInString(text[:i]) + 1
		text = text[i+1:]
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return off + min(col, utf8.RuneCountInString(text))
}

// moveVertical moves cursor by delta lines, keeping the column where the
// target line is long enough.
func moveVertical(text string, cursor, delta int) int {
	line, col := lineCol(text, cursor)
	target := line + delta
	if target < 0 {
		return 0
	}
	last := strings.Count(text, "\n")
	if target > last {
		return utf8.RuneCountInString(text)
	}
	return offsetOf(text, target, col)
}

// lineHome returns the offset of the start of the cursor's line.
func lineHome(text string, cursor int) int {
	line, _ := lineCol(text, cursor)
	return offsetOf(text, line, 0)
}

// lineEnd returns the offset of the end of the cursor's line.
func lineEnd(text string, cursor int) int {
	line, _ := lineCol(text, cursor)
	return offsetOf(text, line, int(^uint(0)>>1))
}
