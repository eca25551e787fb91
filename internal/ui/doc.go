// Package ui is the terminal front end. It owns the tcell event loop and
// plays the text-control role for the document: key presses edit the flat
// text and cursor, every edit is followed by a sync to the rope, and each
// frame is drawn from the rope and the line index.
//
// Key bindings:
//
//	Ctrl-O  open a file
//	Ctrl-S  save, asking for a path when the document has none
//	Ctrl-W  save under a new path
//	Ctrl-Q  quit (twice when there are unsaved changes)
//	Esc     cancel the path prompt
package ui
