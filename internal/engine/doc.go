// Package engine holds the in-memory model of the open document.
//
// A Document keeps two views of the same text: the flat string bound to the
// UI's editable text control, and a rope used for line queries. The flat
// text is what the user edits; the rope and the derived line index are
// brought back in line by a synchronization pass.
//
// # Synchronization
//
// After every edit to the flat text the host calls SyncToRope before its
// next paint:
//
//	doc := engine.New()
//	doc.SetText("a\nb\nc")
//	doc.SyncToRope()
//	doc.LineStarts()  // [0 1 2]
//	doc.IsModified()  // true
//
// SyncToRope rebuilds the rope only when the text differs from the rope's
// content, and always regenerates the line index. After a pass the
// following hold:
//
//   - Rope().String() == Text()
//   - len(LineStarts()) == Rope().LineCount()
//
// # Persistence
//
// Open and Save go through a vfs.FS. A failed Open or Save leaves every
// field of the Document as it was. Save writes the flat text verbatim; line
// terminators are never rewritten.
//
// # Concurrency
//
// A Document is owned by one goroutine (the UI event loop). It has no
// internal locking and must not be shared.
package engine
