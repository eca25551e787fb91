// Package app ties a document to its surroundings for one editing session:
// configuration, logging and the watcher that reports writes made to the
// backing file by other programs.
//
// A Session is owned by a single goroutine, normally the UI loop. The only
// goroutine it starts forwards watcher events over ExternalChanges and
// never touches the document.
package app
