package engine

import (
	"errors"
	"fmt"
)

// Errors returned by Document operations.
var (
	// ErrNoPath indicates a plain save with no file path set. The caller
	// should ask for a path and retry with SaveAs.
	ErrNoPath = errors.New("document has no file path")

	// ErrInvalidEncoding indicates file content that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// IOError reports a failed read or write of the backing file.
type IOError struct {
	Op   string // "open", "save" or "save as"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
