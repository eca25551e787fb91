package engine

import (
	"io/fs"

	"github.com/moons03/rm-editor/internal/project/vfs"
)

// Option configures a Document during creation.
type Option func(*Document)

// WithFS sets the file system used by Open and Save. Defaults to the OS.
func WithFS(fsys vfs.FS) Option {
	return func(d *Document) {
		if fsys != nil {
			d.fsys = fsys
		}
	}
}

// WithFileMode sets the mode for files created by Save.
// Existing files keep their mode.
func WithFileMode(perm fs.FileMode) Option {
	return func(d *Document) {
		if perm != 0 {
			d.perm = perm
		}
	}
}
