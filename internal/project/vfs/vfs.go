// Package vfs is the file system boundary used to load and save documents.
//
// The FS interface lets the document engine run against the operating
// system or against an in-memory file system in tests.
package vfs

import (
	"io/fs"
	"time"
)

// DefaultFileMode is the mode used for files that do not exist yet.
const DefaultFileMode fs.FileMode = 0o644

// FS is the set of file operations the editor needs.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file content. Implementations must not leave a
	// partially written file behind when they fail.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// Abs returns the absolute form of path.
	Abs(path string) (string, error)

	// Exists reports whether path exists.
	Exists(path string) bool
}

// FileInfo describes a file.
type FileInfo struct {
	path    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

// NewFileInfo creates a FileInfo.
func NewFileInfo(path string, size int64, mode fs.FileMode, modTime time.Time, isDir bool) FileInfo {
	return FileInfo{path: path, size: size, mode: mode, modTime: modTime, isDir: isDir}
}

// Path returns the path the info was read from.
func (fi FileInfo) Path() string { return fi.path }

// Size returns the size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir reports whether the path is a directory.
func (fi FileInfo) IsDir() bool { return fi.isDir }
