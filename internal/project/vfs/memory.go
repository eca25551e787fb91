package vfs

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

// ErrInjected is returned by MemFS when failure injection is enabled.
var ErrInjected = errors.New("injected failure")

// MemFS implements FS in memory. Paths are slash-separated and rooted at "/".
// It is used by tests and supports failure injection.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile

	failReads  bool
	failWrites bool
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memFile)}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// FailReads makes every subsequent ReadFile fail with ErrInjected.
func (m *MemFS) FailReads(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = fail
}

// FailWrites makes every subsequent WriteFile fail with ErrInjected.
func (m *MemFS) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// ReadFile returns a copy of the file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if m.failReads {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: ErrInjected}
	}
	f, ok := m.files[filePath]
	if !ok {
		if m.isDirLocked(filePath) {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: syscall.EISDIR}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	if f.mode.Perm()&0o444 == 0 {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrPermission}
	}

	out := make([]byte, len(f.content))
	copy(out, f.content)
	return out, nil
}

// WriteFile stores a copy of data. Parent directories are implicit.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if m.failWrites {
		return &fs.PathError{Op: "write", Path: filePath, Err: ErrInjected}
	}
	if m.isDirLocked(filePath) {
		return &fs.PathError{Op: "write", Path: filePath, Err: syscall.EISDIR}
	}
	if f, ok := m.files[filePath]; ok {
		perm = f.mode
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{content: content, mode: perm, modTime: time.Now()}
	return nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if f, ok := m.files[filePath]; ok {
		return NewFileInfo(filePath, int64(len(f.content)), f.mode, f.modTime, false), nil
	}
	if m.isDirLocked(filePath) {
		return NewFileInfo(filePath, 0, fs.ModeDir|0o755, time.Time{}, true), nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

// Abs returns the cleaned, rooted path.
func (m *MemFS) Abs(filePath string) (string, error) {
	return m.cleanPath(filePath), nil
}

// Exists reports whether a file or implicit directory exists at filePath.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	_, ok := m.files[filePath]
	return ok || m.isDirLocked(filePath)
}

// AddFile creates or replaces a file with the given content and mode.
func (m *MemFS) AddFile(filePath, content string, perm fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[m.cleanPath(filePath)] = &memFile{
		content: []byte(content),
		mode:    perm,
		modTime: time.Now(),
	}
}

// Files returns all file paths in sorted order.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// isDirLocked reports whether dir is the root or has a file below it.
func (m *MemFS) isDirLocked(dir string) bool {
	if dir == "/" {
		return true
	}
	prefix := dir + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (m *MemFS) cleanPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
