// Package loader reads configuration files and environment overrides.
//
// Files are decoded straight into the caller's struct; the format is picked
// from the file extension. Keys the struct does not know are rejected so
// typos surface as errors instead of being ignored.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a config file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// FileSystem abstracts file reading for testing.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the operating system file system.
func DefaultFS() FileSystem {
	return osFileSystem{}
}

// Format is a configuration file format.
type Format uint8

const (
	// FormatTOML is TOML (.toml).
	FormatTOML Format = iota
	// FormatYAML is YAML (.yaml, .yml).
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatFor returns the format for a file path based on its extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode parses data in the given format into v. source names the input
// in error messages.
func Decode(format Format, source string, data []byte, v any) error {
	switch format {
	case FormatYAML:
		return decodeYAML(source, data, v)
	default:
		return decodeTOML(source, data, v)
	}
}

// LoadFile reads path from fsys and decodes it into v. Read errors are
// returned wrapped so errors.Is(err, fs.ErrNotExist) still works.
func LoadFile(fsys FileSystem, path string, v any) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Decode(format, path, data, v)
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line is the 1-based line of the error, or 0 if unknown.
	Line int
	// Column is the 1-based column of the error, or 0 if unknown.
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
