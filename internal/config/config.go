package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/moons03/rm-editor/internal/config/loader"
	"github.com/moons03/rm-editor/internal/renderer/gutter"
)

// AppName is used for config and log directory names.
const AppName = "rmedit"

// Config holds all editor settings.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Files   FilesConfig   `toml:"files" yaml:"files"`
}

// LoggingConfig configures the log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File is the log file path. Empty means the default under the user
	// cache directory.
	File string `toml:"file" yaml:"file"`
}

// EditorConfig configures the editing view.
type EditorConfig struct {
	// LineNumbers is absolute, relative or hybrid.
	LineNumbers string `toml:"line_numbers" yaml:"line_numbers"`
	// GutterMinWidth is the minimum number of digit columns in the gutter.
	GutterMinWidth int `toml:"gutter_min_width" yaml:"gutter_min_width"`
	// TabWidth is the display width of a tab.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
	// WatchExternalChanges reports writes to the open file by other programs.
	WatchExternalChanges bool `toml:"watch_external_changes" yaml:"watch_external_changes"`
}

// FilesConfig configures how files are written.
type FilesConfig struct {
	// Mode is the octal permission for newly created files.
	Mode string `toml:"mode" yaml:"mode"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Editor: EditorConfig{
			LineNumbers:          "absolute",
			GutterMinWidth:       3,
			TabWidth:             4,
			WatchExternalChanges: true,
		},
		Files: FilesConfig{Mode: "0644"},
	}
}

// Environment variables recognized by Load.
const (
	EnvLogLevel       = "RMEDIT_LOG_LEVEL"
	EnvLogFile        = "RMEDIT_LOG_FILE"
	EnvLineNumbers    = "RMEDIT_LINE_NUMBERS"
	EnvGutterMinWidth = "RMEDIT_GUTTER_MIN_WIDTH"
	EnvTabWidth       = "RMEDIT_TAB_WIDTH"
	EnvWatch          = "RMEDIT_WATCH_EXTERNAL_CHANGES"
	EnvFileMode       = "RMEDIT_FILE_MODE"
)

// EnvMapping returns the environment variable -> setting key mapping.
func EnvMapping() map[string]string {
	return map[string]string{
		EnvLogLevel:       "logging.level",
		EnvLogFile:        "logging.file",
		EnvLineNumbers:    "editor.line_numbers",
		EnvGutterMinWidth: "editor.gutter_min_width",
		EnvTabWidth:       "editor.tab_width",
		EnvWatch:          "editor.watch_external_changes",
		EnvFileMode:       "files.mode",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// DefaultLogPath returns the default log file location.
func DefaultLogPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, AppName+".log"), nil
}

// Load reads settings from path and the process environment. An empty
// path means DefaultPath, which may be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.DefaultFS(), path, loader.NewEnvLoader(EnvMapping()))
}

// LoadFrom is Load with an explicit file system and environment.
func LoadFrom(fsys loader.FileSystem, path string, env *loader.EnvLoader) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		err := loader.LoadFile(fsys, path, cfg)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return nil, err
		}
	}

	if env != nil {
		if err := cfg.applyEnv(env.Load()); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies raw override values keyed by setting key.
func (c *Config) applyEnv(values map[string]string) error {
	for key, raw := range values {
		switch key {
		case "logging.level":
			c.Logging.Level = raw
		case "logging.file":
			c.Logging.File = raw
		case "editor.line_numbers":
			c.Editor.LineNumbers = raw
		case "editor.gutter_min_width":
			n, err := strconv.Atoi(raw)
			if err != nil {
				return &ValidationError{Key: key, Message: "must be an integer", Value: raw}
			}
			c.Editor.GutterMinWidth = n
		case "editor.tab_width":
			n, err := strconv.Atoi(raw)
			if err != nil {
				return &ValidationError{Key: key, Message: "must be an integer", Value: raw}
			}
			c.Editor.TabWidth = n
		case "editor.watch_external_changes":
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return &ValidationError{Key: key, Message: "must be a boolean", Value: raw}
			}
			c.Editor.WatchExternalChanges = b
		case "files.mode":
			c.Files.Mode = raw
		}
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Key: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level}
	}
	if _, err := gutter.ParseMode(c.Editor.LineNumbers); err != nil {
		return &ValidationError{Key: "editor.line_numbers", Message: "must be absolute, relative or hybrid", Value: c.Editor.LineNumbers}
	}
	if c.Editor.GutterMinWidth < 1 || c.Editor.GutterMinWidth > 10 {
		return &ValidationError{Key: "editor.gutter_min_width", Message: "must be between 1 and 10", Value: c.Editor.GutterMinWidth}
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return &ValidationError{Key: "editor.tab_width", Message: "must be between 1 and 16", Value: c.Editor.TabWidth}
	}
	if _, err := parseFileMode(c.Files.Mode); err != nil {
		return &ValidationError{Key: "files.mode", Message: "must be an octal permission such as 0644", Value: c.Files.Mode}
	}
	return nil
}

// LineNumberMode returns the parsed gutter mode.
func (c *Config) LineNumberMode() gutter.Mode {
	mode, _ := gutter.ParseMode(c.Editor.LineNumbers)
	return mode
}

// FileMode returns the parsed permission for new files.
func (c *Config) FileMode() fs.FileMode {
	mode, err := parseFileMode(c.Files.Mode)
	if err != nil {
		return 0o644
	}
	return mode
}

func parseFileMode(s string) (fs.FileMode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 || n > 0o777 {
		return 0, strconv.ErrRange
	}
	return fs.FileMode(n), nil
}
