// Package main is the entry point for the rmedit editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/moons03/rm-editor/internal/app"
	"github.com/moons03/rm-editor/internal/config"
	"github.com/moons03/rm-editor/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	session, err := app.NewSession(app.Options{Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer session.Close()

	var startMsg string
	if opts.file != "" {
		if err := session.Open(opts.file); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			startMsg = fmt.Sprintf("%s does not exist: Ctrl-W to save it", opts.file)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	// Finalizing the screen makes PollEvent return nil, which ends Run.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		logger.Info("signal received, shutting down")
		screen.Fini()
	}()

	editor := ui.New(screen, session, logger)
	editor.SetMessage(startMsg)
	if err := editor.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		logger.Error("editor stopped: %v", err)
		return 1
	}
	return 0
}

// openLogger creates the file logger. The terminal belongs to the editor,
// so logs never go to stderr while it runs.
func openLogger(cfg *config.Config) (*app.Logger, func(), error) {
	path := cfg.Logging.File
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return app.NullLogger, func() {}, nil
		}
		path = p
	}

	f, err := app.OpenLogFile(path)
	if err != nil {
		return nil, nil, err
	}
	level, _ := app.ParseLogLevel(cfg.Logging.Level)
	logger := app.NewLogger(app.LoggerConfig{Level: level, Output: f, Prefix: config.AppName})
	return logger, func() { _ = f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml or .yml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.StringVar(&opts.logFile, "log-file", "", "Log file path; overrides the config file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rmedit - minimal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rmedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-O open   Ctrl-S save   Ctrl-W save as   Ctrl-Q quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("rmedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: rmedit edits one file at a time\n")
		os.Exit(1)
	}
	opts.file = flag.Arg(0)

	return opts
}
