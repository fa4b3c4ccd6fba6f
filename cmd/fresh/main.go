// Package main is the entry point for the Fresh editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/fresh/internal/app"
	"github.com/dshills/fresh/internal/bridge"
	"github.com/dshills/fresh/internal/config"
	"github.com/dshills/fresh/internal/config/watcher"
	"github.com/dshills/fresh/internal/integration/git"
	"github.com/dshills/fresh/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logLevel   string
	logFile    string
	noWrap     bool
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	if f.noWrap {
		cfg.Editor.LineWrap = false
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: fresh must be run in a terminal")
		return 1
	}

	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer logFile.Close()
		out = logFile
	}
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Log.Level),
		Output: out,
		Prefix: "fresh",
	})
	logger.Info("starting fresh %s (%s, built %s)", version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := bridge.New(bridge.DefaultCapacity)

	// The interface stays nil outside a repository so search reports itself
	// unavailable.
	var searcher app.Searcher
	if cwd, err := os.Getwd(); err == nil {
		if root, err := git.Discover(cwd); err == nil {
			searcher = git.NewSearcher(root, git.WithLimit(cfg.Search.MaxResults))
			logger.Info("searching repository %s", root)
		} else {
			logger.Info("search disabled: %v", err)
		}
	}

	if f.configPath != "" {
		w, err := watcher.New(f.configPath, func() (*config.Config, error) {
			return config.Load(f.configPath)
		}, b.Sender())
		if err != nil {
			logger.Warn("config hot reload disabled: %v", err)
		} else {
			defer w.Close()
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("config watcher stopped: %v", err)
				}
			}()
		}
	}

	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	ed := app.New(app.Options{
		Config:   cfg,
		Backend:  screen,
		Logger:   logger,
		Searcher: searcher,
		Bridge:   b,
	})
	for _, path := range f.files {
		if _, err := ed.OpenFile(path); err != nil {
			ed.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := ed.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&f.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&f.noWrap, "no-wrap", false, "Start with line wrap off")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Fresh - a terminal text editor for large files\n\n")
		fmt.Fprintf(os.Stderr, "Usage: fresh [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fresh                       Open an empty document\n")
		fmt.Fprintf(os.Stderr, "  fresh big.log main.go       Open two files\n")
		fmt.Fprintf(os.Stderr, "  fresh -log-file /tmp/f.log  Log to a file\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Fresh %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch f.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
		os.Exit(1)
	}

	f.files = flag.Args()
	return f
}
