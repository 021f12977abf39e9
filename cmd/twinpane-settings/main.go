// Package main is the entry point for twinpane-settings, a tool for
// inspecting and editing TwinPane settings files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/twinpane/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	app      string
	root     string
	debug    bool
	logLevel string
}

// errUsage reports bad arguments; run prints usage and exits with 2.
var errUsage = errors.New("usage")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("twinpane-settings", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.app, "app", config.DefaultCompany, "Application id used in settings file names")
	fs.StringVar(&opts.root, "root", "", "Configuration root (default: platform config directory)")
	fs.BoolVar(&opts.debug, "debug", false, "Use the debug settings file")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "twinpane-settings - inspect and edit TwinPane settings\n\n")
		fmt.Fprintf(stderr, "Usage: twinpane-settings [options] <command> [args]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-30s %s\n", c.usage, c.summary)
		}
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "twinpane-settings %s (%s)\n", version, commit)
		return 0
	}

	var level slog.Level
	switch opts.logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := lookupCommand(name)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", name)
		fs.Usage()
		return 2
	}

	store, err := config.NewStore(opts.app,
		config.WithConfigRoot(opts.root),
		config.WithDebug(opts.debug),
		config.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	env := &cli{ctx: ctx, store: store, logger: logger, stdout: stdout, stderr: stderr}
	if err := cmd.run(env, rest); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Usage: twinpane-settings %s\n", cmd.usage)
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
