package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"
	"bookshelf/internal/metrics"
	"bookshelf/internal/middleware"
	"bookshelf/internal/storage"
	"bookshelf/internal/ui"
)

// noLibrary marks commands that must run without opening the backing store.
const noLibrary = "no-library"

// app holds what PersistentPreRunE sets up for the subcommands.
type app struct {
	configPath string
	verbose    bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg      config.Config
	log      *logrus.Logger
	closeLog func() error
	backend  storage.Backend
	lib      *catalog.Library
	out      *ui.Printer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "bookshelf",
		Short: "Personal library manager",
		Long: `bookshelf keeps a personal catalog of books in a flat JSON file
(or SQLite) and lets you add, remove, search and review them.

Run without arguments to start the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), cmd.Annotations[noLibrary] == "true")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.Context())
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: $BOOKSHELF_CONFIG or bookshelf.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newAddCmd(a),
		newRemoveCmd(a),
		newSearchCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newCheckCmd(a),
	)
	return root
}

func (a *app) setup(ctx context.Context, skipLibrary bool) error {
	cfg, err := config.Load(config.Path(a.configPath))
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = logrus.DebugLevel.String()
	}
	a.cfg = cfg

	log, closeLog, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	a.log, a.closeLog = log, closeLog
	a.out = ui.NewPrinter(a.stdout, a.color())

	if skipLibrary {
		return nil
	}
	backend, err := storage.Open(ctx, cfg.Library)
	if err != nil {
		return err
	}
	a.backend = backend
	lib, err := catalog.Open(ctx, backend)
	if err != nil {
		return fmt.Errorf("open library %s: %w", cfg.Library.Path, err)
	}
	a.lib = lib
	a.log.WithFields(logrus.Fields{
		"path":   cfg.Library.Path,
		"driver": cfg.Library.Driver,
		"books":  lib.Len(),
	}).Debug("library opened")
	return nil
}

func (a *app) color() bool {
	if a.cfg.CLI.NoColor {
		return false
	}
	return isTerminal(a.stdout)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// close flushes metrics and releases the store and the log file.
func (a *app) close() {
	if a.lib != nil {
		metrics.ObserveLibrary(a.lib.Stats())
	}
	if err := metrics.Flush(a.cfg.Metrics); err != nil && a.log != nil {
		a.log.WithError(err).Warn("metrics flush failed")
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil && a.log != nil {
			a.log.WithError(err).Warn("close storage")
		}
	}
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// run wraps a subcommand body in the same middleware as the shell modes.
func (a *app) run(op string, fn middleware.Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c := middleware.Chain(fn,
			middleware.RequestID,
			middleware.RequestLogger(a.log, op),
			middleware.Instrument(op),
		)
		return c(cmd.Context(), args)
	}
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return 0
	}
	if errors.Is(err, errReported) {
		return 1
	}
	if a.out != nil {
		a.out.Errorf("%v", err)
	} else {
		fmt.Fprintf(a.stderr, "❌ %v\n", err)
	}
	return 1
}

func main() {
	os.Exit(execute(context.Background(), newApp(os.Stdin, os.Stdout, os.Stderr), os.Args[1:]))
}
