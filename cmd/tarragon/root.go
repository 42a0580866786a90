package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tarragon-lang/tarragon/config"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/repl"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1 // Parse or runtime error in a program
	exitUsage = 2 // Bad arguments or unreadable files
)

// exitCodeError ends the command with a specific exit code. The message has
// already been printed when err is nil.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error { return e.err }

func exitWith(code int) error {
	return &exitCodeError{code: code}
}

func usageError(format string, args ...any) error {
	return &exitCodeError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

// app carries the streams and settings shared by every subcommand
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	verbose bool

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, closeLog: func() error { return nil }}
	defer func() { a.closeLog() }()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ec *exitCodeError
	if errors.As(err, &ec) {
		if ec.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ec.err)
		}
		return ec.code
	}

	// Anything else comes from cobra's own argument and flag checks
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitUsage
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tarragon",
		Short: "Tarragon - a small expression language",
		Long: `Tarragon is a small dynamically typed expression language with
first-class functions, closures, arrays and a handful of builtins.

Run without arguments to start the interactive REPL.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL()
		},
	}
	root.SetVersionTemplate("tarragon version {{.Version}}\n")

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./tarragon.yaml, ./tarragon.toml or ~/.config/tarragon/tarragon.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to the configured log output")

	root.AddCommand(
		newTokenizeCmd(a),
		newParseCmd(a),
		newEvalCmd(a),
		newREPLCmd(a),
		newFmtCmd(a),
		newDescribeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the diagnostic logger
func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile, os.Getenv)
	if err != nil {
		return usageError("%v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg.Logging, a.verbose)
	if err != nil {
		return usageError("%v", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog

	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	for _, w := range config.Warnings(cfg) {
		logger.Warn(w)
	}
	return nil
}

func (a *app) errorStyles() repl.Styles {
	return repl.NewStyles(a.stderr, repl.UseColor(a.cfg.REPL.Color, a.stderr))
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "tarragon version %s\n", Version)
		},
	}
}

func newREPLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL()
		},
	}
}

func (a *app) runREPL() error {
	rc := a.cfg.REPL
	repl.Start(a.stdin, a.stdout, repl.Options{
		Prompt:             rc.Prompt,
		ContinuationPrompt: rc.ContinuationPrompt,
		HistoryFile:        rc.HistoryFile,
		HistorySize:        rc.HistorySize,
		Color:              repl.UseColor(rc.Color, a.stdout),
		MaxDepth:           a.cfg.Eval.MaxDepth,
		ShowResult:         a.cfg.Eval.ShowResult,
		Version:            Version,
		Logger:             a.logger,
	})
	return nil
}
