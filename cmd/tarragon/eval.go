package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/tarragon"
	"github.com/tarragon-lang/tarragon/watcher"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		code  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Evaluate a source file or inline code",
		Example: `  tarragon eval script.tg
  tarragon eval -e "let add = fn(a, b) { a + b }; add(1, 2)"
  tarragon eval --watch script.tg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case code != "" && len(args) > 0:
				return usageError("use either -e or a file, not both")
			case code != "":
				if watch {
					return usageError("--watch needs a file")
				}
				return a.evalSource("<eval>", code)
			case len(args) == 0:
				return usageError("no file or -e code given")
			case watch:
				return a.watchFile(cmd.Context(), args[0])
			default:
				return a.evalFile(args[0])
			}
		},
	}

	cmd.Flags().StringVarP(&code, "eval", "e", "", "evaluate code instead of a file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the file every time it is saved")
	return cmd
}

func (a *app) evalFile(filename string) error {
	source, err := readSource(filename)
	if err != nil {
		return err
	}
	return a.evalSource(filename, source)
}

// evalSource runs source in a fresh root environment and prints the result
func (a *app) evalSource(filename, source string) error {
	a.logger.Debug("evaluating", "file", filename, "bytes", len(source))

	result, err := tarragon.Eval(source,
		tarragon.WithFilename(filename),
		tarragon.WithLogger(tarragon.WriterLogger(a.stdout)),
		tarragon.WithMaxCallDepth(a.cfg.Eval.MaxDepth),
	)

	var perrs tarragon.ParseErrors
	var rerr *perrors.TarragonError
	switch {
	case errors.As(err, &perrs):
		a.printErrors(source, perrs...)
		return exitWith(exitError)
	case errors.As(err, &rerr):
		a.printErrors(source, rerr)
		return exitWith(exitError)
	case err != nil:
		return err
	}

	if a.cfg.Eval.ShowResult && result != evaluator.NULL {
		fmt.Fprintln(a.stdout, tarragon.Render(result))
	}
	return nil
}

// watchFile evaluates filename now and again after every save until ctx is
// cancelled or the process is interrupted.
func (a *app) watchFile(ctx context.Context, filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return usageError("reading %s: %w", filename, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rerun := func(string) {
		if err := a.evalFile(filename); err != nil {
			var ec *exitCodeError
			if errors.As(err, &ec) && ec.err != nil {
				fmt.Fprintf(a.stderr, "Error: %v\n", ec.err)
			}
		}
		fmt.Fprintf(a.stderr, "[WATCH] waiting for changes to %s\n", filename)
	}

	w, err := watcher.New([]string{filename}, func(path string) {
		fmt.Fprintf(a.stderr, "[WATCH] %s changed\n", path)
		rerun(path)
	}, watcher.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("watching %s: %w", filename, err)
	}
	defer w.Close()

	rerun(filename)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
