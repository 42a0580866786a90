package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/tarragon"
)

func newTokenizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print the tokens of a source file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			for _, tok := range tarragon.Tokenize(source) {
				fmt.Fprintln(a.stdout, tarragon.FormatToken(tok))
			}
			return nil
		},
	}
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print the program tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			source, err := readSource(filename)
			if err != nil {
				return err
			}

			program, perrs := tarragon.Parse(source, tarragon.WithFilename(filename))
			if len(perrs) > 0 {
				a.printErrors(source, perrs...)
				return exitWith(exitError)
			}

			fmt.Fprintln(a.stdout, program.String())
			return nil
		},
	}
}

// readSource reads a program file. Failures exit with the usage code.
func readSource(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", usageError("reading %s: %w", filename, err)
	}
	return string(content), nil
}

// printErrors writes structured errors to stderr with source excerpts
func (a *app) printErrors(source string, errs ...*perrors.TarragonError) {
	styles := a.errorStyles()
	for _, e := range errs {
		fmt.Fprintln(a.stderr, styles.FormatError(e, source))
	}
}
