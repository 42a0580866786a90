package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/help"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/repl"
)

func newDescribeCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "describe [--json] <topic>",
		Short: "Show help for builtins, operators, types or keywords",
		Long: `Show help for a topic.

Topics:
  builtins           List all builtin functions
  operators          List all operators
  types              List all value types
  keywords           List reserved words
  <builtin>          Help for one builtin (len, first, push, ...)
  <type>             Help for one type (integer, string, array, ...)
  <operator>         Help for one operator (+, ==, [], ...)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := help.DescribeTopic(args[0])
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}

			if jsonOutput {
				data, err := help.FormatJSON(result)
				if err != nil {
					return &exitCodeError{code: exitError, err: fmt.Errorf("formatting JSON: %w", err)}
				}
				fmt.Fprintln(a.stdout, string(data))
				return nil
			}

			fmt.Fprint(a.stdout, help.FormatText(result, repl.TerminalWidth(a.stdout, 80)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
