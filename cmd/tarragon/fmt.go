package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/format"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		write bool
		diff  bool
		list  bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "fmt [options] <file>...",
		Short: "Format Tarragon source files",
		Example: `  tarragon fmt script.tg        Print formatted output to stdout
  tarragon fmt -w script.tg     Format file in place
  tarragon fmt -l *.tg          List files that need formatting
  tarragon fmt -d script.tg     Show what would change`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				width = a.cfg.Format.LineWidth
			}

			exitCode := exitOK
			for _, filename := range args {
				code, err := a.formatFile(filename, width, write, diff, list)
				if err != nil {
					fmt.Fprintf(a.stderr, "Error formatting %s: %v\n", filename, err)
				}
				exitCode = max(exitCode, code)
			}
			if exitCode != exitOK {
				return exitWith(exitCode)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "display diffs instead of rewriting files")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().IntVar(&width, "width", 0, "line width (default from format.line_width)")
	return cmd
}

// formatFile formats one file and returns the exit code it warrants
func (a *app) formatFile(filename string, width int, write, diff, list bool) (int, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return exitUsage, fmt.Errorf("reading file: %w", err)
	}
	source := string(content)

	formatted, err := format.Source(source, width)
	if err != nil {
		return exitError, err
	}

	changed := formatted != source

	switch {
	case list:
		if changed {
			fmt.Fprintln(a.stdout, filename)
		}
	case diff:
		if changed {
			showDiff(a.stdout, filename, source, formatted)
		}
	case write:
		if changed {
			if err := os.WriteFile(filename, []byte(formatted), 0644); err != nil {
				return exitUsage, fmt.Errorf("writing file: %w", err)
			}
			a.logger.Debug("formatted", "file", filename)
		}
	default:
		fmt.Fprint(a.stdout, formatted)
	}
	return exitOK, nil
}

// showDiff prints the lines that differ between original and formatted
func showDiff(w io.Writer, filename, original, formatted string) {
	fmt.Fprintf(w, "diff %s\n", filename)

	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")

	for i := range max(len(fmtLines), len(origLines)) {
		origLine := ""
		fmtLine := ""
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(fmtLines) {
			fmtLine = fmtLines[i]
		}

		if origLine != fmtLine {
			if origLine != "" {
				fmt.Fprintf(w, "-%d: %s\n", i+1, origLine)
			}
			if fmtLine != "" {
				fmt.Fprintf(w, "+%d: %s\n", i+1, fmtLine)
			}
		}
	}
}
