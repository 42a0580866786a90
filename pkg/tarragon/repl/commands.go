package repl

import (
	"fmt"
	"strings"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/help"
)

var commandNames = []string{":clear", ":describe", ":env", ":help"}

// handleCommand runs a REPL meta-command that starts with ':'
func (s *session) handleCommand(line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(s.out, "REPL Commands:")
		fmt.Fprintln(s.out, "  :help, :h, :?      Show this help")
		fmt.Fprintln(s.out, "  :env               Show variables in scope")
		fmt.Fprintln(s.out, "  :clear             Clear all user variables")
		fmt.Fprintln(s.out, "  :describe <topic>  Describe builtins, operators, types or one of them")
		fmt.Fprintln(s.out, "  exit, quit         Exit the REPL")

	case ":env":
		s.printEnvironment()

	case ":clear":
		s.resetEnvironment()
		fmt.Fprintln(s.out, "Environment cleared")

	case ":describe", ":d":
		result, err := help.DescribeTopic(arg)
		if err != nil {
			fmt.Fprintln(s.out, s.styles.render(s.styles.ErrorHeader, err.Error()))
			return
		}
		fmt.Fprint(s.out, help.FormatText(result, s.opts.Width))

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
}

// printEnvironment lists the bindings made in this session
func (s *session) printEnvironment() {
	names := s.env.Names()
	if len(names) == 0 {
		fmt.Fprintln(s.out, "(no user variables)")
		return
	}

	for _, name := range names {
		obj, _ := s.env.Get(name)
		value := obj.Inspect()

		if strings.Contains(value, "\n") {
			value = strings.ReplaceAll(value, "\n", "\n  ")
		} else if len([]rune(value)) > 60 {
			value = string([]rune(value)[:57]) + "..."
		}

		fmt.Fprintf(s.out, "  %s: %s = %s\n", name, obj.Type(), value)
	}
}
