// Package repl runs an interactive Tarragon session over one persistent
// root environment.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/tarragon"
)

const (
	PROMPT              = ">> "
	CONTINUATION_PROMPT = ".. "
)

const TARRAGON_LOGO = `
▀█▀ ▄▀█ █▀█ █▀█ ▄▀█ █▀▀ █▀█ █▄░█
░█░ █▀█ █▀▄ █▀▄ █▀█ █▄█ █▄█ █░▀█ `

// Options configures a session. The zero value uses the default prompts,
// no history, no color and the default call depth.
type Options struct {
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string // Empty means ~/.tarragon_history
	HistorySize        int    // 0 disables history
	Color              bool
	MaxDepth           int
	ShowResult         bool
	Width              int // Wrap width for :describe; 0 asks the terminal
	Version            string
	Logger             *slog.Logger
}

type session struct {
	out    io.Writer
	opts   Options
	styles Styles
	logger *slog.Logger
	env    *evaluator.Environment
	buffer strings.Builder
}

func newSession(out io.Writer, opts Options) *session {
	if opts.Prompt == "" {
		opts.Prompt = PROMPT
	}
	if opts.ContinuationPrompt == "" {
		opts.ContinuationPrompt = CONTINUATION_PROMPT
	}
	if opts.Width <= 0 {
		opts.Width = TerminalWidth(out, 80)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &session{
		out:    out,
		opts:   opts,
		styles: NewStyles(out, opts.Color),
		logger: logger.With("session", uuid.NewString()),
	}
	s.resetEnvironment()
	return s
}

func (s *session) resetEnvironment() {
	s.env = tarragon.NewEnvironment(
		tarragon.WithLogger(tarragon.WriterLogger(s.out)),
		tarragon.WithMaxCallDepth(s.opts.MaxDepth),
	)
}

// Start reads Tarragon source from in until exit, quit or end of input.
// A terminal on stdin gets line editing, history and tab completion; any
// other reader is consumed line by line without prompts.
func Start(in io.Reader, out io.Writer, opts Options) {
	s := newSession(out, opts)

	if f, ok := in.(*os.File); ok && f == os.Stdin && term.IsTerminal(int(f.Fd())) {
		s.logger.Info("repl started", "mode", "interactive")
		s.runInteractive()
		return
	}

	s.logger.Info("repl started", "mode", "plain")
	s.runPlain(in)
}

func (s *session) runInteractive() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		return filterCompletions(l, completionWords(s.env))
	})

	historyFile := s.historyPath()
	if historyFile != "" {
		s.loadHistory(line, historyFile)
		defer s.saveHistory(line, historyFile)
	}

	fmt.Fprintf(s.out, "%s", TARRAGON_LOGO)
	if s.opts.Version != "" {
		fmt.Fprintln(s.out, "v", s.opts.Version)
	}
	fmt.Fprintln(s.out, "")
	fmt.Fprintln(s.out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(s.out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(s.out, "Type ':help' for REPL commands")
	fmt.Fprintln(s.out, "")

	for {
		prompt := s.opts.Prompt
		if s.buffer.Len() > 0 {
			prompt = s.opts.ContinuationPrompt
		}

		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if s.buffer.Len() > 0 {
					fmt.Fprintln(s.out, "^C (cleared)")
				} else {
					fmt.Fprintln(s.out, "^C")
				}
				s.buffer.Reset()
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(s.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(s.out, "Error reading input: %v\n", err)
			continue
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if s.feed(input) {
			return
		}
	}
}

func (s *session) runPlain(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if s.feed(scanner.Text()) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("reading input", "error", err)
	}

	// Unbalanced input at end of stream still gets its parse errors
	if s.buffer.Len() > 0 {
		src := s.buffer.String()
		s.buffer.Reset()
		s.evalSource(src)
	}
	fmt.Fprintln(s.out, "Goodbye!")
}

// feed handles one line of input and reports whether the session should end.
func (s *session) feed(input string) bool {
	trimmed := strings.TrimSpace(input)

	if s.buffer.Len() == 0 {
		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(s.out, "Goodbye!")
			return true
		}
		if strings.HasPrefix(trimmed, ":") {
			s.handleCommand(trimmed)
			return false
		}
		if trimmed == "" {
			return false
		}
	}

	if s.buffer.Len() > 0 {
		s.buffer.WriteString("\n")
	}
	s.buffer.WriteString(input)

	src := s.buffer.String()
	if needsMoreInput(src) {
		return false
	}
	s.buffer.Reset()
	s.evalSource(src)
	return false
}

func (s *session) evalSource(src string) {
	program, perrs := tarragon.Parse(src)
	if len(perrs) > 0 {
		for _, e := range perrs {
			fmt.Fprintln(s.out, s.styles.FormatError(e, src))
		}
		s.logger.Debug("parse failed", "errors", len(perrs))
		return
	}

	start := time.Now()
	result := tarragon.Evaluate(program, s.env)
	elapsed := time.Since(start)

	if errObj, ok := result.(*evaluator.Error); ok {
		fmt.Fprintln(s.out, s.styles.FormatError(errObj.ToTarragonError(), src))
		s.logger.Debug("runtime error", "code", errObj.Code, "duration", elapsed)
		return
	}
	s.logger.Debug("evaluated", "type", string(result.Type()), "duration", elapsed)

	if s.opts.ShowResult && result != evaluator.NULL {
		fmt.Fprintln(s.out, s.styles.render(s.styles.Result, tarragon.Render(result)))
	}
}

func (s *session) historyPath() string {
	if s.opts.HistorySize <= 0 {
		return ""
	}
	if s.opts.HistoryFile != "" {
		return s.opts.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tarragon_history")
}

func (s *session) loadHistory(line *liner.State, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("reading history", "path", path, "error", err)
		}
		return
	}
	entries := lastLines(string(data), s.opts.HistorySize)
	if _, err := line.ReadHistory(strings.NewReader(entries)); err != nil {
		s.logger.Warn("loading history", "path", path, "error", err)
	}
}

func (s *session) saveHistory(line *liner.State, path string) {
	var sb strings.Builder
	if _, err := line.WriteHistory(&sb); err != nil {
		s.logger.Warn("collecting history", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Warn("saving history", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(lastLines(sb.String(), s.opts.HistorySize)), 0o600); err != nil {
		s.logger.Warn("saving history", "path", path, "error", err)
	}
}

// lastLines keeps the final n lines of text, each newline-terminated.
func lastLines(text string, n int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n") + "\n"
}
