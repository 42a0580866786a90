package repl

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
)

var (
	ColorError  = lipgloss.Color("#EF4444") // Red
	ColorHint   = lipgloss.Color("#F59E0B") // Amber
	ColorResult = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
)

// Styles renders terminal output, with or without color.
type Styles struct {
	enabled bool

	ErrorHeader lipgloss.Style
	Hint        lipgloss.Style
	Result      lipgloss.Style
	Muted       lipgloss.Style
}

// NewStyles returns styles bound to w. With color false every render is
// the plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	}
	return Styles{
		enabled:     color,
		ErrorHeader: r.NewStyle().Foreground(ColorError).Bold(true),
		Hint:        r.NewStyle().Foreground(ColorHint),
		Result:      r.NewStyle().Foreground(ColorResult),
		Muted:       r.NewStyle().Foreground(ColorMuted),
	}
}

// Enabled reports whether output is colored.
func (s Styles) Enabled() bool { return s.enabled }

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// FormatError renders err like PrettyString with a colored header and hints.
// A non-empty source adds an excerpt with a caret under the error position.
func (s Styles) FormatError(err *perrors.TarragonError, source string) string {
	body := strings.TrimPrefix(err.PrettyString(), err.Header())

	var sb strings.Builder
	sb.WriteString(s.render(s.ErrorHeader, err.Header()))

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		if hint, ok := strings.CutPrefix(line, "  hint: "); ok {
			sb.WriteString("  " + s.render(s.Hint, "hint: "+hint))
			continue
		}
		sb.WriteString(line)
	}

	if source != "" && err.Line > 0 {
		if excerpt := perrors.Excerpt(source, err.Line, err.Column); excerpt != "" {
			sb.WriteString("\n\n")
			for i, line := range strings.Split(excerpt, "\n") {
				if i > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString("  " + s.render(s.Muted, line))
			}
		}
	}

	return sb.String()
}

// UseColor resolves a color setting of auto, always or never for w.
func UseColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal behind w, or fallback.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
