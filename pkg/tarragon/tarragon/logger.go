package tarragon

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
)

// Logger receives the output of print statements.
type Logger = evaluator.Logger

// printer renders print output onto w. Log leaves the line open and LogLine
// ends it.
type printer struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *printer) Log(values ...any) {
	p.write(values, "")
}

func (p *printer) LogLine(values ...any) {
	p.write(values, "\n")
}

func (p *printer) write(values []any, end string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	io.WriteString(p.w, renderValues(values)+end)
}

// StdoutLogger prints to standard output.
func StdoutLogger() Logger {
	return WriterLogger(os.Stdout)
}

// WriterLogger prints to w. Writes from concurrent evaluations are
// serialized.
func WriterLogger(w io.Writer) Logger {
	return &printer{w: w}
}

// NullLogger discards everything printed.
func NullLogger() Logger {
	return &printer{w: io.Discard}
}

// BufferedLogger keeps print output in memory. Create it with
// NewBufferedLogger.
type BufferedLogger struct {
	printer
	buf strings.Builder
}

func NewBufferedLogger() *BufferedLogger {
	l := &BufferedLogger{}
	l.w = &l.buf
	return l
}

// String returns everything printed so far, including an unfinished line.
func (l *BufferedLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// Lines returns the finished lines.
func (l *BufferedLogger) Lines() []string {
	out := l.String()
	end := strings.LastIndexByte(out, '\n')
	if end < 0 {
		return []string{}
	}
	return strings.Split(out[:end], "\n")
}

func (l *BufferedLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
}

// renderValues joins values with spaces, showing runtime values as print
// does.
func renderValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if obj, ok := v.(evaluator.Object); ok {
			parts[i] = Render(obj)
			continue
		}
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
