package format

import (
	"strings"
)

// Printer manages formatting state and output
type Printer struct {
	output  strings.Builder
	width   int
	indent  int // current indentation level in tabs
	linePos int // display column on the current line
}

// NewPrinter creates a printer for the given line width.
// A width of zero or less uses DefaultLineWidth.
func NewPrinter(width int) *Printer {
	if width <= 0 {
		width = DefaultLineWidth
	}
	return &Printer{width: width}
}

// String returns the formatted output
func (p *Printer) String() string {
	return p.output.String()
}

// Reset clears the printer for reuse, keeping its width
func (p *Printer) Reset() {
	p.output.Reset()
	p.indent = 0
	p.linePos = 0
}

// write appends s and tracks the line position across embedded newlines
func (p *Printer) write(s string) {
	p.output.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		p.linePos = len(s) - idx - 1
	} else {
		p.linePos += len(s)
	}
}

func (p *Printer) newline() {
	p.output.WriteString("\n")
	p.linePos = 0
}

func (p *Printer) writeIndent() {
	p.output.WriteString(strings.Repeat(IndentString, p.indent))
	p.linePos += p.indent * TabWidth
}

func (p *Printer) indentInc() {
	p.indent++
}

func (p *Printer) indentDec() {
	if p.indent > 0 {
		p.indent--
	}
}

// fitsOnLine reports whether s fits on the current line within limit.
// Strings with newlines never fit.
func (p *Printer) fitsOnLine(s string, limit int) bool {
	if strings.Contains(s, "\n") {
		return false
	}
	return p.linePos+len(s) <= limit
}
