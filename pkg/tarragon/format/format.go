package format

import (
	"errors"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/parser"
)

// ErrHasComments is returned for sources with line comments, which the
// parser discards and the formatter therefore cannot reproduce.
var ErrHasComments = errors.New("source contains comments; formatting would remove them")

// Source formats Tarragon source text. The result ends with a newline unless
// the program is empty. Syntax errors are returned joined into one error.
func Source(src string, width int) (string, error) {
	l := lexer.New(src)
	for range l.Tokens() {
	}
	if l.Comments() > 0 {
		return "", ErrHasComments
	}

	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if perrs := p.StructuredErrors(); len(perrs) > 0 {
		errs := make([]error, len(perrs))
		for i, e := range perrs {
			errs[i] = e
		}
		return "", errors.Join(errs...)
	}

	out := FormatProgram(program, width)
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}
