package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Excerpt returns the source line at line with a caret under column:
//
//	3 | let x = y + 1;
//	  |         ^
//
// Columns count characters, as the lexer does. It returns "" when line is
// outside source.
func Excerpt(source string, line, column int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	text := strings.TrimRight(lines[line-1], "\r")
	gutter := strconv.Itoa(line)

	var marker strings.Builder
	n := 0
	for _, r := range text {
		if n >= column-1 {
			break
		}
		if r == '\t' {
			marker.WriteByte('\t')
		} else {
			marker.WriteByte(' ')
		}
		n++
	}
	// EOF errors point one past the end of the line
	for ; n < column-1; n++ {
		marker.WriteByte(' ')
	}

	return fmt.Sprintf("%s | %s\n%s | %s^", gutter, text, strings.Repeat(" ", len(gutter)), marker.String())
}
