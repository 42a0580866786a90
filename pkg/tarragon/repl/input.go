package repl

import (
	"slices"
	"strings"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
)

// needsMoreInput reports whether input has unclosed braces, brackets or
// parentheses. Delimiters inside strings and line comments are ignored.
func needsMoreInput(input string) bool {
	braceCount := 0
	bracketCount := 0
	parenCount := 0
	inString := false

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '/' && i+1 < len(input) && input[i+1] == '/' {
			for i < len(input) && input[i] != '\n' {
				i++
			}
			continue
		}

		switch ch {
		case '{':
			braceCount++
		case '}':
			braceCount--
		case '[':
			bracketCount++
		case ']':
			bracketCount--
		case '(':
			parenCount++
		case ')':
			parenCount--
		}
	}

	return braceCount > 0 || bracketCount > 0 || parenCount > 0
}

// completionWords returns keywords, builtins and names bound in env
func completionWords(env *evaluator.Environment) []string {
	words := append(lexer.Keywords(), evaluator.BuiltinNames()...)
	words = append(words, env.AllIdentifiers()...)
	slices.Sort(words)
	return slices.Compact(words)
}

// filterCompletions returns whole-line candidates that complete the last
// word of line.
func filterCompletions(line string, words []string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if strings.HasPrefix(line, ":") && !strings.Contains(line, " ") {
		var matches []string
		for _, cmd := range commandNames {
			if strings.HasPrefix(cmd, line) {
				matches = append(matches, cmd)
			}
		}
		return matches
	}

	start := len(line)
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var matches []string
	for _, w := range words {
		if strings.HasPrefix(w, word) {
			matches = append(matches, prefix+w)
		}
	}
	return matches
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 0x80 || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
