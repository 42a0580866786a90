// Package errors provides the structured error type shared by the Tarragon
// parser and evaluator.
//
// Every diagnostic is a TarragonError carrying a class, a catalog code, a
// rendered message, optional hints and a source position. Messages come from
// ErrorCatalog templates so the same failure reads the same wherever it is
// raised.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and display.
type ErrorClass string

const (
	ClassParse     ErrorClass = "parse"     // Syntax errors
	ClassType      ErrorClass = "type"      // Operand or argument of the wrong kind
	ClassArity     ErrorClass = "arity"     // Wrong argument count
	ClassUndefined ErrorClass = "undefined" // Unbound identifier
	ClassIndex     ErrorClass = "index"     // Bad index base
	ClassOperator  ErrorClass = "operator"  // Operator not defined for operands
	ClassResource  ErrorClass = "resource"  // Call depth exhausted
	ClassInternal  ErrorClass = "internal"  // Evaluator reached a node it cannot run
)

// TarragonError represents any error from parsing or evaluation.
type TarragonError struct {
	Class   ErrorClass     `json:"class"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hints   []string       `json:"hints,omitempty"`
	Line    int            `json:"line"`   // 1-based, 0 if unknown
	Column  int            `json:"column"` // 1-based, 0 if unknown
	File    string         `json:"file,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *TarragonError) Error() string {
	return e.String()
}

// String renders "file: line L, column C: message" followed by indented hints.
func (e *TarragonError) String() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d, column %d: ", e.Line, e.Column)
	}
	sb.WriteString(e.Message)

	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}

	return sb.String()
}

// Header returns the display heading for the error's class.
func (e *TarragonError) Header() string {
	if e.Class == ClassParse {
		return "Parse error"
	}
	return "Runtime error"
}

// PrettyString returns a multi-line string for terminal display.
func (e *TarragonError) PrettyString() string {
	var sb strings.Builder

	sb.WriteString(e.Header())

	switch {
	case e.File != "" && e.Line > 0:
		fmt.Fprintf(&sb, ":\n  in: %s\n  at: line %d, column %d\n  ", e.File, e.Line, e.Column)
	case e.File != "":
		fmt.Fprintf(&sb, ":\n  in: %s\n  ", e.File)
	case e.Line > 0:
		fmt.Fprintf(&sb, ": line %d, column %d\n  ", e.Line, e.Column)
	default:
		sb.WriteString(":\n  ")
	}

	sb.WriteString(e.Message)

	for _, hint := range e.Hints {
		sb.WriteString("\n  hint: ")
		sb.WriteString(hint)
	}

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *TarragonError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WithFile returns a copy of the error with the file path set.
func (e *TarragonError) WithFile(file string) *TarragonError {
	c := *e
	c.File = file
	return &c
}

// WithPosition returns a copy of the error with line and column set.
func (e *TarragonError) WithPosition(line, column int) *TarragonError {
	c := *e
	c.Line = line
	c.Column = column
	return &c
}

// IsParseError returns true if this is a parser error.
func (e *TarragonError) IsParseError() bool {
	return e.Class == ClassParse
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass
	Template string   // message template with {{.placeholders}}
	Hints    []string // hint templates, may use the same placeholders
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	// Parse errors
	"PARSE-0001": {
		Class:    ClassParse,
		Template: "expected {{.Expected}}, got '{{.Got}}'",
	},
	"PARSE-0002": {
		Class:    ClassParse,
		Template: "unexpected '{{.Token}}'",
	},
	"PARSE-0003": {
		Class:    ClassParse,
		Template: "could not parse '{{.Literal}}' as integer",
		Hints:    []string{"integers must fit in 64 bits"},
	},
	"PARSE-0004": {
		Class:    ClassParse,
		Template: "unterminated string",
		Hints:    []string{`close the string with a matching '"'`},
	},
	"PARSE-0005": {
		Class:    ClassParse,
		Template: "illegal character '{{.Char}}'",
	},
	"PARSE-0006": {
		Class:    ClassParse,
		Template: "named function '{{.Name}}' is only allowed as a statement",
		Hints:    []string{"let {{.Name}} = fn(...) { ... }"},
	},

	// Type errors
	"TYPE-0001": {
		Class:    ClassType,
		Template: "type mismatch: {{.Left}} {{.Operator}} {{.Right}}",
	},
	"TYPE-0002": {
		Class:    ClassType,
		Template: "unknown operator: {{.Operator}}{{.Right}}",
	},
	"TYPE-0003": {
		Class:    ClassType,
		Template: "argument to `{{.Function}}` not supported, got {{.Got}}",
		Hints:    []string{"`{{.Function}}` expects {{.Expected}}"},
	},
	"TYPE-0004": {
		Class:    ClassType,
		Template: "not a function: {{.Got}}",
	},

	// Index errors
	"INDEX-0001": {
		Class:    ClassIndex,
		Template: "index operator not supported: {{.Left}}[{{.Index}}]",
	},

	// Operator errors
	"OP-0001": {
		Class:    ClassOperator,
		Template: "unknown operator: {{.Left}} {{.Operator}} {{.Right}}",
	},
	"OP-0002": {
		Class:    ClassOperator,
		Template: "division by zero",
	},

	// Arity errors
	"ARITY-0001": {
		Class:    ClassArity,
		Template: "wrong number of arguments to `{{.Function}}`. got={{.Got}}, want={{.Want}}",
	},
	"ARITY-0002": {
		Class:    ClassArity,
		Template: "wrong number of arguments. got={{.Got}}, want={{.Want}}",
	},

	// Undefined errors
	"UNDEF-0001": {
		Class:    ClassUndefined,
		Template: "identifier not found: {{.Name}}",
	},

	// Resource errors
	"RES-0001": {
		Class:    ClassResource,
		Template: "maximum call depth exceeded ({{.Limit}})",
		Hints:    []string{"check for recursion without a base case"},
	},

	// Internal errors
	"INTERNAL-0001": {
		Class:    ClassInternal,
		Template: "cannot evaluate node of type {{.Node}}",
	},
}

// New creates a TarragonError from the catalog.
// Unknown codes produce a generic type error carrying data["message"].
func New(code string, data map[string]any) *TarragonError {
	def, ok := ErrorCatalog[code]
	if !ok {
		msg := code
		if m, ok := data["message"].(string); ok {
			msg = m
		}
		return &TarragonError{Class: ClassType, Code: code, Message: msg, Data: data}
	}

	var hints []string
	for _, h := range def.Hints {
		if rendered := renderTemplate(h, data); rendered != "" {
			hints = append(hints, rendered)
		}
	}

	return &TarragonError{
		Class:   def.Class,
		Code:    code,
		Message: renderTemplate(def.Template, data),
		Hints:   hints,
		Data:    data,
	}
}

// NewWithPosition creates a TarragonError with position information.
func NewWithPosition(code string, line, column int, data map[string]any) *TarragonError {
	err := New(code, data)
	err.Line = line
	err.Column = column
	return err
}

func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}
	return buf.String()
}

// TypeName returns the lowercase name of an object type, "STRING" -> "string".
func TypeName(t string) string {
	return strings.ToLower(t)
}

// Did-you-mean suggestions

// editDistance is the Levenshtein distance between a and b, computed over runes
// with a single reusable row.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}
	return row[len(rb)]
}

// suggestionThreshold is the largest edit distance worth suggesting for a
// word of the given length.
func suggestionThreshold(n int) int {
	switch {
	case n >= 7:
		return 3
	case n >= 4:
		return 2
	default:
		return 1
	}
}

type candidateMatch struct {
	value    string
	distance int
}

func rankCandidates(input string, candidates []string) []candidateMatch {
	if input == "" {
		return nil
	}
	lower := strings.ToLower(input)
	limit := suggestionThreshold(len([]rune(input)))

	var matches []candidateMatch
	for _, c := range candidates {
		d := editDistance(lower, strings.ToLower(c))
		if d > 0 && d <= limit {
			matches = append(matches, candidateMatch{value: c, distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].value < matches[j].value
	})
	return matches
}

// FindClosestMatch returns the candidate nearest to input, or "" when nothing
// is close enough. Exact matches are never suggested.
func FindClosestMatch(input string, candidates []string) string {
	matches := rankCandidates(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].value
}

// FindTopMatches returns up to n candidates close to input, nearest first.
func FindTopMatches(input string, candidates []string, n int) []string {
	if n <= 0 {
		return nil
	}
	var result []string
	for _, m := range rankCandidates(input, candidates) {
		if len(result) == n {
			break
		}
		result = append(result, m.value)
	}
	return result
}

// NewUndefinedIdentifier creates an unbound identifier error, with a
// "Did you mean" hint when a known name is close.
func NewUndefinedIdentifier(name string, available []string) *TarragonError {
	err := New("UNDEF-0001", map[string]any{"Name": name})
	if suggestion := FindClosestMatch(name, available); suggestion != "" {
		err.Hints = append(err.Hints, "Did you mean `"+suggestion+"`?")
	}
	return err
}
