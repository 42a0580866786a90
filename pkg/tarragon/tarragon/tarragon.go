// Package tarragon provides a public API for embedding the Tarragon interpreter.
//
// The simplest use evaluates a whole program in a fresh environment:
//
//	v, err := tarragon.Eval(`let add = fn(a, b) { a + b }; add(2, 3)`)
//
// Callers that need state across evaluations, like a REPL, create an
// environment once and pass it to every call with WithEnvironment.
package tarragon

import (
	"fmt"
	"strings"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/ast"
	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/parser"
)

// Environment is an alias for evaluator.Environment
type Environment = evaluator.Environment

// Object is an alias for evaluator.Object
type Object = evaluator.Object

// Option configures Parse, Eval and NewEnvironment.
type Option func(*options)

type options struct {
	env      *Environment
	logger   Logger
	filename string
	maxDepth int
}

// WithEnvironment evaluates in env instead of a fresh root environment.
func WithEnvironment(env *Environment) Option {
	return func(o *options) { o.env = env }
}

// WithLogger sends print output to l.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFilename names the source in error positions.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxCallDepth limits nested function calls.
func WithMaxCallDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ParseErrors is every syntax error found in one source text.
type ParseErrors []*perrors.TarragonError

func (pe ParseErrors) Error() string {
	msgs := make([]string, len(pe))
	for i, e := range pe {
		msgs[i] = e.String()
	}
	return strings.Join(msgs, "\n")
}

// NewEnvironment creates a root environment. Only WithLogger, WithFilename
// and WithMaxCallDepth apply.
func NewEnvironment(opts ...Option) *Environment {
	return newEnvironment(applyOptions(opts))
}

func newEnvironment(o *options) *Environment {
	env := evaluator.NewEnvironment()
	configureEnvironment(env, o)
	return env
}

func configureEnvironment(env *Environment, o *options) {
	if o.logger != nil {
		env.Logger = o.logger
	}
	if o.filename != "" {
		env.Filename = o.filename
	}
	if o.maxDepth > 0 {
		env.SetMaxCallDepth(o.maxDepth)
	}
}

// Tokenize returns every token in source, ending with EOF.
func Tokenize(source string) []lexer.Token {
	var tokens []lexer.Token
	for tok := range lexer.New(source).Tokens() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// FormatToken renders a token as `LINE:COL TYPE 'literal'`.
func FormatToken(tok lexer.Token) string {
	return fmt.Sprintf("%d:%d %s '%s'", tok.Line, tok.Column, tok.Type, tok.Literal)
}

// Parse parses source into a program. The program holds every statement that
// parsed cleanly even when errors are returned.
func Parse(source string, opts ...Option) (*ast.Program, ParseErrors) {
	o := applyOptions(opts)
	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	p := parser.New(lexer.NewWithFilename(source, filename))
	program := p.ParseProgram()

	errs := p.StructuredErrors()
	if len(errs) == 0 {
		return program, nil
	}
	out := make(ParseErrors, len(errs))
	for i, e := range errs {
		if o.filename != "" {
			e = e.WithFile(o.filename)
		}
		out[i] = e
	}
	return program, out
}

// Evaluate runs program in env and returns its value. A runtime failure is
// returned as an *evaluator.Error value.
func Evaluate(program *ast.Program, env *Environment) Object {
	return evaluator.Eval(program, env)
}

// Eval parses and evaluates source. Parse failures return ParseErrors and a
// nil value; runtime failures return the *evaluator.Error value together with
// its *errors.TarragonError form.
func Eval(source string, opts ...Option) (Object, error) {
	o := applyOptions(opts)

	program, perrs := Parse(source, opts...)
	if len(perrs) > 0 {
		return nil, perrs
	}

	env := o.env
	if env == nil {
		env = newEnvironment(o)
	} else {
		configureEnvironment(env, o)
	}

	result := Evaluate(program, env)
	if errObj, ok := result.(*evaluator.Error); ok {
		return result, errObj.ToTarragonError()
	}
	return result, nil
}

// Render returns the display text of a value: integers in decimal, booleans
// as true/false, strings unquoted, nil as nil.
func Render(obj Object) string {
	if obj == nil {
		return "nil"
	}
	return obj.Inspect()
}
