package evaluator

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultMaxCallDepth bounds nested function calls when no limit is configured.
const DefaultMaxCallDepth = 2000

// Logger receives the output of print statements.
type Logger interface {
	Log(values ...any)
	LogLine(values ...any)
}

type stdoutLogger struct{}

func (stdoutLogger) Log(values ...any) {
	fmt.Fprint(os.Stdout, formatValues(values))
}

func (stdoutLogger) LogLine(values ...any) {
	fmt.Fprintln(os.Stdout, formatValues(values))
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if obj, ok := v.(Object); ok {
			parts[i] = obj.Inspect()
			continue
		}
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// callState is shared by a root environment and every scope derived from it.
type callState struct {
	depth    int
	maxDepth int
}

// Environment maps names to values. Lookups that miss fall through to the
// enclosing scope; definitions always land in this scope.
type Environment struct {
	store    map[string]Object
	outer    *Environment
	Filename string
	Logger   Logger
	calls    *callState
}

// NewEnvironment creates a root scope that prints to stdout.
func NewEnvironment() *Environment {
	return &Environment{
		store:  make(map[string]Object),
		Logger: stdoutLogger{},
		calls:  &callState{maxDepth: DefaultMaxCallDepth},
	}
}

// NewEnclosedEnvironment creates a child scope of outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{
		store:    make(map[string]Object),
		outer:    outer,
		Filename: outer.Filename,
		Logger:   outer.Logger,
		calls:    outer.calls,
	}
}

// Get looks a name up in this scope and then in each enclosing scope.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name in this scope, replacing any earlier binding here and
// shadowing bindings in enclosing scopes.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Outer returns the enclosing scope, or nil for a root environment.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// Names returns the names bound directly in this scope, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllIdentifiers returns every name visible from this scope, sorted and
// without duplicates.
func (e *Environment) AllIdentifiers() []string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// SetMaxCallDepth changes the nesting limit for every scope sharing this
// environment's root. Values below 1 restore the default.
func (e *Environment) SetMaxCallDepth(n int) {
	if n < 1 {
		n = DefaultMaxCallDepth
	}
	e.calls.maxDepth = n
}

// MaxCallDepth reports the current nesting limit.
func (e *Environment) MaxCallDepth() int {
	return e.calls.maxDepth
}
