package evaluator

import (
	"strconv"
	"strings"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/ast"
	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
)

// ObjectType represents the type of objects in our language
type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	BOOLEAN_OBJ  = "BOOLEAN"
	STRING_OBJ   = "STRING"
	NULL_OBJ     = "NULL"
	RETURN_OBJ   = "RETURN_VALUE"
	ERROR_OBJ    = "ERROR"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	ARRAY_OBJ    = "ARRAY"
)

// Object represents all values in our language
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer represents integer objects
type Integer struct {
	Value int64
}

func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Type() ObjectType { return INTEGER_OBJ }

// Boolean represents boolean objects
type Boolean struct {
	Value bool
}

func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }

// String represents string objects. Inspect is unquoted.
type String struct {
	Value string
}

func (s *String) Inspect() string  { return s.Value }
func (s *String) Type() ObjectType { return STRING_OBJ }

// Null is the value of nil, of an if without a taken branch, and of
// out-of-range indexing.
type Null struct{}

func (n *Null) Inspect() string  { return "nil" }
func (n *Null) Type() ObjectType { return NULL_OBJ }

// ReturnValue carries a returned value up through enclosing blocks until the
// function call (or program) that unwraps it.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }
func (rv *ReturnValue) Type() ObjectType { return RETURN_OBJ }

// Error is a runtime error value. It propagates like a ReturnValue and stops
// the rest of the evaluation it occurs in.
type Error struct {
	Class   perrors.ErrorClass
	Code    string
	Message string
	Hints   []string
	Line    int
	Column  int
	File    string
	Data    map[string]any
}

func (e *Error) Inspect() string  { return "ERROR: " + e.Message }
func (e *Error) Type() ObjectType { return ERROR_OBJ }

// ToTarragonError converts the runtime error to the shared diagnostic type.
func (e *Error) ToTarragonError() *perrors.TarragonError {
	return &perrors.TarragonError{
		Class:   e.Class,
		Code:    e.Code,
		Message: e.Message,
		Hints:   e.Hints,
		Line:    e.Line,
		Column:  e.Column,
		File:    e.File,
		Data:    e.Data,
	}
}

// Function is a closure: parameters, body and the environment it was created in.
type Function struct {
	Name       string
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Value
	}
	if f.Name != "" {
		return "fn " + f.Name + "(" + strings.Join(params, ", ") + ")"
	}
	return "fn(" + strings.Join(params, ", ") + ")"
}

// BuiltinFunction is the native implementation behind a Builtin.
type BuiltinFunction func(args ...Object) Object

// Builtin represents a native function exposed under a fixed name.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Inspect() string  { return "builtin " + b.Name }
func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }

// Array is an ordered sequence of values. Arrays are never modified after
// construction; builtins that "change" an array return a new one.
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	elements := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elements[i] = e.Inspect()
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// IsTruthy reports whether obj counts as true in a condition.
// Only false and nil are falsy; 0, "" and [] are truthy.
func IsTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Null:
		return false
	case *Boolean:
		return obj.Value
	default:
		return true
	}
}

// ObjectsEqual compares integers, booleans, strings and nil by value and
// everything else by identity. Values of different types are never equal.
func ObjectsEqual(a, b Object) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Integer:
		return a.Value == b.(*Integer).Value
	case *Boolean:
		return a.Value == b.(*Boolean).Value
	case *String:
		return a.Value == b.(*String).Value
	case *Null:
		return true
	default:
		return a == b
	}
}

// isSignal reports whether obj must stop evaluation of the enclosing
// expression: an error, or a return still unwinding to its call.
func isSignal(obj Object) bool {
	if obj == nil {
		return false
	}
	rt := obj.Type()
	return rt == ERROR_OBJ || rt == RETURN_OBJ
}
