package evaluator

import (
	"sort"
	"unicode/utf8"
)

// builtins are resolved after the environment chain, so user bindings
// shadow them.
var builtins = map[string]*Builtin{
	"len":   {Name: "len", Fn: builtinLen},
	"first": {Name: "first", Fn: builtinFirst},
	"last":  {Name: "last", Fn: builtinLast},
	"rest":  {Name: "rest", Fn: builtinRest},
	"push":  {Name: "push", Fn: builtinPush},
}

// BuiltinNames returns the builtin names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// len(s) counts characters, not bytes.
func builtinLen(args ...Object) Object {
	if len(args) != 1 {
		return newArityError("len", len(args), 1)
	}

	switch arg := args[0].(type) {
	case *String:
		return &Integer{Value: int64(utf8.RuneCountInString(arg.Value))}
	case *Array:
		return &Integer{Value: int64(len(arg.Elements))}
	default:
		return newArgumentError("len", args[0], "a string or an array")
	}
}

func builtinFirst(args ...Object) Object {
	if len(args) != 1 {
		return newArityError("first", len(args), 1)
	}

	switch arg := args[0].(type) {
	case *Array:
		if len(arg.Elements) > 0 {
			return arg.Elements[0]
		}
		return NULL
	case *String:
		r, size := utf8.DecodeRuneInString(arg.Value)
		if size == 0 {
			return NULL
		}
		return &String{Value: string(r)}
	default:
		return newArgumentError("first", args[0], "an array or a string")
	}
}

func builtinLast(args ...Object) Object {
	if len(args) != 1 {
		return newArityError("last", len(args), 1)
	}

	switch arg := args[0].(type) {
	case *Array:
		if n := len(arg.Elements); n > 0 {
			return arg.Elements[n-1]
		}
		return NULL
	case *String:
		r, size := utf8.DecodeLastRuneInString(arg.Value)
		if size == 0 {
			return NULL
		}
		return &String{Value: string(r)}
	default:
		return newArgumentError("last", args[0], "an array or a string")
	}
}

// rest returns everything after the first element as a new value. It is nil
// for an empty array or string.
func builtinRest(args ...Object) Object {
	if len(args) != 1 {
		return newArityError("rest", len(args), 1)
	}

	switch arg := args[0].(type) {
	case *Array:
		n := len(arg.Elements)
		if n == 0 {
			return NULL
		}
		newElements := make([]Object, n-1)
		copy(newElements, arg.Elements[1:n])
		return &Array{Elements: newElements}
	case *String:
		_, size := utf8.DecodeRuneInString(arg.Value)
		if size == 0 {
			return NULL
		}
		return &String{Value: arg.Value[size:]}
	default:
		return newArgumentError("rest", args[0], "an array or a string")
	}
}

// push returns a new array; the argument is left unchanged.
func builtinPush(args ...Object) Object {
	if len(args) != 2 {
		return newArityError("push", len(args), 2)
	}

	arr, ok := args[0].(*Array)
	if !ok {
		return newArgumentError("push", args[0], "an array as its first argument")
	}

	n := len(arr.Elements)
	newElements := make([]Object, n+1)
	copy(newElements, arr.Elements)
	newElements[n] = args[1]
	return &Array{Elements: newElements}
}
