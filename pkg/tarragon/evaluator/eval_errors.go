package evaluator

import (
	"fmt"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/ast"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
)

// fromTarragonError wraps a catalog error as a runtime value.
func fromTarragonError(te *perrors.TarragonError) *Error {
	return &Error{
		Class:   te.Class,
		Code:    te.Code,
		Message: te.Message,
		Hints:   te.Hints,
		Line:    te.Line,
		Column:  te.Column,
		File:    te.File,
		Data:    te.Data,
	}
}

// newError builds a catalog error positioned at tok.
func newError(env *Environment, tok lexer.Token, code string, data map[string]any) *Error {
	err := fromTarragonError(perrors.New(code, data))
	err.Line = tok.Line
	err.Column = tok.Column
	err.File = env.Filename
	return err
}

// newInternalError reports a node kind Eval has no case for. A nil node has
// no position.
func newInternalError(env *Environment, node ast.Node) *Error {
	err := fromTarragonError(perrors.New("INTERNAL-0001", map[string]any{"Node": fmt.Sprintf("%T", node)}))
	err.File = env.Filename
	return err
}

// newBuiltinError builds an unpositioned error; applyFunction places it at
// the call site.
func newBuiltinError(code string, data map[string]any) *Error {
	return fromTarragonError(perrors.New(code, data))
}

func newTypeMismatchError(env *Environment, tok lexer.Token, left Object, op string, right Object) *Error {
	return newError(env, tok, "TYPE-0001", map[string]any{
		"Left":     left.Type(),
		"Operator": op,
		"Right":    right.Type(),
	})
}

func newUnknownInfixError(env *Environment, tok lexer.Token, left Object, op string, right Object) *Error {
	return newError(env, tok, "OP-0001", map[string]any{
		"Left":     left.Type(),
		"Operator": op,
		"Right":    right.Type(),
	})
}

func newArityError(function string, got, want any) *Error {
	return newBuiltinError("ARITY-0001", map[string]any{
		"Function": function,
		"Got":      got,
		"Want":     want,
	})
}

func newArgumentError(function string, got Object, expected string) *Error {
	return newBuiltinError("TYPE-0003", map[string]any{
		"Function": function,
		"Got":      got.Type(),
		"Expected": expected,
	})
}
