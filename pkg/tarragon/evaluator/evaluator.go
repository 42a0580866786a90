package evaluator

import (
	"sort"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/ast"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
)

// Eval evaluates node in env and returns its value. Runtime failures come
// back as *Error values rather than Go errors.
func Eval(node ast.Node, env *Environment) Object {
	switch node := node.(type) {

	// Statements
	case *ast.Program:
		return evalProgram(node.Statements, env)

	case *ast.ExpressionStatement:
		if node.Expression == nil {
			return NULL
		}
		return Eval(node.Expression, env)

	case *ast.BlockStatement:
		return evalBlockStatement(node, env)

	case *ast.LetStatement:
		val := Eval(node.Value, env)
		if isSignal(val) {
			return val
		}
		if fn, ok := val.(*Function); ok && fn.Name == "" {
			if _, literal := node.Value.(*ast.FunctionLiteral); literal {
				fn.Name = node.Name.Value
			}
		}
		env.Set(node.Name.Value, val)
		// Declarations evaluate to nil
		return NULL

	case *ast.ReturnStatement:
		if node.ReturnValue == nil {
			return &ReturnValue{Value: NULL}
		}
		val := Eval(node.ReturnValue, env)
		if isSignal(val) {
			return val
		}
		return &ReturnValue{Value: val}

	case *ast.PrintStatement:
		val := Eval(node.Value, env)
		if isSignal(val) {
			return val
		}
		env.Logger.LogLine(val)
		return NULL

	// Expressions
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}

	case *ast.StringLiteral:
		return &String{Value: node.Value}

	case *ast.Boolean:
		return nativeBoolToBooleanObject(node.Value)

	case *ast.NilLiteral:
		return NULL

	case *ast.PrefixExpression:
		right := Eval(node.Right, env)
		if isSignal(right) {
			return right
		}
		return evalPrefixExpression(node.Token, node.Operator, right, env)

	case *ast.InfixExpression:
		left := Eval(node.Left, env)
		if isSignal(left) {
			return left
		}
		right := Eval(node.Right, env)
		if isSignal(right) {
			return right
		}
		return evalInfixExpression(node.Token, node.Operator, left, right, env)

	case *ast.IfExpression:
		return evalIfExpression(node, env)

	case *ast.Identifier:
		return evalIdentifier(node, env)

	case *ast.FunctionLiteral:
		return &Function{Name: node.Name, Parameters: node.Parameters, Body: node.Body, Env: env}

	case *ast.CallExpression:
		function := Eval(node.Function, env)
		if isSignal(function) {
			return function
		}
		args := evalExpressions(node.Arguments, env)
		if len(args) == 1 && isSignal(args[0]) {
			return args[0]
		}
		return applyFunction(node.Token, function, args, env)

	case *ast.ArrayLiteral:
		elements := evalExpressions(node.Elements, env)
		if len(elements) == 1 && isSignal(elements[0]) {
			return elements[0]
		}
		return &Array{Elements: elements}

	case *ast.IndexExpression:
		left := Eval(node.Left, env)
		if isSignal(left) {
			return left
		}
		index := Eval(node.Index, env)
		if isSignal(index) {
			return index
		}
		return evalIndexExpression(node.Token, left, index, env)
	}

	return newInternalError(env, node)
}

// evalProgram runs top-level statements in order. A return ends the program
// with its value; an error ends it with the error.
func evalProgram(stmts []ast.Statement, env *Environment) Object {
	var result Object = NULL

	for _, statement := range stmts {
		result = Eval(statement, env)

		switch result := result.(type) {
		case *ReturnValue:
			return result.Value
		case *Error:
			return result
		}
	}

	return result
}

// evalBlockStatement is like evalProgram but leaves return values wrapped so
// they keep unwinding to the enclosing call.
func evalBlockStatement(block *ast.BlockStatement, env *Environment) Object {
	var result Object = NULL

	for _, statement := range block.Statements {
		result = Eval(statement, env)
		if isSignal(result) {
			return result
		}
	}

	return result
}

func evalIfExpression(ie *ast.IfExpression, env *Environment) Object {
	condition := Eval(ie.Condition, env)
	if isSignal(condition) {
		return condition
	}

	if IsTruthy(condition) {
		return Eval(ie.Consequence, env)
	} else if ie.Alternative != nil {
		return Eval(ie.Alternative, env)
	}
	return NULL
}

func evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}

	if builtin, ok := builtins[node.Value]; ok {
		return builtin
	}

	err := fromTarragonError(perrors.NewUndefinedIdentifier(node.Value, knownNames(env)))
	err.Line = node.Token.Line
	err.Column = node.Token.Column
	err.File = env.Filename
	return err
}

// knownNames lists every name an identifier could have meant.
func knownNames(env *Environment) []string {
	names := env.AllIdentifiers()
	for name := range builtins {
		names = append(names, name)
	}
	names = append(names, lexer.Keywords()...)
	sort.Strings(names)
	return names
}

// evalExpressions evaluates left to right. On an error or a return it
// returns a one-element slice holding only that signal.
func evalExpressions(exps []ast.Expression, env *Environment) []Object {
	result := make([]Object, 0, len(exps))

	for _, e := range exps {
		evaluated := Eval(e, env)
		if isSignal(evaluated) {
			return []Object{evaluated}
		}
		result = append(result, evaluated)
	}

	return result
}

func applyFunction(tok lexer.Token, fn Object, args []Object, env *Environment) Object {
	switch fn := fn.(type) {
	case *Function:
		if len(args) != len(fn.Parameters) {
			if fn.Name != "" {
				return newError(env, tok, "ARITY-0001", map[string]any{
					"Function": fn.Name,
					"Got":      len(args),
					"Want":     len(fn.Parameters),
				})
			}
			return newError(env, tok, "ARITY-0002", map[string]any{
				"Got":  len(args),
				"Want": len(fn.Parameters),
			})
		}

		calls := fn.Env.calls
		if calls.depth >= calls.maxDepth {
			return newError(env, tok, "RES-0001", map[string]any{"Limit": calls.maxDepth})
		}
		calls.depth++
		defer func() { calls.depth-- }()

		extendedEnv := extendFunctionEnv(fn, args)
		evaluated := Eval(fn.Body, extendedEnv)
		return unwrapReturnValue(evaluated)

	case *Builtin:
		result := fn.Fn(args...)
		if err, ok := result.(*Error); ok && err.Line == 0 {
			err.Line = tok.Line
			err.Column = tok.Column
			err.File = env.Filename
		}
		return result

	default:
		return newError(env, tok, "TYPE-0004", map[string]any{"Got": fn.Type()})
	}
}

func extendFunctionEnv(fn *Function, args []Object) *Environment {
	env := NewEnclosedEnvironment(fn.Env)

	for i, param := range fn.Parameters {
		env.Set(param.Value, args[i])
	}

	return env
}

func unwrapReturnValue(obj Object) Object {
	if returnValue, ok := obj.(*ReturnValue); ok {
		return returnValue.Value
	}
	return obj
}
