package evaluator

import (
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
)

func evalPrefixExpression(tok lexer.Token, operator string, right Object, env *Environment) Object {
	switch operator {
	case "!":
		return nativeBoolToBooleanObject(!IsTruthy(right))
	case "-":
		integer, ok := right.(*Integer)
		if !ok {
			return newError(env, tok, "TYPE-0002", map[string]any{"Operator": operator, "Right": right.Type()})
		}
		return &Integer{Value: -integer.Value}
	default:
		return newError(env, tok, "TYPE-0002", map[string]any{"Operator": operator, "Right": right.Type()})
	}
}

func evalInfixExpression(tok lexer.Token, operator string, left, right Object, env *Environment) Object {
	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfixExpression(tok, operator, left.(*Integer), right.(*Integer), env)
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ:
		return evalStringInfixExpression(tok, operator, left.(*String), right.(*String), env)
	case operator == "==":
		return nativeBoolToBooleanObject(ObjectsEqual(left, right))
	case operator == "!=":
		return nativeBoolToBooleanObject(!ObjectsEqual(left, right))
	case left.Type() != right.Type():
		return newTypeMismatchError(env, tok, left, operator, right)
	default:
		return newUnknownInfixError(env, tok, left, operator, right)
	}
}

// evalIntegerInfixExpression wraps on overflow like int64 arithmetic and
// truncates division toward zero.
func evalIntegerInfixExpression(tok lexer.Token, operator string, left, right *Integer, env *Environment) Object {
	l, r := left.Value, right.Value

	switch operator {
	case "+":
		return &Integer{Value: l + r}
	case "-":
		return &Integer{Value: l - r}
	case "*":
		return &Integer{Value: l * r}
	case "/":
		if r == 0 {
			return newError(env, tok, "OP-0002", map[string]any{})
		}
		return &Integer{Value: l / r}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	case "==":
		return nativeBoolToBooleanObject(l == r)
	case "!=":
		return nativeBoolToBooleanObject(l != r)
	default:
		return newUnknownInfixError(env, tok, left, operator, right)
	}
}

// Strings support concatenation and byte-wise comparison.
func evalStringInfixExpression(tok lexer.Token, operator string, left, right *String, env *Environment) Object {
	l, r := left.Value, right.Value

	switch operator {
	case "+":
		return &String{Value: l + r}
	case "==":
		return nativeBoolToBooleanObject(l == r)
	case "!=":
		return nativeBoolToBooleanObject(l != r)
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	default:
		return newUnknownInfixError(env, tok, left, operator, right)
	}
}

func evalIndexExpression(tok lexer.Token, left, index Object, env *Environment) Object {
	array, isArray := left.(*Array)
	idx, isInt := index.(*Integer)
	if !isArray || !isInt {
		return newError(env, tok, "INDEX-0001", map[string]any{"Left": left.Type(), "Index": index.Type()})
	}

	i := idx.Value
	if i < 0 || i >= int64(len(array.Elements)) {
		return NULL
	}
	return array.Elements[i]
}
