package ast

import (
	"testing"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
)

func ident(name string) *Identifier {
	return &Identifier{Token: lexer.Token{Type: lexer.IDENT, Literal: name}, Value: name}
}

func integer(lit string, v int64) *IntegerLiteral {
	return &IntegerLiteral{Token: lexer.Token{Type: lexer.INT, Literal: lit}, Value: v}
}

func TestString(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&LetStatement{
				Token: lexer.Token{Type: lexer.LET, Literal: "let"},
				Name:  ident("myVar"),
				Value: ident("anotherVar"),
			},
		},
	}

	if program.String() != "let myVar = anotherVar;" {
		t.Errorf("program.String() wrong. got=%q", program.String())
	}
}

func TestNodeStrings(t *testing.T) {
	body := &BlockStatement{
		Token: lexer.Token{Type: lexer.LBRACE, Literal: "{"},
		Statements: []Statement{
			&ExpressionStatement{Expression: &InfixExpression{
				Left: ident("x"), Operator: "+", Right: ident("y"),
			}},
		},
	}
	fn := &FunctionLiteral{
		Token:      lexer.Token{Type: lexer.FUNCTION, Literal: "fn"},
		Parameters: []*Identifier{ident("x"), ident("y")},
		Body:       body,
	}

	tests := []struct {
		node     Node
		expected string
	}{
		{&PrefixExpression{Operator: "-", Right: integer("5", 5)}, "(-5)"},
		{&InfixExpression{Left: integer("1", 1), Operator: "*", Right: integer("2", 2)}, "(1 * 2)"},
		{&StringLiteral{Value: "hi there"}, `"hi there"`},
		{&NilLiteral{Token: lexer.Token{Type: lexer.NIL, Literal: "nil"}}, "nil"},
		{&ArrayLiteral{Elements: []Expression{integer("1", 1), integer("2", 2)}}, "[1, 2]"},
		{&IndexExpression{Left: ident("arr"), Index: integer("0", 0)}, "(arr[0])"},
		{&CallExpression{Function: ident("add"), Arguments: []Expression{integer("1", 1), ident("b")}}, "add(1, b)"},
		{fn, "fn(x, y) { (x + y) }"},
		{&BlockStatement{}, "{ }"},
		{&ReturnStatement{Token: lexer.Token{Type: lexer.RETURN, Literal: "return"}}, "return;"},
		{&ReturnStatement{Token: lexer.Token{Type: lexer.RETURN, Literal: "return"}, ReturnValue: ident("x")}, "return x;"},
		{&PrintStatement{Token: lexer.Token{Type: lexer.PRINT, Literal: "print"}, Value: ident("x")}, "print x;"},
		{
			&IfExpression{
				Condition:   &InfixExpression{Left: ident("a"), Operator: "<", Right: ident("b")},
				Consequence: &BlockStatement{Statements: []Statement{&ExpressionStatement{Expression: ident("a")}}},
				Alternative: &BlockStatement{Statements: []Statement{&ExpressionStatement{Expression: ident("b")}}},
			},
			"if (a < b) { a } else { b }",
		},
		{
			&LetStatement{
				Token: lexer.Token{Type: lexer.FUNCTION, Literal: "fn"},
				Name:  ident("add"),
				Value: fn,
			},
			"fn add(x, y) { (x + y) }",
		},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestProgramStringJoinsStatements(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&LetStatement{Token: lexer.Token{Type: lexer.LET, Literal: "let"}, Name: ident("x"), Value: integer("5", 5)},
			&ExpressionStatement{Expression: ident("x")},
		},
	}
	if got := program.String(); got != "let x = 5;\nx" {
		t.Errorf("program.String() wrong. got=%q", got)
	}
	if got := program.TokenLiteral(); got != "let" {
		t.Errorf("TokenLiteral wrong. got=%q", got)
	}
	if got := (&Program{}).TokenLiteral(); got != "" {
		t.Errorf("empty program TokenLiteral should be empty, got=%q", got)
	}
}
