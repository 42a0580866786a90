package parser

import (
	"strings"
	"testing"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/ast"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("parser has %d errors", len(errors))
	for _, msg := range errors {
		t.Errorf("parser error: %q", msg)
	}
	t.FailNow()
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input              string
		expectedIdentifier string
		expectedValue      string
	}{
		{"let x = 5;", "x", "5"},
		{"let y = true;", "y", "true"},
		{"let foobar = y;", "foobar", "y"},
		{"let isNil = if nil { true } else { false };", "isNil", "if nil { true } else { false }"},
		{"let s = \"hi\"", "s", `"hi"`},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)

		if len(program.Statements) != 1 {
			t.Fatalf("program.Statements does not contain 1 statement. got=%d", len(program.Statements))
		}

		stmt, ok := program.Statements[0].(*ast.LetStatement)
		if !ok {
			t.Fatalf("stmt not *ast.LetStatement. got=%T", program.Statements[0])
		}
		if stmt.Name.Value != tt.expectedIdentifier {
			t.Errorf("stmt.Name.Value not '%s'. got=%s", tt.expectedIdentifier, stmt.Name.Value)
		}
		if stmt.Value.String() != tt.expectedValue {
			t.Errorf("stmt.Value wrong. expected=%q, got=%q", tt.expectedValue, stmt.Value.String())
		}
	}
}

func TestReturnStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"return 5;", "return 5;"},
		{"return x + 1;", "return (x + 1);"},
		{"return;", "return;"},
		{"fn() { return }", "fn() { return; }"},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Errorf("expected=%q, got=%q", tt.expected, got)
		}
	}
}

func TestPrintStatement(t *testing.T) {
	program := parse(t, `print "hello" + name;`)

	stmt, ok := program.Statements[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("stmt not *ast.PrintStatement. got=%T", program.Statements[0])
	}
	if stmt.Value.String() != `("hello" + name)` {
		t.Errorf("print value wrong. got=%q", stmt.Value.String())
	}
}

func TestLiteralExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"foobar;", "foobar"},
		{"5;", int64(5)},
		{"true;", true},
		{"false;", false},
		{`"hello world";`, "hello world"},
		{"nil;", nil},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("program.Statements[0] is not ast.ExpressionStatement. got=%T", program.Statements[0])
		}

		switch want := tt.expected.(type) {
		case int64:
			lit, ok := stmt.Expression.(*ast.IntegerLiteral)
			if !ok || lit.Value != want {
				t.Errorf("%q: expected IntegerLiteral %d, got %#v", tt.input, want, stmt.Expression)
			}
		case bool:
			b, ok := stmt.Expression.(*ast.Boolean)
			if !ok || b.Value != want {
				t.Errorf("%q: expected Boolean %t, got %#v", tt.input, want, stmt.Expression)
			}
		case string:
			switch e := stmt.Expression.(type) {
			case *ast.Identifier:
				if e.Value != want {
					t.Errorf("%q: identifier value %q", tt.input, e.Value)
				}
			case *ast.StringLiteral:
				if e.Value != want {
					t.Errorf("%q: string value %q", tt.input, e.Value)
				}
			default:
				t.Errorf("%q: unexpected node %T", tt.input, e)
			}
		case nil:
			if _, ok := stmt.Expression.(*ast.NilLiteral); !ok {
				t.Errorf("%q: expected NilLiteral, got %T", tt.input, stmt.Expression)
			}
		}
	}
}

func TestPrefixAndInfixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"!5;", "(!5)"},
		{"-15;", "(-15)"},
		{"!true;", "(!true)"},
		{"5 + 5;", "(5 + 5)"},
		{"5 - 5;", "(5 - 5)"},
		{"5 * 5;", "(5 * 5)"},
		{"5 / 5;", "(5 / 5)"},
		{"5 > 5;", "(5 > 5)"},
		{"5 < 5;", "(5 < 5)"},
		{"5 >= 5;", "(5 >= 5)"},
		{"5 <= 5;", "(5 <= 5)"},
		{"5 == 5;", "(5 == 5)"},
		{"5 != 5;", "(5 != 5)"},
		{"true == false", "(true == false)"},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Errorf("expected=%q, got=%q", tt.expected, got)
		}
	}
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)\n((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 <= 4 != 3 >= 4", "((5 <= 4) != (3 >= 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"true != false", "(true != false)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"add(a * b[2], b[1], 2 * [1, 2][1])", "add((a * (b[2])), (b[1]), (2 * ([1, 2][1])))"},
		{"-a[0]", "(-(a[0]))"},
		{"f(1)(2)", "f(1)(2)"},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Errorf("expected=%q, got=%q", tt.expected, got)
		}
	}
}

func TestIfExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"if (x < y) { x }", "if (x < y) { x }"},
		{"if x < y { x }", "if (x < y) { x }"},
		{"if (x < y) { x } else { y }", "if (x < y) { x } else { y }"},
		{"if a { 1 } else if b { 2 } else { 3 }", "if a { 1 } else { if b { 2 } else { 3 } }"},
		{"if (x) { }", "if x { }"},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Errorf("expected=%q, got=%q", tt.expected, got)
		}
	}

	program := parse(t, "if (x < y) { x } else { y }")
	exp, ok := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.IfExpression)
	if !ok {
		t.Fatalf("expression is not *ast.IfExpression")
	}
	if len(exp.Consequence.Statements) != 1 {
		t.Errorf("consequence is not 1 statement. got=%d", len(exp.Consequence.Statements))
	}
	if exp.Alternative == nil || len(exp.Alternative.Statements) != 1 {
		t.Errorf("alternative not parsed: %+v", exp.Alternative)
	}
}

func TestFunctionLiteralParsing(t *testing.T) {
	program := parse(t, "fn(x, y) { x + y; }")

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	function, ok := stmt.Expression.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("stmt.Expression is not ast.FunctionLiteral. got=%T", stmt.Expression)
	}
	if len(function.Parameters) != 2 {
		t.Fatalf("function literal parameters wrong. want 2, got=%d", len(function.Parameters))
	}
	if function.Parameters[0].Value != "x" || function.Parameters[1].Value != "y" {
		t.Errorf("parameters wrong: %v", function.Parameters)
	}
	if len(function.Body.Statements) != 1 {
		t.Fatalf("function.Body.Statements has not 1 statement. got=%d", len(function.Body.Statements))
	}
	if function.Name != "" {
		t.Errorf("anonymous function has name %q", function.Name)
	}
}

func TestFunctionParameterParsing(t *testing.T) {
	tests := []struct {
		input          string
		expectedParams []string
	}{
		{input: "fn() {};", expectedParams: []string{}},
		{input: "fn(x) {};", expectedParams: []string{"x"}},
		{input: "fn(x, y, z) {};", expectedParams: []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		function := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.FunctionLiteral)

		if len(function.Parameters) != len(tt.expectedParams) {
			t.Errorf("length parameters wrong. want %d, got=%d", len(tt.expectedParams), len(function.Parameters))
			continue
		}
		for i, ident := range tt.expectedParams {
			if function.Parameters[i].Value != ident {
				t.Errorf("param %d: want %s, got %s", i, ident, function.Parameters[i].Value)
			}
		}
	}
}

func TestNamedFunctionDesugarsToLet(t *testing.T) {
	program := parse(t, "fn addTwo(x) { x + 2 } addTwo(1)")

	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}

	let, ok := program.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("expected *ast.LetStatement, got %T", program.Statements[0])
	}
	if let.Name.Value != "addTwo" {
		t.Errorf("let name = %q, want addTwo", let.Name.Value)
	}
	if !let.IsNamedFunction() {
		t.Error("IsNamedFunction should be true")
	}
	fn, ok := let.Value.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("let value is %T, want *ast.FunctionLiteral", let.Value)
	}
	if fn.Name != "addTwo" || len(fn.Parameters) != 1 {
		t.Errorf("function literal wrong: name=%q params=%d", fn.Name, len(fn.Parameters))
	}
	if got := program.String(); got != "fn addTwo(x) { (x + 2) }\naddTwo(1)" {
		t.Errorf("program.String() = %q", got)
	}
}

func TestCallExpressionParsing(t *testing.T) {
	program := parse(t, "add(1, 2 * 3, 4 + 5);")

	exp, ok := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expression is not *ast.CallExpression")
	}
	if exp.Function.String() != "add" {
		t.Errorf("function = %q", exp.Function.String())
	}
	if len(exp.Arguments) != 3 {
		t.Fatalf("wrong length of arguments. got=%d", len(exp.Arguments))
	}
	want := []string{"1", "(2 * 3)", "(4 + 5)"}
	for i, a := range exp.Arguments {
		if a.String() != want[i] {
			t.Errorf("argument %d = %q, want %q", i, a.String(), want[i])
		}
	}
}

func TestArrayAndIndexParsing(t *testing.T) {
	program := parse(t, "[1, 2 * 2, 3 + 3]")
	array, ok := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("exp not ast.ArrayLiteral")
	}
	if len(array.Elements) != 3 {
		t.Fatalf("len(array.Elements) not 3. got=%d", len(array.Elements))
	}

	program = parse(t, "[]")
	array = program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.ArrayLiteral)
	if len(array.Elements) != 0 {
		t.Errorf("empty array has %d elements", len(array.Elements))
	}

	program = parse(t, "myArray[1 + 1]")
	index, ok := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("exp not *ast.IndexExpression")
	}
	if index.Left.String() != "myArray" || index.Index.String() != "(1 + 1)" {
		t.Errorf("index expression wrong: %s", index.String())
	}
}

func TestEmptyStatementsAreSkipped(t *testing.T) {
	program := parse(t, ";; let x = 1;; x;")
	if len(program.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(program.Statements))
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let = 5;", "line 1, column 5: expected identifier, got '='"},
		{"let x 5;", "line 1, column 7: expected =, got '5'"},
		{"let x = ;", "line 1, column 9: unexpected ';'"},
		{"(1 + 2", "line 1, column 7: expected ), got 'end of input'"},
		{`let s = "open`, "line 1, column 9: unterminated string"},
		{"1 @ 2", "line 1, column 3: illegal character '@'"},
		{"1\x002 3", "line 1, column 2: illegal character '\x00'"},
		{"if x { 1", "line 1, column 9: expected }, got 'end of input'"},
		{"99999999999999999999", "line 1, column 1: could not parse '99999999999999999999' as integer"},
		{"let f = fn named() { 1 };", "line 1, column 12: named function 'named' is only allowed as a statement"},
		{"fn(x y) { }", "line 1, column 6: expected ), got 'y'"},
	}

	for _, tt := range tests {
		p := New(lexer.New(tt.input))
		p.ParseProgram()

		errs := p.Errors()
		if len(errs) == 0 {
			t.Errorf("%q: expected an error", tt.input)
			continue
		}
		if errs[0] != tt.expected {
			t.Errorf("%q: first error = %q, want %q", tt.input, errs[0], tt.expected)
		}
	}
}

func TestParserCollectsMultipleErrors(t *testing.T) {
	input := `let = 1;
let y = 2;
let z 3;
y;`

	p := New(lexer.New(input))
	program := p.ParseProgram()

	errs := p.StructuredErrors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), p.Errors())
	}
	if errs[0].Line != 1 || errs[1].Line != 3 {
		t.Errorf("error lines = %d, %d; want 1, 3", errs[0].Line, errs[1].Line)
	}
	for _, e := range errs {
		if !e.IsParseError() || e.Code != "PARSE-0001" {
			t.Errorf("unexpected error %+v", e)
		}
	}

	// the good statements survive
	if got := program.String(); got != "let y = 2;\ny" {
		t.Errorf("partial program = %q", got)
	}
}

func TestParserRecoversInsideBlocks(t *testing.T) {
	input := `let f = fn(x) {
	let a = ;
	x
};
let ok = 1;
ok`

	p := New(lexer.New(input))
	program := p.ParseProgram()

	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], "unexpected ';'") {
		t.Errorf("unexpected error text: %q", errs[0])
	}
	if got := program.String(); got != "let ok = 1;\nok" {
		t.Errorf("partial program = %q", got)
	}
}

func TestParserSkipsNestedBraces(t *testing.T) {
	input := `let f = fn(x { if x { 1 } else { 2 } };
let g = 2;`

	p := New(lexer.New(input))
	program := p.ParseProgram()

	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %v", p.Errors())
	}
	if got := program.String(); got != "let g = 2;" {
		t.Errorf("partial program = %q", got)
	}
}
