package format

import (
	"errors"
	"testing"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/parser"
)

func TestSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"let", "let x=5;x", "let x = 5;\nx\n"},
		{"precedence kept", "1+2*3", "1 + 2 * 3\n"},
		{"grouping kept", "(1+2)*3", "(1 + 2) * 3\n"},
		{"right operand grouped", "1-(2-3)", "1 - (2 - 3)\n"},
		{"redundant parens dropped", "((1-2))-3", "1 - 2 - 3\n"},
		{"prefix of group", "-(1+2)", "-(1 + 2)\n"},
		{"index of prefix", "(-a)[0]", "(-a)[0]\n"},
		{"equality chain", "a == (b == c)", "a == (b == c)\n"},
		{"double negation", "- -5", "--5\n"},
		{"string verbatim", `let s = "hi  there";`, "let s = \"hi  there\";\n"},
		{"named function", "fn add(a,b){a+b} add(1,2)", "fn add(a, b) { a + b }\n\nadd(1, 2)\n"},
		{"multi statement body", "let f = fn(x) { let y = x * 2; return y; }",
			"let f = fn(x) {\n\tlet y = x * 2;\n\treturn y\n};\n"},
		{"inline if else", "let m = if a > b { a } else { b };", "let m = if (a > b) { a } else { b };\n"},
		{"else if", "if x < 0 { -1 } else if x == 0 { 0 } else { 1 }",
			"if (x < 0) { -1 } else if (x == 0) { 0 } else { 1 }\n"},
		{"empty blocks", "fn(){}; if (x) {}", "fn() {}\nif (x) {}\n"},
		{"print", "print 1+1", "print 1 + 1;\n"},
		{"bare return", "fn f() { return; }", "fn f() {\n\treturn\n}\n"},
		{"empty program", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Source(tt.input, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Source(%q)\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStatementSeparators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a; b", "a\nb\n"},
		{"a; (b)", "a\nb\n"},
		{"a; (b + c) * 2", "a;\n(b + c) * 2\n"},
		{"a; [1]", "a;\n[1]\n"},
		{"a; -1", "a;\n-1\n"},
		{"if x { 1 }; -1", "if (x) { 1 };\n-1\n"},
	}

	for _, tt := range tests {
		got, err := Source(tt.input, 0)
		if err != nil {
			t.Fatalf("%q: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("Source(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNarrowWidthBreaksLists(t *testing.T) {
	got, err := Source("let xs = [100000, 200000, 300000];", 20)
	if err != nil {
		t.Fatal(err)
	}
	want := "let xs = [\n\t100000,\n\t200000,\n\t300000\n];\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSourceRejectsComments(t *testing.T) {
	_, err := Source("let x = 1; // keep me\n", 0)
	if !errors.Is(err, ErrHasComments) {
		t.Errorf("expected ErrHasComments, got %v", err)
	}
}

func TestSourceReportsParseErrors(t *testing.T) {
	_, err := Source("let = 1; let y 2;", 0)
	if err == nil {
		t.Fatal("expected parse errors")
	}
	if err.Error() != "line 1, column 5: expected identifier, got '='\nline 1, column 16: expected =, got '2'" {
		t.Errorf("unexpected error text: %q", err.Error())
	}
}

// Formatting must not change what a program means, and formatting twice
// must change nothing.
func TestFormattingPreservesMeaning(t *testing.T) {
	inputs := []string{
		"let newAdder = fn(x) { fn(y) { x + y } }; let addTwo = newAdder(2); addTwo(3);",
		"fn fib(n) { if (n < 2) { return n; } fib(n - 1) + fib(n - 2) } print fib(10);",
		"let a = [1, 2 * 3, [4, 5]][2][0]; !(a == 4) != false",
		"let f = fn(a, b, c) { if a { b } else if b { c } else { [a, b, c] } }; f(1, -2, 3)(4)",
		"let s = first(rest(\"hello\")) + last(\"xyz\"); len(push([], s)) >= 1",
		"a - (b - c) * (d / (e * f)) < -g <= h",
	}

	for _, input := range inputs {
		original := parseString(t, input)

		once, err := Source(input, 40)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if got := parseString(t, once); got != original {
			t.Errorf("meaning changed for %q\nformatted:\n%s\noriginal AST: %s\nnew AST:      %s", input, once, original, got)
		}

		twice, err := Source(once, 40)
		if err != nil {
			t.Fatalf("reformat of %q: %v", once, err)
		}
		if twice != once {
			t.Errorf("not idempotent:\n%s\n---\n%s", once, twice)
		}
	}
}

func parseString(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse %q: %v", src, p.Errors())
	}
	return program.String()
}

func TestFormatNode(t *testing.T) {
	p := parser.New(lexer.New("fn(x) { x * (x + 1) }"))
	program := p.ParseProgram()
	if got := FormatNode(program.Statements[0], 0); got != "fn(x) { x * (x + 1) }" {
		t.Errorf("FormatNode = %q", got)
	}
	if FormatNode(nil, 0) != "" {
		t.Error("nil node should format as empty")
	}
}
