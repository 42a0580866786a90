package tarragon

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
)

func TestEval(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let x = 5; x;", "5"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"let newAdder = fn(x) { fn(y) { x + y } }; let addTwo = newAdder(2); addTwo(3);", "5"},
		{"let arr = [1,2,3]; first(arr);", "1"},
		{"let arr = [1,2,3]; last(arr);", "3"},
		{"let arr = [1,2,3]; len(arr);", "3"},
		{"let arr = [1,2,3]; push(arr, 4);", "[1, 2, 3, 4]"},
		{"let arr = [1,2,3]; push(arr, 4); arr", "[1, 2, 3]"},
		{"[1,2][5]", "nil"},
		{`"tarra" + "gon"`, "tarragon"},
		{`let isNil = if nil { true } else { false }; isNil`, "false"},
		{"", "nil"},
	}

	for _, tt := range tests {
		result, err := Eval(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.input, err)
			continue
		}
		if got := Render(result); got != tt.expected {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEvalRuntimeError(t *testing.T) {
	result, err := Eval("1/0; print 5;", WithFilename("calc.tg"))
	if err == nil {
		t.Fatal("expected an error")
	}

	var te *perrors.TarragonError
	if !errors.As(err, &te) {
		t.Fatalf("error is %T, want *errors.TarragonError", err)
	}
	if te.Code != "OP-0002" || te.File != "calc.tg" || te.Line != 1 {
		t.Errorf("unexpected error: %+v", te)
	}
	if _, ok := result.(*evaluator.Error); !ok {
		t.Errorf("result is %T, want *evaluator.Error", result)
	}
	if Render(result) != "ERROR: division by zero" {
		t.Errorf("Render = %q", Render(result))
	}
}

func TestEvalUnboundIdentifier(t *testing.T) {
	_, err := Eval("foobar;")
	if err == nil || !strings.Contains(err.Error(), "identifier not found: foobar") {
		t.Fatalf("got %v", err)
	}
}

func TestEvalParseErrors(t *testing.T) {
	result, err := Eval("let = 5; let y 6;", WithFilename("bad.tg"))
	if result != nil {
		t.Errorf("result should be nil on parse failure, got %v", result)
	}

	var perrs ParseErrors
	if !errors.As(err, &perrs) {
		t.Fatalf("error is %T, want ParseErrors", err)
	}
	if len(perrs) != 2 {
		t.Fatalf("expected 2 parse errors, got %d: %v", len(perrs), perrs)
	}
	for _, e := range perrs {
		if e.File != "bad.tg" || !e.IsParseError() {
			t.Errorf("unexpected parse error: %+v", e)
		}
	}
	if lines := strings.Split(err.Error(), "\n"); len(lines) != 2 {
		t.Errorf("Error() should have one line per error, got %q", err.Error())
	}
}

func TestParse(t *testing.T) {
	program, errs := Parse("let x = 5; x;")
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	if program.String() != "let x = 5;\nx" {
		t.Errorf("String() = %q", program.String())
	}
}

func TestPersistentEnvironment(t *testing.T) {
	env := NewEnvironment(WithLogger(NullLogger()))

	if _, err := Eval("let counter = 1;", WithEnvironment(env)); err != nil {
		t.Fatal(err)
	}
	if _, err := Eval("let bump = fn() { counter + 1 };", WithEnvironment(env)); err != nil {
		t.Fatal(err)
	}
	result, err := Eval("bump()", WithEnvironment(env))
	if err != nil {
		t.Fatal(err)
	}
	if Render(result) != "2" {
		t.Errorf("got %s", Render(result))
	}
}

func TestEvaluate(t *testing.T) {
	program, errs := Parse("let a = 2; a * 21")
	if errs != nil {
		t.Fatal(errs)
	}
	env := NewEnvironment()
	if got := Render(Evaluate(program, env)); got != "42" {
		t.Errorf("got %s", got)
	}
	if _, ok := env.Get("a"); !ok {
		t.Error("a should be bound in the caller's environment")
	}
}

func TestWithMaxCallDepth(t *testing.T) {
	_, err := Eval("let f = fn(n) { f(n + 1) }; f(0)", WithMaxCallDepth(25))
	if err == nil || !strings.Contains(err.Error(), "maximum call depth exceeded (25)") {
		t.Fatalf("got %v", err)
	}
}

func TestPrintOutput(t *testing.T) {
	var buf bytes.Buffer
	_, err := Eval(`print "hello"; print [1, 2]; print nil;`, WithLogger(WriterLogger(&buf)))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "hello\n[1, 2]\nnil\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("let x = 10;")
	want := []string{
		"1:1 LET 'let'",
		"1:5 IDENT 'x'",
		"1:7 = '='",
		"1:9 INT '10'",
		"1:11 ; ';'",
		"1:12 EOF ''",
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if got := FormatToken(tok); got != want[i] {
			t.Errorf("tokens[%d] = %q, want %q", i, got, want[i])
		}
	}
	if tokens[len(tokens)-1].Type != lexer.EOF {
		t.Error("last token should be EOF")
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	source := `fn add(a, b) { a + b } let s = "x y"; if add(1, 2) >= 3 { [s] }`
	first := Tokenize(source)

	parts := make([]string, 0, len(first))
	for _, tok := range first {
		parts = append(parts, tok.Source())
	}
	second := Tokenize(strings.Join(parts, " "))

	if len(first) != len(second) {
		t.Fatalf("token count changed: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Literal != second[i].Literal {
			t.Errorf("token %d: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestBufferedLogger(t *testing.T) {
	l := NewBufferedLogger()
	l.Log("a", 1)
	l.LogLine("b")
	l.LogLine(&evaluator.String{Value: "c"})
	l.Log("pending")

	if got := l.Lines(); len(got) != 2 || got[0] != "a 1b" || got[1] != "c" {
		t.Errorf("Lines() = %q", got)
	}
	if got := l.String(); got != "a 1b\nc\npending" {
		t.Errorf("String() = %q", got)
	}

	l.Reset()
	if l.String() != "" || len(l.Lines()) != 0 {
		t.Error("Reset should clear everything")
	}
}

func TestRenderNil(t *testing.T) {
	if Render(nil) != "nil" {
		t.Error("Render(nil) should be nil")
	}
	if Render(evaluator.NULL) != "nil" {
		t.Error("Render(NULL) should be nil")
	}
}
