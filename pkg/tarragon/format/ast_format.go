package format

import (
	"math"
	"strings"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/ast"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/parser"
)

// atomPrecedence ranks literals, identifiers, if and fn above every operator
const atomPrecedence = parser.INDEX + 1

// FormatNode formats any AST node as Tarragon source.
func FormatNode(node ast.Node, width int) string {
	if node == nil {
		return ""
	}
	p := NewPrinter(width)
	p.formatNode(node)
	return p.String()
}

// FormatProgram formats a program, one top-level statement per line.
func FormatProgram(prog *ast.Program, width int) string {
	if prog == nil || len(prog.Statements) == 0 {
		return ""
	}
	p := NewPrinter(width)
	p.formatProgram(prog)
	return p.String()
}

// flat renders node on a single line where its structure allows
func flat(node ast.Node) string {
	p := NewPrinter(math.MaxInt32)
	p.formatNode(node)
	return p.String()
}

func (p *Printer) formatProgram(prog *ast.Program) {
	for i, stmt := range prog.Statements {
		if i > 0 {
			p.newline()
			if isFunctionDefinition(stmt) || isFunctionDefinition(prog.Statements[i-1]) {
				for range BlankLinesAroundFunctions {
					p.newline()
				}
			}
		}
		p.formatStatement(stmt, next(prog.Statements, i), true)
	}
}

func next(stmts []ast.Statement, i int) ast.Statement {
	if i+1 < len(stmts) {
		return stmts[i+1]
	}
	return nil
}

func isFunctionDefinition(stmt ast.Statement) bool {
	ls, ok := stmt.(*ast.LetStatement)
	if !ok {
		return false
	}
	_, ok = ls.Value.(*ast.FunctionLiteral)
	return ok
}

// formatStatement writes stmt and its terminator. Newlines carry no meaning
// to the parser, so an expression statement is closed with ';' whenever the
// next statement would otherwise continue it as an operand.
func (p *Printer) formatStatement(stmt ast.Statement, following ast.Statement, topLevel bool) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		p.formatLetStatement(s)
		if !s.IsNamedFunction() {
			p.write(";")
		}
	case *ast.ReturnStatement:
		p.formatReturnStatement(s)
		if topLevel || following != nil {
			p.write(";")
		}
	case *ast.PrintStatement:
		p.write("print ")
		p.formatExpression(s.Value)
		if topLevel || following != nil {
			p.write(";")
		}
	case *ast.ExpressionStatement:
		p.formatExpression(s.Expression)
		if continuesExpression(following) {
			p.write(";")
		}
	default:
		p.formatNode(stmt)
	}
}

// continuesExpression reports whether stmt starts with a token that the
// parser would read as an infix, call or index operator.
func continuesExpression(stmt ast.Statement) bool {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok || es.Expression == nil {
		return false
	}
	text := flat(es.Expression)
	return strings.HasPrefix(text, "(") || strings.HasPrefix(text, "[") || strings.HasPrefix(text, "-")
}

func (p *Printer) formatNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		p.formatProgram(n)
	case *ast.BlockStatement:
		p.formatBlockStatement(n)
	case ast.Statement:
		p.formatStatement(n, nil, false)
	case ast.Expression:
		p.formatExpression(n)
	}
}

func (p *Printer) formatLetStatement(ls *ast.LetStatement) {
	if fl, ok := ls.Value.(*ast.FunctionLiteral); ok && ls.IsNamedFunction() {
		p.formatFunction("fn "+ls.Name.Value, fl)
		return
	}
	p.write("let ")
	p.write(ls.Name.Value)
	p.write(" = ")
	p.formatExpression(ls.Value)
}

func (p *Printer) formatReturnStatement(rs *ast.ReturnStatement) {
	p.write("return")
	if rs.ReturnValue != nil {
		p.write(" ")
		p.formatExpression(rs.ReturnValue)
	}
}

// formatBlockStatement writes '{ x }' for a single simple expression that
// fits, and one statement per line otherwise.
func (p *Printer) formatBlockStatement(bs *ast.BlockStatement) {
	if bs == nil || len(bs.Statements) == 0 {
		p.write("{}")
		return
	}

	if len(bs.Statements) == 1 {
		if es, ok := bs.Statements[0].(*ast.ExpressionStatement); ok && !containsControlFlow(es.Expression) {
			inline := "{ " + flat(es.Expression) + " }"
			if p.fitsOnLine(inline, p.width) {
				p.write(inline)
				return
			}
		}
	}

	p.write("{")
	p.newline()
	p.indentInc()
	for i, stmt := range bs.Statements {
		p.writeIndent()
		p.formatStatement(stmt, next(bs.Statements, i), false)
		p.newline()
	}
	p.indentDec()
	p.writeIndent()
	p.write("}")
}

func (p *Printer) formatExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.IntegerLiteral:
		p.write(e.Token.Literal)
	case *ast.StringLiteral:
		p.write(`"` + e.Value + `"`)
	case *ast.Boolean:
		p.write(e.Token.Literal)
	case *ast.NilLiteral:
		p.write("nil")
	case *ast.ArrayLiteral:
		p.formatList("[", e.Elements, "]")
	case *ast.PrefixExpression:
		p.write(e.Operator)
		p.formatOperand(e.Right, parser.PREFIX)
	case *ast.InfixExpression:
		p.formatInfixExpression(e)
	case *ast.IfExpression:
		p.formatIfExpression(e)
	case *ast.FunctionLiteral:
		p.formatFunction("fn", e)
	case *ast.CallExpression:
		p.formatOperand(e.Function, parser.CALL)
		p.formatList("(", e.Arguments, ")")
	case *ast.IndexExpression:
		p.formatOperand(e.Left, parser.CALL)
		p.write("[")
		p.formatExpression(e.Index)
		p.write("]")
	}
}

// formatOperand parenthesizes expr when it binds more loosely than min.
func (p *Printer) formatOperand(expr ast.Expression, min int) {
	if precedenceOf(expr) < min {
		p.write("(")
		p.formatExpression(expr)
		p.write(")")
		return
	}
	p.formatExpression(expr)
}

func precedenceOf(expr ast.Expression) int {
	switch e := expr.(type) {
	case *ast.InfixExpression:
		return parser.Precedence(e.Token.Type)
	case *ast.PrefixExpression:
		return parser.PREFIX
	case *ast.CallExpression:
		return parser.CALL
	case *ast.IndexExpression:
		return parser.INDEX
	}
	return atomPrecedence
}

// Operators are left-associative, so a right operand of equal precedence
// keeps its parentheses.
func (p *Printer) formatInfixExpression(ie *ast.InfixExpression) {
	prec := parser.Precedence(ie.Token.Type)
	p.formatOperand(ie.Left, prec)
	p.write(" " + ie.Operator + " ")
	p.formatOperand(ie.Right, prec+1)
}

// formatList writes delimited items inline when they fit, one per line otherwise.
func (p *Printer) formatList(open string, items []ast.Expression, close string) {
	if len(items) == 0 {
		p.write(open + close)
		return
	}

	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = flat(item)
	}
	inline := open + strings.Join(parts, ", ") + close
	if p.fitsOnLine(inline, p.width) && (len(items) < 2 || len(inline) <= smallThreshold(p.width)) {
		p.write(inline)
		return
	}

	p.write(open)
	p.newline()
	p.indentInc()
	for i, item := range items {
		p.writeIndent()
		p.formatExpression(item)
		if i < len(items)-1 {
			p.write(",")
		}
		p.newline()
	}
	p.indentDec()
	p.writeIndent()
	p.write(close)
}

// formatFunction writes a function literal after head ("fn" or "fn name").
func (p *Printer) formatFunction(head string, fl *ast.FunctionLiteral) {
	params := make([]string, len(fl.Parameters))
	for i, param := range fl.Parameters {
		params[i] = param.Value
	}
	p.write(head + "(" + strings.Join(params, ", ") + ") ")
	p.formatBlockStatement(fl.Body)
}

func (p *Printer) formatIfExpression(ie *ast.IfExpression) {
	if canInlineIf(ie) {
		inline := formatIfInline(ie)
		if p.fitsOnLine(inline, p.width) && len(inline) <= ifElseThreshold(p.width) {
			p.write(inline)
			return
		}
	}

	p.write("if (")
	p.formatExpression(ie.Condition)
	p.write(") ")
	p.formatBlockStatement(ie.Consequence)

	if ie.Alternative == nil {
		return
	}
	if elseIf := elseIfOf(ie.Alternative); elseIf != nil {
		p.write(" else ")
		p.formatIfExpression(elseIf)
		return
	}
	p.write(" else ")
	p.formatBlockStatement(ie.Alternative)
}

// elseIfOf returns the if expression an 'else if' was parsed into, or nil.
func elseIfOf(alt *ast.BlockStatement) *ast.IfExpression {
	if len(alt.Statements) != 1 {
		return nil
	}
	es, ok := alt.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		return nil
	}
	ie, _ := es.Expression.(*ast.IfExpression)
	return ie
}

// canInlineIf accepts if/else with a single simple expression in each branch.
func canInlineIf(ie *ast.IfExpression) bool {
	return singleSimpleExpression(ie.Consequence) != nil && ie.Alternative != nil &&
		singleSimpleExpression(ie.Alternative) != nil
}

func singleSimpleExpression(bs *ast.BlockStatement) ast.Expression {
	if bs == nil || len(bs.Statements) != 1 {
		return nil
	}
	es, ok := bs.Statements[0].(*ast.ExpressionStatement)
	if !ok || containsControlFlow(es.Expression) {
		return nil
	}
	return es.Expression
}

func formatIfInline(ie *ast.IfExpression) string {
	return "if (" + flat(ie.Condition) + ") { " + flat(singleSimpleExpression(ie.Consequence)) +
		" } else { " + flat(singleSimpleExpression(ie.Alternative)) + " }"
}

// containsControlFlow reports whether expr holds an if or a multi-statement
// function body; those always get their own lines.
func containsControlFlow(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.IfExpression:
		return true
	case *ast.FunctionLiteral:
		return e.Body != nil && len(e.Body.Statements) > 1
	case *ast.PrefixExpression:
		return containsControlFlow(e.Right)
	case *ast.InfixExpression:
		return containsControlFlow(e.Left) || containsControlFlow(e.Right)
	}
	return false
}
