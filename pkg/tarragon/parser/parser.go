package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/ast"
	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
)

// Precedence levels for operators
const (
	_ int = iota
	LOWEST
	EQUALS      // ==
	LESSGREATER // > or <
	SUM         // +
	PRODUCT     // *
	PREFIX      // -X or !X
	CALL        // myFunction(X)
	INDEX       // array[index]
)

// precedences maps tokens to their precedence
var precedences = map[lexer.TokenType]int{
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.LTE:      LESSGREATER,
	lexer.GTE:      LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.SLASH:    PRODUCT,
	lexer.ASTERISK: PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
}

// Precedence returns the binding power of an infix token, LOWEST for
// anything that is not an infix operator.
func Precedence(t lexer.TokenType) int {
	if prec, ok := precedences[t]; ok {
		return prec
	}
	return LOWEST
}

// Parser represents the parser
type Parser struct {
	l *lexer.Lexer

	errors  []*perrors.TarragonError
	handled int // errors already recovered from by synchronize

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// New creates a new parser instance
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolean)
	p.registerPrefix(lexer.FALSE, p.parseBoolean)
	p.registerPrefix(lexer.NIL, p.parseNil)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.IF, p.parseIfExpression)
	p.registerPrefix(lexer.FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(lexer.ILLEGAL, p.parseIllegal)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, tt := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.SLASH, lexer.ASTERISK,
		lexer.EQ, lexer.NOT_EQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns parser errors as "line L, column C: message" strings.
func (p *Parser) Errors() []string {
	result := make([]string, len(p.errors))
	for i, err := range p.errors {
		if err.Line > 0 {
			result[i] = fmt.Sprintf("line %d, column %d: %s", err.Line, err.Column, err.Message)
		} else {
			result[i] = err.Message
		}
	}
	return result
}

// StructuredErrors returns every syntax error found, in source order.
func (p *Parser) StructuredErrors() []*perrors.TarragonError {
	return p.errors
}

func (p *Parser) addError(code string, tok lexer.Token, data map[string]any) {
	p.errors = append(p.errors, perrors.NewWithPosition(code, tok.Line, tok.Column, data))
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the next token has the given type and records an
// error otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t lexer.TokenType) {
	p.addError("PARSE-0001", p.peekToken, map[string]any{
		"Expected": describeTokenType(t),
		"Got":      displayLiteral(p.peekToken),
	})
}

func (p *Parser) noPrefixParseFnError(tok lexer.Token) {
	p.addError("PARSE-0002", tok, map[string]any{"Token": displayLiteral(tok)})
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole input. Statements that fail to parse are
// left out of the program and reported through Errors.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = p.parseStatements(lexer.EOF)
	return program
}

// parseStatements parses until end (or EOF) without consuming it.
func (p *Parser) parseStatements(end lexer.TokenType) []ast.Statement {
	statements := []ast.Statement{}

	for !p.curTokenIs(end) && !p.curTokenIs(lexer.EOF) {
		if p.curTokenIs(lexer.SEMICOLON) {
			p.nextToken()
			continue
		}

		before := len(p.errors)
		stmt := p.parseStatement()
		if len(p.errors) > p.handled {
			p.synchronize()
			p.handled = len(p.errors)
		}
		if len(p.errors) == before && stmt != nil {
			statements = append(statements, stmt)
		}
		p.nextToken()
	}

	return statements
}

// synchronize skips the rest of a broken statement: up to a ';' or to just
// before the next statement keyword or closing brace, ignoring anything nested
// in braces.
func (p *Parser) synchronize() {
	depth := 0
	if p.curTokenIs(lexer.LBRACE) {
		depth++
	}
	for {
		if depth == 0 && p.curTokenIs(lexer.SEMICOLON) {
			return
		}
		switch p.peekToken.Type {
		case lexer.EOF:
			return
		case lexer.LET, lexer.RETURN, lexer.PRINT, lexer.RBRACE:
			if depth == 0 {
				return
			}
			if p.peekTokenIs(lexer.RBRACE) {
				depth--
			}
		case lexer.LBRACE:
			depth++
		}
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.PRINT:
		return p.parsePrintStatement()
	case lexer.FUNCTION:
		if p.peekTokenIs(lexer.IDENT) {
			return p.parseNamedFunction()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

// parseNamedFunction turns 'fn name(params) { body }' into a let binding.
func (p *Parser) parseNamedFunction() ast.Statement {
	fnToken := p.curToken
	p.nextToken()
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	lit := &ast.FunctionLiteral{Token: fnToken, Name: name.Value}
	if !p.parseFunctionRest(lit) {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return &ast.LetStatement{Token: fnToken, Name: name, Value: lit}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	if p.peekTokenIs(lexer.RBRACE) || p.peekTokenIs(lexer.EOF) {
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

// parseExpression parses expressions using Pratt parsing
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}

	leftExp := prefix()

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("PARSE-0003", p.curToken, map[string]any{"Literal": p.curToken.Literal})
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.Boolean{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parseNil() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

// parseIllegal reports a token the lexer could not classify.
func (p *Parser) parseIllegal() ast.Expression {
	if strings.HasPrefix(p.curToken.Literal, `"`) {
		p.addError("PARSE-0004", p.curToken, map[string]any{})
	} else {
		p.addError("PARSE-0005", p.curToken, map[string]any{"Char": p.curToken.Literal})
	}
	return nil
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)

	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)

	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	array := &ast.ArrayLiteral{Token: p.curToken}
	array.Elements = p.parseExpressionList(lexer.RBRACKET)
	return array
}

// parseIfExpression handles 'if cond { } else { }' with or without parentheses
// around cond, and 'else if' chains.
func (p *Parser) parseIfExpression() ast.Expression {
	expression := &ast.IfExpression{Token: p.curToken}

	p.nextToken()
	expression.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	expression.Consequence = p.parseBlockStatement()

	if !p.peekTokenIs(lexer.ELSE) {
		return expression
	}
	p.nextToken()

	if p.peekTokenIs(lexer.IF) {
		p.nextToken()
		elseTok := p.curToken
		nested := p.parseIfExpression()
		if nested == nil {
			return nil
		}
		expression.Alternative = &ast.BlockStatement{
			Token:      elseTok,
			Statements: []ast.Statement{&ast.ExpressionStatement{Token: elseTok, Expression: nested}},
		}
		return expression
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	expression.Alternative = p.parseBlockStatement()

	return expression
}

// parseBlockStatement expects curToken on '{' and leaves it on the matching '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.nextToken()
	block.Statements = p.parseStatements(lexer.RBRACE)

	if !p.curTokenIs(lexer.RBRACE) {
		p.addError("PARSE-0001", p.curToken, map[string]any{
			"Expected": "}",
			"Got":      displayLiteral(p.curToken),
		})
	}

	return block
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Token: p.curToken}

	if p.peekTokenIs(lexer.IDENT) {
		p.addError("PARSE-0006", p.peekToken, map[string]any{"Name": p.peekToken.Literal})
		return nil
	}

	if !p.parseFunctionRest(lit) {
		return nil
	}
	return lit
}

// parseFunctionRest parses '(params) { body }' into lit.
func (p *Parser) parseFunctionRest(lit *ast.FunctionLiteral) bool {
	if !p.expectPeek(lexer.LPAREN) {
		return false
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return false
	}
	lit.Parameters = params

	if !p.expectPeek(lexer.LBRACE) {
		return false
	}
	lit.Body = p.parseBlockStatement()

	return true
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	identifiers := []*ast.Identifier{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return identifiers, true
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil, false
	}
	identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		if !p.expectPeek(lexer.IDENT) {
			return nil, false
		}
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}

	return identifiers, true
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}
	exp.Arguments = p.parseExpressionList(lexer.RPAREN)
	return exp
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}

	return exp
}

// parseExpressionList parses comma-separated expressions up to end.
func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

// describeTokenType names a token type the way users write it.
func describeTokenType(t lexer.TokenType) string {
	switch t {
	case lexer.IDENT:
		return "identifier"
	case lexer.INT:
		return "integer"
	case lexer.STRING:
		return "string"
	case lexer.EOF:
		return "end of input"
	}
	return t.String()
}

func displayLiteral(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return tok.Literal
}
