package lexer

import (
	"fmt"
	"iter"
	"unicode"
	"unicode/utf8"
)

// TokenType represents different types of tokens
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT  // add, foobar, x, y, ...
	INT    // 1343456
	STRING // "foobar"

	// Operators
	ASSIGN   // =
	PLUS     // +
	MINUS    // -
	BANG     // !
	ASTERISK // *
	SLASH    // /
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=
	EQ       // ==
	NOT_EQ   // !=

	// Delimiters
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]

	// Keywords
	FUNCTION // "fn"
	LET      // "let"
	TRUE     // "true"
	FALSE    // "false"
	IF       // "if"
	ELSE     // "else"
	RETURN   // "return"
	NIL      // "nil"
	PRINT    // "print"
)

// Token represents a single token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %s, Line: %d, Column: %d}",
		t.Type.String(), t.Literal, t.Line, t.Column)
}

// Source returns the token as it would appear in source text.
// String literals get their quotes back; EOF renders as nothing.
func (t Token) Source() string {
	switch t.Type {
	case STRING:
		return `"` + t.Literal + `"`
	case EOF:
		return ""
	}
	return t.Literal
}

var tokenNames = map[TokenType]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	STRING:    "STRING",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	LTE:       "<=",
	GTE:       ">=",
	EQ:        "==",
	NOT_EQ:    "!=",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	FUNCTION:  "FUNCTION",
	LET:       "LET",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	IF:        "IF",
	ELSE:      "ELSE",
	RETURN:    "RETURN",
	NIL:       "NIL",
	PRINT:     "PRINT",
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
	"nil":    NIL,
	"print":  PRINT,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	return words
}

// Lexer represents the lexical analyzer
type Lexer struct {
	filename     string
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination (first byte)
	chRune       rune // current character as a rune
	chSize       int  // byte size of current character
	line         int
	column       int
	comments     int // line comments skipped so far
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "<input>")
}

// NewWithFilename creates a new lexer instance with a specific filename
func NewWithFilename(input string, filename string) *Lexer {
	l := &Lexer{filename: filename, input: input}
	l.Reset()
	return l
}

// Filename returns the name used in diagnostics for this input.
func (l *Lexer) Filename() string {
	return l.filename
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.position = 0
	l.readPosition = 0
	l.line = 1
	l.column = 0
	l.chSize = 1
	l.comments = 0
	l.readChar()
}

// Comments reports how many line comments have been skipped since the last
// Reset. Comments never reach the parser.
func (l *Lexer) Comments() int {
	return l.comments
}

// Tokens returns a lazy sequence over the whole input, ending with the EOF
// token. Each iteration starts again from the beginning of the input.
func (l *Lexer) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l.Reset()
		for {
			tok := l.NextToken()
			if !yield(tok) || tok.Type == EOF {
				return
			}
		}
	}
}

// readChar reads the next character and advances position.
// ASCII takes a fast path; anything else is decoded as UTF-8.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		// EOF sits one column past the last character
		if l.chSize != 0 {
			l.column++
		}
		l.ch = 0
		l.chRune = 0
		l.chSize = 0
		l.position = l.readPosition
		return
	}

	b := l.input[l.readPosition]
	if b < utf8.RuneSelf {
		l.ch = b
		l.chRune = rune(b)
		l.chSize = 1
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = b
		l.chRune = r
		l.chSize = size
	}
	l.position = l.readPosition
	l.readPosition += l.chSize

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken scans the input and returns the next token
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespaceAndComments()

	line, col := l.line, l.column

	// a NUL byte in the source is a character, not the end of input
	if l.chSize == 0 {
		return Token{Type: EOF, Literal: "", Line: line, Column: col}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: EQ, Literal: "==", Line: line, Column: col}
		} else {
			tok = newToken(ASSIGN, l.ch, line, col)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: NOT_EQ, Literal: "!=", Line: line, Column: col}
		} else {
			tok = newToken(BANG, l.ch, line, col)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: LTE, Literal: "<=", Line: line, Column: col}
		} else {
			tok = newToken(LT, l.ch, line, col)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GTE, Literal: ">=", Line: line, Column: col}
		} else {
			tok = newToken(GT, l.ch, line, col)
		}
	case '+':
		tok = newToken(PLUS, l.ch, line, col)
	case '-':
		tok = newToken(MINUS, l.ch, line, col)
	case '*':
		tok = newToken(ASTERISK, l.ch, line, col)
	case '/':
		tok = newToken(SLASH, l.ch, line, col)
	case ',':
		tok = newToken(COMMA, l.ch, line, col)
	case ';':
		tok = newToken(SEMICOLON, l.ch, line, col)
	case ':':
		tok = newToken(COLON, l.ch, line, col)
	case '(':
		tok = newToken(LPAREN, l.ch, line, col)
	case ')':
		tok = newToken(RPAREN, l.ch, line, col)
	case '{':
		tok = newToken(LBRACE, l.ch, line, col)
	case '}':
		tok = newToken(RBRACE, l.ch, line, col)
	case '[':
		tok = newToken(LBRACKET, l.ch, line, col)
	case ']':
		tok = newToken(RBRACKET, l.ch, line, col)
	case '"':
		str, terminated := l.readString()
		if !terminated {
			// the ILLEGAL literal keeps the opening quote so the parser can tell
			// an unterminated string from a stray character
			return Token{Type: ILLEGAL, Literal: `"` + str, Line: line, Column: col}
		}
		tok = Token{Type: STRING, Literal: str, Line: line, Column: col}
	default:
		if isLetterRune(l.chRune) {
			ident := l.readIdentifier()
			return Token{Type: LookupIdent(ident), Literal: ident, Line: line, Column: col}
		}
		if isDigit(l.ch) {
			return Token{Type: INT, Literal: l.readNumber(), Line: line, Column: col}
		}
		tok = Token{Type: ILLEGAL, Literal: l.input[l.position : l.position+l.chSize], Line: line, Column: col}
	}

	l.readChar()
	return tok
}

// newToken creates a new token with the given parameters
func newToken(tokenType TokenType, ch byte, line, column int) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: line, Column: column}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetterRune(l.chRune) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads the bytes between double quotes verbatim.
// Leaves the lexer on the closing quote when terminated.
func (l *Lexer) readString() (string, bool) {
	l.readChar()
	position := l.position
	for l.ch != '"' && l.chSize != 0 {
		l.readChar()
	}
	return l.input[position:l.position], l.ch == '"'
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.comments++
			for l.ch != '\n' && l.chSize != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// isLetterRune checks if a rune can start or continue an identifier.
func isLetterRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
