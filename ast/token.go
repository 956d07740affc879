// Package ast defines the token types and the syntax tree shared by the Ember
// lexer, parser and interpreter.
//
// Tokens are the smallest meaningful units of an Ember source file. A token
// carries its type, the text it was scanned from and, for NUMBER tokens, the
// decoded integer value. Tokens keep no source position: their order in the
// stream is the only location information the pipeline has.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
// The zero value (0) is reserved and not a valid token.
type TokenType int

const (
	// ILLEGAL is never produced by a successful scan; it is the zero value.
	ILLEGAL TokenType = iota

	// ── Literals ───────────────────────────────────────────────────────────────

	// NUMBER is a decimal integer literal: [0-9]+
	NUMBER
	// STRING is a double-quoted literal. The text between the quotes is kept
	// verbatim; there are no escape sequences.
	STRING
	// IDENT is an identifier: [a-zA-Z]+ that is not a keyword.
	IDENT

	// ── Keywords ───────────────────────────────────────────────────────────────

	// LET declares (or redeclares) a variable: let x = 42
	LET
	// FUNC declares a named function: func add(a, b) { return a + b }
	FUNC
	// RETURN leaves the current function call: return x
	RETURN
	// IF begins a conditional: if x < 10 then { ... }
	IF
	// THEN separates an if condition from its block.
	THEN
	// ELSE introduces the alternative block of an if.
	ELSE
	// WHILE begins a conditional loop: while i < 10 { ... }
	WHILE
	// TRY begins an error-recovery block: try { ... } catch { ... }
	TRY
	// CATCH introduces the recovery block of a try.
	CATCH
	// PRINT writes a value followed by a newline: print x
	PRINT

	// ── Symbols ────────────────────────────────────────────────────────────────

	// EQUAL is '='. In a let it separates name and initializer; inside an
	// expression it is the equality operator.
	EQUAL
	// PLUS is '+', addition or string concatenation.
	PLUS
	// MINUS is '-', subtraction or prefix negation.
	MINUS
	// STAR is '*'.
	STAR
	// SLASH is '/'.
	SLASH
	// LPAREN is '('.
	LPAREN
	// RPAREN is ')'.
	RPAREN
	// LBRACE is '{'.
	LBRACE
	// RBRACE is '}'.
	RBRACE
	// COMMA is ','.
	COMMA
	// GREATER is '>'.
	GREATER
	// LESS is '<'.
	LESS
	// BANG is '!'. As a prefix it is logical negation; between two operands it
	// is the inequality operator.
	BANG
	// AMPERSAND is '&'. It is scanned but no grammar rule accepts it.
	AMPERSAND
	// PIPE is '|'. It is scanned but no grammar rule accepts it.
	PIPE
)

var tokenNames = map[TokenType]string{
	ILLEGAL:   "ILLEGAL",
	NUMBER:    "NUMBER",
	STRING:    "STRING",
	IDENT:     "IDENT",
	LET:       "LET",
	FUNC:      "FUNC",
	RETURN:    "RETURN",
	IF:        "IF",
	THEN:      "THEN",
	ELSE:      "ELSE",
	WHILE:     "WHILE",
	TRY:       "TRY",
	CATCH:     "CATCH",
	PRINT:     "PRINT",
	EQUAL:     "EQUAL",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	COMMA:     "COMMA",
	GREATER:   "GREATER",
	LESS:      "LESS",
	BANG:      "BANG",
	AMPERSAND: "AMPERSAND",
	PIPE:      "PIPE",
}

// String returns the upper-case name of the token type, e.g. "LBRACE".
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords maps the literal text of every Ember keyword to its TokenType.
// The lexer consults this map when it finishes scanning a word.
var keywords = map[string]TokenType{
	"let":    LET,
	"func":   FUNC,
	"return": RETURN,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"while":  WHILE,
	"try":    TRY,
	"catch":  CATCH,
	"print":  PRINT,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// symbols maps each single-character symbol to its TokenType.
var symbols = map[byte]TokenType{
	'=': EQUAL,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	',': COMMA,
	'>': GREATER,
	'<': LESS,
	'!': BANG,
	'&': AMPERSAND,
	'|': PIPE,
}

// LookupSymbol returns the TokenType for a single-character symbol and
// whether ch is one.
func LookupSymbol(ch byte) (TokenType, bool) {
	tt, ok := symbols[ch]
	return tt, ok
}

// Token is a single lexical unit produced by the Ember lexer.
//
// Fields:
//   - Type: the category of this token (see TokenType constants)
//   - Literal: the scanned text; for STRING the text between the quotes
//   - Int: the decoded value of a NUMBER token, zero otherwise
type Token struct {
	Type    TokenType
	Literal string
	Int     int64
}

// String renders the token as KIND or KIND(payload), which is the form used
// in error messages and test output.
func (t Token) String() string {
	switch t.Type {
	case NUMBER:
		return fmt.Sprintf("NUMBER(%d)", t.Int)
	case STRING:
		return fmt.Sprintf("STRING(%q)", t.Literal)
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Literal)
	}
	return t.Type.String()
}
