// Package lexer implements the Ember lexer (tokeniser).
//
// The lexer converts an Ember source string into a flat slice of [ast.Token]
// values. Call [Tokenize] for the common case, or [New] and
// [Lexer.NextToken] to pull tokens one at a time.
//
// Design notes:
//   - Single-pass, left-to-right scanning with no backtracking.
//   - No global state; every [Lexer] is independent.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent].
//   - Every symbol is one character. '=' and '!' are emitted as EQUAL and
//     BANG whatever their role; the parser decides what they mean.
//   - Strings have no escape sequences, and a string without a closing quote
//     is an error rather than being cut off at end of input.
package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/metaphox/ember-lang/ast"
)

// LexError reports source text the lexer could not turn into a token.
type LexError struct {
	Msg string
	// AtEnd is set when the input ended inside a token (an open string).
	AtEnd bool
}

func (e *LexError) Error() string { return "lex error: " + e.Msg }

func errorf(format string, args ...any) *LexError {
	return &LexError{Msg: fmt.Sprintf(format, args...)}
}

// Lexer holds all state required to tokenise a single Ember source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input string // the full source text
	pos   int    // index of the next unread byte
}

// New creates a [Lexer] that tokenises the given input string.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the whole of src and returns its tokens in order.
// It stops at the first error.
func Tokenize(src string) ([]ast.Token, error) {
	return New(src).Tokenize()
}

// Tokenize drains the lexer and returns every remaining token.
func (l *Lexer) Tokenize() ([]ast.Token, error) {
	var tokens []ast.Token
	for {
		tok, ok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token from the input. Whitespace before the token
// is skipped. ok is false once the input is exhausted.
func (l *Lexer) NextToken() (tok ast.Token, ok bool, err error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return ast.Token{}, false, nil
	}

	ch := l.input[l.pos]
	switch {
	case isDigit(ch):
		tok, err = l.readNumber()
	case isLetter(ch):
		tok = l.readIdentifier()
	case ch == '"':
		tok, err = l.readString()
	default:
		tt, isSym := ast.LookupSymbol(ch)
		if !isSym {
			r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
			return ast.Token{}, false, errorf("unexpected character %q", r)
		}
		tok = ast.Token{Type: tt, Literal: string(ch)}
		l.pos++
	}
	if err != nil {
		return ast.Token{}, false, err
	}
	return tok, true, nil
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// skipWhitespace advances past every Unicode whitespace character and any
// byte order mark.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) && r != '\uFEFF' {
			return
		}
		l.pos += size
	}
}

// readIdentifier scans a maximal run of letters and classifies it.
func (l *Lexer) readIdentifier() ast.Token {
	start := l.pos
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		l.pos++
	}
	literal := l.input[start:l.pos]
	return ast.Token{Type: ast.LookupIdent(literal), Literal: literal}
}

// readNumber scans a maximal run of digits. There are no fractional or signed
// literals; a leading '-' is always a separate MINUS token.
func (l *Lexer) readNumber() (ast.Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	literal := l.input[start:l.pos]
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return ast.Token{}, errorf("number literal %s out of range", literal)
	}
	return ast.Token{Type: ast.NUMBER, Literal: literal, Int: n}, nil
}

// readString scans a double-quoted literal. The value is everything between
// the quotes, verbatim.
func (l *Lexer) readString() (ast.Token, error) {
	l.pos++ // skip opening '"'
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		err := errorf("unterminated string literal")
		err.AtEnd = true
		return ast.Token{}, err
	}
	literal := l.input[start:l.pos]
	l.pos++ // consume closing '"'
	return ast.Token{Type: ast.STRING, Literal: literal}, nil
}

// isLetter reports whether b is an ASCII letter. Identifiers are [a-zA-Z]+;
// digits and underscores never continue one.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
