// Package parser implements the Ember recursive-descent parser.
//
// The parser reads the complete token slice produced by the lexer and builds
// an [ast.Program]. Statements are chosen by their leading token; expressions
// use one function per precedence level, lowest first:
//
//	equality        =  !
//	comparison      >  <
//	term            +  -
//	factor          *  /
//	unary           -  !   (prefix)
//	primary         literal, identifier, call, ( expr )
//
// Usage:
//
//	toks, err := lexer.Tokenize(source)
//	prog, err := parser.New(toks).Parse()
//
// There is no error recovery: parsing stops at the first [ParseError].
package parser

import (
	"fmt"

	"github.com/metaphox/ember-lang/ast"
)

// ParseError reports a token sequence that does not fit the grammar.
// Msg names the construct that was expected.
type ParseError struct {
	Msg string
	// AtEnd is set when the tokens ran out before the construct was complete,
	// meaning more input could still make the program valid.
	AtEnd bool
}

func (e *ParseError) Error() string { return "parse error: " + e.Msg }

// ── Parser ────────────────────────────────────────────────────────────────────

// Parser holds the token slice and a cursor into it.
// Create one with [New] and call [Parser.Parse] once.
type Parser struct {
	tokens  []ast.Token
	current int // index of the token being examined
}

// New creates a Parser over tokens.
func New(tokens []ast.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is shorthand for New(tokens).Parse().
func Parse(tokens []ast.Token) (*ast.Program, error) {
	return New(tokens).Parse()
}

// Parse consumes every token and returns the program.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
	}
	return prog, nil
}

// ── Internal token management ─────────────────────────────────────────────────

func (p *Parser) isAtEnd() bool { return p.current >= len(p.tokens) }

// check reports whether the current token has type tt. It is false at the end.
func (p *Parser) check(tt ast.TokenType) bool {
	return !p.isAtEnd() && p.tokens[p.current].Type == tt
}

// advance consumes the current token and returns it.
func (p *Parser) advance() ast.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}

// match consumes the current token if it has one of the given types.
func (p *Parser) match(types ...ast.TokenType) (ast.Token, bool) {
	for _, tt := range types {
		if p.check(tt) {
			return p.advance(), true
		}
	}
	return ast.Token{}, false
}

// expect consumes a token of type tt or fails with msg.
func (p *Parser) expect(tt ast.TokenType, msg string) (ast.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return ast.Token{}, p.errorf("%s", msg)
}

// errorf builds a ParseError naming what was found at the cursor.
func (p *Parser) errorf(format string, args ...any) *ParseError {
	if p.isAtEnd() {
		return &ParseError{Msg: fmt.Sprintf(format, args...) + ", got end of input", AtEnd: true}
	}
	return &ParseError{Msg: fmt.Sprintf(format, args...) + ", got " + p.tokens[p.current].String()}
}

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseStatement dispatches on the current token.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.tokens[p.current].Type {
	case ast.LET:
		return p.parseVariableDeclaration()
	case ast.FUNC:
		return p.parseFunctionDeclaration()
	case ast.IF:
		return p.parseIfStatement()
	case ast.WHILE:
		return p.parseWhileStatement()
	case ast.TRY:
		return p.parseTryStatement()
	case ast.PRINT:
		p.advance() // 'print'
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.PrintStatement{Argument: arg}, nil
	case ast.RETURN:
		p.advance() // 'return'
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Argument: arg}, nil
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: expr}, nil
	}
}

// parseVariableDeclaration parses `let name = expr`.
func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	p.advance() // 'let'
	name, err := p.expect(ast.IDENT, "expect variable name after 'let'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.EQUAL, "expect '=' after variable name"); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{Name: name.Literal, Initializer: init}, nil
}

// parseFunctionDeclaration parses `func name(params) { body }`.
func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	p.advance() // 'func'
	name, err := p.expect(ast.IDENT, "expect function name after 'func'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.LPAREN, "expect '(' after function name"); err != nil {
		return nil, err
	}

	params := []string{}
	if !p.check(ast.RPAREN) {
		for {
			param, err := p.expect(ast.IDENT, "expect parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Literal)
			if _, ok := p.match(ast.COMMA); !ok {
				break
			}
		}
	}
	if _, err := p.expect(ast.RPAREN, "expect ')' after parameters"); err != nil {
		return nil, err
	}

	body, err := p.parseBracedBlock("function body")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Name: name.Literal, Params: params, Body: body}, nil
}

// parseIfStatement parses `if cond then { ... } [else { ... }]`.
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.THEN, "expect 'then' after condition"); err != nil {
		return nil, err
	}
	thenBranch, err := p.parseBracedBlock("then branch")
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Condition: cond, Then: thenBranch}
	if _, ok := p.match(ast.ELSE); ok {
		elseBranch, err := p.parseBracedBlock("else branch")
		if err != nil {
			return nil, err
		}
		// An empty else block is still an else branch.
		if elseBranch == nil {
			elseBranch = []ast.Statement{}
		}
		stmt.Else = elseBranch
	}
	return stmt, nil
}

// parseWhileStatement parses `while cond { body }`.
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	p.advance() // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBracedBlock("while body")
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Condition: cond, Body: body}, nil
}

// parseTryStatement parses `try { ... } catch { ... }`.
func (p *Parser) parseTryStatement() (ast.Statement, error) {
	p.advance() // 'try'
	tryBlock, err := p.parseBracedBlock("try block")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.CATCH, "expect 'catch' after try block"); err != nil {
		return nil, err
	}
	catchBlock, err := p.parseBracedBlock("catch block")
	if err != nil {
		return nil, err
	}
	return &ast.TryStatement{TryBlock: tryBlock, CatchBlock: catchBlock}, nil
}

// parseBracedBlock consumes `{`, the block, and `}`. what names the block in
// error messages.
func (p *Parser) parseBracedBlock(what string) ([]ast.Statement, error) {
	if _, err := p.expect(ast.LBRACE, "expect '{' before "+what); err != nil {
		return nil, err
	}
	stmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RBRACE, "expect '}' after "+what); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseBlock parses statements up to, but not including, the closing brace.
// It also stops at the end of input; the caller reports the missing brace.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.check(ast.RBRACE) && !p.isAtEnd() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// ── Expression parsing ────────────────────────────────────────────────────────

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseEquality()
}

// parseBinary parses one left-associative precedence level: operand
// (op operand)*, where next parses the operands.
func (p *Parser) parseBinary(next func() (ast.Expression, error), ops ...ast.TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(ops...)
		if !ok {
			return expr, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Left: expr, Operator: op.Type, Right: right}
	}
}

// parseEquality: `=` is equality and `!` is inequality in infix position.
func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinary(p.parseComparison, ast.EQUAL, ast.BANG)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseBinary(p.parseTerm, ast.GREATER, ast.LESS)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.parseBinary(p.parseFactor, ast.PLUS, ast.MINUS)
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	return p.parseBinary(p.parseUnary, ast.STAR, ast.SLASH)
}

// parseUnary handles prefix '-' and '!'. It recurses, so `--x` and `!!x`
// nest to the right.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if op, ok := p.match(ast.MINUS, ast.BANG); ok {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: op.Type, Right: right}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	if tok, ok := p.match(ast.NUMBER); ok {
		return &ast.Literal{Value: tok.Int}, nil
	}
	if tok, ok := p.match(ast.STRING); ok {
		return &ast.Literal{Value: tok.Literal}, nil
	}
	if tok, ok := p.match(ast.IDENT); ok {
		if _, ok := p.match(ast.LPAREN); ok {
			return p.parseCall(tok.Literal)
		}
		return &ast.Identifier{Name: tok.Literal}, nil
	}
	if _, ok := p.match(ast.LPAREN); ok {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.RPAREN, "expect ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr}, nil
	}
	return nil, p.errorf("expect expression")
}

// parseCall parses the argument list after `callee(`.
func (p *Parser) parseCall(callee string) (ast.Expression, error) {
	args := []ast.Expression{}
	if !p.check(ast.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if _, ok := p.match(ast.COMMA); !ok {
				break
			}
		}
	}
	if _, err := p.expect(ast.RPAREN, "expect ')' after arguments"); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Callee: callee, Args: args}, nil
}
