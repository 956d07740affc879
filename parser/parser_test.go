// Package parser_test contains tests for the Ember recursive-descent parser.
//
// Each test tokenises and parses a snippet, inspects the returned AST via type
// assertions or its String form, and fails with a descriptive message on
// mismatch.
//
// Test categories:
//   - Statements:  let, func, if/else, while, try/catch, print, return
//   - Expressions: literals, identifiers, calls, prefix, infix precedence
//   - Errors:      every expectation message the grammar can produce
package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/ember-lang/ast"
	"github.com/metaphox/ember-lang/lexer"
	"github.com/metaphox/ember-lang/parser"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

// parse runs the lexer and parser on input, failing the test on any error or
// if the number of top-level statements doesn't match want.
func parse(t *testing.T, input string, wantStmts int) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(input)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	require.Len(t, prog.Statements, wantStmts, "program:\n%s", prog)
	return prog
}

// firstStmt returns the only statement of input.
func firstStmt(t *testing.T, input string) ast.Statement {
	t.Helper()
	return parse(t, input, 1).Statements[0]
}

// exprOf parses input as a single expression statement and returns the
// expression.
func exprOf(t *testing.T, input string) ast.Expression {
	t.Helper()
	es, ok := firstStmt(t, input).(*ast.ExpressionStatement)
	require.True(t, ok, "expected *ast.ExpressionStatement")
	return es.Expression
}

// parseErr parses input and returns the *ParseError it must produce.
func parseErr(t *testing.T, input string) *parser.ParseError {
	t.Helper()
	toks, err := lexer.Tokenize(input)
	require.NoError(t, err)
	_, err = parser.Parse(toks)
	require.Error(t, err)
	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
	return perr
}

// ── Statements ────────────────────────────────────────────────────────────────

func TestParse_Let(t *testing.T) {
	decl, ok := firstStmt(t, "let x = 5").(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	assert.Equal(t, &ast.Literal{Value: int64(5)}, decl.Initializer)
}

// TestParse_LetEqualityInitializer checks that only the first '=' after the
// name is the declaration separator; later ones are equality.
func TestParse_LetEqualityInitializer(t *testing.T) {
	decl := firstStmt(t, "let same = a = b").(*ast.VariableDeclaration)
	bin, ok := decl.Initializer.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.EQUAL, bin.Operator)
}

func TestParse_Func(t *testing.T) {
	fn, ok := firstStmt(t, "func add(a, b) { return a + b }").(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.ReturnStatement)
	require.True(t, ok)
	assert.Equal(t, "(a + b)", ret.Argument.String())
}

func TestParse_FuncNoParamsEmptyBody(t *testing.T) {
	fn := firstStmt(t, "func nothing() { }").(*ast.FunctionDeclaration)
	assert.Empty(t, fn.Params)
	assert.Empty(t, fn.Body)
}

func TestParse_IfElse(t *testing.T) {
	st, ok := firstStmt(t, "if 1 < 2 then { print 1 } else { print 2 }").(*ast.IfStatement)
	require.True(t, ok)
	assert.Equal(t, "(1 < 2)", st.Condition.String())
	require.Len(t, st.Then, 1)
	require.Len(t, st.Else, 1)
	assert.Equal(t, "print 1", st.Then[0].String())
	assert.Equal(t, "print 2", st.Else[0].String())
}

func TestParse_IfWithoutElse(t *testing.T) {
	st := firstStmt(t, "if x then { print x }").(*ast.IfStatement)
	assert.Nil(t, st.Else)

	st = firstStmt(t, "if x then { print x } else { }").(*ast.IfStatement)
	assert.NotNil(t, st.Else)
	assert.Empty(t, st.Else)
}

func TestParse_While(t *testing.T) {
	st, ok := firstStmt(t, "while i < 3 { print i let i = i + 1 }").(*ast.WhileStatement)
	require.True(t, ok)
	assert.Equal(t, "(i < 3)", st.Condition.String())
	require.Len(t, st.Body, 2)
	assert.IsType(t, &ast.PrintStatement{}, st.Body[0])
	assert.IsType(t, &ast.VariableDeclaration{}, st.Body[1])
}

func TestParse_TryCatch(t *testing.T) {
	st, ok := firstStmt(t, `try { boom() } catch { print "caught" }`).(*ast.TryStatement)
	require.True(t, ok)
	require.Len(t, st.TryBlock, 1)
	require.Len(t, st.CatchBlock, 1)
	assert.Equal(t, "boom()", st.TryBlock[0].String())
	assert.Equal(t, `print "caught"`, st.CatchBlock[0].String())
}

// TestParse_NestedBlocks checks that a block stops at its own closing brace.
func TestParse_NestedBlocks(t *testing.T) {
	prog := parse(t, `
func f(n) {
	if n > 0 then {
		while n > 0 { let n = n - 1 }
		return n
	}
	return 0 - 1
}
print f(3)`, 2)
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body, 2)
	inner := fn.Body[0].(*ast.IfStatement)
	require.Len(t, inner.Then, 2)
	assert.IsType(t, &ast.WhileStatement{}, inner.Then[0])
	assert.IsType(t, &ast.PrintStatement{}, prog.Statements[1])
}

// TestParse_StatementsWithoutSeparators checks that statements follow each
// other with no delimiter.
func TestParse_StatementsWithoutSeparators(t *testing.T) {
	prog := parse(t, `let a = 1 let b = 2 print a + b add(a, b)`, 4)
	assert.IsType(t, &ast.ExpressionStatement{}, prog.Statements[3])
}

// ── Expressions ───────────────────────────────────────────────────────────────

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"1 + 2 > 2", "((1 + 2) > 2)"},
		{"a < b = c > d", "((a < b) = (c > d))"},
		{"a = b ! c", "((a = b) ! c)"},
		{"-a * b", "((-a) * b)"},
		{"!a = b", "((!a) = b)"},
		{"--a", "(-(-a))"},
		{"!!a", "(!(!a))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{`"a" + f(1, g(2))`, `("a" + f(1, g(2)))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, exprOf(t, tt.input).String())
		})
	}
}

func TestParse_CallArguments(t *testing.T) {
	call, ok := exprOf(t, "f()").(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "f", call.Callee)
	assert.Empty(t, call.Args)

	call = exprOf(t, "f(1, x, 1 + 2)").(*ast.FunctionCall)
	require.Len(t, call.Args, 3)
	assert.Equal(t, &ast.Identifier{Name: "x"}, call.Args[1])
}

func TestParse_Grouping(t *testing.T) {
	g, ok := exprOf(t, "(x)").(*ast.Grouping)
	require.True(t, ok)
	assert.Equal(t, &ast.Identifier{Name: "x"}, g.Expression)
}

func TestParse_StringLiteral(t *testing.T) {
	lit, ok := exprOf(t, `"hi there"`).(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "hi there", lit.Value)
}

func TestParse_Empty(t *testing.T) {
	parse(t, "", 0)
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"let = 5", "expect variable name after 'let'"},
		{"let x 5", "expect '=' after variable name"},
		{"let x =", "expect expression, got end of input"},
		{"func (a) { }", "expect function name after 'func'"},
		{"func f a) { }", "expect '(' after function name"},
		{"func f(1) { }", "expect parameter name, got NUMBER(1)"},
		{"func f(a b) { }", "expect ')' after parameters"},
		{"func f(a) print a", "expect '{' before function body"},
		{"func f(a) { print a", "expect '}' after function body, got end of input"},
		{"if x { }", "expect 'then' after condition"},
		{"if x then print x", "expect '{' before then branch"},
		{"if x then { } else print x", "expect '{' before else branch"},
		{"while x print x", "expect '{' before while body"},
		{"try { } print 1", "expect 'catch' after try block"},
		{"try print 1", "expect '{' before try block"},
		{"try { } catch { ", "expect '}' after catch block"},
		{"print (1 + 2", "expect ')' after expression"},
		{"f(1, 2", "expect ')' after arguments"},
		{"print", "expect expression"},
		{"return }", "expect expression, got RBRACE"},
		{"a & b", "expect expression, got AMPERSAND"},
		{"}", "expect expression, got RBRACE"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parseErr(t, tt.input)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestParse_AtEnd checks that running out of tokens is flagged separately
// from a wrong token, so an interactive caller can ask for more input.
func TestParse_AtEnd(t *testing.T) {
	assert.True(t, parseErr(t, "func f(a) {").AtEnd)
	assert.True(t, parseErr(t, "print 1 +").AtEnd)
	assert.False(t, parseErr(t, "func f(a) }").AtEnd)
	assert.False(t, parseErr(t, "let 1 = 2").AtEnd)
}
