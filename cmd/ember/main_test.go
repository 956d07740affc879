package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/ember-lang/ast"
	"github.com/metaphox/ember-lang/interpreter"
	"github.com/metaphox/ember-lang/parser"
)

// writeFile creates name under a temp dir with the given content.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ember runs the command line args with stdout captured.
func ember(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"ember", "--nocolor"}, args...))
	return buf.String(), err
}

const script = `
func fact(n) {
	if n < 2 then { return 1 }
	return n * fact(n - 1)
}
print fact(5)
try { print missing } catch { print "caught" }
`

func TestRun(t *testing.T) {
	path := writeFile(t, "fact.em", script)

	out, err := ember(t, "run", path)
	require.NoError(t, err)
	assert.Equal(t, "120\ncaught\n", out)

	// A bare file argument is the same as "run".
	out, err = ember(t, path)
	require.NoError(t, err)
	assert.Equal(t, "120\ncaught\n", out)
}

func TestRun_FileErrors(t *testing.T) {
	_, err := ember(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing script file")

	_, err = ember(t, "run", filepath.Join(t.TempDir(), "absent.em"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read script")
}

// TestRun_ScriptErrors checks that output printed before an uncaught error
// is kept and the error keeps its kind.
func TestRun_ScriptErrors(t *testing.T) {
	out, err := ember(t, "run", writeFile(t, "bad.em", `print 1 print 1 / 0 print 2`))
	var eerr *interpreter.EvalError
	require.True(t, errors.As(err, &eerr), "got %v", err)
	assert.Equal(t, "1\n", out)

	out, err = ember(t, "run", writeFile(t, "syntax.em", `print 1 print (`))
	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Empty(t, out)
}

func TestTokens(t *testing.T) {
	out, err := ember(t, "tokens", writeFile(t, "t.em", `let s = "a b"`))
	require.NoError(t, err)
	for _, want := range []string{"KIND", "LET", "IDENT", "EQUAL", "STRING", `"a b"`} {
		assert.Contains(t, out, want)
	}
}

func TestAST(t *testing.T) {
	path := writeFile(t, "a.em", `print 1 + 2 * 3`)

	out, err := ember(t, "ast", path)
	require.NoError(t, err)
	assert.Equal(t, "print (1 + (2 * 3))\n", out)

	out, err = ember(t, "ast", "--dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PrintStatement")
	assert.Contains(t, out, "BinaryExpression")
	assert.NotContains(t, out, "print (1")
}

func TestPrintProgram(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.PrintStatement{Argument: &ast.Identifier{Name: "x"}},
		&ast.ExpressionStatement{Expression: &ast.FunctionCall{Callee: "f"}},
	}}

	var buf bytes.Buffer
	printProgram(&buf, prog, false)
	assert.Equal(t, "print x\nf()\n", buf.String())

	buf.Reset()
	printProgram(&buf, prog, true)
	assert.Contains(t, buf.String(), "(*ast.Identifier)")
	assert.Contains(t, buf.String(), `Callee: (string) (len=1) "f"`)
}

func TestConfigFlag(t *testing.T) {
	path := writeFile(t, "p.em", `print "ok"`)

	cfg := writeFile(t, "ember.yaml", "logLevel: error\ncacheSize: 0\n")
	out, err := ember(t, "--config", cfg, "run", path)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, err = ember(t, "--config", writeFile(t, "ember.ini", ""), "run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")

	_, err = ember(t, "--loglevel", "loud", "run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
