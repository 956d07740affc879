// Package ast defines the Abstract Syntax Tree (AST) node types for Ember.
//
// Every source construct has a corresponding node type. The hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    VariableDeclaration, FunctionDeclaration
//	    IfStatement, WhileStatement, TryStatement
//	    PrintStatement, ReturnStatement, ExpressionStatement
//	  Expression (interface)
//	    FunctionCall, BinaryExpression, UnaryExpression
//	    Grouping, Literal, Identifier
//
// The set is closed: the marker methods are unexported, so only this package
// can add node kinds, and consumers may switch over the concrete types
// exhaustively. Nodes are never mutated after the parser builds them.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Ember AST.
type Node interface {
	// String returns a compact, source-like rendering of the node.
	// It is intended for debugging and test output, not pretty-printing.
	String() string
}

// Statement is a Node executed for its effect.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root AST node produced by the parser: the ordered list of
// top-level statements.
type Program struct {
	Statements []Statement
}

// String returns all statements, one per line, useful for snapshot testing.
func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func blockString(stmts []Statement) string {
	if len(stmts) == 0 {
		return "{ }"
	}
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// ── Statements ────────────────────────────────────────────────────────────────

// VariableDeclaration binds a name in the current environment.
//
//	let x = 42
type VariableDeclaration struct {
	Name        string
	Initializer Expression
}

func (s *VariableDeclaration) statementNode() {}
func (s *VariableDeclaration) String() string {
	return fmt.Sprintf("let %s = %s", s.Name, s.Initializer.String())
}

// FunctionDeclaration stores a named function in the current environment.
// Functions are not values: they are only ever reached by name from a call.
//
//	func add(a, b) { return a + b }
type FunctionDeclaration struct {
	Name   string
	Params []string
	Body   []Statement
}

func (s *FunctionDeclaration) statementNode() {}
func (s *FunctionDeclaration) String() string {
	return fmt.Sprintf("func %s(%s) %s", s.Name, strings.Join(s.Params, ", "), blockString(s.Body))
}

// IfStatement runs Then when Condition is truthy, otherwise Else.
// Else is nil when the source has no else branch, which is distinct from an
// empty else block.
//
//	if x < 10 then { print x } else { print 0 }
type IfStatement struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (s *IfStatement) statementNode() {}
func (s *IfStatement) String() string {
	out := fmt.Sprintf("if %s then %s", s.Condition.String(), blockString(s.Then))
	if s.Else != nil {
		out += " else " + blockString(s.Else)
	}
	return out
}

// WhileStatement is a conditional loop.
//
//	while i < 10 { let i = i + 1 }
type WhileStatement struct {
	Condition Expression
	Body      []Statement
}

func (s *WhileStatement) statementNode() {}
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while %s %s", s.Condition.String(), blockString(s.Body))
}

// TryStatement runs TryBlock and, if it raises any error, CatchBlock.
// The catch block binds no error variable.
//
//	try { boom() } catch { print "failed" }
type TryStatement struct {
	TryBlock   []Statement
	CatchBlock []Statement
}

func (s *TryStatement) statementNode() {}
func (s *TryStatement) String() string {
	return fmt.Sprintf("try %s catch %s", blockString(s.TryBlock), blockString(s.CatchBlock))
}

// PrintStatement writes the value of Argument and a newline.
type PrintStatement struct {
	Argument Expression
}

func (s *PrintStatement) statementNode() {}
func (s *PrintStatement) String() string { return "print " + s.Argument.String() }

// ReturnStatement leaves the nearest enclosing function call with the value
// of Argument. The argument is mandatory.
type ReturnStatement struct {
	Argument Expression
}

func (s *ReturnStatement) statementNode() {}
func (s *ReturnStatement) String() string { return "return " + s.Argument.String() }

// ExpressionStatement wraps an expression that appears in statement position,
// typically a bare function call. The value is discarded.
type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) String() string { return s.Expression.String() }

// ── Expressions ───────────────────────────────────────────────────────────────

// FunctionCall invokes the function declared under Callee.
// The callee is always a literal name, never a computed value.
//
//	add(1, 2)
type FunctionCall struct {
	Callee string
	Args   []Expression
}

func (e *FunctionCall) expressionNode() {}
func (e *FunctionCall) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

// BinaryExpression is a left-associative infix operation. Operator is one of
// EQUAL, BANG, GREATER, LESS, PLUS, MINUS, STAR or SLASH.
type BinaryExpression struct {
	Left     Expression
	Operator TokenType
	Right    Expression
}

func (e *BinaryExpression) expressionNode() {}
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), OperatorSymbol(e.Operator), e.Right.String())
}

// UnaryExpression is a prefix operation: MINUS (negation) or BANG (not).
type UnaryExpression struct {
	Operator TokenType
	Right    Expression
}

func (e *UnaryExpression) expressionNode() {}
func (e *UnaryExpression) String() string {
	return fmt.Sprintf("(%s%s)", OperatorSymbol(e.Operator), e.Right.String())
}

// Grouping is a parenthesised expression. It has no effect on evaluation.
// String renders only the inner expression, since operator nodes already
// print their own parentheses.
type Grouping struct {
	Expression Expression
}

func (e *Grouping) expressionNode() {}
func (e *Grouping) String() string  { return e.Expression.String() }

// Literal is a constant from the source. Value is an int64 for number
// literals and a string for string literals.
type Literal struct {
	Value any
}

func (e *Literal) expressionNode() {}
func (e *Literal) String() string {
	switch v := e.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return `"` + v + `"`
	}
	return fmt.Sprint(e.Value)
}

// Identifier is a reference to a variable.
type Identifier struct {
	Name string
}

func (e *Identifier) expressionNode() {}
func (e *Identifier) String() string  { return e.Name }

// OperatorSymbol returns the source character of an operator token type, or
// the type name for anything that is not a symbol.
func OperatorSymbol(tt TokenType) string {
	for ch, sym := range symbols {
		if sym == tt {
			return string(ch)
		}
	}
	return tt.String()
}
