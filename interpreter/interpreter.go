// Package interpreter executes an Ember syntax tree by walking it.
//
// Statements run for their effect and report how they completed: normally,
// or with a pending return. Errors travel separately as Go errors. Keeping
// the two apart means a try block, which recovers from every error, can
// never swallow a return that passes through it.
//
// An Interpreter is not safe for concurrent use.
package interpreter

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"

	"github.com/metaphox/ember-lang/ast"
)

// EvalError reports a failure while executing a program: an undefined name,
// an operand of the wrong type, an unknown operator or node.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string { return "eval error: " + e.Msg }

func errorf(format string, args ...any) *EvalError {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// completion says how a statement finished.
type completion int

const (
	normal completion = iota
	returning
)

// result is the outcome of executing a statement. value is set only when
// kind is returning.
type result struct {
	kind  completion
	value Value
}

// Interpreter holds the current environment and the print destination.
type Interpreter struct {
	env *Environment
	out io.Writer
	log log.Logger

	ctx   context.Context
	depth int
}

// New creates an Interpreter with an empty environment that prints to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{
		env: NewEnvironment(),
		out: out,
		log: log.New("pkg", "interpreter"),
		ctx: context.Background(),
	}
}

// Environment returns the current environment.
func (i *Interpreter) Environment() *Environment { return i.env }

// Run executes prog's statements in order against the interpreter's
// environment. Bindings made by one Run are visible to the next.
func (i *Interpreter) Run(prog *ast.Program) error {
	return i.RunContext(context.Background(), prog)
}

// RunContext is Run with a context that is checked before every statement
// and every loop pass. Cancelling ctx is the only way to stop a program that
// loops forever; the error it produces is not caught by try.
func (i *Interpreter) RunContext(ctx context.Context, prog *ast.Program) error {
	i.ctx = ctx
	defer func() { i.ctx = context.Background() }()

	res, err := i.executeBlock(prog.Statements)
	if err != nil {
		return err
	}
	if res.kind == returning {
		i.log.Debug("Return at top level ends the program", "value", res.value)
	}
	return nil
}

// executeBlock runs stmts in order and stops early on a return.
func (i *Interpreter) executeBlock(stmts []ast.Statement) (result, error) {
	for _, stmt := range stmts {
		res, err := i.execute(stmt)
		if err != nil || res.kind == returning {
			return res, err
		}
	}
	return result{}, nil
}

func (i *Interpreter) execute(stmt ast.Statement) (result, error) {
	if err := i.ctx.Err(); err != nil {
		return result{}, err
	}

	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		v, err := i.evaluate(s.Initializer)
		if err != nil {
			return result{}, err
		}
		i.env.Set(s.Name, v)

	case *ast.FunctionDeclaration:
		i.env.Declare(s)

	case *ast.IfStatement:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return result{}, err
		}
		if truthy(cond) {
			return i.executeBlock(s.Then)
		}
		if s.Else != nil {
			return i.executeBlock(s.Else)
		}

	case *ast.WhileStatement:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return result{}, err
			}
			if !truthy(cond) {
				break
			}
			res, err := i.executeBlock(s.Body)
			if err != nil || res.kind == returning {
				return res, err
			}
			if err := i.ctx.Err(); err != nil {
				return result{}, err
			}
		}

	case *ast.TryStatement:
		res, err := i.executeBlock(s.TryBlock)
		if err == nil {
			return res, nil
		}
		if i.ctx.Err() != nil {
			return result{}, err
		}
		i.log.Debug("Recovered error in try block", "err", err)
		return i.executeBlock(s.CatchBlock)

	case *ast.PrintStatement:
		v, err := i.evaluate(s.Argument)
		if err != nil {
			return result{}, err
		}
		if _, err := fmt.Fprintln(i.out, v.String()); err != nil {
			return result{}, err
		}

	case *ast.ReturnStatement:
		v, err := i.evaluate(s.Argument)
		if err != nil {
			return result{}, err
		}
		return result{kind: returning, value: v}, nil

	case *ast.ExpressionStatement:
		if _, err := i.evaluate(s.Expression); err != nil {
			return result{}, err
		}

	default:
		return result{}, errorf("unknown statement type %T", stmt)
	}
	return result{}, nil
}

func (i *Interpreter) evaluate(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		switch v := e.Value.(type) {
		case int64:
			return Number(v), nil
		case string:
			return String(v), nil
		}
		return nil, errorf("unsupported literal %v", e.Value)

	case *ast.Identifier:
		v, ok := i.env.Get(e.Name)
		if !ok {
			return nil, errorf("undefined variable %s", e.Name)
		}
		return v, nil

	case *ast.Grouping:
		return i.evaluate(e.Expression)

	case *ast.UnaryExpression:
		right, err := i.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		return unary(e.Operator, right)

	case *ast.BinaryExpression:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		return binary(e.Operator, left, right)

	case *ast.FunctionCall:
		return i.call(e)
	}
	return nil, errorf("unknown expression type %T", expr)
}

// call runs a user function. Arguments are evaluated in the caller's
// environment; the body runs in a copy of it with the parameters bound, and
// the caller's environment is restored however the body ends.
func (i *Interpreter) call(c *ast.FunctionCall) (Value, error) {
	fn, ok := i.env.Function(c.Callee)
	if !ok {
		if _, isVar := i.env.Get(c.Callee); isVar {
			return nil, errorf("%s is not a function", c.Callee)
		}
		return nil, errorf("undefined function %s", c.Callee)
	}

	args := make([]Value, len(c.Args))
	for n, arg := range c.Args {
		v, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args[n] = v
	}
	if len(args) != len(fn.Params) {
		return nil, errorf("function %s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}

	caller := i.env
	i.env = caller.callFrame(fn.Params, args)
	i.depth++
	defer func() {
		i.env = caller
		i.depth--
	}()
	i.log.Trace("Calling function", "name", fn.Name, "args", len(args), "depth", i.depth)

	res, err := i.executeBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	if res.kind == returning {
		return res.value, nil
	}
	return Undefined{}, nil
}
