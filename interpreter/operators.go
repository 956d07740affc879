package interpreter

import (
	"math"

	"github.com/metaphox/ember-lang/ast"
)

// binary applies an infix operator to two evaluated operands.
func binary(op ast.TokenType, left, right Value) (Value, error) {
	switch op {
	case ast.EQUAL:
		return Bool(left == right), nil
	case ast.BANG:
		return Bool(left != right), nil
	case ast.PLUS:
		_, ls := left.(String)
		_, rs := right.(String)
		if ls || rs {
			return String(left.String() + right.String()), nil
		}
	}

	switch op {
	case ast.PLUS, ast.MINUS, ast.STAR, ast.SLASH:
		l, lok := left.(Number)
		r, rok := right.(Number)
		if !lok || !rok {
			return nil, operandError(op, left, right)
		}
		return arithmetic(op, l, r)

	case ast.GREATER, ast.LESS:
		return compare(op, left, right)
	}
	return nil, errorf("unknown operator %s", op)
}

// arithmetic works on int64 and fails rather than wrapping when a result
// does not fit.
func arithmetic(op ast.TokenType, l, r Number) (Value, error) {
	var overflow bool
	switch op {
	case ast.PLUS:
		overflow = (r > 0 && l > math.MaxInt64-r) || (r < 0 && l < math.MinInt64-r)
		if !overflow {
			return l + r, nil
		}
	case ast.MINUS:
		overflow = (r < 0 && l > math.MaxInt64+r) || (r > 0 && l < math.MinInt64+r)
		if !overflow {
			return l - r, nil
		}
	case ast.STAR:
		p := l * r
		overflow = l != 0 && (p/l != r || (l == -1 && r == math.MinInt64))
		if !overflow {
			return p, nil
		}
	default:
		if r == 0 {
			return nil, errorf("division by zero")
		}
		overflow = l == math.MinInt64 && r == -1
		if !overflow {
			return l / r, nil
		}
	}
	return nil, errorf("integer overflow in %d %s %d", l, ast.OperatorSymbol(op), r)
}

// compare orders two numbers or two strings.
func compare(op ast.TokenType, left, right Value) (Value, error) {
	var less, greater bool
	switch l := left.(type) {
	case Number:
		r, ok := right.(Number)
		if !ok {
			return nil, operandError(op, left, right)
		}
		less, greater = l < r, l > r
	case String:
		r, ok := right.(String)
		if !ok {
			return nil, operandError(op, left, right)
		}
		less, greater = l < r, l > r
	default:
		return nil, operandError(op, left, right)
	}
	if op == ast.LESS {
		return Bool(less), nil
	}
	return Bool(greater), nil
}

// unary applies a prefix operator.
func unary(op ast.TokenType, right Value) (Value, error) {
	switch op {
	case ast.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, errorf("operator - not supported for %s", right.Type())
		}
		if n == math.MinInt64 {
			return nil, errorf("integer overflow in -(%d)", n)
		}
		return -n, nil
	case ast.BANG:
		return Bool(!truthy(right)), nil
	}
	return nil, errorf("unknown operator %s", op)
}

func operandError(op ast.TokenType, left, right Value) *EvalError {
	return errorf("operator %s not supported for %s and %s", ast.OperatorSymbol(op), left.Type(), right.Type())
}
