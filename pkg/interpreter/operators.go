package interpreter

import (
	"fmt"
	"math"
	"strings"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/runtime"
)

// DivisionByZeroMessage is written to the warning writer when `/` has a zero
// divisor. The expression yields no value and evaluation continues.
const DivisionByZeroMessage = "Error: Division by zero"

func (i *Interpreter) applyBinaryOperator(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	switch expr.Operator {
	case ast.OpAdd:
		return add(expr, left, right)
	case ast.OpSubtract, ast.OpMultiply, ast.OpPower, ast.OpModulo:
		l, r, err := numberOperands(expr, left, right)
		if err != nil {
			return nil, err
		}
		return arithmetic(expr, l, r)
	case ast.OpDivide:
		l, r, err := numberOperands(expr, left, right)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			i.logger.Debug("division by zero", "pos", expr.Position().String())
			if _, err := fmt.Fprintln(i.warnings, DivisionByZeroMessage); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return runtime.NumberValue{Val: l / r}, nil
	case ast.OpEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.OpNotEqual:
		return runtime.BoolValue{Val: !runtime.Identical(left, right)}, nil
	case ast.OpLess, ast.OpGreater, ast.OpLessEqual, ast.OpGreaterEqual:
		return relational(expr, left, right)
	case ast.OpAnd, ast.OpOr:
		l, lok := left.(runtime.BoolValue)
		r, rok := right.(runtime.BoolValue)
		if !lok || !rok {
			return nil, operandError(expr, left, right)
		}
		if expr.Operator == ast.OpAnd {
			return runtime.BoolValue{Val: l.Val && r.Val}, nil
		}
		return runtime.BoolValue{Val: l.Val || r.Val}, nil
	default:
		return nil, diag.ErrorAt(diag.CategoryInternal, expr.Position(), "unsupported binary operator %s", expr.Operator)
	}
}

func add(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	case *runtime.ListValue:
		if r, ok := right.(*runtime.ListValue); ok {
			return l.Concat(r), nil
		}
	case *runtime.DictValue:
		if r, ok := right.(*runtime.DictValue); ok {
			return l.Merge(r), nil
		}
	}
	return nil, operandError(expr, left, right)
}

func arithmetic(expr *ast.BinaryExpression, l, r float64) (runtime.Value, error) {
	switch expr.Operator {
	case ast.OpSubtract:
		return runtime.NumberValue{Val: l - r}, nil
	case ast.OpMultiply:
		return runtime.NumberValue{Val: l * r}, nil
	case ast.OpPower:
		return runtime.NumberValue{Val: math.Pow(l, r)}, nil
	case ast.OpModulo:
		if r == 0 {
			return nil, diag.ErrorAt(diag.CategoryArithmetic, expr.Position(), "modulo by zero")
		}
		return runtime.NumberValue{Val: floorMod(l, r)}, nil
	default:
		return nil, diag.ErrorAt(diag.CategoryInternal, expr.Position(), "unsupported arithmetic operator %s", expr.Operator)
	}
}

// floorMod gives the result the sign of the divisor: -7 % 3 == 2.
func floorMod(l, r float64) float64 {
	m := math.Mod(l, r)
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}
	return m
}

func relational(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, operandError(expr, left, right)
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		case l.Val == r.Val:
			cmp = 0
		default:
			// NaN is unordered; every relation is false.
			return runtime.BoolValue{Val: false}, nil
		}
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		if !ok {
			return nil, operandError(expr, left, right)
		}
		cmp = strings.Compare(l.Val, r.Val)
	default:
		return nil, operandError(expr, left, right)
	}
	var result bool
	switch expr.Operator {
	case ast.OpLess:
		result = cmp < 0
	case ast.OpGreater:
		result = cmp > 0
	case ast.OpLessEqual:
		result = cmp <= 0
	default:
		result = cmp >= 0
	}
	return runtime.BoolValue{Val: result}, nil
}

func numberOperands(expr *ast.BinaryExpression, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, operandError(expr, left, right)
	}
	return l.Val, r.Val, nil
}

func operandError(expr *ast.BinaryExpression, left, right runtime.Value) error {
	return diag.ErrorAt(diag.CategoryType, expr.Position(), "unsupported operand types for %s: %s and %s", expr.Operator, kindName(left), kindName(right))
}
