package interpreter

import (
	"math"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/runtime"
)

// evaluateExpression returns nil when the expression produced no value.
func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.ListLiteral:
		return i.evaluateListLiteral(n)
	case *ast.DictLiteral:
		return i.evaluateDictLiteral(n)
	case *ast.Identifier:
		return i.evaluateIdentifier(n)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n)
	case *ast.IndexAssignment:
		return i.evaluateIndexAssignment(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	case *ast.InputExpression:
		return i.evaluateInput(n)
	default:
		return nil, diag.ErrorAt(diag.CategoryInternal, node.Position(), "unsupported expression type: %s", node.NodeType())
	}
}

// evaluateOperand evaluates a sub-expression whose value is required.
func (i *Interpreter) evaluateOperand(node ast.Expression, role string) (runtime.Value, error) {
	val, err := i.evaluateExpression(node)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, diag.ErrorAt(diag.CategoryType, node.Position(), "%s has no value", role)
	}
	return val, nil
}

func (i *Interpreter) evaluateListLiteral(lit *ast.ListLiteral) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(lit.Elements))
	for _, el := range lit.Elements {
		val, err := i.evaluateOperand(el, "list element")
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return runtime.NewList(elements), nil
}

func (i *Interpreter) evaluateDictLiteral(lit *ast.DictLiteral) (runtime.Value, error) {
	dict := runtime.NewDict()
	for _, entry := range lit.Entries {
		val, err := i.evaluateOperand(entry.Value, "dict value")
		if err != nil {
			return nil, err
		}
		dict.Set(literalKey(entry.Key), val)
	}
	return dict, nil
}

func literalKey(key ast.DictKey) runtime.Key {
	switch key.Kind {
	case ast.KeyNumber:
		return runtime.Key{Kind: runtime.KindNumber, Num: key.Num}
	case ast.KeyBoolean:
		return runtime.Key{Kind: runtime.KindBoolean, Bool: key.Bool}
	default:
		return runtime.Key{Kind: runtime.KindString, Str: key.Str}
	}
}

func (i *Interpreter) evaluateIdentifier(id *ast.Identifier) (runtime.Value, error) {
	if val, ok := i.scopes.Lookup(id.Name); ok {
		return val, nil
	}
	return nil, diag.ErrorAt(diag.CategoryName, id.Position(), "variable '%s' is not defined", id.Name)
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand)
	if err != nil || operand == nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.UnaryOperatorNot:
		b, ok := operand.(runtime.BoolValue)
		if !ok {
			return nil, diag.ErrorAt(diag.CategoryType, expr.Position(), "cannot apply 'not' to %s", kindName(operand))
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	default:
		return nil, diag.ErrorAt(diag.CategoryInternal, expr.Position(), "unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Value, error) {
	if expr.Operator == ast.OpIs {
		return i.evaluateIs(expr)
	}
	left, err := i.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, nil
	}
	return i.applyBinaryOperator(expr, left, right)
}

// evaluateIs tests the runtime kind of the left operand against the type
// name written on the right. The right side is never evaluated.
func (i *Interpreter) evaluateIs(expr *ast.BinaryExpression) (runtime.Value, error) {
	id, ok := expr.Right.(*ast.Identifier)
	if !ok {
		return nil, diag.ErrorAt(diag.CategoryType, expr.Right.Position(), "right side of 'is' must be a type name")
	}
	kind, ok := runtime.KindByName(id.Name)
	if !ok {
		return nil, diag.ErrorAt(diag.CategoryType, id.Position(), "unknown type '%s'", id.Name)
	}
	left, err := i.evaluateExpression(expr.Left)
	if err != nil || left == nil {
		return nil, err
	}
	return runtime.BoolValue{Val: left.Kind() == kind}, nil
}

// evaluateAssignment binds in the current scope. A value-less right side
// leaves the binding untouched.
func (i *Interpreter) evaluateAssignment(expr *ast.AssignmentExpression) (runtime.Value, error) {
	val, err := i.evaluateExpression(expr.Value)
	if err != nil || val == nil {
		return nil, err
	}
	i.scopes.Assign(expr.Target.Name, val)
	return val, nil
}

func (i *Interpreter) evaluateIndexExpression(expr *ast.IndexExpression) (runtime.Value, error) {
	container, err := i.evaluateExpression(expr.Container)
	if err != nil || container == nil {
		return nil, err
	}
	index, err := i.evaluateExpression(expr.Index)
	if err != nil || index == nil {
		return nil, err
	}
	switch c := container.(type) {
	case *runtime.ListValue:
		pos, err := listPosition(c, index, expr.Index.Position())
		if err != nil {
			return nil, err
		}
		return c.Elements[pos], nil
	case *runtime.DictValue:
		key, err := dictKey(index, expr.Index.Position())
		if err != nil {
			return nil, err
		}
		val, ok := c.Get(key)
		if !ok {
			return nil, diag.ErrorAt(diag.CategoryIndex, expr.Index.Position(), "key %s not found in dict", runtime.Display(index))
		}
		return val, nil
	default:
		return nil, diag.ErrorAt(diag.CategoryType, expr.Position(), "cannot index %s", kindName(container))
	}
}

// evaluateIndexAssignment mutates an existing list or dict in place and
// returns the written value.
func (i *Interpreter) evaluateIndexAssignment(expr *ast.IndexAssignment) (runtime.Value, error) {
	container, err := i.evaluateIdentifier(expr.Container)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateOperand(expr.Index, "index")
	if err != nil {
		return nil, err
	}
	val, err := i.evaluateOperand(expr.Value, "assigned value")
	if err != nil {
		return nil, err
	}
	switch c := container.(type) {
	case *runtime.ListValue:
		pos, err := listPosition(c, index, expr.Index.Position())
		if err != nil {
			return nil, err
		}
		c.Elements[pos] = val
	case *runtime.DictValue:
		key, err := dictKey(index, expr.Index.Position())
		if err != nil {
			return nil, err
		}
		c.Set(key, val)
	default:
		return nil, diag.ErrorAt(diag.CategoryType, expr.Position(), "indexed assignment requires a List or Dict, got %s", kindName(container))
	}
	return val, nil
}

// listPosition truncates a numeric index and bounds-checks it.
func listPosition(list *runtime.ListValue, index runtime.Value, pos diag.Pos) (int, error) {
	n, ok := index.(runtime.NumberValue)
	if !ok {
		return 0, diag.ErrorAt(diag.CategoryType, pos, "list index must be a Number, got %s", kindName(index))
	}
	idx := math.Trunc(n.Val)
	if math.IsNaN(idx) || idx < 0 || idx >= float64(len(list.Elements)) {
		return 0, diag.ErrorAt(diag.CategoryIndex, pos, "list index %s out of range (length %d)", runtime.FormatNumber(n.Val), len(list.Elements))
	}
	return int(idx), nil
}

func dictKey(index runtime.Value, pos diag.Pos) (runtime.Key, error) {
	key, ok := runtime.KeyOf(index)
	if !ok {
		return runtime.Key{}, diag.ErrorAt(diag.CategoryIndex, pos, "dict key must be a String, Number, or Boolean, got %s", kindName(index))
	}
	return key, nil
}

func (i *Interpreter) evaluateInput(expr *ast.InputExpression) (runtime.Value, error) {
	prompt := ""
	if expr.Prompt != nil {
		val, err := i.evaluateOperand(expr.Prompt, "input prompt")
		if err != nil {
			return nil, err
		}
		s, ok := val.(runtime.StringValue)
		if !ok {
			return nil, diag.ErrorAt(diag.CategoryType, expr.Prompt.Position(), "input prompt must be a String, got %s", kindName(val))
		}
		prompt = s.Val
	}
	line, err := i.input.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	return CoerceInput(line), nil
}

// kindName names a value's kind in error messages.
func kindName(v runtime.Value) string {
	if v == nil {
		return "no value"
	}
	return v.Kind().String()
}
