package interpreter

import (
	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execStatement(node ast.Statement) (completion, error) {
	switch n := node.(type) {
	case *ast.PrintStatement:
		return i.execPrint(n)
	case *ast.IfStatement:
		return i.execIf(n)
	case *ast.WhileLoop:
		return i.execWhile(n)
	case *ast.BreakStatement:
		return completion{kind: completionBreak}, nil
	case *ast.ContinueStatement:
		return completion{kind: completionContinue}, nil
	case *ast.FunctionDefinition:
		i.defineFunction(n)
		return normal(nil), nil
	case *ast.ReturnStatement:
		return i.execReturn(n)
	case ast.Expression:
		val, err := i.evaluateExpression(n)
		if err != nil {
			return completion{}, err
		}
		return normal(val), nil
	default:
		return completion{}, diag.ErrorAt(diag.CategoryInternal, node.Position(), "unsupported statement type: %s", node.NodeType())
	}
}

// execBlock runs statements in the current scope and stops at the first
// completion that is not normal.
func (i *Interpreter) execBlock(body []ast.Statement) (completion, error) {
	for _, stmt := range body {
		c, err := i.execStatement(stmt)
		if err != nil {
			return completion{}, err
		}
		if c.kind != completionNormal {
			return c, nil
		}
	}
	return normal(nil), nil
}

func (i *Interpreter) execPrint(stmt *ast.PrintStatement) (completion, error) {
	val, err := i.evaluateExpression(stmt.Expression)
	if err != nil {
		return completion{}, err
	}
	if val != nil {
		if err := i.print(val); err != nil {
			return completion{}, err
		}
	}
	return normal(nil), nil
}

func (i *Interpreter) execIf(stmt *ast.IfStatement) (completion, error) {
	ok, err := i.evaluateCondition(stmt.Condition, "if")
	if err != nil {
		return completion{}, err
	}
	if ok {
		return i.execBlock(stmt.Body)
	}
	return i.execBlock(stmt.Else)
}

func (i *Interpreter) execWhile(loop *ast.WhileLoop) (completion, error) {
	for {
		ok, err := i.evaluateCondition(loop.Condition, "while")
		if err != nil {
			return completion{}, err
		}
		if !ok {
			return normal(nil), nil
		}
		c, err := i.execBlock(loop.Body)
		if err != nil {
			return completion{}, err
		}
		switch c.kind {
		case completionBreak:
			return normal(nil), nil
		case completionReturn:
			return c, nil
		}
	}
}

func (i *Interpreter) execReturn(stmt *ast.ReturnStatement) (completion, error) {
	var result runtime.Value
	if stmt.Argument != nil {
		val, err := i.evaluateExpression(stmt.Argument)
		if err != nil {
			return completion{}, err
		}
		result = val
	}
	return completion{kind: completionReturn, value: result}, nil
}

func (i *Interpreter) evaluateCondition(expr ast.Expression, context string) (bool, error) {
	val, err := i.evaluateExpression(expr)
	if err != nil {
		return false, err
	}
	b, ok := val.(runtime.BoolValue)
	if !ok {
		return false, diag.ErrorAt(diag.CategoryType, expr.Position(), "condition in %s statement must be a Boolean, got %s", context, kindName(val))
	}
	return b.Val, nil
}
