package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(orEmpty(elements))
}

func Entry(key DictKey, value Expression) *DictEntry {
	return NewDictEntry(key, value)
}

func Dict(entries ...*DictEntry) *DictLiteral {
	return NewDictLiteral(orEmpty(entries))
}

// Expression helpers.

func Bin(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryOperatorNot, operand)
}

// Neg expresses numeric negation the way the parser does, as 0 - operand.
func Neg(operand Expression) *BinaryExpression {
	return NewBinaryExpression(OpSubtract, Num(0), operand)
}

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(ID(name), value)
}

func Index(container, index Expression) *IndexExpression {
	return NewIndexExpression(container, index)
}

func IndexAssign(container string, index, value Expression) *IndexAssignment {
	return NewIndexAssignment(ID(container), index, value)
}

func Call(callee string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(callee), orEmpty(args))
}

func Input(prompt Expression) *InputExpression {
	return NewInputExpression(prompt)
}

// Statement helpers.

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Block(statements ...Statement) []Statement {
	return orEmpty(statements)
}

func If(condition Expression, body []Statement, elseBody []Statement) *IfStatement {
	return NewIfStatement(condition, body, elseBody)
}

func While(condition Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(condition, orEmpty(body))
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Fn(name string, params []string, body ...Statement) *FunctionDefinition {
	ids := make([]*Identifier, 0, len(params))
	for _, param := range params {
		ids = append(ids, ID(param))
	}
	return NewFunctionDefinition(ID(name), ids, orEmpty(body))
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

// orEmpty keeps helper-built nodes shaped like parser output, which never
// holds nil slices.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
