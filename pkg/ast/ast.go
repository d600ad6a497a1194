package ast

import "calc/interpreter-go/pkg/diag"

type NodeType string

const (
	NodeIdentifier           NodeType = "Identifier"
	NodeNumberLiteral        NodeType = "NumberLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeListLiteral          NodeType = "ListLiteral"
	NodeDictLiteral          NodeType = "DictLiteral"
	NodeDictEntry            NodeType = "DictEntry"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeIndexExpression      NodeType = "IndexExpression"
	NodeIndexAssignment      NodeType = "IndexAssignment"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeInputExpression      NodeType = "InputExpression"
	NodePrintStatement       NodeType = "PrintStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodeBreakStatement       NodeType = "BreakStatement"
	NodeContinueStatement    NodeType = "ContinueStatement"
	NodeFunctionDefinition   NodeType = "FunctionDefinition"
	NodeReturnStatement      NodeType = "ReturnStatement"
)

type Node interface {
	NodeType() NodeType
	Position() diag.Pos
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Pos  diag.Pos `json:"-"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType   { return n.Type }
func (n nodeImpl) Position() diag.Pos   { return n.Pos }
func (n *nodeImpl) setPos(pos diag.Pos) { n.Pos = pos }
func (nodeImpl) isNode()                {}

// SetPos records the source position of node. Nodes built without a parser
// keep the zero position.
func SetPos(node Node, pos diag.Pos) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setPos(diag.Pos) }); ok {
		setter.setPos(pos)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

// KeyKind tags the scalar kind of a dict literal key.
type KeyKind string

const (
	KeyString  KeyKind = "string"
	KeyNumber  KeyKind = "number"
	KeyBoolean KeyKind = "boolean"
)

// DictKey is a dict literal key, resolved to a scalar at parse time.
type DictKey struct {
	Kind KeyKind `json:"kind"`
	Str  string  `json:"str,omitempty"`
	Num  float64 `json:"num,omitempty"`
	Bool bool    `json:"bool,omitempty"`
}

func StringKey(value string) DictKey  { return DictKey{Kind: KeyString, Str: value} }
func NumberKey(value float64) DictKey { return DictKey{Kind: KeyNumber, Num: value} }
func BooleanKey(value bool) DictKey   { return DictKey{Kind: KeyBoolean, Bool: value} }

type DictEntry struct {
	nodeImpl

	Key   DictKey    `json:"key"`
	Value Expression `json:"value"`
}

func NewDictEntry(key DictKey, value Expression) *DictEntry {
	return &DictEntry{nodeImpl: newNodeImpl(NodeDictEntry), Key: key, Value: value}
}

// DictLiteral keeps its entries in source order; later duplicates win at
// evaluation time.
type DictLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Entries []*DictEntry `json:"entries"`
}

func NewDictLiteral(entries []*DictEntry) *DictLiteral {
	return &DictLiteral{nodeImpl: newNodeImpl(NodeDictLiteral), Entries: entries}
}

// Expressions

type UnaryOperator string

const (
	UnaryOperatorNot UnaryOperator = "!"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryOperator string

const (
	OpAdd          BinaryOperator = "+"
	OpSubtract     BinaryOperator = "-"
	OpMultiply     BinaryOperator = "*"
	OpDivide       BinaryOperator = "/"
	OpModulo       BinaryOperator = "%"
	OpPower        BinaryOperator = "**"
	OpEqual        BinaryOperator = "=="
	OpNotEqual     BinaryOperator = "!="
	OpLess         BinaryOperator = "<"
	OpGreater      BinaryOperator = ">"
	OpLessEqual    BinaryOperator = "<="
	OpGreaterEqual BinaryOperator = ">="
	OpAnd          BinaryOperator = "and"
	OpOr           BinaryOperator = "or"
	OpIs           BinaryOperator = "is"
)

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Target *Identifier `json:"target"`
	Value  Expression  `json:"value"`
}

func NewAssignmentExpression(target *Identifier, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Target: target, Value: value}
}

// IndexExpression reads container[index]; whether the container is a list or
// a dict is decided at evaluation time.
type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Container Expression `json:"container"`
	Index     Expression `json:"index"`
}

func NewIndexExpression(container, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Container: container, Index: index}
}

// IndexAssignment writes container[index] = value in place. Only a single
// level of indexing on a named container is representable.
type IndexAssignment struct {
	nodeImpl
	expressionMarker
	statementMarker

	Container *Identifier `json:"container"`
	Index     Expression  `json:"index"`
	Value     Expression  `json:"value"`
}

func NewIndexAssignment(container *Identifier, index, value Expression) *IndexAssignment {
	return &IndexAssignment{nodeImpl: newNodeImpl(NodeIndexAssignment), Container: container, Index: index, Value: value}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

// InputExpression requests one line of text. Prompt may be nil.
type InputExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Prompt Expression `json:"prompt,omitempty"`
}

func NewInputExpression(prompt Expression) *InputExpression {
	return &InputExpression{nodeImpl: newNodeImpl(NodeInputExpression), Prompt: prompt}
}
