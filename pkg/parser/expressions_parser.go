package parser

import (
	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/lexer"
)

var comparisonOperators = map[lexer.Kind]ast.BinaryOperator{
	lexer.Equal:        ast.OpEqual,
	lexer.NotEqual:     ast.OpNotEqual,
	lexer.Less:         ast.OpLess,
	lexer.Greater:      ast.OpGreater,
	lexer.LessEqual:    ast.OpLessEqual,
	lexer.GreaterEqual: ast.OpGreaterEqual,
	lexer.Is:           ast.OpIs,
}

var additiveOperators = map[lexer.Kind]ast.BinaryOperator{
	lexer.Plus:  ast.OpAdd,
	lexer.Minus: ast.OpSubtract,
}

var multiplicativeOperators = map[lexer.Kind]ast.BinaryOperator{
	lexer.Star:    ast.OpMultiply,
	lexer.Slash:   ast.OpDivide,
	lexer.Percent: ast.OpModulo,
}

// parseExpression is the lowest precedence level. Assignment is recognised
// here once the left-hand side has been parsed.
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	assignTok, ok := p.match(lexer.Assign)
	if !ok {
		return left, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	switch target := left.(type) {
	case *ast.Identifier:
		node := ast.NewAssignmentExpression(target, value)
		ast.SetPos(node, target.Position())
		return node, nil
	case *ast.IndexExpression:
		container, ok := target.Container.(*ast.Identifier)
		if !ok {
			return nil, diag.ErrorAt(diag.CategorySyntax, target.Position(), "indexed assignment supports a single index on a named container")
		}
		node := ast.NewIndexAssignment(container, target.Index, value)
		ast.SetPos(node, target.Position())
		return node, nil
	default:
		return nil, diag.ErrorAt(diag.CategorySyntax, assignTok.Pos, "invalid assignment target")
	}
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.match(lexer.Or)
		if !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = at(ast.NewBinaryExpression(ast.OpOr, left, right), tok)
	}
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.match(lexer.And)
		if !ok {
			return left, nil
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = at(ast.NewBinaryExpression(ast.OpAnd, left, right), tok)
	}
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseBinaryLevel(comparisonOperators, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinaryLevel(additiveOperators, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinaryLevel(multiplicativeOperators, p.parsePower)
}

// parseBinaryLevel parses a left-associative run of the given operators.
func (p *Parser) parseBinaryLevel(operators map[lexer.Kind]ast.BinaryOperator, next func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		op, ok := operators[tok.Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = at(ast.NewBinaryExpression(op, left, right), tok)
	}
}

// parsePower is right-associative: 2 ** 3 ** 2 == 2 ** 9.
func (p *Parser) parsePower() (ast.Expression, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	tok, ok := p.match(lexer.Power)
	if !ok {
		return base, nil
	}
	exponent, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return at(ast.NewBinaryExpression(ast.OpPower, base, exponent), tok), nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Not:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return at(ast.NewUnaryExpression(ast.UnaryOperatorNot, operand), tok), nil
	case lexer.Minus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := at(ast.NewNumberLiteral(0), tok)
		return at(ast.NewBinaryExpression(ast.OpSubtract, zero, operand), tok), nil
	case lexer.Plus:
		p.advance()
		return p.parseUnary()
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.match(lexer.LBracket)
		if !ok {
			return expr, nil
		}
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket, "to close index"); err != nil {
			return nil, err
		}
		expr = at(ast.NewIndexExpression(expr, index), tok)
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "to close parenthesis"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.Number:
		p.advance()
		return at(ast.NewNumberLiteral(tok.Num), tok), nil
	case lexer.String:
		p.advance()
		return at(ast.NewStringLiteral(tok.Text), tok), nil
	case lexer.True, lexer.False:
		p.advance()
		return at(ast.NewBooleanLiteral(tok.Kind == lexer.True), tok), nil
	case lexer.Identifier:
		p.advance()
		id := at(ast.NewIdentifier(tok.Text), tok)
		if !p.check(lexer.LParen) {
			return id, nil
		}
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return at(ast.NewFunctionCall(id, args), tok), nil
	case lexer.LBracket:
		return p.parseListLiteral()
	case lexer.LBrace:
		return p.parseDictLiteral()
	case lexer.Input:
		return p.parseInput()
	default:
		return nil, unexpected(tok)
	}
}
