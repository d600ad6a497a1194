package parser

import (
	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/lexer"
)

// parseArguments parses `( expr, ... )` after a callee.
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if _, err := p.expect(lexer.LParen, "to open argument list"); err != nil {
		return nil, err
	}
	return p.parseExpressionList(lexer.RParen, "to close argument list")
}

// parseExpressionList parses comma-separated expressions up to and including
// the closing token. A trailing comma is accepted.
func (p *Parser) parseExpressionList(closing lexer.Kind, context string) ([]ast.Expression, error) {
	items := make([]ast.Expression, 0)
	for !p.check(closing) {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(closing, context); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	tok := p.advance()
	elements, err := p.parseExpressionList(lexer.RBracket, "to close list literal")
	if err != nil {
		return nil, err
	}
	return at(ast.NewListLiteral(elements), tok), nil
}

func (p *Parser) parseDictLiteral() (ast.Expression, error) {
	tok := p.advance()
	entries := make([]*ast.DictEntry, 0)
	for !p.check(lexer.RBrace) {
		keyTok := p.advance()
		key, err := dictKey(keyTok)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, "after dict key"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, at(ast.NewDictEntry(key, value), keyTok))
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(lexer.RBrace, "to close dict literal"); err != nil {
		return nil, err
	}
	return at(ast.NewDictLiteral(entries), tok), nil
}

// dictKey resolves a literal key token to its scalar key.
func dictKey(tok lexer.Token) (ast.DictKey, error) {
	switch tok.Kind {
	case lexer.String:
		return ast.StringKey(tok.Text), nil
	case lexer.Number:
		return ast.NumberKey(tok.Num), nil
	case lexer.True:
		return ast.BooleanKey(true), nil
	case lexer.False:
		return ast.BooleanKey(false), nil
	case lexer.EOF:
		return ast.DictKey{}, unexpected(tok)
	default:
		return ast.DictKey{}, diag.ErrorAt(diag.CategorySyntax, tok.Pos, "dict key must be a string, number, or boolean literal, got %s", tok.Describe())
	}
}

func (p *Parser) parseInput() (ast.Expression, error) {
	tok := p.advance()
	if _, err := p.expect(lexer.LParen, "after input"); err != nil {
		return nil, err
	}
	var prompt ast.Expression
	if !p.check(lexer.RParen) {
		var err error
		prompt, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RParen, "to close input"); err != nil {
		return nil, err
	}
	return at(ast.NewInputExpression(prompt), tok), nil
}
