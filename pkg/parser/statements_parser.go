package parser

import (
	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Print:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return at(ast.NewPrintStatement(expr), tok), nil
	case lexer.If:
		return p.parseIf()
	case lexer.While:
		return p.parseWhile()
	case lexer.Break:
		p.advance()
		if p.loopDepth == 0 {
			return nil, diag.ErrorAt(diag.CategorySyntax, tok.Pos, "'break' outside loop")
		}
		return at(ast.NewBreakStatement(), tok), nil
	case lexer.Continue:
		p.advance()
		if p.loopDepth == 0 {
			return nil, diag.ErrorAt(diag.CategorySyntax, tok.Pos, "'continue' outside loop")
		}
		return at(ast.NewContinueStatement(), tok), nil
	case lexer.Def:
		return p.parseFunctionDefinition()
	case lexer.Return:
		return p.parseReturn()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return expr, nil
	}
}

// parseBlock parses `{ statements }`.
func (p *Parser) parseBlock(context string) ([]ast.Statement, error) {
	if _, err := p.expect(lexer.LBrace, context); err != nil {
		return nil, err
	}
	statements := make([]ast.Statement, 0)
	for {
		p.skipSemicolons()
		if p.check(lexer.RBrace) {
			p.advance()
			return statements, nil
		}
		if p.atEnd() {
			return nil, unexpected(p.peek())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock("to open if body")
	if err != nil {
		return nil, err
	}
	var elseBody []ast.Statement
	if _, ok := p.match(lexer.Else); ok {
		if p.check(lexer.If) {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBody = []ast.Statement{nested}
		} else {
			elseBody, err = p.parseBlock("to open else body")
			if err != nil {
				return nil, err
			}
		}
	}
	return at(ast.NewIfStatement(cond, body, elseBody), tok), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.parseBlock("to open while body")
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return at(ast.NewWhileLoop(cond, body), tok), nil
}

func (p *Parser) parseFunctionDefinition() (ast.Statement, error) {
	tok := p.advance()
	nameTok, err := p.expect(lexer.Identifier, "after def")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "after function name"); err != nil {
		return nil, err
	}
	params := make([]*ast.Identifier, 0)
	seen := make(map[string]struct{})
	if !p.check(lexer.RParen) {
		for {
			paramTok, err := p.expect(lexer.Identifier, "in parameter list")
			if err != nil {
				return nil, err
			}
			if _, dup := seen[paramTok.Text]; dup {
				return nil, diag.ErrorAt(diag.CategorySyntax, paramTok.Pos, "duplicate parameter %s", paramTok.Text)
			}
			seen[paramTok.Text] = struct{}{}
			params = append(params, at(ast.NewIdentifier(paramTok.Text), paramTok))
			if _, ok := p.match(lexer.Comma); !ok {
				break
			}
		}
	}
	if _, err := p.expect(lexer.RParen, "to close parameter list"); err != nil {
		return nil, err
	}

	savedLoops := p.loopDepth
	p.loopDepth = 0
	p.funcDepth++
	body, err := p.parseBlock("to open function body")
	p.funcDepth--
	p.loopDepth = savedLoops
	if err != nil {
		return nil, err
	}
	id := at(ast.NewIdentifier(nameTok.Text), nameTok)
	return at(ast.NewFunctionDefinition(id, params, body), tok), nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.advance()
	if p.funcDepth == 0 {
		return nil, diag.ErrorAt(diag.CategorySyntax, tok.Pos, "'return' outside function")
	}
	if !startsExpression(p.peek().Kind) {
		return at(ast.NewReturnStatement(nil), tok), nil
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return at(ast.NewReturnStatement(arg), tok), nil
}

func startsExpression(kind lexer.Kind) bool {
	switch kind {
	case lexer.Number, lexer.String, lexer.Identifier, lexer.True, lexer.False,
		lexer.LParen, lexer.LBracket, lexer.LBrace, lexer.Minus, lexer.Plus,
		lexer.Not, lexer.Input:
		return true
	default:
		return false
	}
}
