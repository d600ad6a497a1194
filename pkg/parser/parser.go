// Package parser builds calc ASTs from token sequences by recursive descent
// with explicit precedence climbing.
package parser

import (
	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/lexer"
)

// Parser consumes a finite token slice. It tracks function and loop nesting so
// misplaced return/break/continue are rejected before evaluation.
type Parser struct {
	tokens    []lexer.Token
	pos       int
	funcDepth int
	loopDepth int
}

// New returns a parser over tokens. A trailing EOF token is optional.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse turns tokens into an ordered list of statements.
func Parse(tokens []lexer.Token) ([]ast.Statement, error) {
	return New(tokens).ParseProgram()
}

// ParseSource tokenizes and parses src.
func ParseSource(src string) ([]ast.Statement, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses statements until the tokens are exhausted.
func (p *Parser) ParseProgram() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for {
		p.skipSemicolons()
		if p.atEnd() {
			return statements, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

func (p *Parser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	var pos diag.Pos
	if n := len(p.tokens); n > 0 {
		pos = p.tokens[n-1].Pos
	}
	return lexer.Token{Kind: lexer.EOF, Pos: pos}
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) atEnd() bool {
	return p.check(lexer.EOF)
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// match consumes the current token when it has one of kinds.
func (p *Parser) match(kinds ...lexer.Kind) (lexer.Token, bool) {
	tok := p.peek()
	for _, kind := range kinds {
		if tok.Kind == kind {
			p.advance()
			return tok, true
		}
	}
	return tok, false
}

func (p *Parser) expect(kind lexer.Kind, context string) (lexer.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		want := lexer.Token{Kind: kind}
		return tok, diag.ErrorAt(diag.CategorySyntax, tok.Pos, "expected %s %s, got %s", want.Describe(), context, tok.Describe())
	}
	return p.advance(), nil
}

func (p *Parser) skipSemicolons() {
	for p.check(lexer.Semicolon) {
		p.advance()
	}
}

func unexpected(tok lexer.Token) error {
	if tok.Kind == lexer.EOF {
		return diag.ErrorAt(diag.CategorySyntax, tok.Pos, "unexpected end of input")
	}
	return diag.ErrorAt(diag.CategorySyntax, tok.Pos, "unexpected token %s", tok.Describe())
}

func at[T ast.Node](node T, tok lexer.Token) T {
	ast.SetPos(node, tok.Pos)
	return node
}
