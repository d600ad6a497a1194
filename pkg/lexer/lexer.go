// Package lexer converts calc source text into tokens.
package lexer

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"calc/interpreter-go/pkg/diag"
)

// Lexer produces tokens one at a time. It is single-pass: once a token has been
// returned it cannot be produced again.
type Lexer struct {
	src    string
	offset int
	line   int
	column int
	done   bool
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Tokenize lexes src completely. The trailing EOF token is not included.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	for tok, err := range New(src).All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// All yields the remaining tokens, stopping after the first error. The EOF
// token is not yielded.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if tok.Kind == EOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Next returns the next token. At end of input it returns an EOF token on
// every call.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{Kind: EOF, Pos: l.pos()}, nil
	}
	l.skipTrivia()
	if l.offset >= len(l.src) {
		l.done = true
		return Token{Kind: EOF, Pos: l.pos()}, nil
	}

	start := l.pos()
	ch := l.peek()
	switch {
	case isDigit(ch) || ch == '.':
		return l.scanNumber(start)
	case ch == '"':
		return l.scanString(start)
	case ch == '_' || unicode.IsLetter(ch):
		return l.scanWord(start), nil
	}
	return l.scanOperator(start)
}

func (l *Lexer) pos() diag.Pos {
	return diag.Pos{Line: l.line, Column: l.column}
}

func (l *Lexer) peek() rune {
	if l.offset >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.offset >= len(l.src) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.src[l.offset:])
	if l.offset+size >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.offset+size:])
	return r
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.offset += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// skipTrivia consumes whitespace and `#` / `//` line comments.
func (l *Lexer) skipTrivia() {
	for l.offset < len(l.src) {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.advance()
		case ch == '#':
			l.skipLine()
		case ch == '/' && l.peekNext() == '/':
			l.skipLine()
		default:
			return
		}
	}
}

func (l *Lexer) skipLine() {
	for l.offset < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) scanNumber(start diag.Pos) (Token, error) {
	var b strings.Builder
	dots := 0
	for l.offset < len(l.src) {
		ch := l.peek()
		if ch == '.' {
			dots++
		} else if !isDigit(ch) {
			break
		}
		b.WriteRune(l.advance())
	}
	text := b.String()
	if dots > 1 {
		return Token{}, diag.ErrorAt(diag.CategoryLexical, start, "malformed number %q", text)
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, diag.ErrorAt(diag.CategoryLexical, start, "malformed number %q", text)
	}
	return Token{Kind: Number, Num: val, Pos: start}, nil
}

func (l *Lexer) scanString(start diag.Pos) (Token, error) {
	l.advance()
	var b strings.Builder
	for l.offset < len(l.src) && l.peek() != '"' {
		b.WriteRune(l.advance())
	}
	if l.offset >= len(l.src) {
		return Token{}, diag.ErrorAt(diag.CategoryLexical, start, "unterminated string literal")
	}
	l.advance()
	return Token{Kind: String, Text: b.String(), Pos: start}, nil
}

func (l *Lexer) scanWord(start diag.Pos) Token {
	begin := l.offset
	for l.offset < len(l.src) {
		ch := l.peek()
		if ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			break
		}
		l.advance()
	}
	word := l.src[begin:l.offset]
	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Pos: start}
	}
	return Token{Kind: Identifier, Text: word, Pos: start}
}

var singleCharTokens = map[rune]Kind{
	'+': Plus,
	'-': Minus,
	'/': Slash,
	'%': Percent,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	':': Colon,
	';': Semicolon,
}

// twoCharTokens resolves the longest match for operators that share a prefix.
var twoCharTokens = map[rune]struct {
	next   rune
	double Kind
	single Kind
}{
	'=': {'=', Equal, Assign},
	'!': {'=', NotEqual, Not},
	'<': {'=', LessEqual, Less},
	'>': {'=', GreaterEqual, Greater},
	'*': {'*', Power, Star},
}

func (l *Lexer) scanOperator(start diag.Pos) (Token, error) {
	ch := l.advance()
	if pair, ok := twoCharTokens[ch]; ok {
		if l.offset < len(l.src) && l.peek() == pair.next {
			l.advance()
			return Token{Kind: pair.double, Pos: start}, nil
		}
		return Token{Kind: pair.single, Pos: start}, nil
	}
	if kind, ok := singleCharTokens[ch]; ok {
		return Token{Kind: kind, Pos: start}, nil
	}
	return Token{}, diag.ErrorAt(diag.CategoryLexical, start, "unexpected character %q", ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
