package lexer

import (
	"errors"
	"testing"

	"calc/interpreter-go/pkg/diag"
)

func kindsOf(tokens []Token) []Kind {
	kinds := make([]Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestTokenizeOperatorsLongestMatch(t *testing.T) {
	tokens, err := Tokenize(`== != <= >= < > = ! ** * + - / % ( ) { } [ ] , : ;`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	want := []Kind{
		Equal, NotEqual, LessEqual, GreaterEqual, Less, Greater, Assign, Not, Power, Star,
		Plus, Minus, Slash, Percent, LParen, RParen, LBrace, RBrace, LBracket, RBracket,
		Comma, Colon, Semicolon,
	}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(want), len(got), tokens)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("token %d: expected %s, got %s", idx, want[idx], got[idx])
		}
	}
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := Tokenize(`print if else while break continue input def function return true false and or not is foo _bar baz9`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	want := []Kind{
		Print, If, Else, While, Break, Continue, Input, Def, Def, Return, True, False,
		And, Or, Not, Is, Identifier, Identifier, Identifier,
	}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("token %d: expected %s, got %s", idx, want[idx], got[idx])
		}
	}
	if tokens[18].Text != "baz9" {
		t.Fatalf("expected identifier text baz9, got %q", tokens[18].Text)
	}
}

func TestTokenizeNumbersNormalizeDots(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"42", 42},
		{"3.25", 3.25},
		{".5", 0.5},
		{"7.", 7},
	}
	for _, tc := range cases {
		tokens, err := Tokenize(tc.src)
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", tc.src, err)
		}
		if len(tokens) != 1 || tokens[0].Kind != Number || tokens[0].Num != tc.want {
			t.Fatalf("Tokenize(%q) = %v, want number %v", tc.src, tokens, tc.want)
		}
	}
}

func TestTokenizeMalformedNumber(t *testing.T) {
	_, err := Tokenize("1.2.3")
	if cat, ok := diag.CategoryOf(err); !ok || cat != diag.CategoryLexical {
		t.Fatalf("expected lexical error, got %v", err)
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	tokens, err := Tokenize("x = 1 # trailing\n// whole line\ny / 2")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	want := []Kind{Identifier, Assign, Number, Identifier, Slash, Number}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("token %d: expected %s, got %s", idx, want[idx], got[idx])
		}
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	tokens, err := Tokenize(`"hello world"`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != String || tokens[0].Text != "hello world" {
		t.Fatalf("unexpected tokens %v", tokens)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`x = "oops`)
	var d *diag.Error
	if !errors.As(err, &d) {
		t.Fatalf("expected diag.Error, got %v", err)
	}
	if d.Category != diag.CategoryLexical {
		t.Fatalf("expected lexical category, got %s", d.Category)
	}
	if d.Pos.Line != 1 || d.Pos.Column != 5 {
		t.Fatalf("expected position 1:5, got %s", d.Pos)
	}
}

func TestTokenizeUnknownCharacter(t *testing.T) {
	_, err := Tokenize("x = 1 @ 2")
	var d *diag.Error
	if !errors.As(err, &d) || d.Category != diag.CategoryLexical {
		t.Fatalf("expected lexical error, got %v", err)
	}
	if d.Message != `unexpected character '@'` {
		t.Fatalf("unexpected message %q", d.Message)
	}
}

func TestNextIsLazyAndStable(t *testing.T) {
	lx := New("a\n  b")
	first, err := lx.Next()
	if err != nil || first.Kind != Identifier || first.Text != "a" {
		t.Fatalf("unexpected first token %v (%v)", first, err)
	}
	second, err := lx.Next()
	if err != nil || second.Text != "b" {
		t.Fatalf("unexpected second token %v (%v)", second, err)
	}
	if second.Pos.Line != 2 || second.Pos.Column != 3 {
		t.Fatalf("expected position 2:3, got %s", second.Pos)
	}
	for range 2 {
		tok, err := lx.Next()
		if err != nil || tok.Kind != EOF {
			t.Fatalf("expected repeated EOF, got %v (%v)", tok, err)
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	count := 0
	for tok, err := range New("a b c d").All() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind != Identifier {
			t.Fatalf("unexpected token %v", tok)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected to stop after 2 tokens, got %d", count)
	}
}
