package lexer

import (
	"fmt"
	"strconv"

	"calc/interpreter-go/pkg/diag"
)

// Kind identifies the category of a token.
type Kind int

const (
	EOF Kind = iota

	// Literals.
	Number
	String
	Identifier
	True
	False

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Power
	Assign
	Equal
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	Not
	And
	Or
	Is

	// Delimiters.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon

	// Keywords.
	Print
	If
	Else
	While
	Break
	Continue
	Input
	Def
	Return
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	Number:       "NUMBER",
	String:       "STRING",
	Identifier:   "IDENTIFIER",
	True:         "TRUE",
	False:        "FALSE",
	Plus:         "PLUS",
	Minus:        "MINUS",
	Star:         "MULTIPLY",
	Slash:        "DIVIDE",
	Percent:      "MODULO",
	Power:        "POW",
	Assign:       "ASSIGN",
	Equal:        "EQUALS",
	NotEqual:     "NOTEQUAL",
	Less:         "LESS",
	Greater:      "GREATER",
	LessEqual:    "LESSEQ",
	GreaterEqual: "GREATEREQ",
	Not:          "NOT",
	And:          "AND",
	Or:           "OR",
	Is:           "IS",
	LParen:       "LPAREN",
	RParen:       "RPAREN",
	LBrace:       "LBRACE",
	RBrace:       "RBRACE",
	LBracket:     "LBRACKET",
	RBracket:     "RBRACKET",
	Comma:        "COMMA",
	Colon:        "COLON",
	Semicolon:    "SEMICOLON",
	Print:        "PRINT",
	If:           "IF",
	Else:         "ELSE",
	While:        "WHILE",
	Break:        "BREAK",
	Continue:     "CONTINUE",
	Input:        "INPUT",
	Def:          "FUNCTION",
	Return:       "RETURN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// keywords maps reserved words to their token kinds. `function` and `def`
// both introduce declarations; `not` is the word form of `!`.
var keywords = map[string]Kind{
	"true":     True,
	"false":    False,
	"and":      And,
	"or":       Or,
	"not":      Not,
	"is":       Is,
	"print":    Print,
	"if":       If,
	"else":     Else,
	"while":    While,
	"break":    Break,
	"continue": Continue,
	"input":    Input,
	"def":      Def,
	"function": Def,
	"return":   Return,
}

// Token is an immutable lexical unit. Num is set for Number tokens and Text
// for String and Identifier tokens.
type Token struct {
	Kind Kind
	Num  float64
	Text string
	Pos  diag.Pos
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return fmt.Sprintf("%s:%s", t.Kind, strconv.FormatFloat(t.Num, 'f', -1, 64))
	case String:
		return fmt.Sprintf("%s:%q", t.Kind, t.Text)
	case Identifier:
		return fmt.Sprintf("%s:%s", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

var kindLexemes = map[Kind]string{
	True:         "true",
	False:        "false",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Power:        "**",
	Assign:       "=",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	Not:          "!",
	And:          "and",
	Or:           "or",
	Is:           "is",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	Comma:        ",",
	Colon:        ":",
	Semicolon:    ";",
	Print:        "print",
	If:           "if",
	Else:         "else",
	While:        "while",
	Break:        "break",
	Continue:     "continue",
	Input:        "input",
	Def:          "def",
	Return:       "return",
}

// Describe renders the token the way it should appear in diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Number:
		return "number " + strconv.FormatFloat(t.Num, 'f', -1, 64)
	case String:
		return strconv.Quote(t.Text)
	case Identifier:
		return "identifier " + t.Text
	}
	if lexeme, ok := kindLexemes[t.Kind]; ok {
		return "'" + lexeme + "'"
	}
	return t.Kind.String()
}
