// Package diag defines the error taxonomy shared by the lexer, parser, and
// interpreter.
package diag

import (
	"errors"
	"fmt"
)

// Category classifies a failure for reporting.
type Category int

const (
	CategoryLexical Category = iota
	CategorySyntax
	CategoryName
	CategoryType
	CategoryIndex
	CategoryArithmetic
	CategoryRecursion
	CategoryInternal
)

func (c Category) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	case CategoryName:
		return "name"
	case CategoryType:
		return "type"
	case CategoryIndex:
		return "index"
	case CategoryArithmetic:
		return "arithmetic"
	case CategoryRecursion:
		return "recursion"
	case CategoryInternal:
		return "internal"
	default:
		return fmt.Sprintf("unknown_category_%d", int(c))
	}
}

// Pos is a 1-based source position. The zero value means unknown.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Error is a categorised failure with an optional source position.
type Error struct {
	Category Category
	Message  string
	Pos      Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s error: %s (%s)", e.Category, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s error: %s", e.Category, e.Message)
}

// Errorf builds an Error without position information.
func Errorf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// ErrorAt builds an Error anchored at pos.
func ErrorAt(category Category, pos Pos, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// CategoryOf extracts the category of err, reporting false when err carries none.
func CategoryOf(err error) (Category, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d.Category, true
	}
	return 0, false
}
