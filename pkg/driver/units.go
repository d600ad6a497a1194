package driver

import (
	"strings"

	"calc/interpreter-go/pkg/lexer"
)

// Unit is one top-level input unit: a line, or a run of lines whose
// brackets balance.
type Unit struct {
	Text string
	// Line is the 1-based source line the unit starts on.
	Line int
}

// UnitSplitter accumulates lines until the open brackets they contain are
// closed again.
type UnitSplitter struct {
	lines     []string
	depth     int
	startLine int
	nextLine  int
}

// NewUnitSplitter returns a splitter whose first line is line 1.
func NewUnitSplitter() *UnitSplitter {
	return &UnitSplitter{nextLine: 1}
}

// Add feeds one line. It returns the finished unit once bracket depth is
// back to zero. Blank and comment-only lines outside a unit are dropped.
func (s *UnitSplitter) Add(line string) (Unit, bool) {
	lineNo := s.nextLine
	s.nextLine++
	delta, empty := bracketDelta(line)
	if len(s.lines) == 0 {
		if empty {
			return Unit{}, false
		}
		s.startLine = lineNo
	}
	s.lines = append(s.lines, line)
	s.depth += delta
	if s.depth > 0 {
		return Unit{}, false
	}
	return s.take(), true
}

// Pending reports whether lines are waiting for their brackets to close.
func (s *UnitSplitter) Pending() bool {
	return len(s.lines) > 0
}

// Reset discards pending lines.
func (s *UnitSplitter) Reset() {
	s.lines = nil
	s.depth = 0
}

// Flush returns whatever has been accumulated, balanced or not.
func (s *UnitSplitter) Flush() (Unit, bool) {
	if len(s.lines) == 0 {
		return Unit{}, false
	}
	return s.take(), true
}

func (s *UnitSplitter) take() Unit {
	unit := Unit{Text: strings.Join(s.lines, "\n"), Line: s.startLine}
	s.Reset()
	return unit
}

// SplitUnits cuts a whole source text into input units.
func SplitUnits(src string) []Unit {
	splitter := NewUnitSplitter()
	var units []Unit
	for _, line := range strings.Split(src, "\n") {
		if unit, ok := splitter.Add(strings.TrimSuffix(line, "\r")); ok {
			units = append(units, unit)
		}
	}
	if unit, ok := splitter.Flush(); ok {
		units = append(units, unit)
	}
	return units
}

// bracketDelta counts opening minus closing brackets on a line using the
// tokenizer, so brackets inside strings and comments are ignored. A line the
// tokenizer rejects counts what it saw before the error; the evaluation of
// the unit reports the error itself.
func bracketDelta(line string) (delta int, empty bool) {
	empty = true
	for tok, err := range lexer.New(line).All() {
		if err != nil {
			empty = false
			break
		}
		empty = false
		switch tok.Kind {
		case lexer.LParen, lexer.LBrace, lexer.LBracket:
			delta++
		case lexer.RParen, lexer.RBrace, lexer.RBracket:
			delta--
		}
	}
	return delta, empty
}
