package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"calc/interpreter-go/pkg/runtime"
)

// Version is reported by the banner and `calc version`.
const Version = "0.1.0"

const helpText = `Statements:
  print expr                      show a value
  name = expr                     bind in the current scope
  container[key] = expr           update a list element or dict entry
  if (cond) { ... } else { ... }  conditional, "else if" chains allowed
  while (cond) { ... }            loop; break and continue inside
  def name(a, b) { return a }     define a function ("function" also works)
  input("prompt")                 read a line; numbers are converted

Operators, lowest to highest precedence:
  or
  and
  == != < > <= >= is              is takes Number, String, Boolean, List, Dict
  + -                             + also joins strings, lists and dicts
  * / %
  **                              right-associative
  ! not -                         unary
  x[i]                            indexing

Values: 3.5, "text", true, [1, 2], {"key": 1}
Commands: help, exit, quit. A blank line submits an unfinished block.`

// Prompter reads one line of interactive input.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// REPL runs an interactive loop over a Session.
type REPL struct {
	session  *Session
	prompter Prompter
	out      io.Writer
}

func NewREPL(session *Session, prompter Prompter) *REPL {
	return &REPL{session: session, prompter: prompter, out: session.stdout}
}

// Run reads units until exit, quit, or end of input.
func (r *REPL) Run() error {
	cfg := r.session.config
	if cfg.Banner {
		r.session.reporter.Info(fmt.Sprintf("calc %s. Type help for a summary, exit to leave.", Version))
	}
	splitter := NewUnitSplitter()
	for {
		prompt := cfg.Prompt
		if splitter.Pending() {
			prompt = cfg.ContinuationPrompt
		}
		line, err := r.prompter.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			splitter.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			if unit, ok := splitter.Flush(); ok {
				r.evaluate(unit)
			}
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("repl: read input: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if !splitter.Pending() {
			switch trimmed {
			case "exit", "quit":
				return nil
			case "help":
				fmt.Fprintln(r.out, helpText)
				continue
			}
		} else if trimmed == "" {
			unit, _ := splitter.Flush()
			r.evaluate(unit)
			continue
		}
		if unit, ok := splitter.Add(line); ok {
			r.evaluate(unit)
		}
	}
}

func (r *REPL) evaluate(unit Unit) {
	if h, ok := r.prompter.(interface{ AppendHistory(string) }); ok {
		h.AppendHistory(strings.ReplaceAll(unit.Text, "\n", " "))
	}
	// Positions are reported relative to the unit just typed.
	unit.Line = 1
	val, err := r.session.RunUnit(unit)
	if err != nil || val == nil || !r.session.config.Echo {
		return
	}
	fmt.Fprintln(r.out, runtime.Display(val))
}
