package driver

import (
	"os"

	"github.com/peterh/liner"
)

// Terminal is a liner line editor with history kept in a file. It serves
// both as the REPL prompter and as the source for `input(...)`.
type Terminal struct {
	state       *liner.State
	historyPath string
}

// OpenTerminal takes over the terminal and loads history from the path
// configured in cfg.
func OpenTerminal(cfg *Config) *Terminal {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	t := &Terminal{state: ln, historyPath: cfg.HistoryPath()}
	if t.historyPath != "" {
		if f, err := os.Open(t.historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return t
}

func (t *Terminal) Prompt(prompt string) (string, error) {
	return t.state.Prompt(prompt)
}

// ReadLine implements interpreter.LineReader.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	return t.state.Prompt(prompt)
}

func (t *Terminal) AppendHistory(item string) {
	t.state.AppendHistory(item)
}

// Close saves history and restores the terminal.
func (t *Terminal) Close() error {
	if t.historyPath != "" {
		if f, err := os.Create(t.historyPath); err == nil {
			_, _ = t.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return t.state.Close()
}
