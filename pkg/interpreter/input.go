package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"calc/interpreter-go/pkg/runtime"
)

var numericInput = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// CoerceInput turns a raw input line into a Number when the trimmed text is
// an integer or decimal, and into a String otherwise.
func CoerceInput(line string) runtime.Value {
	text := strings.TrimSpace(line)
	if numericInput.MatchString(text) {
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			return runtime.NumberValue{Val: n}
		}
	}
	return runtime.StringValue{Val: text}
}

// ReaderInput reads lines from an io.Reader and writes prompts to an
// io.Writer.
type ReaderInput struct {
	scanner *bufio.Scanner
	prompts io.Writer
}

func NewReaderInput(r io.Reader, prompts io.Writer) *ReaderInput {
	return &ReaderInput{scanner: bufio.NewScanner(r), prompts: prompts}
}

func (r *ReaderInput) ReadLine(prompt string) (string, error) {
	if prompt != "" && r.prompts != nil {
		if _, err := io.WriteString(r.prompts, prompt); err != nil {
			return "", err
		}
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", fmt.Errorf("read input: %w", io.EOF)
	}
	return r.scanner.Text(), nil
}
