package driver

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"calc/interpreter-go/pkg/diag"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
)

// Reporter writes user-facing error lines, styled when color is enabled.
type Reporter struct {
	w       io.Writer
	color   bool
	errors  lipgloss.Style
	details lipgloss.Style
	partial []byte
}

func NewReporter(w io.Writer, color bool) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	return &Reporter{
		w:       w,
		color:   color,
		errors:  renderer.NewStyle().Foreground(colorError).Bold(true),
		details: renderer.NewStyle().Foreground(colorMuted),
	}
}

// FormatError renders err as "Error: <category> error: <message>". Errors
// without a category are printed as they are.
func FormatError(err error) string {
	return "Error: " + err.Error()
}

// Error reports a failed input unit. Positions inside the unit are shifted
// by lineOffset so they refer to the whole source.
func (r *Reporter) Error(err error, lineOffset int) {
	var d *diag.Error
	if errors.As(err, &d) && d.Pos.IsValid() && lineOffset > 0 {
		shifted := *d
		shifted.Pos.Line += lineOffset
		err = &shifted
	}
	r.line(FormatError(err))
}

// Write reports lines written by the interpreter's warning channel.
func (r *Reporter) Write(p []byte) (int, error) {
	data := append(r.partial, p...)
	r.partial = nil
	var lines []string
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, string(data[:idx]))
		data = data[idx+1:]
	}
	if len(data) > 0 {
		r.partial = append([]byte(nil), data...)
	}
	for _, line := range lines {
		r.line(line)
	}
	return len(p), nil
}

// Info writes a secondary line, such as a banner or hint.
func (r *Reporter) Info(text string) {
	if r.color {
		text = r.details.Render(text)
	}
	io.WriteString(r.w, text+"\n")
}

func (r *Reporter) line(text string) {
	text = strings.TrimRight(text, "\n")
	if r.color {
		text = r.errors.Render(text)
	}
	io.WriteString(r.w, text+"\n")
}
