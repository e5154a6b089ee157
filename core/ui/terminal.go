// Package ui - Terminal user interface
// Colored CLI output, boxed tables and status lines.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// BoxWidth is the inner width of boxed output
const BoxWidth = 73

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
	err       error
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Err returns the first write error encountered
func (w *Writer) Err() error {
	return w.err
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	w.Print(format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Green, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Yellow, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Red, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.Color(Blue, "ℹ "), fmt.Sprintf(format, args...))
}

// Dim prints a muted line
func (w *Writer) Dim(format string, args ...interface{}) {
	w.Println("%s", w.Color(Dim, fmt.Sprintf(format, args...)))
}

// Box renders a bordered two-column summary
type Box struct {
	w     *Writer
	title string
	lines []boxLine
}

type boxLine struct {
	left, right string
	rule        bool
	emphasis    bool
}

// NewBox creates a box with a centered title
func (w *Writer) NewBox(title string) *Box {
	return &Box{w: w, title: title}
}

// Row adds a label/value line
func (b *Box) Row(left, right string) {
	b.lines = append(b.lines, boxLine{left: left, right: right})
}

// Detail adds an indented secondary line
func (b *Box) Detail(text string) {
	b.lines = append(b.lines, boxLine{left: "  └─ " + text})
}

// Rule adds a horizontal separator
func (b *Box) Rule() {
	b.lines = append(b.lines, boxLine{rule: true})
}

// Emphasis adds a highlighted label/value line
func (b *Box) Emphasis(left, right string) {
	b.lines = append(b.lines, boxLine{left: left, right: right, emphasis: true})
}

// Render prints the box
func (b *Box) Render() {
	border := strings.Repeat("─", BoxWidth)
	b.w.Println("┌%s┐", border)
	b.w.Println("│%s│", b.w.Color(Bold, center(b.title, BoxWidth)))
	b.w.Println("├%s┤", border)
	for _, line := range b.lines {
		if line.rule {
			b.w.Println("├%s┤", border)
			continue
		}
		text := columns(line.left, line.right, BoxWidth-2)
		if line.emphasis {
			text = b.w.Color(Bold+Green, text)
		}
		b.w.Println("│ %s │", text)
	}
	b.w.Println("└%s┘", border)
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runeLen(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := runeLen(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.Color(Bold, t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = pad(cell, t.widths[i])
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

// Truncate shortens s to maxLen runes with an ellipsis
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		if maxLen < 0 {
			maxLen = 0
		}
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func columns(left, right string, width int) string {
	right = Truncate(right, width)
	room := width - runeLen(right) - 1
	if room < 0 {
		room = 0
	}
	left = Truncate(left, room)
	return pad(left, room) + " " + right
}

func center(s string, width int) string {
	s = Truncate(s, width)
	gap := width - runeLen(s)
	leftPad := gap / 2
	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", gap-leftPad)
}

func pad(s string, width int) string {
	if n := runeLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func runeLen(s string) int {
	return len([]rune(s))
}
