package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"Gutters & Downspouts", 10, "Gutters..."},
		{"Filtration", 2, "Fi"},
		{"Filtration", -1, ""},
		{"Größe über", 6, "Grö..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestBoxRender(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	box := w.NewBox("ESTIMATE")
	box.Row("Storage Tank", "$2,067 - $2,527")
	box.Detail("2871 gal × $0.80/gal")
	box.Rule()
	box.Emphasis("SYSTEM TOTAL", "$5,238 - $6,402")
	box.Render()
	if err := w.Err(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	for i, line := range lines {
		if n := runeLen(line); n != BoxWidth+2 {
			t.Errorf("line %d is %d runes wide: %q", i, n, line)
		}
	}
	if !strings.Contains(lines[3], "Storage Tank") || !strings.HasSuffix(lines[3], "$2,067 - $2,527 │") {
		t.Errorf("row not right-aligned: %q", lines[3])
	}
	if strings.Contains(buf.String(), "\033[") {
		t.Error("no-color writer emitted escapes")
	}
}

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	table := w.NewTable("Key", "Low")
	table.AddRow("mid_sized_whole_house", "$800.00")
	table.AddRow("small_booster")
	table.Render()

	out := buf.String()
	if !strings.Contains(out, "Key                   │ Low") {
		t.Errorf("header not padded to widest cell:\n%s", out)
	}
	last := strings.Split(strings.TrimRight(out, "\n"), "\n")[3]
	if !strings.HasPrefix(last, "small_booster ") || !strings.HasSuffix(last, "│") {
		t.Errorf("short row should be padded then trimmed: %q", last)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterKeepsFirstError(t *testing.T) {
	w := NewWriter(failingWriter{}, true)
	w.Success("one")
	w.Error("two")
	if w.Err() == nil || w.Err().Error() != "disk full" {
		t.Errorf("Err() = %v", w.Err())
	}
}

func TestColor(t *testing.T) {
	if got := NewWriter(nil, false).Color(Red, "x"); got != Red+"x"+Reset {
		t.Errorf("Color = %q", got)
	}
	if got := NewWriter(nil, true).Color(Red, "x"); got != "x" {
		t.Errorf("Color without color = %q", got)
	}
}
