package debug

import (
	"bytes"
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "block", want: "block\n"},
		{name: "depth 2", depth: 2, format: "anonymous", want: "    anonymous\n"},
		{name: "with formatting", depth: 1, format: "x=%g y=%g", args: []any{1.5, 2.0}, want: "  x=1.5 y=2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{name: "empty value", depth: 0, label: "text", value: "", want: "text: \n"},
		{name: "quoted value", depth: 1, label: "text", value: "hello world", want: "  text: \"hello world\"\n"},
		{name: "newline escaped", depth: 0, label: "text", value: "a\nb", want: "text: \"a\\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_PropsNaturalOrder(t *testing.T) {
	tw := NewTreeWriter()
	tw.Props(1, map[string]string{
		"width":     "auto",
		"border-10": "1px",
		"border-2":  "2px",
		"display":   "block",
	})

	want := "  border-2: 2px\n  border-10: 1px\n  display: block\n  width: auto\n"
	if got := tw.String(); got != want {
		t.Errorf("Props() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeWriter_WriteTo(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "root")
	tw.Line(1, "child")

	var buf bytes.Buffer
	n, err := tw.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if want := "root\n  child\n"; buf.String() != want || n != int64(len(want)) {
		t.Errorf("WriteTo() wrote %d bytes %q, want %q", n, buf.String(), want)
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"hello", `"hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{"col1\tcol2", `"col1\tcol2"`},
	}

	for _, tt := range tests {
		if got := encodeText(tt.input); got != tt.want {
			t.Errorf("encodeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
