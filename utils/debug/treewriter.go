package debug

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// TreeWriter accumulates indented, line oriented dumps of tree structures
// (style tree, layout tree, display list).
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

// NewTreeWriter returns writer indenting every level with two spaces.
func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// WriteTo implements io.WriterTo.
func (tw *TreeWriter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, tw.w.String())
	return int64(n), err
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

// Line writes single formatted line at given depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes "label: value" with value quoted.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Props writes "name: value" lines in natural order of names, so dumps are
// stable regardless of map iteration order ("border-2" sorts before
// "border-10").
func (tw *TreeWriter) Props(depth int, props map[string]string) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	for _, name := range names {
		tw.Line(depth, "%s: %s", name, props[name])
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
