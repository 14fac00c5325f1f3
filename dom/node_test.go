package dom

import (
	"strings"
	"testing"
)

func TestElement_ID(t *testing.T) {
	el := Elem("p", map[string]string{"id": "main"}).Element
	id, ok := el.ID()
	if !ok || id != "main" {
		t.Errorf("ID() = %q, %v, want %q, true", id, ok, "main")
	}

	el = Elem("p", nil).Element
	if _, ok := el.ID(); ok {
		t.Error("ID() reported id for element without attribute")
	}
}

func TestElement_Classes(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  []string
	}{
		{name: "absent", attrs: nil, want: nil},
		{name: "single", attrs: map[string]string{"class": "note"}, want: []string{"note"}},
		{name: "several", attrs: map[string]string{"class": "a b  c"}, want: []string{"a", "b", "c"}},
		{name: "tabs and newlines", attrs: map[string]string{"class": "a\tb\nc"}, want: []string{"a", "b", "c"}},
		{name: "duplicates", attrs: map[string]string{"class": "a a"}, want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Elem("div", tt.attrs).Element.Classes()
			if len(got) != len(tt.want) {
				t.Fatalf("Classes() = %v, want %v", got, tt.want)
			}
			for _, c := range tt.want {
				if _, ok := got[c]; !ok {
					t.Errorf("Classes() missing %q", c)
				}
			}
		})
	}
}

func TestElem_CopiesAttributes(t *testing.T) {
	attrs := map[string]string{"id": "a"}
	n := Elem("div", attrs)
	attrs["id"] = "b"
	if id, _ := n.Element.ID(); id != "a" {
		t.Errorf("element attributes changed with source map, id = %q", id)
	}
}

func TestTitleAndStyleSheets(t *testing.T) {
	root := Elem("html", nil,
		Elem("head", nil,
			Elem("title", nil, Text("  Hello  ")),
			Elem("style", nil, Text("p { display: block; }")),
		),
		Elem("body", nil,
			Elem("style", nil, Text("div { width: 10px; }")),
		),
	)

	if got := Title(root); got != "Hello" {
		t.Errorf("Title() = %q, want %q", got, "Hello")
	}
	sheets := StyleSheets(root)
	if len(sheets) != 2 {
		t.Fatalf("StyleSheets() returned %d sheets, want 2", len(sheets))
	}
	if !strings.Contains(sheets[1], "div") {
		t.Errorf("second sheet = %q, expected div rule", sheets[1])
	}
}

func TestNodeType_String(t *testing.T) {
	if TextNode.String() != "text" || ElementNode.String() != "element" {
		t.Error("unexpected node type names")
	}
}
