package layout_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"boxy/css"
	"boxy/dom"
	"boxy/layout"
	"boxy/style"
)

func styled(t *testing.T, src string, doc *dom.Node) *style.StyledNode {
	t.Helper()
	sheet, err := css.NewParser(zap.NewNop(), true).Parse([]byte(src))
	if err != nil {
		t.Fatalf("failed to parse stylesheet: %v", err)
	}
	return style.StyleTree(doc, sheet)
}

func layoutOf(t *testing.T, src string, doc *dom.Node, width float64) *layout.LayoutBox {
	t.Helper()
	box, err := layout.LayoutTree(styled(t, src, doc), layout.Viewport(width, 600))
	if err != nil {
		t.Fatalf("LayoutTree() error = %v", err)
	}
	return box
}

func TestLayout_FixedWidthAutoMarginsCentered(t *testing.T) {
	box := layoutOf(t, `div { display: block; width: 100px; margin: auto; }`, dom.Elem("div", nil), 200)

	want := layout.Dimensions{
		Content: layout.Rect{X: 50, Y: 0, Width: 100, Height: 0},
		Margin:  layout.EdgeSizes{Left: 50, Right: 50},
	}
	if diff := cmp.Diff(want, box.Dimensions); diff != "" {
		t.Errorf("dimensions mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_StackedBlocks(t *testing.T) {
	doc := dom.Elem("body", nil,
		dom.Elem("div", nil),
		dom.Elem("div", nil),
	)
	box := layoutOf(t, `body, div { display: block; } div { height: 50px; margin: 5px; border-width: 1px; padding: 2px; }`, doc, 300)

	if len(box.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(box.Children))
	}
	first, second := box.Children[0], box.Children[1]

	firstHeight := first.Dimensions.MarginBox().Height
	if firstHeight != 50+2*(5+1+2) {
		t.Errorf("first margin box height = %g, want 66", firstHeight)
	}
	if got, want := second.Dimensions.MarginBox().Y, firstHeight; got != want {
		t.Errorf("second margin box y = %g, want %g", got, want)
	}
	if got, want := second.Dimensions.Content.Y, firstHeight+5+1+2; got != want {
		t.Errorf("second content y = %g, want %g", got, want)
	}
	if got := box.Dimensions.Content.Height; got != 2*firstHeight {
		t.Errorf("parent content height = %g, want %g", got, 2*firstHeight)
	}
	if got := first.Dimensions.Content.Width; got != 300-2*(5+1+2) {
		t.Errorf("first content width = %g, want 284", got)
	}
}

func TestLayout_StackedBlocksFromZeroContent(t *testing.T) {
	doc := dom.Elem("body", nil, dom.Elem("div", nil), dom.Elem("div", nil))
	box := layoutOf(t, `body, div { display: block; } div { height: 50px; }`, doc, 200)

	first, second := box.Children[0], box.Children[1]
	if got, want := second.Dimensions.Content.Y, first.Dimensions.MarginBox().Height; got != want {
		t.Errorf("second content y = %g, want %g", got, want)
	}
	if got := second.Dimensions.Content.Y; got != 50 {
		t.Errorf("second content y = %g, want 50", got)
	}
}

func TestLayout_AutoWidthFillsContainer(t *testing.T) {
	tests := []struct {
		name string
		css  string
	}{
		{"no edges", `div { display: block; }`},
		{"padding and border", `div { display: block; padding: 7px; border-width: 3px; }`},
		{"margins", `div { display: block; margin-left: 11px; margin-right: 13px; }`},
		{"auto margins", `div { display: block; margin: auto; padding-left: 4px; }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := layoutOf(t, tt.css, dom.Elem("div", nil), 320)
			if got := box.Dimensions.MarginBox().Width; got != 320 {
				t.Errorf("margin box width = %g, want 320", got)
			}
			if box.Dimensions.Content.Width < 0 {
				t.Errorf("negative content width %g", box.Dimensions.Content.Width)
			}
		})
	}
}

func TestLayout_WidthConstraints(t *testing.T) {
	tests := []struct {
		name        string
		css         string
		wantWidth   float64
		wantMargins layout.EdgeSizes
	}{
		{
			name:        "over-constrained adjusts right margin",
			css:         `div { display: block; width: 100px; margin-left: 10px; margin-right: 10px; }`,
			wantWidth:   100,
			wantMargins: layout.EdgeSizes{Left: 10, Right: 90},
		},
		{
			name:        "auto right margin takes the rest",
			css:         `div { display: block; width: 100px; margin-left: 20px; margin-right: auto; }`,
			wantWidth:   100,
			wantMargins: layout.EdgeSizes{Left: 20, Right: 80},
		},
		{
			name:        "auto left margin takes the rest",
			css:         `div { display: block; width: 100px; margin-left: auto; margin-right: 30px; }`,
			wantWidth:   100,
			wantMargins: layout.EdgeSizes{Left: 70, Right: 30},
		},
		{
			name:        "too wide box drops auto margins",
			css:         `div { display: block; width: 300px; margin: auto; }`,
			wantWidth:   300,
			wantMargins: layout.EdgeSizes{Left: 0, Right: -100},
		},
		{
			name:        "auto width with negative underflow",
			css:         `div { display: block; padding-left: 150px; padding-right: 150px; }`,
			wantWidth:   0,
			wantMargins: layout.EdgeSizes{Left: 0, Right: -100},
		},
		{
			name:        "specific property wins over shorthand",
			css:         `div { display: block; width: 50px; margin: 10px; margin-left: auto; }`,
			wantWidth:   50,
			wantMargins: layout.EdgeSizes{Left: 140, Right: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := layoutOf(t, tt.css, dom.Elem("div", nil), 200)
			if got := box.Dimensions.Content.Width; got != tt.wantWidth {
				t.Errorf("content width = %g, want %g", got, tt.wantWidth)
			}
			gotMargins := layout.EdgeSizes{Left: box.Dimensions.Margin.Left, Right: box.Dimensions.Margin.Right}
			if diff := cmp.Diff(tt.wantMargins, gotMargins); diff != "" {
				t.Errorf("margins mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayout_NestedPosition(t *testing.T) {
	doc := dom.Elem("div", map[string]string{"id": "outer"},
		dom.Elem("div", map[string]string{"id": "inner"}),
	)
	box := layoutOf(t, `
		div { display: block; }
		#outer { margin: 10px; border-width: 2px; padding: 3px; }
		#inner { margin-top: 4px; margin-left: 6px; height: 20px; }
	`, doc, 400)

	inner := box.Children[0]
	want := layout.Rect{X: 10 + 2 + 3 + 6, Y: 10 + 2 + 3 + 4, Width: 400 - 2*15 - 6, Height: 20}
	if diff := cmp.Diff(want, inner.Dimensions.Content); diff != "" {
		t.Errorf("inner content mismatch (-want +got):\n%s", diff)
	}
	if got := box.Dimensions.Content.Height; got != 24 {
		t.Errorf("outer content height = %g, want 24", got)
	}
}

func TestLayout_ExplicitHeightWins(t *testing.T) {
	doc := dom.Elem("div", nil, dom.Elem("p", nil), dom.Elem("p", nil))
	box := layoutOf(t, `div, p { display: block; } p { height: 40px; } div { height: 10px; }`, doc, 100)

	if got := box.Dimensions.Content.Height; got != 10 {
		t.Errorf("content height = %g, want 10", got)
	}
}

func TestLayout_Idempotent(t *testing.T) {
	doc := dom.Elem("div", nil, dom.Elem("p", nil), dom.Text("text"), dom.Elem("p", nil))
	sn := styled(t, `div, p { display: block; } p { height: 15px; margin: 5px; }`, doc)

	box, err := layout.LayoutTree(sn, layout.Viewport(250, 0))
	if err != nil {
		t.Fatalf("LayoutTree() error = %v", err)
	}
	first := box.Dump()

	vp := layout.Viewport(250, 0)
	box.Layout(vp)
	if diff := cmp.Diff(first, box.Dump()); diff != "" {
		t.Errorf("second layout differs (-first +second):\n%s", diff)
	}
}

func TestLayoutTree_IgnoresViewportHeight(t *testing.T) {
	sn := styled(t, `div { display: block; }`, dom.Elem("div", nil))

	box, err := layout.LayoutTree(sn, layout.Viewport(100, 500))
	if err != nil {
		t.Fatalf("LayoutTree() error = %v", err)
	}
	if got := box.Dimensions.Content.Y; got != 0 {
		t.Errorf("root content y = %g, want 0", got)
	}
}

func TestLayoutTree_RootDisplayNone(t *testing.T) {
	sn := styled(t, `div { display: none; }`, dom.Elem("div", nil, dom.Elem("p", nil)))

	box, err := layout.LayoutTree(sn, layout.Viewport(100, 100))
	if !errors.Is(err, layout.ErrRootDisplayNone) {
		t.Fatalf("expected ErrRootDisplayNone, got %v", err)
	}
	if box != nil {
		t.Error("expected no partial layout tree")
	}
	if err.Error() != "root has display:none" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestLayout_InlineRootUntouched(t *testing.T) {
	box := layoutOf(t, `span { width: 100px; }`, dom.Elem("span", nil), 200)

	if box.Type != layout.InlineNode {
		t.Fatalf("expected inline root, got %s", box.Type)
	}
	if diff := cmp.Diff(layout.Dimensions{}, box.Dimensions); diff != "" {
		t.Errorf("inline box geometry must stay zero (-want +got):\n%s", diff)
	}
}
