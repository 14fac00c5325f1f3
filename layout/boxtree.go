package layout

import (
	"errors"

	"boxy/style"
	"boxy/utils/debug"
)

// ErrRootDisplayNone is returned when the root of the style tree is not
// rendered at all.
var ErrRootDisplayNone = errors.New("root has display:none")

// BoxType is the kind of layout box.
type BoxType int

const (
	BlockNode BoxType = iota
	InlineNode
	AnonymousBlock
)

func (t BoxType) String() string {
	switch t {
	case BlockNode:
		return "block"
	case InlineNode:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	default:
		return "unknown"
	}
}

// LayoutBox is a node of the layout tree. Block and inline boxes reference
// their styled node, anonymous blocks do not.
type LayoutBox struct {
	Dimensions Dimensions
	Type       BoxType
	Children   []*LayoutBox

	styled *style.StyledNode
}

func newBox(typ BoxType, styled *style.StyledNode) *LayoutBox {
	return &LayoutBox{Type: typ, styled: styled}
}

// StyledNode returns styled node the box was generated for. Calling it on
// anonymous block is a programming error.
func (b *LayoutBox) StyledNode() *style.StyledNode {
	if b.Type == AnonymousBlock || b.styled == nil {
		panic("layout: anonymous block box has no styled node")
	}
	return b.styled
}

// BuildLayoutTree generates box tree for styled root. Nodes with display:none
// and their subtrees produce no boxes, runs of inline children of a block box
// are wrapped into anonymous blocks.
func BuildLayoutTree(root *style.StyledNode) (*LayoutBox, error) {
	var box *LayoutBox
	switch root.Display() {
	case style.DisplayBlock:
		box = newBox(BlockNode, root)
	case style.DisplayInline:
		box = newBox(InlineNode, root)
	case style.DisplayNone:
		return nil, ErrRootDisplayNone
	}

	for _, child := range root.Children {
		switch child.Display() {
		case style.DisplayBlock:
			cb, err := BuildLayoutTree(child)
			if err != nil {
				return nil, err
			}
			box.Children = append(box.Children, cb)
		case style.DisplayInline:
			cb, err := BuildLayoutTree(child)
			if err != nil {
				return nil, err
			}
			ic := box.inlineContainer()
			ic.Children = append(ic.Children, cb)
		case style.DisplayNone:
		}
	}
	return box, nil
}

// inlineContainer returns box which should receive new inline child. Inline
// and anonymous boxes hold inline children directly, block boxes reuse
// trailing anonymous block or get a new one.
func (b *LayoutBox) inlineContainer() *LayoutBox {
	switch b.Type {
	case InlineNode, AnonymousBlock:
		return b
	default:
		if n := len(b.Children); n > 0 && b.Children[n-1].Type == AnonymousBlock {
			return b.Children[n-1]
		}
		anon := newBox(AnonymousBlock, nil)
		b.Children = append(b.Children, anon)
		return anon
	}
}

// Dump returns indented text representation of the layout tree with box
// geometry.
func (b *LayoutBox) Dump() string {
	tw := debug.NewTreeWriter()
	b.dump(tw, 0)
	return tw.String()
}

func (b *LayoutBox) dump(tw *debug.TreeWriter, depth int) {
	label := b.Type.String()
	if b.Type != AnonymousBlock {
		if n := b.styled.Node; n.IsElement() {
			label += " <" + n.Element.TagName + ">"
		} else {
			label += " #text"
		}
	}
	d := b.Dimensions
	tw.Line(depth, "%s content=(%g,%g %gx%g) margin=(%g %g %g %g) border=(%g %g %g %g) padding=(%g %g %g %g)",
		label,
		d.Content.X, d.Content.Y, d.Content.Width, d.Content.Height,
		d.Margin.Top, d.Margin.Right, d.Margin.Bottom, d.Margin.Left,
		d.Border.Top, d.Border.Right, d.Border.Bottom, d.Border.Left,
		d.Padding.Top, d.Padding.Right, d.Padding.Bottom, d.Padding.Left,
	)
	if b.Type == InlineNode && !b.styled.Node.IsElement() {
		tw.TextBlock(depth+1, "text", b.styled.Node.Text)
	}
	for _, c := range b.Children {
		c.dump(tw, depth+1)
	}
}
