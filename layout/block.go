package layout

import (
	"boxy/css"
	"boxy/style"
)

// LayoutTree builds layout tree for styled root and lays it out inside
// viewport. Viewport height is ignored: it is the stacking cursor for the
// root box and always starts at zero.
func LayoutTree(root *style.StyledNode, viewport Dimensions) (*LayoutBox, error) {
	box, err := BuildLayoutTree(root)
	if err != nil {
		return nil, err
	}
	viewport.Content.Height = 0
	box.Layout(viewport)
	return box, nil
}

// Layout lays out box and its descendants inside containing block. Only block
// boxes are solved, inline and anonymous boxes keep their geometry.
func (b *LayoutBox) Layout(containing Dimensions) {
	switch b.Type {
	case BlockNode:
		b.layoutBlock(containing)
	case InlineNode, AnonymousBlock:
	}
}

func (b *LayoutBox) layoutBlock(containing Dimensions) {
	// Children accumulate into content height, start from scratch so
	// layout can be repeated on the same tree
	b.Dimensions.Content.Height = 0

	b.calculateWidth(containing)
	b.calculatePosition(containing)
	b.layoutChildren()
	b.calculateHeight()
}

// calculateWidth resolves width, horizontal padding, borders and margins so
// that margin box exactly fills containing block.
func (b *LayoutBox) calculateWidth(containing Dimensions) {
	sn := b.StyledNode()

	auto := css.Keyword("auto")
	zero := css.Px(0)

	width := sn.Lookup("width", "width", auto)

	marginLeft := sn.Lookup("margin-left", "margin", zero)
	marginRight := sn.Lookup("margin-right", "margin", zero)

	borderLeft := sn.Lookup("border-left-width", "border-width", zero)
	borderRight := sn.Lookup("border-right-width", "border-width", zero)

	paddingLeft := sn.Lookup("padding-left", "padding", zero)
	paddingRight := sn.Lookup("padding-right", "padding", zero)

	total := sumPx(marginLeft, marginRight, borderLeft, borderRight, paddingLeft, paddingRight, width)

	// Box too wide: auto margins cannot be negative
	if width != auto && total > containing.Content.Width {
		if marginLeft == auto {
			marginLeft = zero
		}
		if marginRight == auto {
			marginRight = zero
		}
	}

	underflow := containing.Content.Width - total

	switch widthAuto, leftAuto, rightAuto := width == auto, marginLeft == auto, marginRight == auto; {
	// Over-constrained, adjust right margin
	case !widthAuto && !leftAuto && !rightAuto:
		marginRight = css.Px(marginRight.ToPx() + underflow)

	// Exactly one margin auto, it takes the rest
	case !widthAuto && !leftAuto && rightAuto:
		marginRight = css.Px(underflow)
	case !widthAuto && leftAuto && !rightAuto:
		marginLeft = css.Px(underflow)

	// Auto width takes everything it can, remaining auto margins are zero
	case widthAuto:
		if leftAuto {
			marginLeft = zero
		}
		if rightAuto {
			marginRight = zero
		}
		if underflow >= 0 {
			width = css.Px(underflow)
		} else {
			// Width cannot be negative, overflow goes to the right margin
			width = zero
			marginRight = css.Px(marginRight.ToPx() + underflow)
		}

	// Both margins auto, center the box
	case !widthAuto && leftAuto && rightAuto:
		marginLeft = css.Px(underflow / 2)
		marginRight = css.Px(underflow / 2)
	}

	d := &b.Dimensions
	d.Content.Width = width.ToPx()

	d.Padding.Left = paddingLeft.ToPx()
	d.Padding.Right = paddingRight.ToPx()

	d.Border.Left = borderLeft.ToPx()
	d.Border.Right = borderRight.ToPx()

	d.Margin.Left = marginLeft.ToPx()
	d.Margin.Right = marginRight.ToPx()
}

// calculatePosition resolves vertical edges and places box below content
// already laid out in containing block.
func (b *LayoutBox) calculatePosition(containing Dimensions) {
	sn := b.StyledNode()
	zero := css.Px(0)

	d := &b.Dimensions

	// Auto vertical margins resolve to zero through ToPx
	d.Margin.Top = sn.Lookup("margin-top", "margin", zero).ToPx()
	d.Margin.Bottom = sn.Lookup("margin-bottom", "margin", zero).ToPx()

	d.Border.Top = sn.Lookup("border-top-width", "border-width", zero).ToPx()
	d.Border.Bottom = sn.Lookup("border-bottom-width", "border-width", zero).ToPx()

	d.Padding.Top = sn.Lookup("padding-top", "padding", zero).ToPx()
	d.Padding.Bottom = sn.Lookup("padding-bottom", "padding", zero).ToPx()

	d.Content.X = containing.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containing.Content.Height + containing.Content.Y +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutChildren stacks children vertically, each child is positioned under
// the previous one.
func (b *LayoutBox) layoutChildren() {
	d := &b.Dimensions
	for _, child := range b.Children {
		child.Layout(*d)
		d.Content.Height += child.Dimensions.MarginBox().Height
	}
}

// calculateHeight applies explicit height, otherwise height computed from
// children is kept.
func (b *LayoutBox) calculateHeight() {
	if h, ok := b.StyledNode().Value("height"); ok && h.Kind == css.LengthValue {
		b.Dimensions.Content.Height = h.ToPx()
	}
}

func sumPx(values ...css.Value) float64 {
	var total float64
	for _, v := range values {
		total += v.ToPx()
	}
	return total
}
