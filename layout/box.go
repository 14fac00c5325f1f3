// Package layout builds box tree out of the style tree and solves block
// geometry.
package layout

// Rect is an axis aligned rectangle, y grows downwards.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// ExpandedBy returns rectangle grown by edge sizes on every side.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds per side thickness of padding, border or margin.
type EdgeSizes struct {
	Left, Right, Top, Bottom float64
}

// Dimensions describe box geometry: content rectangle plus the three edge
// layers around it.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox is content area plus padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is content area plus padding and borders.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is content area plus padding, borders and margins.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// Viewport returns dimensions of the initial containing block.
func Viewport(width, height float64) Dimensions {
	return Dimensions{Content: Rect{Width: width, Height: height}}
}
