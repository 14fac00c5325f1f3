// Package paint converts laid out box tree into display list and rasterizes
// it.
package paint

import (
	"fmt"
	"io"

	"boxy/css"
	"boxy/layout"
	"boxy/utils/debug"
)

// SolidColor is a command to fill rectangle with color.
type SolidColor struct {
	Color css.Color
	Rect  layout.Rect
}

// DisplayList is an ordered list of paint commands, later commands paint over
// earlier ones.
type DisplayList []SolidColor

// BuildDisplayList walks layout tree in document order emitting background
// and border commands for every box.
func BuildDisplayList(root *layout.LayoutBox) DisplayList {
	var list DisplayList
	if root != nil {
		renderBox(&list, root)
	}
	return list
}

func renderBox(list *DisplayList, box *layout.LayoutBox) {
	renderBackground(list, box)
	renderBorders(list, box)
	for _, child := range box.Children {
		renderBox(list, child)
	}
}

// getColor returns color value of property name. Anonymous boxes have no
// colors.
func getColor(box *layout.LayoutBox, name string) (css.Color, bool) {
	if box.Type == layout.AnonymousBlock {
		return css.Color{}, false
	}
	v, ok := box.StyledNode().Value(name)
	if !ok || v.Kind != css.ColorValue {
		return css.Color{}, false
	}
	return v.Color, true
}

func renderBackground(list *DisplayList, box *layout.LayoutBox) {
	c, ok := getColor(box, "background-color")
	if !ok {
		c, ok = getColor(box, "background")
	}
	if !ok {
		return
	}
	*list = append(*list, SolidColor{Color: c, Rect: box.Dimensions.BorderBox()})
}

func renderBorders(list *DisplayList, box *layout.LayoutBox) {
	c, ok := getColor(box, "border-color")
	if !ok {
		return
	}

	d := box.Dimensions
	bb := d.BorderBox()

	// Left
	*list = append(*list, SolidColor{Color: c, Rect: layout.Rect{
		X: bb.X, Y: bb.Y, Width: d.Border.Left, Height: bb.Height,
	}})
	// Right
	*list = append(*list, SolidColor{Color: c, Rect: layout.Rect{
		X: bb.X + bb.Width - d.Border.Right, Y: bb.Y, Width: d.Border.Right, Height: bb.Height,
	}})
	// Top
	*list = append(*list, SolidColor{Color: c, Rect: layout.Rect{
		X: bb.X, Y: bb.Y, Width: bb.Width, Height: d.Border.Top,
	}})
	// Bottom
	*list = append(*list, SolidColor{Color: c, Rect: layout.Rect{
		X: bb.X, Y: bb.Y + bb.Height - d.Border.Bottom, Width: bb.Width, Height: d.Border.Bottom,
	}})
}

// Bounds returns right-most and lowest painted edges, used to size canvas
// when viewport height is not fixed.
func (l DisplayList) Bounds() (width, height float64) {
	for _, cmd := range l {
		width = max(width, cmd.Rect.X+cmd.Rect.Width)
		height = max(height, cmd.Rect.Y+cmd.Rect.Height)
	}
	return width, height
}

// WriteTo writes text form of the display list, implementing io.WriterTo.
func (l DisplayList) WriteTo(w io.Writer) (int64, error) {
	tw := debug.NewTreeWriter()
	tw.Line(0, "display list: %d commands", len(l))
	for i, cmd := range l {
		tw.Line(1, "%d: %s", i, cmd)
	}
	return tw.WriteTo(w)
}

func (c SolidColor) String() string {
	return fmt.Sprintf("solid %s at (%g,%g) %gx%g", c.Color, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
}
