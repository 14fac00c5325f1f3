package style

import (
	"boxy/css"
	"boxy/dom"
	"boxy/utils/debug"
)

// Display is the computed display type of a styled node.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayInline:
		return "inline"
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "unknown"
	}
}

// StyledNode pairs document node with its specified values. Children mirror
// document children one to one.
type StyledNode struct {
	Node      *dom.Node
	Specified PropertyMap
	Children  []*StyledNode
}

// StyleTree builds style tree for the document rooted at root. Text nodes get
// empty property map.
func StyleTree(root *dom.Node, sheet *css.Stylesheet) *StyledNode {
	sn := &StyledNode{Node: root}
	if root.IsElement() {
		sn.Specified = SpecifiedValues(root.Element, sheet)
	} else {
		sn.Specified = make(PropertyMap)
	}

	sn.Children = make([]*StyledNode, 0, len(root.Children))
	for _, child := range root.Children {
		sn.Children = append(sn.Children, StyleTree(child, sheet))
	}
	return sn
}

// Value returns specified value of property name.
func (s *StyledNode) Value(name string) (css.Value, bool) {
	v, ok := s.Specified[name]
	return v, ok
}

// Lookup returns value of name, falling back to fallbackName and then to def.
func (s *StyledNode) Lookup(name, fallbackName string, def css.Value) css.Value {
	if v, ok := s.Value(name); ok {
		return v
	}
	if v, ok := s.Value(fallbackName); ok {
		return v
	}
	return def
}

// Display returns display type, anything but "block" and "none" is inline.
func (s *StyledNode) Display() Display {
	v, ok := s.Value("display")
	if !ok {
		return DisplayInline
	}
	switch {
	case v.IsKeyword("block"):
		return DisplayBlock
	case v.IsKeyword("none"):
		return DisplayNone
	default:
		return DisplayInline
	}
}

// Dump returns indented text representation of the style tree.
func (s *StyledNode) Dump() string {
	tw := debug.NewTreeWriter()
	s.dump(tw, 0)
	return tw.String()
}

func (s *StyledNode) dump(tw *debug.TreeWriter, depth int) {
	if s.Node.IsElement() {
		tw.Line(depth, "<%s> %s", s.Node.Element.TagName, s.Display())
		props := make(map[string]string, len(s.Specified))
		for name, v := range s.Specified {
			props[name] = v.String()
		}
		tw.Props(depth+1, props)
	} else {
		tw.TextBlock(depth, "text", s.Node.Text)
	}
	for _, c := range s.Children {
		c.dump(tw, depth+1)
	}
}
