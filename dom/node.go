// Package dom defines the document tree consumed by the style stage.
package dom

import "strings"

// NodeType distinguishes the two kinds of document nodes.
type NodeType int

const (
	TextNode NodeType = iota
	ElementNode
)

// String returns the human readable name of the node type.
func (t NodeType) String() string {
	switch t {
	case TextNode:
		return "text"
	case ElementNode:
		return "element"
	default:
		return "unknown"
	}
}

// Element holds tag name and attributes of an element node.
type Element struct {
	TagName string
	Attrs   map[string]string
}

// ID returns value of the "id" attribute if present.
func (e *Element) ID() (string, bool) {
	id, ok := e.Attrs["id"]
	return id, ok
}

// Classes returns set of class names from the "class" attribute. Empty set is
// returned when attribute is absent.
func (e *Element) Classes() map[string]struct{} {
	fields := strings.Fields(e.Attrs["class"])
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Attr returns attribute value or empty string.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// Node is a document node. Exactly one of Text or Element is meaningful,
// depending on Type. Every node exclusively owns its children, there are no
// back references.
type Node struct {
	Type     NodeType
	Text     string
	Element  *Element
	Children []*Node
}

// Text creates text node.
func Text(data string) *Node {
	return &Node{Type: TextNode, Text: data}
}

// Elem creates element node. Attribute map is copied, nil is allowed.
func Elem(tag string, attrs map[string]string, children ...*Node) *Node {
	el := &Element{TagName: tag, Attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		el.Attrs[k] = v
	}
	return &Node{Type: ElementNode, Element: el, Children: children}
}

// IsElement reports whether node is an element.
func (n *Node) IsElement() bool {
	return n.Type == ElementNode && n.Element != nil
}

// TagName returns element tag or empty string for text nodes.
func (n *Node) TagName() string {
	if !n.IsElement() {
		return ""
	}
	return n.Element.TagName
}

// TextContent returns concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	if n.Type == TextNode {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.collectText(sb)
	}
}

// Walk calls fn for the node and all its descendants in document order.
// Walking stops descending into a subtree when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Title returns trimmed text of the first <title> element, if any.
func Title(root *Node) string {
	var title string
	found := false
	root.Walk(func(n *Node) bool {
		if found {
			return false
		}
		if n.TagName() == "title" {
			title, found = strings.TrimSpace(n.TextContent()), true
			return false
		}
		return true
	})
	return title
}

// StyleSheets returns contents of all <style> elements in document order.
func StyleSheets(root *Node) []string {
	var sheets []string
	root.Walk(func(n *Node) bool {
		if n.TagName() == "style" {
			sheets = append(sheets, n.TextContent())
			return false
		}
		return true
	})
	return sheets
}
