package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// ParseHTML parses HTML text into a document tree with a single root.
func ParseHTML(text string) (*Node, error) {
	return ParseHTMLReader(strings.NewReader(text), "text/html; charset=utf-8")
}

// ParseHTMLReader parses HTML from r. Content type is used to determine input
// encoding when document does not declare one. Markup is parsed as a <body>
// fragment: when it produces a single element it becomes the root, otherwise
// top level nodes are wrapped into synthesized <html> element. Comments,
// doctypes and whitespace-only text are dropped.
func ParseHTMLReader(r io.Reader, contentType string) (*Node, error) {
	rd, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to detect document encoding: %w", err)
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(rd, context)
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML: %w", err)
	}

	var top []*Node
	for _, n := range nodes {
		if c := convertNode(n); c != nil {
			top = append(top, c)
		}
	}
	if len(top) == 1 && top[0].IsElement() {
		return top[0], nil
	}
	return Elem("html", nil, top...), nil
}

// convertNode converts golang.org/x/net/html node into our node, returns nil
// for nodes which do not participate in rendering.
func convertNode(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return Text(n.Data)
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			if _, exists := attrs[a.Key]; !exists {
				attrs[a.Key] = a.Val
			}
		}
		node := Elem(n.Data, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convertNode(c); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	default:
		return nil
	}
}
