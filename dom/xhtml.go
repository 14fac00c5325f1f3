package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrNoRoot is returned when XML document has no document element.
var ErrNoRoot = errors.New("document has no root element")

// ParseXHTML parses XHTML (or any XML) document, document element becomes the
// root of the tree. Namespace declarations are not kept as attributes.
func ParseXHTML(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read XHTML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	return convertElement(root), nil
}

func convertElement(el *etree.Element) *Node {
	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		if _, exists := attrs[a.Key]; !exists {
			attrs[a.Key] = a.Value
		}
	}
	node := Elem(strings.ToLower(el.Tag), attrs)
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			node.Children = append(node.Children, convertElement(t))
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				node.Children = append(node.Children, Text(t.Data))
			}
		}
	}
	return node
}
