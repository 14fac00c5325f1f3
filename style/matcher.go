// Package style resolves specified values for document elements and builds
// the style tree consumed by layout.
package style

import (
	"boxy/css"
	"boxy/dom"
)

// Matches reports whether simple selector sel applies to element el. Empty
// tag name (or "*") matches any tag, absent id matches any element, and every
// selector class has to be present on the element.
func Matches(el *dom.Element, sel css.Selector) bool {
	if el == nil {
		return false
	}
	if sel.TagName != "" && sel.TagName != "*" && sel.TagName != el.TagName {
		return false
	}
	if sel.ID != "" {
		if id, ok := el.ID(); !ok || id != sel.ID {
			return false
		}
	}
	if len(sel.Classes) == 0 {
		return true
	}
	classes := el.Classes()
	for _, c := range sel.Classes {
		if _, ok := classes[c]; !ok {
			return false
		}
	}
	return true
}
