package css

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Unit is a length unit. Only pixels are supported, anything else is rejected
// by the parser.
type Unit int

const (
	UnitPx Unit = iota
)

// String returns the CSS representation of the unit.
func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	default:
		return "unknown"
	}
}

// Color is an RGBA color, each channel 0-255.
type Color struct {
	R, G, B, A uint8
}

// NRGBA converts color for use with image packages.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// String returns hex notation, alpha channel is omitted when opaque.
func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ValueKind enumerates value variants.
type ValueKind int

const (
	KeywordValue ValueKind = iota
	LengthValue
	ColorValue
)

// Value is a declared property value: keyword, length or color. Only the
// fields of the active Kind are meaningful. Values are comparable with ==.
type Value struct {
	Kind    ValueKind
	Keyword string
	Length  float64
	Unit    Unit
	Color   Color
}

// Keyword creates keyword value.
func Keyword(kw string) Value {
	return Value{Kind: KeywordValue, Keyword: kw}
}

// Px creates length value in pixels.
func Px(length float64) Value {
	return Value{Kind: LengthValue, Length: length, Unit: UnitPx}
}

// RGBA creates color value.
func RGBA(r, g, b, a uint8) Value {
	return Value{Kind: ColorValue, Color: Color{R: r, G: g, B: b, A: a}}
}

// ToPx returns size in pixels for lengths and zero for everything else
// (including "auto").
func (v Value) ToPx() float64 {
	if v.Kind == LengthValue && v.Unit == UnitPx {
		return v.Length
	}
	return 0
}

// IsKeyword reports whether value is the given keyword.
func (v Value) IsKeyword(kw string) bool {
	return v.Kind == KeywordValue && v.Keyword == kw
}

// String returns CSS text of the value.
func (v Value) String() string {
	switch v.Kind {
	case KeywordValue:
		return v.Keyword
	case LengthValue:
		return strconv.FormatFloat(v.Length, 'f', -1, 64) + v.Unit.String()
	case ColorValue:
		return v.Color.String()
	default:
		return ""
	}
}

// Specificity is selector precedence weight: (ids, classes, tags), compared
// lexicographically.
type Specificity struct {
	IDs     int
	Classes int
	Tags    int
}

// Compare returns -1, 0 or +1 when s is less, equal or greater than o.
func (s Specificity) Compare(o Specificity) int {
	switch {
	case s.IDs != o.IDs:
		return cmpInt(s.IDs, o.IDs)
	case s.Classes != o.Classes:
		return cmpInt(s.Classes, o.Classes)
	default:
		return cmpInt(s.Tags, o.Tags)
	}
}

// Less reports whether s has strictly lower precedence than o.
func (s Specificity) Less(o Specificity) bool {
	return s.Compare(o) < 0
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.IDs, s.Classes, s.Tags)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Selector is a simple selector: optional tag name (empty matches any tag),
// optional id and a set of classes which all must be present.
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity returns precedence weight of the selector.
func (s Selector) Specificity() Specificity {
	var sp Specificity
	if s.ID != "" {
		sp.IDs = 1
	}
	sp.Classes = len(s.Classes)
	if s.TagName != "" {
		sp.Tags = 1
	}
	return sp
}

// String returns CSS text of the selector.
func (s Selector) String() string {
	var sb strings.Builder
	sb.WriteString(s.TagName)
	if s.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	if sb.Len() == 0 {
		return "*"
	}
	return sb.String()
}

// Declaration is a single property name/value pair.
type Declaration struct {
	Name  string
	Value Value
}

// Rule is a selector group sharing one declaration block. Selectors are kept
// sorted by ascending specificity.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string // Unsupported constructs skipped in lenient mode
}

// Append adds rules (and warnings) of other stylesheets after the rules of s,
// so they win over s for equal specificity.
func (s *Stylesheet) Append(others ...*Stylesheet) {
	for _, o := range others {
		if o == nil {
			continue
		}
		s.Rules = append(s.Rules, o.Rules...)
		s.Warnings = append(s.Warnings, o.Warnings...)
	}
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		if i > 0 {
			n, err := fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	sels := make([]string, 0, len(rule.Selectors))
	for _, sel := range rule.Selectors {
		sels = append(sels, sel.String())
	}

	var total int
	n, err := fmt.Fprintf(w, "%s {\n", strings.Join(sels, ", "))
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "  %s: %s;\n", d.Name, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
