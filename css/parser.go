package css

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// DefaultStylesheet is the built-in user agent stylesheet: common block level
// elements get "display: block", non-rendered elements are hidden.
//
//go:embed default.css
var DefaultStylesheet []byte

var (
	// ErrUnsupported is reported for syntax this engine does not handle
	// (units other than px, combinators, multi-token values, etc.).
	ErrUnsupported = errors.New("unsupported construct")
	// ErrMalformed is reported when tokenizer cannot make sense of input.
	ErrMalformed = errors.New("malformed stylesheet")
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log    *zap.Logger
	strict bool
}

// NewParser creates a new CSS parser. In strict mode first unsupported
// construct fails parsing, otherwise it is skipped and recorded in
// Stylesheet.Warnings.
func NewParser(log *zap.Logger, strict bool) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser"), strict: strict}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				if e := p.problem(sheet, fmt.Errorf("%w: %w", ErrMalformed, err)); e != nil {
					return nil, e
				}
			}
			return sheet, nil

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule block", zap.ByteString("rule", data))
			sheet.Warnings = append(sheet.Warnings, "ignored at-rule: "+string(data))
			skipAtRuleBlock(parser)

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.ByteString("rule", data))
			sheet.Warnings = append(sheet.Warnings, "ignored at-rule: "+string(data))

		case css.BeginRulesetGrammar:
			selectors, err := p.parseSelectors(sheet, data, parser.Values())
			if err != nil {
				return nil, err
			}
			decls, err := p.parseDeclarations(sheet, parser)
			if err != nil {
				return nil, err
			}
			if len(selectors) == 0 {
				continue
			}
			// Cascade relies on selectors being sorted by specificity
			slices.SortStableFunc(selectors, func(a, b Selector) int {
				return a.Specificity().Compare(b.Specificity())
			})
			sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: decls})
		}
	}
}

// problem either fails parsing (strict mode) or records warning.
func (p *Parser) problem(sheet *Stylesheet, err error) error {
	if p.strict {
		return err
	}
	p.log.Debug("Skipping unsupported CSS", zap.Error(err))
	sheet.Warnings = append(sheet.Warnings, err.Error())
	return nil
}

// parseSelectors splits selector group by commas and parses each simple
// selector.
func (p *Parser) parseSelectors(sheet *Stylesheet, data []byte, values []css.Token) ([]Selector, error) {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []Selector
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sel, err := parseSimpleSelector(s)
		if err != nil {
			if e := p.problem(sheet, err); e != nil {
				return nil, e
			}
			continue
		}
		selectors = append(selectors, sel)
	}
	return selectors, nil
}

// parseSimpleSelector parses "tag#id.class1.class2" (any part optional, "*"
// for universal tag).
func parseSimpleSelector(s string) (Selector, error) {
	var sel Selector
	if strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(">+~[:", r)
	}) {
		return sel, fmt.Errorf("%w: selector %q", ErrUnsupported, s)
	}

	rest := s
	for len(rest) > 0 {
		switch rest[0] {
		case '*':
			rest = rest[1:]
		case '#':
			var name string
			name, rest = cutIdentifier(rest[1:])
			if name == "" || sel.ID != "" {
				return sel, fmt.Errorf("%w: selector %q", ErrUnsupported, s)
			}
			sel.ID = name
		case '.':
			var name string
			name, rest = cutIdentifier(rest[1:])
			if name == "" {
				return sel, fmt.Errorf("%w: selector %q", ErrUnsupported, s)
			}
			if !slices.Contains(sel.Classes, name) {
				sel.Classes = append(sel.Classes, name)
			}
		default:
			var name string
			name, rest = cutIdentifier(rest)
			if name == "" || sel.TagName != "" {
				return sel, fmt.Errorf("%w: selector %q", ErrUnsupported, s)
			}
			sel.TagName = strings.ToLower(name)
		}
	}
	return sel, nil
}

func cutIdentifier(s string) (string, string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_')
	})
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(sheet *Stylesheet, parser *css.Parser) ([]Declaration, error) {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls, nil

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			tokens := significantTokens(parser.Values())
			if len(tokens) == 0 {
				continue
			}
			val, err := parseValue(name, tokens)
			if err != nil {
				if e := p.problem(sheet, err); e != nil {
					return nil, e
				}
				continue
			}
			decls = append(decls, Declaration{Name: name, Value: val})

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) have no meaning without var() support
			continue
		}
	}
}

// significantTokens drops whitespace and trailing "!important" (origins and
// importance are not part of this cascade).
func significantTokens(tokens []css.Token) []css.Token {
	out := make([]css.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			out = append(out, t)
		}
	}
	if n := len(out); n >= 2 &&
		out[n-2].TokenType == css.DelimToken && string(out[n-2].Data) == "!" &&
		out[n-1].TokenType == css.IdentToken && strings.EqualFold(string(out[n-1].Data), "important") {
		out = out[:n-2]
	}
	return out
}

// parseValue converts declaration value tokens into Value.
func parseValue(name string, tokens []css.Token) (Value, error) {
	if len(tokens) != 1 {
		var raw []string
		for _, t := range tokens {
			raw = append(raw, string(t.Data))
		}
		return Value{}, fmt.Errorf("%w: multi-value %s: %s", ErrUnsupported, name, strings.Join(raw, " "))
	}

	t := tokens[0]
	switch t.TokenType {
	case css.DimensionToken:
		num, unit := parseDimension(string(t.Data))
		if unit != "px" {
			return Value{}, fmt.Errorf("%w: unit %q in %s", ErrUnsupported, unit, name)
		}
		return Px(num), nil

	case css.NumberToken:
		num, err := strconv.ParseFloat(string(t.Data), 64)
		if err != nil || num != 0 {
			return Value{}, fmt.Errorf("%w: unitless number %q in %s", ErrUnsupported, t.Data, name)
		}
		return Px(0), nil

	case css.HashToken:
		c, ok := parseHexColor(strings.TrimPrefix(string(t.Data), "#"))
		if !ok {
			return Value{}, fmt.Errorf("%w: color %q in %s", ErrUnsupported, t.Data, name)
		}
		return Value{Kind: ColorValue, Color: c}, nil

	case css.IdentToken:
		kw := strings.ToLower(string(t.Data))
		if isColorProperty(name) {
			if c, ok := namedColor(kw); ok {
				return Value{Kind: ColorValue, Color: c}, nil
			}
		}
		return Keyword(kw), nil

	default:
		return Value{}, fmt.Errorf("%w: value %q in %s", ErrUnsupported, t.Data, name)
	}
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// parseHexColor handles rgb, rgba, rrggbb and rrggbbaa notations.
func parseHexColor(hex string) (Color, bool) {
	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		return parseHexColor(expanded.String())
	case 6, 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	default:
		return Color{}, false
	}
}

// ParseColor converts hex notation or color name into Color.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if c, ok := parseHexColor(hex); ok {
			return c, nil
		}
	} else if c, ok := namedColor(s); ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: color %q", ErrUnsupported, s)
}

func isColorProperty(name string) bool {
	return name == "color" || name == "background" || strings.HasSuffix(name, "-color")
}

func namedColor(kw string) (Color, bool) {
	if kw == "transparent" {
		return Color{}, true
	}
	c, ok := colornames.Map[kw]
	if !ok {
		return Color{}, false
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
