package style

import (
	"slices"

	"boxy/css"
	"boxy/dom"
)

// PropertyMap holds specified values keyed by property name.
type PropertyMap map[string]css.Value

// Clone returns independent copy of the map.
func (m PropertyMap) Clone() PropertyMap {
	out := make(PropertyMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type matchedRule struct {
	specificity css.Specificity
	rule        *css.Rule
}

// matchRule returns highest specificity among rule selectors matching el.
func matchRule(el *dom.Element, rule *css.Rule) (css.Specificity, bool) {
	var (
		best  css.Specificity
		found bool
	)
	for _, sel := range rule.Selectors {
		if !Matches(el, sel) {
			continue
		}
		if sp := sel.Specificity(); !found || best.Less(sp) {
			best, found = sp, true
		}
	}
	return best, found
}

func matchingRules(el *dom.Element, sheet *css.Stylesheet) []matchedRule {
	var matched []matchedRule
	for i := range sheet.Rules {
		if sp, ok := matchRule(el, &sheet.Rules[i]); ok {
			matched = append(matched, matchedRule{specificity: sp, rule: &sheet.Rules[i]})
		}
	}
	return matched
}

// SpecifiedValues computes property map for el: matching rules are ordered
// by ascending specificity (source order breaks ties) and their declarations
// folded so that later values overwrite earlier ones.
func SpecifiedValues(el *dom.Element, sheet *css.Stylesheet) PropertyMap {
	values := make(PropertyMap)
	if el == nil || sheet == nil {
		return values
	}

	rules := matchingRules(el, sheet)
	slices.SortStableFunc(rules, func(a, b matchedRule) int {
		return a.specificity.Compare(b.specificity)
	})
	for _, m := range rules {
		for _, d := range m.rule.Declarations {
			values[d.Name] = d.Value
		}
	}
	return values
}
