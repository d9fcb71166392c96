package validator

import (
	"slices"
	"strings"
)

const (
	// DefaultRuleSetName names the implicit ruleset of untagged rules.
	DefaultRuleSetName = "default"
	// WildcardRuleSetName selects every rule.
	WildcardRuleSetName = "*"
)

// Selector decides whether a rule takes part in a run.
type Selector interface {
	IsSatisfiedBy(rule Rule, propertyPath string, vc ValidationContext) bool
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(rule Rule, propertyPath string, vc ValidationContext) bool

func (f SelectorFunc) IsSatisfiedBy(rule Rule, propertyPath string, vc ValidationContext) bool {
	return f(rule, propertyPath, vc)
}

// DefaultSelector admits rules without a ruleset and rules tagged "default".
type DefaultSelector struct{}

func (DefaultSelector) IsSatisfiedBy(rule Rule, _ string, vc ValidationContext) bool {
	rs := rule.RuleSets()
	if len(rs) == 0 || containsFold(rs, DefaultRuleSetName) {
		markRuleSets(vc, DefaultRuleSetName)
		return true
	}
	return false
}

// RuleSetSelector admits rules whose rulesets intersect the requested ones.
// Matching is case-insensitive. Include rules are always admitted so the
// included validator can filter its own rules.
type RuleSetSelector struct {
	ruleSets []string
}

// NewRuleSetSelector creates a selector for ruleSets. Each argument may hold several
// names separated by commas or semicolons.
func NewRuleSetSelector(ruleSets ...string) *RuleSetSelector {
	return &RuleSetSelector{ruleSets: splitRuleSetNames(ruleSets...)}
}

// RuleSets returns the requested ruleset names.
func (s *RuleSetSelector) RuleSets() []string {
	return slices.Clone(s.ruleSets)
}

func (s *RuleSetSelector) IsSatisfiedBy(rule Rule, _ string, vc ValidationContext) bool {
	rs := rule.RuleSets()

	if len(rs) == 0 && len(s.ruleSets) > 0 && isIncludeRule(rule) {
		return true
	}

	if len(rs) == 0 && len(s.ruleSets) == 0 {
		markRuleSets(vc, DefaultRuleSetName)
		return true
	}

	if containsFold(s.ruleSets, DefaultRuleSetName) {
		if len(rs) == 0 || containsFold(rs, DefaultRuleSetName) {
			markRuleSets(vc, DefaultRuleSetName)
			return true
		}
	}

	if slices.Contains(s.ruleSets, WildcardRuleSetName) {
		if len(rs) == 0 {
			markRuleSets(vc, DefaultRuleSetName)
		} else {
			markRuleSets(vc, rs...)
		}
		return true
	}

	var matched []string
	for _, r := range rs {
		if containsFold(s.ruleSets, r) {
			matched = append(matched, r)
		}
	}
	if len(matched) > 0 {
		markRuleSets(vc, matched...)
		return true
	}
	return false
}

// MemberNameSelector admits rules for the named properties. A name matches a rule when
// it equals the rule's path, when it is nested below it (so the parent's child
// validator runs) or when the rule's path is nested below the name.
type MemberNameSelector struct {
	names []string
}

// NewMemberNameSelector creates a selector for the given property paths.
func NewMemberNameSelector(names ...string) *MemberNameSelector {
	return &MemberNameSelector{names: slices.Clone(names)}
}

// MemberNames returns the requested property paths.
func (s *MemberNameSelector) MemberNames() []string {
	return slices.Clone(s.names)
}

func (s *MemberNameSelector) IsSatisfiedBy(rule Rule, propertyPath string, vc ValidationContext) bool {
	if isIncludeRule(rule) {
		return true
	}

	sep := vc.PropertyChain().Separator()

	// Inside a child validator, plain top-level names select the whole child.
	if vc.IsChildContext() && !slices.ContainsFunc(s.names, func(n string) bool {
		return strings.Contains(n, sep) || strings.Contains(n, "[")
	}) {
		return true
	}

	for _, name := range s.names {
		if name == propertyPath ||
			strings.HasPrefix(propertyPath, name+sep) ||
			strings.HasPrefix(propertyPath, name+"[") ||
			strings.HasPrefix(name, propertyPath+sep) ||
			strings.HasPrefix(name, propertyPath+"[") {
			return true
		}
	}
	return false
}

// CompositeSelector admits a rule when any of its selectors does.
type CompositeSelector struct {
	selectors []Selector
}

func NewCompositeSelector(selectors ...Selector) *CompositeSelector {
	return &CompositeSelector{selectors: slices.Clone(selectors)}
}

func (s *CompositeSelector) IsSatisfiedBy(rule Rule, propertyPath string, vc ValidationContext) bool {
	for _, sel := range s.selectors {
		if sel.IsSatisfiedBy(rule, propertyPath, vc) {
			return true
		}
	}
	return false
}

func splitRuleSetNames(names ...string) []string {
	var out []string
	for _, n := range names {
		for part := range strings.FieldsFuncSeq(n, func(r rune) bool { return r == ',' || r == ';' }) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}

func markRuleSets(vc ValidationContext, names ...string) {
	if vc == nil {
		return
	}
	vc.run().markRuleSets(names...)
}
