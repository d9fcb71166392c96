package validator

// Descriptor describes a validator's rules for introspection, e.g. to generate
// client-side metadata. Rules of included validators are listed in place of the include.
type Descriptor struct {
	rules []Rule
}

// MemberValidators pairs a property name with the components of all its rules.
type MemberValidators struct {
	Name       string
	Components []Component
}

// CreateDescriptor snapshots the validator's rules.
func (v *Validator[T]) CreateDescriptor() *Descriptor {
	return &Descriptor{rules: v.flattenRules(map[*Validator[T]]struct{}{})}
}

func (v *Validator[T]) flattenRules(seen map[*Validator[T]]struct{}) []Rule {
	if _, ok := seen[v]; ok {
		return nil
	}
	seen[v] = struct{}{}

	var out []Rule
	for _, r := range v.rules {
		if inc, ok := r.(*includeRule[T]); ok {
			out = append(out, inc.included.flattenRules(seen)...)
			continue
		}
		out = append(out, r)
	}
	return out
}

// Rules returns every rule in declaration order.
func (d *Descriptor) Rules() []Rule {
	return append([]Rule(nil), d.rules...)
}

// GetName returns the display name of the first rule for property, or "".
func (d *Descriptor) GetName(property string) string {
	for _, r := range d.rules {
		if r.PropertyName() == property {
			return r.DisplayName()
		}
	}
	return ""
}

// GetMembersWithValidators lists each property with its components, in first-declared order.
func (d *Descriptor) GetMembersWithValidators() []MemberValidators {
	var out []MemberValidators
	index := make(map[string]int)
	for _, r := range d.rules {
		name := r.PropertyName()
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, MemberValidators{Name: name})
		}
		out[i].Components = append(out[i].Components, r.Components()...)
	}
	return out
}

// GetValidatorsForMember returns the components of all rules for property.
func (d *Descriptor) GetValidatorsForMember(property string) []Component {
	var out []Component
	for _, r := range d.GetRulesForMember(property) {
		out = append(out, r.Components()...)
	}
	return out
}

// GetRulesForMember returns the rules for property.
func (d *Descriptor) GetRulesForMember(property string) []Rule {
	var out []Rule
	for _, r := range d.rules {
		if r.PropertyName() == property {
			out = append(out, r)
		}
	}
	return out
}

// GetRulesByRuleSet returns the rules tagged with ruleSet. DefaultRuleSetName also
// matches untagged rules.
func (d *Descriptor) GetRulesByRuleSet(ruleSet string) []Rule {
	var out []Rule
	for _, r := range d.rules {
		rs := r.RuleSets()
		if containsFold(rs, ruleSet) || (len(rs) == 0 && ruleSet == DefaultRuleSetName) {
			out = append(out, r)
		}
	}
	return out
}
