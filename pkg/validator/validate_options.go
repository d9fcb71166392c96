package validator

// ValidateOption configures a single validation run.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	properties      []string
	ruleSets        []string
	selectors       []Selector
	throwOnFailures bool
	culture         string
	rootData        map[string]any
	skip            []string
}

func (c *validateConfig) selector() Selector {
	var selectors []Selector
	if len(c.properties) > 0 {
		selectors = append(selectors, NewMemberNameSelector(c.properties...))
	}
	if len(c.ruleSets) > 0 {
		selectors = append(selectors, NewRuleSetSelector(c.ruleSets...))
	}
	selectors = append(selectors, c.selectors...)

	switch len(selectors) {
	case 0:
		return DefaultSelector{}
	case 1:
		return selectors[0]
	default:
		return NewCompositeSelector(selectors...)
	}
}

// IncludeProperties restricts the run to rules for the named properties.
// Nested paths such as "Address.City" select the nested rule and its parents.
func IncludeProperties(names ...string) ValidateOption {
	return func(c *validateConfig) {
		c.properties = append(c.properties, names...)
	}
}

// IncludeRuleSets restricts the run to the named rulesets. Names may be comma or
// semicolon separated. Use DefaultRuleSetName for untagged rules and
// WildcardRuleSetName for every rule.
func IncludeRuleSets(names ...string) ValidateOption {
	return func(c *validateConfig) {
		c.ruleSets = append(c.ruleSets, names...)
	}
}

// IncludeAllRuleSets runs every rule regardless of ruleset.
func IncludeAllRuleSets() ValidateOption {
	return IncludeRuleSets(WildcardRuleSetName)
}

// UseSelector adds a custom selector.
func UseSelector(s Selector) ValidateOption {
	return func(c *validateConfig) {
		if s != nil {
			c.selectors = append(c.selectors, s)
		}
	}
}

// ThrowOnFailures makes the run return ValidationErrors instead of an invalid Result.
func ThrowOnFailures() ValidateOption {
	return func(c *validateConfig) {
		c.throwOnFailures = true
	}
}

// WithCulture sets the culture used to resolve message templates.
func WithCulture(culture string) ValidateOption {
	return func(c *validateConfig) {
		c.culture = culture
	}
}

// WithRootData seeds RootContextData.
func WithRootData(key string, value any) ValidateOption {
	return func(c *validateConfig) {
		if c.rootData == nil {
			c.rootData = make(map[string]any)
		}
		c.rootData[key] = value
	}
}

// SkipValidated marks property paths whose nested validators must not run, for
// callers that already validated those sub-objects.
func SkipValidated(paths ...string) ValidateOption {
	return func(c *validateConfig) {
		c.skip = append(c.skip, paths...)
	}
}
