package validator

import (
	"fmt"
	"slices"
	"strings"
)

// InValidator checks membership of a fixed set of values.
type InValidator[P comparable] struct {
	Values []P
	negate bool
}

// In fails unless the value is one of values.
func In[P comparable](values ...P) *InValidator[P] {
	if len(values) == 0 {
		panic(configError("In requires at least one value"))
	}
	return &InValidator[P]{Values: slices.Clone(values)}
}

// NotIn fails when the value is one of values.
func NotIn[P comparable](values ...P) *InValidator[P] {
	return &InValidator[P]{Values: slices.Clone(values), negate: true}
}

func (v *InValidator[P]) Name() string {
	if v.negate {
		return "NotInValidator"
	}
	return "InValidator"
}

func (v *InValidator[P]) IsValid(pc *PropertyValidatorContext, value P) bool {
	if slices.Contains(v.Values, value) != v.negate {
		return true
	}
	key := "AllowedValues"
	if v.negate {
		key = "ForbiddenValues"
	}
	pc.MessageFormatter.AppendArgument(key, joinValues(v.Values))
	return false
}

func joinValues[P any](values []P) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// EnumNameValidator checks that a string names a member of an enumeration.
type EnumNameValidator struct {
	Names         []string
	CaseSensitive bool
}

// IsEnumName fails unless the string is one of names.
func IsEnumName(names []string, caseSensitive bool) *EnumNameValidator {
	if len(names) == 0 {
		panic(configError("IsEnumName requires at least one name"))
	}
	return &EnumNameValidator{Names: slices.Clone(names), CaseSensitive: caseSensitive}
}

func (*EnumNameValidator) Name() string { return "EnumValidator" }

func (v *EnumNameValidator) IsValid(_ *PropertyValidatorContext, value string) bool {
	if v.CaseSensitive {
		return slices.Contains(v.Names, value)
	}
	return containsFold(v.Names, value)
}
