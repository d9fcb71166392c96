package validator

import (
	"maps"
	"slices"
)

// LanguageManager resolves message templates by key and culture.
// It returns "" when it has no template; the built-in English template is used then.
// *i18n.Translator implements it.
type LanguageManager interface {
	GetString(key, culture string) string
}

// LanguageManagerFunc adapts a function to LanguageManager.
type LanguageManagerFunc func(key, culture string) string

func (f LanguageManagerFunc) GetString(key, culture string) string { return f(key, culture) }

var englishTemplates = map[string]string{
	"NotNullValidator":              "'{PropertyName}' must not be empty.",
	"NullValidator":                 "'{PropertyName}' must be empty.",
	"NotEmptyValidator":             "'{PropertyName}' must not be empty.",
	"EmptyValidator":                "'{PropertyName}' must be empty.",
	"PredicateValidator":            "The specified condition was not met for '{PropertyName}'.",
	"AsyncPredicateValidator":       "The specified condition was not met for '{PropertyName}'.",
	"LengthValidator":               "'{PropertyName}' must be between {MinLength} and {MaxLength} characters. You entered {TotalLength} characters.",
	"MinimumLengthValidator":        "The length of '{PropertyName}' must be at least {MinLength} characters. You entered {TotalLength} characters.",
	"MaximumLengthValidator":        "The length of '{PropertyName}' must be {MaxLength} characters or fewer. You entered {TotalLength} characters.",
	"ExactLengthValidator":          "'{PropertyName}' must be {MaxLength} characters in length. You entered {TotalLength} characters.",
	"EqualValidator":                "'{PropertyName}' must be equal to '{ComparisonValue}'.",
	"NotEqualValidator":             "'{PropertyName}' must not be equal to '{ComparisonValue}'.",
	"GreaterThanValidator":          "'{PropertyName}' must be greater than '{ComparisonValue}'.",
	"GreaterThanOrEqualValidator":   "'{PropertyName}' must be greater than or equal to '{ComparisonValue}'.",
	"LessThanValidator":             "'{PropertyName}' must be less than '{ComparisonValue}'.",
	"LessThanOrEqualValidator":      "'{PropertyName}' must be less than or equal to '{ComparisonValue}'.",
	"InclusiveBetweenValidator":     "'{PropertyName}' must be between {From} and {To}. You entered {PropertyValue}.",
	"ExclusiveBetweenValidator":     "'{PropertyName}' must be between {From} and {To} (exclusive). You entered {PropertyValue}.",
	"RegularExpressionValidator":    "'{PropertyName}' is not in the correct format.",
	"NotRegularExpressionValidator": "'{PropertyName}' must not match the pattern '{RegularExpression}'.",
	"EmailValidator":                "'{PropertyName}' is not a valid email address.",
	"CreditCardValidator":           "'{PropertyName}' is not a valid credit card number.",
	"InValidator":                   "'{PropertyName}' must be one of: {AllowedValues}.",
	"NotInValidator":                "'{PropertyName}' must not be one of: {ForbiddenValues}.",
	"EnumValidator":                 "'{PropertyName}' has a range of values which does not include '{PropertyValue}'.",
	"CountValidator":                "'{PropertyName}' must contain between {MinCount} and {MaxCount} items. It contains {TotalCount} items.",
	"MinimumCountValidator":         "'{PropertyName}' must contain at least {MinCount} items. It contains {TotalCount} items.",
	"MaximumCountValidator":         "'{PropertyName}' must contain {MaxCount} items or fewer. It contains {TotalCount} items.",
	"UUIDValidator":                 "'{PropertyName}' is not a valid UUID.",
	"NonNilUUIDValidator":           "'{PropertyName}' must not be the nil UUID.",
	"TimeValidator":                 "'{PropertyName}' is outside the allowed time range.",
	"TimeAfterValidator":            "'{PropertyName}' must be after {After}.",
	"TimeBeforeValidator":           "'{PropertyName}' must be before {Before}.",
	"TimeBetweenValidator":          "'{PropertyName}' must be between {After} and {Before}.",
	"PastDateValidator":             "'{PropertyName}' must be in the past.",
	"FutureDateValidator":           "'{PropertyName}' must be in the future.",
}

// DefaultTemplate returns the built-in English template for key, or "".
func DefaultTemplate(key string) string {
	return englishTemplates[key]
}

// DefaultTemplateKeys returns the keys of all built-in templates, sorted.
func DefaultTemplateKeys() []string {
	return slices.Sorted(maps.Keys(englishTemplates))
}

// KnownPlaceholders returns the placeholders a built-in validator supplies for key:
// the common ones plus those used by its English template.
func KnownPlaceholders(key string) []string {
	names := []string{PlaceholderPropertyName, PlaceholderPropertyValue, PlaceholderCollectionIndex}
	for _, p := range Placeholders(englishTemplates[key]) {
		if !slices.Contains(names, p) {
			names = append(names, p)
		}
	}
	if key == "EqualValidator" || key == "NotEqualValidator" || isComparisonKey(key) {
		names = append(names, "ComparisonProperty")
	}
	if key == "RegularExpressionValidator" {
		names = append(names, "RegularExpression")
	}
	return names
}

func isComparisonKey(key string) bool {
	switch key {
	case "GreaterThanValidator", "GreaterThanOrEqualValidator", "LessThanValidator", "LessThanOrEqualValidator":
		return true
	}
	return false
}

// resolveTemplate looks up a template by error code first, then by validator name,
// consulting the language manager before the built-in English templates.
func resolveTemplate(lm LanguageManager, errorCode, name, culture string) string {
	for _, key := range []string{errorCode, name} {
		if key == "" {
			continue
		}
		if lm != nil {
			if tmpl := lm.GetString(key, culture); tmpl != "" {
				return tmpl
			}
		}
		if tmpl := englishTemplates[key]; tmpl != "" {
			return tmpl
		}
	}
	return ""
}
