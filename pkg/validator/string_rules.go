package validator

import "unicode/utf8"

// LengthValidator checks the number of characters (runes) of a string.
// A negative Max means no upper bound.
type LengthValidator struct {
	Min  int
	Max  int
	name string
}

// Length fails unless the string has between minimum and maximum characters.
func Length(minimum, maximum int) *LengthValidator {
	if maximum != -1 && maximum < minimum {
		panic(configError("Length: max (%d) is less than min (%d)", maximum, minimum))
	}
	return &LengthValidator{Min: minimum, Max: maximum, name: "LengthValidator"}
}

// MinimumLength fails when the string is shorter than minimum.
func MinimumLength(minimum int) *LengthValidator {
	return &LengthValidator{Min: minimum, Max: -1, name: "MinimumLengthValidator"}
}

// MaximumLength fails when the string is longer than maximum.
func MaximumLength(maximum int) *LengthValidator {
	return &LengthValidator{Min: 0, Max: maximum, name: "MaximumLengthValidator"}
}

// ExactLength fails unless the string has exactly n characters.
func ExactLength(n int) *LengthValidator {
	return &LengthValidator{Min: n, Max: n, name: "ExactLengthValidator"}
}

func (v *LengthValidator) Name() string {
	if v.name == "" {
		return "LengthValidator"
	}
	return v.name
}

func (v *LengthValidator) IsValid(pc *PropertyValidatorContext, value string) bool {
	n := utf8.RuneCountInString(value)
	if n >= v.Min && (v.Max == -1 || n <= v.Max) {
		return true
	}
	pc.MessageFormatter.
		AppendArgument("MinLength", v.Min).
		AppendArgument("MaxLength", v.Max).
		AppendArgument("TotalLength", n)
	return false
}
