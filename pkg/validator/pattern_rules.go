package validator

import "regexp"

// RegularExpressionValidator checks a string against a compiled pattern.
type RegularExpressionValidator struct {
	Expression *regexp.Regexp
	negate     bool
}

// Matches compiles pattern once and fails when the string does not match it.
// It panics on an invalid pattern.
func Matches(pattern string) *RegularExpressionValidator {
	return MatchesRegexp(compilePattern(pattern))
}

// MatchesRegexp fails when the string does not match re.
func MatchesRegexp(re *regexp.Regexp) *RegularExpressionValidator {
	if re == nil {
		panic(configError("MatchesRegexp requires a regular expression"))
	}
	return &RegularExpressionValidator{Expression: re}
}

// NotMatches fails when the string matches pattern.
func NotMatches(pattern string) *RegularExpressionValidator {
	return &RegularExpressionValidator{Expression: compilePattern(pattern), negate: true}
}

func compilePattern(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(configError("invalid pattern %q: %v", pattern, err))
	}
	return re
}

func (v *RegularExpressionValidator) Name() string {
	if v.negate {
		return "NotRegularExpressionValidator"
	}
	return "RegularExpressionValidator"
}

func (v *RegularExpressionValidator) IsValid(pc *PropertyValidatorContext, value string) bool {
	if v.Expression.MatchString(value) != v.negate {
		return true
	}
	pc.MessageFormatter.AppendArgument("RegularExpression", v.Expression.String())
	return false
}
