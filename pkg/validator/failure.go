package validator

import (
	"fmt"
	"slices"
	"strings"
)

// Severity classifies a failure.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity parses "error", "warning" or "info" (case-insensitive).
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityError, fmt.Errorf("%w: unknown severity %q", ErrInvalidConfiguration, s)
	}
}

// UnmarshalText lets Severity be read from environment variables and config files.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ValidationFailure describes one failed check.
type ValidationFailure struct {
	// PropertyName is the full path of the property, e.g. "Orders[2].Sku".
	PropertyName   string
	ErrorMessage   string
	AttemptedValue any
	CustomState    any
	Severity       Severity
	ErrorCode      string
	// FormattedMessagePlaceholderValues holds the placeholder values used to build ErrorMessage.
	FormattedMessagePlaceholderValues map[string]any
}

// NewValidationFailure creates an error-severity failure.
func NewValidationFailure(propertyName, message string, attemptedValue any) ValidationFailure {
	return ValidationFailure{
		PropertyName:   propertyName,
		ErrorMessage:   message,
		AttemptedValue: attemptedValue,
	}
}

func (f ValidationFailure) String() string {
	if f.PropertyName == "" {
		return f.ErrorMessage
	}
	return f.PropertyName + ": " + f.ErrorMessage
}

// Result is the outcome of one validation run.
type Result struct {
	Errors []ValidationFailure
	// RuleSetsExecuted lists the rulesets whose rules were admitted, in first-seen order.
	RuleSetsExecuted []string
}

// IsValid reports whether the run produced no failures.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Has reports whether any failure targets property.
func (r Result) Has(property string) bool {
	return slices.ContainsFunc(r.Errors, func(f ValidationFailure) bool {
		return f.PropertyName == property
	})
}

// Get returns the messages of all failures for property, in order.
func (r Result) Get(property string) []string {
	var messages []string
	for _, f := range r.Errors {
		if f.PropertyName == property {
			messages = append(messages, f.ErrorMessage)
		}
	}
	return messages
}

// Failures returns the failures for property, in order.
func (r Result) Failures(property string) []ValidationFailure {
	var out []ValidationFailure
	for _, f := range r.Errors {
		if f.PropertyName == property {
			out = append(out, f)
		}
	}
	return out
}

// Fields returns the distinct failing property names in first-seen order.
func (r Result) Fields() []string {
	seen := make(map[string]struct{}, len(r.Errors))
	fields := make([]string, 0, len(r.Errors))
	for _, f := range r.Errors {
		if _, ok := seen[f.PropertyName]; ok {
			continue
		}
		seen[f.PropertyName] = struct{}{}
		fields = append(fields, f.PropertyName)
	}
	return fields
}

// ToMap groups failure messages by property name.
func (r Result) ToMap() map[string][]string {
	out := make(map[string][]string, len(r.Errors))
	for _, f := range r.Errors {
		out[f.PropertyName] = append(out[f.PropertyName], f.ErrorMessage)
	}
	return out
}

// String joins all failure messages with newlines.
func (r Result) String() string {
	return r.StringWithSeparator("\n")
}

// StringWithSeparator joins all failure messages with sep.
func (r Result) StringWithSeparator(sep string) string {
	messages := make([]string, len(r.Errors))
	for i, f := range r.Errors {
		messages[i] = f.ErrorMessage
	}
	return strings.Join(messages, sep)
}

// Err returns nil for a valid result and a ValidationErrors otherwise.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return ValidationErrors(slices.Clone(r.Errors))
}
