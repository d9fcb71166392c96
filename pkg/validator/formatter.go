package validator

import (
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"strings"
)

// Placeholders supplied for every failure.
const (
	PlaceholderPropertyName    = "PropertyName"
	PlaceholderPropertyValue   = "PropertyValue"
	PlaceholderCollectionIndex = "CollectionIndex"
)

var placeholderRegex = regexp.MustCompile(`\{([^{}:]+)(?::([^{}]+))?\}`)

// MessageFormatter substitutes {Name} and {Name:format} placeholders in message templates.
// The format part is a fmt verb, with or without the leading '%': "{Value:.2f}".
type MessageFormatter struct {
	values map[string]any
}

func NewMessageFormatter() *MessageFormatter {
	return &MessageFormatter{values: make(map[string]any)}
}

// AppendArgument adds or replaces a placeholder value.
func (f *MessageFormatter) AppendArgument(name string, value any) *MessageFormatter {
	f.values[name] = value
	return f
}

func (f *MessageFormatter) AppendPropertyName(name string) *MessageFormatter {
	return f.AppendArgument(PlaceholderPropertyName, name)
}

func (f *MessageFormatter) AppendPropertyValue(value any) *MessageFormatter {
	return f.AppendArgument(PlaceholderPropertyValue, value)
}

// Value returns a placeholder value.
func (f *MessageFormatter) Value(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// PlaceholderValues returns a copy of the placeholder values.
func (f *MessageFormatter) PlaceholderValues() map[string]any {
	return maps.Clone(f.values)
}

// BuildMessage replaces known placeholders in template. Unknown placeholders are left as-is.
func (f *MessageFormatter) BuildMessage(template string) string {
	if !strings.Contains(template, "{") {
		return template
	}
	return placeholderRegex.ReplaceAllStringFunc(template, func(m string) string {
		sub := placeholderRegex.FindStringSubmatch(m)
		v, ok := f.values[sub[1]]
		if !ok {
			return m
		}
		if sub[2] != "" {
			verb := sub[2]
			if !strings.HasPrefix(verb, "%") {
				verb = "%" + verb
			}
			return fmt.Sprintf(verb, deref(v))
		}
		return formatValue(v)
	})
}

// Placeholders returns the placeholder names used by template, in order of appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}

func formatValue(v any) string {
	v = deref(v)
	if v == nil {
		return ""
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		if _, ok := rv.Interface().(fmt.Stringer); ok {
			return rv.Interface()
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
