package validator

import "reflect"

// CountValidator checks the number of elements of a slice, array, map or string
// (runes are not counted, bytes are). A negative Max means no upper bound.
// Nil collections count as zero elements.
type CountValidator[P any] struct {
	Min  int
	Max  int
	name string
}

func Count[P any](minimum, maximum int) *CountValidator[P] {
	mustHaveLength[P]()
	if maximum != -1 && maximum < minimum {
		panic(configError("Count: max (%d) is less than min (%d)", maximum, minimum))
	}
	return &CountValidator[P]{Min: minimum, Max: maximum, name: "CountValidator"}
}

func MinCount[P any](minimum int) *CountValidator[P] {
	mustHaveLength[P]()
	return &CountValidator[P]{Min: minimum, Max: -1, name: "MinimumCountValidator"}
}

func MaxCount[P any](maximum int) *CountValidator[P] {
	mustHaveLength[P]()
	return &CountValidator[P]{Max: maximum, name: "MaximumCountValidator"}
}

func (v *CountValidator[P]) Name() string {
	if v.name == "" {
		return "CountValidator"
	}
	return v.name
}

func (v *CountValidator[P]) IsValid(pc *PropertyValidatorContext, value P) bool {
	n := count(value)
	if n >= v.Min && (v.Max == -1 || n <= v.Max) {
		return true
	}
	pc.MessageFormatter.
		AppendArgument("MinCount", v.Min).
		AppendArgument("MaxCount", v.Max).
		AppendArgument("TotalCount", n)
	return false
}

func count(v any) int {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return rv.Len()
	}
	return 0
}

func mustHaveLength[P any]() {
	t := reflect.TypeFor[P]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan, reflect.Interface:
		return
	}
	panic(configError("Count: %s has no length", t))
}
