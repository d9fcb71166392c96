package validator

import (
	"reflect"
	"strings"
)

// NotNullValidator fails for nil pointers, slices, maps, interfaces, channels and funcs.
type NotNullValidator[P any] struct{}

func NotNull[P any]() NotNullValidator[P] { return NotNullValidator[P]{} }

func (NotNullValidator[P]) Name() string { return "NotNullValidator" }

func (NotNullValidator[P]) IsValid(_ *PropertyValidatorContext, value P) bool {
	return !isNil(value)
}

// NullValidator fails unless the value is nil.
type NullValidator[P any] struct{}

func Null[P any]() NullValidator[P] { return NullValidator[P]{} }

func (NullValidator[P]) Name() string { return "NullValidator" }

func (NullValidator[P]) IsValid(_ *PropertyValidatorContext, value P) bool {
	return isNil(value)
}

// NotEmptyValidator fails for nil, whitespace-only strings, empty collections and zero values.
type NotEmptyValidator[P any] struct{}

func NotEmpty[P any]() NotEmptyValidator[P] { return NotEmptyValidator[P]{} }

func (NotEmptyValidator[P]) Name() string { return "NotEmptyValidator" }

func (NotEmptyValidator[P]) IsValid(_ *PropertyValidatorContext, value P) bool {
	return !isEmpty(value)
}

// EmptyValidator fails unless the value is empty in the NotEmpty sense.
type EmptyValidator[P any] struct{}

func Empty[P any]() EmptyValidator[P] { return EmptyValidator[P]{} }

func (EmptyValidator[P]) Name() string { return "EmptyValidator" }

func (EmptyValidator[P]) IsValid(_ *PropertyValidatorContext, value P) bool {
	return isEmpty(value)
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	return isEmptyValue(reflect.ValueOf(v))
}

func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isEmptyValue(rv.Elem())
	default:
		return rv.IsZero()
	}
}

// EqualValidator fails unless the value equals a fixed value or another member.
type EqualValidator[P comparable] struct {
	ValueToCompare P
	// MemberName is set when comparing to another member.
	MemberName string
	compareTo  func(pc *PropertyValidatorContext) P
	negate     bool
}

// Equal fails unless the value equals v.
func Equal[P comparable](v P) *EqualValidator[P] {
	return &EqualValidator[P]{ValueToCompare: v}
}

// NotEqual fails when the value equals v.
func NotEqual[P comparable](v P) *EqualValidator[P] {
	return &EqualValidator[P]{ValueToCompare: v, negate: true}
}

// EqualField fails unless the value equals the member read by get.
func EqualField[T any, P comparable](member string, get func(T) P) *EqualValidator[P] {
	return &EqualValidator[P]{MemberName: member, compareTo: memberReader(member, get)}
}

// NotEqualField fails when the value equals the member read by get.
func NotEqualField[T any, P comparable](member string, get func(T) P) *EqualValidator[P] {
	return &EqualValidator[P]{MemberName: member, compareTo: memberReader(member, get), negate: true}
}

func (v *EqualValidator[P]) Name() string {
	if v.negate {
		return "NotEqualValidator"
	}
	return "EqualValidator"
}

func (v *EqualValidator[P]) IsValid(pc *PropertyValidatorContext, value P) bool {
	other := v.ValueToCompare
	if v.compareTo != nil {
		other = v.compareTo(pc)
	}
	if (value == other) != v.negate {
		return true
	}
	appendComparison(pc, other, v.MemberName)
	return false
}

func memberReader[T, P any](member string, get func(T) P) func(*PropertyValidatorContext) P {
	if get == nil {
		panic(configError("comparison with %q requires a getter", member))
	}
	return func(pc *PropertyValidatorContext) P {
		return get(instanceOf[T](pc))
	}
}

func appendComparison(pc *PropertyValidatorContext, value any, member string) {
	pc.MessageFormatter.AppendArgument("ComparisonValue", value)
	if member != "" {
		pc.MessageFormatter.AppendArgument("ComparisonProperty", DisplayName(member))
	} else {
		pc.MessageFormatter.AppendArgument("ComparisonProperty", "")
	}
}
