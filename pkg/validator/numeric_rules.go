package validator

import "cmp"

// Comparison is the operator of a ComparisonValidator.
type Comparison int

const (
	ComparisonGreaterThan Comparison = iota
	ComparisonGreaterThanOrEqual
	ComparisonLessThan
	ComparisonLessThanOrEqual
)

// ComparisonValidator compares an ordered value with a fixed value or another member.
type ComparisonValidator[P cmp.Ordered] struct {
	Comparison     Comparison
	ValueToCompare P
	MemberName     string
	compareTo      func(pc *PropertyValidatorContext) P
}

func GreaterThan[P cmp.Ordered](v P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonGreaterThan, ValueToCompare: v}
}

func GreaterThanOrEqualTo[P cmp.Ordered](v P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonGreaterThanOrEqual, ValueToCompare: v}
}

func LessThan[P cmp.Ordered](v P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonLessThan, ValueToCompare: v}
}

func LessThanOrEqualTo[P cmp.Ordered](v P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonLessThanOrEqual, ValueToCompare: v}
}

// GreaterThanField compares with the member read by get, e.g. EndDate > StartDate.
func GreaterThanField[T any, P cmp.Ordered](member string, get func(T) P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonGreaterThan, MemberName: member, compareTo: memberReader(member, get)}
}

func GreaterThanOrEqualToField[T any, P cmp.Ordered](member string, get func(T) P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonGreaterThanOrEqual, MemberName: member, compareTo: memberReader(member, get)}
}

func LessThanField[T any, P cmp.Ordered](member string, get func(T) P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonLessThan, MemberName: member, compareTo: memberReader(member, get)}
}

func LessThanOrEqualToField[T any, P cmp.Ordered](member string, get func(T) P) *ComparisonValidator[P] {
	return &ComparisonValidator[P]{Comparison: ComparisonLessThanOrEqual, MemberName: member, compareTo: memberReader(member, get)}
}

func (v *ComparisonValidator[P]) Name() string {
	switch v.Comparison {
	case ComparisonGreaterThan:
		return "GreaterThanValidator"
	case ComparisonGreaterThanOrEqual:
		return "GreaterThanOrEqualValidator"
	case ComparisonLessThan:
		return "LessThanValidator"
	default:
		return "LessThanOrEqualValidator"
	}
}

func (v *ComparisonValidator[P]) IsValid(pc *PropertyValidatorContext, value P) bool {
	other := v.ValueToCompare
	if v.compareTo != nil {
		other = v.compareTo(pc)
	}

	c := cmp.Compare(value, other)
	var ok bool
	switch v.Comparison {
	case ComparisonGreaterThan:
		ok = c > 0
	case ComparisonGreaterThanOrEqual:
		ok = c >= 0
	case ComparisonLessThan:
		ok = c < 0
	default:
		ok = c <= 0
	}
	if !ok {
		appendComparison(pc, other, v.MemberName)
	}
	return ok
}

// BetweenValidator checks that a value lies in [From, To], or (From, To) when exclusive.
type BetweenValidator[P cmp.Ordered] struct {
	From      P
	To        P
	Exclusive bool
}

// InclusiveBetween panics when to is less than from.
func InclusiveBetween[P cmp.Ordered](from, to P) *BetweenValidator[P] {
	if cmp.Less(to, from) {
		panic(configError("InclusiveBetween: to (%v) is less than from (%v)", to, from))
	}
	return &BetweenValidator[P]{From: from, To: to}
}

// ExclusiveBetween panics when to is less than from.
func ExclusiveBetween[P cmp.Ordered](from, to P) *BetweenValidator[P] {
	if cmp.Less(to, from) {
		panic(configError("ExclusiveBetween: to (%v) is less than from (%v)", to, from))
	}
	return &BetweenValidator[P]{From: from, To: to, Exclusive: true}
}

func (v *BetweenValidator[P]) Name() string {
	if v.Exclusive {
		return "ExclusiveBetweenValidator"
	}
	return "InclusiveBetweenValidator"
}

func (v *BetweenValidator[P]) IsValid(pc *PropertyValidatorContext, value P) bool {
	var ok bool
	if v.Exclusive {
		ok = cmp.Compare(value, v.From) > 0 && cmp.Compare(value, v.To) < 0
	} else {
		ok = cmp.Compare(value, v.From) >= 0 && cmp.Compare(value, v.To) <= 0
	}
	if !ok {
		pc.MessageFormatter.AppendArgument("From", v.From).AppendArgument("To", v.To)
	}
	return ok
}
