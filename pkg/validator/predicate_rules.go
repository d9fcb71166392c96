package validator

import "context"

// PredicateValidator fails when Predicate returns false.
type PredicateValidator[P any] struct {
	Predicate func(pc *PropertyValidatorContext, value P) bool
}

func (*PredicateValidator[P]) Name() string { return "PredicateValidator" }

func (v *PredicateValidator[P]) IsValid(pc *PropertyValidatorContext, value P) bool {
	return v.Predicate(pc, value)
}

// AsyncPredicateValidator fails when Predicate returns false. It is async-only.
type AsyncPredicateValidator[P any] struct {
	Predicate func(ctx context.Context, pc *PropertyValidatorContext, value P) (bool, error)
}

func (*AsyncPredicateValidator[P]) Name() string { return "AsyncPredicateValidator" }

func (v *AsyncPredicateValidator[P]) IsValidAsync(ctx context.Context, pc *PropertyValidatorContext, value P) (bool, error) {
	return v.Predicate(ctx, pc, value)
}
