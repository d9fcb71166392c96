package validator

import (
	"context"
	"slices"
)

// IncludeRule is implemented by rules created with Include.
type IncludeRule interface {
	Rule
	// Included returns the included validator.
	Included() any
}

type includeRule[T any] struct {
	owner           *Validator[T]
	included        *Validator[T]
	ruleSets        []string
	conditions      []func(*Context[T]) bool
	asyncConditions []func(context.Context, *Context[T]) (bool, error)
}

func isIncludeRule(r Rule) bool {
	_, ok := r.(IncludeRule)
	return ok
}

func (r *includeRule[T]) Included() any            { return r.included }
func (r *includeRule[T]) PropertyName() string     { return "" }
func (r *includeRule[T]) DisplayName() string      { return "" }
func (r *includeRule[T]) RuleSets() []string       { return slices.Clone(r.ruleSets) }
func (r *includeRule[T]) Components() []Component  { return nil }
func (r *includeRule[T]) DependentRules() []Rule   { return nil }
func (r *includeRule[T]) HasCondition() bool       { return len(r.conditions) > 0 }
func (r *includeRule[T]) HasAsyncCondition() bool  { return len(r.asyncConditions) > 0 }
func (r *includeRule[T]) CascadeMode() CascadeMode { return r.owner.opts.RuleLevelCascadeMode }
func (r *includeRule[T]) IsCollection() bool       { return false }

func (r *includeRule[T]) path(vc *Context[T]) string { return vc.chain.String() }

func (r *includeRule[T]) addCondition(cond func(*Context[T]) bool) {
	r.conditions = append(r.conditions, cond)
}

func (r *includeRule[T]) addAsyncCondition(cond func(context.Context, *Context[T]) (bool, error)) {
	r.asyncConditions = append(r.asyncConditions, cond)
}

func (r *includeRule[T]) addRuleSets(names []string) {
	for _, n := range names {
		if !containsFold(r.ruleSets, n) {
			r.ruleSets = append(r.ruleSets, n)
		}
	}
}

func (r *includeRule[T]) requiresAsync(vc *Context[T], seen map[any]struct{}) (string, bool) {
	if len(r.asyncConditions) > 0 {
		return "condition on included " + r.included.name, true
	}
	return r.included.requiresAsync(vc, seen)
}

func (r *includeRule[T]) validate(ctx context.Context, vc *Context[T]) ([]ValidationFailure, error) {
	for _, cond := range r.conditions {
		if !cond(vc) {
			return nil, nil
		}
	}
	for _, cond := range r.asyncConditions {
		if !vc.isAsync {
			return nil, r.owner.asyncError("condition on included " + r.included.name)
		}
		ok, err := cond(ctx, vc)
		if err != nil || !ok {
			return nil, err
		}
	}
	return r.included.executeRules(ctx, vc)
}
