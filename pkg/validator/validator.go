package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Validator holds the rules declared for T and runs them.
//
// Rules are declared once, typically right after New, and must not be added while the
// validator is in use. Declared validators are safe for concurrent use.
type Validator[T any] struct {
	name  string
	opts  Options
	rules []validationRule[T]

	// declaration-time scopes (RuleSet, When, DependentRules)
	hooks   []func(validationRule[T])
	capture *[]validationRule[T]
}

// New creates an empty validator for T, starting from the process-wide defaults.
func New[T any](opts ...Option) *Validator[T] {
	o := freezeDefaults()
	for _, opt := range opts {
		opt(&o)
	}
	return &Validator[T]{
		name: fmt.Sprintf("%v", reflect.TypeFor[T]()),
		opts: o.withDefaults(),
	}
}

// Name returns the validated type's name, used in logs and errors.
func (v *Validator[T]) Name() string { return v.name }

// Options returns the validator's resolved options.
func (v *Validator[T]) Options() Options { return v.opts }

// Rules returns the top-level rules in declaration order.
func (v *Validator[T]) Rules() []Rule {
	out := make([]Rule, len(v.rules))
	for i, r := range v.rules {
		out[i] = r
	}
	return out
}

// SetRuleLevelCascadeMode changes the default cascade mode of rules without an explicit one.
func (v *Validator[T]) SetRuleLevelCascadeMode(m CascadeMode) { v.opts.RuleLevelCascadeMode = m }

// SetClassLevelCascadeMode sets whether the run stops after the first failing rule.
func (v *Validator[T]) SetClassLevelCascadeMode(m CascadeMode) { v.opts.ClassLevelCascadeMode = m }

func (v *Validator[T]) addRule(r validationRule[T]) {
	if v.capture != nil {
		*v.capture = append(*v.capture, r)
	} else {
		v.rules = append(v.rules, r)
	}
	for _, h := range v.hooks {
		h(r)
	}
}

func (v *Validator[T]) scoped(hook func(validationRule[T]), fn func()) {
	v.hooks = append(v.hooks, hook)
	defer func() { v.hooks = v.hooks[:len(v.hooks)-1] }()
	fn()
}

// RuleSet tags every rule declared inside fn with the given rulesets.
// names may hold several comma or semicolon separated names.
func (v *Validator[T]) RuleSet(names string, fn func()) {
	sets := splitRuleSetNames(names)
	if len(sets) == 0 {
		panic(configError("RuleSet requires at least one name"))
	}
	if fn == nil {
		panic(configError("RuleSet %q has no body", names))
	}
	v.scoped(func(r validationRule[T]) { r.addRuleSets(sets) }, fn)
}

// ConditionBuilder attaches an Otherwise block to a shared condition.
type ConditionBuilder[T any] struct {
	v     *Validator[T]
	cond  func(*Context[T]) bool
	async func(context.Context, *Context[T]) (bool, error)
}

// Otherwise declares rules that run only when the condition is false.
func (b *ConditionBuilder[T]) Otherwise(fn func()) {
	if fn == nil {
		panic(configError("Otherwise has no body"))
	}
	if b.async != nil {
		async := b.async
		b.v.scoped(func(r validationRule[T]) {
			r.addAsyncCondition(func(ctx context.Context, vc *Context[T]) (bool, error) {
				ok, err := async(ctx, vc)
				return !ok, err
			})
		}, fn)
		return
	}
	cond := b.cond
	b.v.scoped(func(r validationRule[T]) {
		r.addCondition(func(vc *Context[T]) bool { return !cond(vc) })
	}, fn)
}

// When applies pred as a rule-level condition to every rule declared inside fn.
func (v *Validator[T]) When(pred func(T) bool, fn func()) *ConditionBuilder[T] {
	if pred == nil || fn == nil {
		panic(configError("When requires a predicate and a body"))
	}
	cond := func(vc *Context[T]) bool { return pred(vc.instance) }
	v.scoped(func(r validationRule[T]) { r.addCondition(cond) }, fn)
	return &ConditionBuilder[T]{v: v, cond: cond}
}

// Unless is When with the predicate negated.
func (v *Validator[T]) Unless(pred func(T) bool, fn func()) *ConditionBuilder[T] {
	if pred == nil {
		panic(configError("Unless requires a predicate"))
	}
	return v.When(func(t T) bool { return !pred(t) }, fn)
}

// WhenAsync applies an asynchronous rule-level condition to every rule declared inside fn.
// Such rules can only run through the async entry points.
func (v *Validator[T]) WhenAsync(pred func(context.Context, T) (bool, error), fn func()) *ConditionBuilder[T] {
	if pred == nil || fn == nil {
		panic(configError("WhenAsync requires a predicate and a body"))
	}
	cond := func(ctx context.Context, vc *Context[T]) (bool, error) { return pred(ctx, vc.instance) }
	v.scoped(func(r validationRule[T]) { r.addAsyncCondition(cond) }, fn)
	return &ConditionBuilder[T]{v: v, async: cond}
}

func (v *Validator[T]) UnlessAsync(pred func(context.Context, T) (bool, error), fn func()) *ConditionBuilder[T] {
	if pred == nil {
		panic(configError("UnlessAsync requires a predicate"))
	}
	return v.WhenAsync(func(ctx context.Context, t T) (bool, error) {
		ok, err := pred(ctx, t)
		return !ok, err
	}, fn)
}

// Include runs other's rules against the same instance and context.
func (v *Validator[T]) Include(other *Validator[T]) {
	if other == nil || other == v {
		panic(configError("Include requires another validator"))
	}
	v.addRule(&includeRule[T]{owner: v, included: other})
}

// Validate runs the rules synchronously. It returns an
// *AsyncValidatorInvokedSynchronouslyError without running anything when a selected rule
// needs asynchronous evaluation.
func (v *Validator[T]) Validate(instance T, opts ...ValidateOption) (Result, error) {
	return v.ValidateContext(NewContext(instance, opts...))
}

// ValidateAsync runs the rules, awaiting asynchronous validators and conditions.
// Without a WithCulture option the culture stored by i18n.SetLocale on ctx is used.
func (v *Validator[T]) ValidateAsync(ctx context.Context, instance T, opts ...ValidateOption) (Result, error) {
	vc := NewContext(instance, opts...)
	if vc.culture == "" {
		vc.culture = i18n.LocaleFromContext(ctx)
	}
	return v.ValidateContextAsync(ctx, vc)
}

// ValidateContext runs the rules synchronously against a caller-built context.
func (v *Validator[T]) ValidateContext(vc *Context[T]) (Result, error) {
	if vc == nil {
		return Result{}, ErrNilContext
	}
	vc.isAsync = false
	return v.run(context.Background(), vc)
}

// ValidateContextAsync runs the rules asynchronously against a caller-built context.
func (v *Validator[T]) ValidateContextAsync(ctx context.Context, vc *Context[T]) (Result, error) {
	if vc == nil {
		return Result{}, ErrNilContext
	}
	if ctx == nil {
		ctx = context.Background()
	}
	vc.isAsync = true
	return v.run(ctx, vc)
}

// ValidateAny validates instance when it is a T. It always runs asynchronously.
func (v *Validator[T]) ValidateAny(ctx context.Context, instance any, opts ...ValidateOption) (Result, error) {
	t, ok := instance.(T)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s cannot validate %T", ErrUnsupportedType, v.name, instance)
	}
	return v.ValidateAsync(ctx, t, opts...)
}

// CanValidateInstancesOfType reports whether values of t can be passed to ValidateAny.
func (v *Validator[T]) CanValidateInstancesOfType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	target := reflect.TypeFor[T]()
	if target.Kind() == reflect.Interface {
		return t.Implements(target)
	}
	return t == target
}

func (v *Validator[T]) run(ctx context.Context, vc *Context[T]) (Result, error) {
	start := time.Now()

	if vc.chain.separator == "" && !vc.isChild {
		vc.chain = vc.chain.WithSeparator(v.opts.PropertySeparator)
	}
	if !vc.isChild && isNil(vc.instance) {
		return Result{}, ErrNilInstance
	}

	if !vc.isAsync {
		if name, ok := v.requiresAsync(vc.dryRun(), map[any]struct{}{}); ok {
			err := v.asyncError(name)
			v.opts.Logger.WarnContext(ctx, "asynchronous rule invoked synchronously",
				logger.Validator(v.name),
				logger.Component(name),
			)
			return Result{}, err
		}
	}

	failures, err := v.executeRules(ctx, vc)
	if err != nil {
		if !vc.isChild {
			v.opts.Logger.DebugContext(ctx, "validation aborted",
				logger.Validator(v.name),
				logger.Error(err),
			)
		}
		return Result{}, err
	}

	res := Result{Errors: failures, RuleSetsExecuted: vc.state.executedRuleSets()}
	if !vc.isChild {
		v.opts.Logger.DebugContext(ctx, "validation completed",
			logger.Validator(v.name),
			logger.FailureCount(len(failures)),
			logger.RuleSets(res.RuleSetsExecuted),
			logger.Culture(vc.culture),
			logger.Duration(time.Since(start)),
		)
	}

	if vc.throwOnFailures && !res.IsValid() {
		return Result{}, ValidationErrors(res.Errors)
	}
	return res, nil
}

func (v *Validator[T]) executeRules(ctx context.Context, vc *Context[T]) ([]ValidationFailure, error) {
	var failures []ValidationFailure
	for _, r := range v.rules {
		if vc.isAsync {
			if err := ctx.Err(); err != nil {
				return nil, errors.Join(ErrValidationCancelled, err)
			}
		}
		if !v.selects(r, vc) {
			continue
		}
		f, err := r.validate(ctx, vc)
		if err != nil {
			return nil, err
		}
		failures = append(failures, f...)
		if len(failures) > 0 && v.opts.ClassLevelCascadeMode == CascadeStopOnFirstFailure {
			break
		}
	}
	return failures, nil
}

func (v *Validator[T]) selects(r validationRule[T], vc *Context[T]) bool {
	return vc.selector.IsSatisfiedBy(r, r.path(vc), vc)
}

type scanKey struct {
	validator any
	path      string
}

// requiresAsync reports the first selected component that needs asynchronous evaluation.
// seen holds the validators on the current scan path, so include cycles terminate while
// the same validator is still scanned at every element it reaches.
func (v *Validator[T]) requiresAsync(vc *Context[T], seen map[any]struct{}) (string, bool) {
	key := scanKey{validator: v, path: vc.chain.String()}
	if _, ok := seen[key]; ok {
		return "", false
	}
	seen[key] = struct{}{}
	defer delete(seen, key)
	for _, r := range v.rules {
		if !v.selects(r, vc) {
			continue
		}
		if name, ok := r.requiresAsync(vc, seen); ok {
			return name, true
		}
	}
	return "", false
}

func (v *Validator[T]) asyncError(component string) error {
	return &AsyncValidatorInvokedSynchronouslyError{Validator: v.name, Component: component}
}
