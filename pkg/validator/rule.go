package validator

import (
	"context"
	"errors"
	"slices"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Rule is the read-only view of a declared rule.
type Rule interface {
	// PropertyName is the member name the rule targets; "" for whole-instance rules.
	PropertyName() string
	DisplayName() string
	RuleSets() []string
	Components() []Component
	DependentRules() []Rule
	HasCondition() bool
	HasAsyncCondition() bool
	CascadeMode() CascadeMode
	IsCollection() bool
}

type validationRule[T any] interface {
	Rule
	validate(ctx context.Context, vc *Context[T]) ([]ValidationFailure, error)
	requiresAsync(vc *Context[T], seen map[any]struct{}) (string, bool)
	path(vc *Context[T]) string
	addCondition(cond func(*Context[T]) bool)
	addAsyncCondition(cond func(context.Context, *Context[T]) (bool, error))
	addRuleSets(names []string)
}

// PropertyRule validates one property, or each element of a collection property.
type PropertyRule[T, P any] struct {
	owner        *Validator[T]
	propertyName string
	displayName  string

	value        func(T) P
	elements     func(T) []P
	filter       func(P) bool
	indexBuilder func(T, []P, P, int) string

	ruleSets        []string
	cascade         *CascadeMode
	components      []*component[T, P]
	conditions      []func(*Context[T]) bool
	asyncConditions []func(context.Context, *Context[T]) (bool, error)
	dependents      []validationRule[T]
	onAnyFailure    func(T, []ValidationFailure)
}

func (r *PropertyRule[T, P]) PropertyName() string { return r.propertyName }

func (r *PropertyRule[T, P]) DisplayName() string {
	if r.displayName != "" {
		return r.displayName
	}
	if r.propertyName == "" {
		return ""
	}
	return r.owner.opts.DisplayNameResolver(r.propertyName)
}

func (r *PropertyRule[T, P]) RuleSets() []string { return slices.Clone(r.ruleSets) }

func (r *PropertyRule[T, P]) Components() []Component {
	out := make([]Component, len(r.components))
	for i, c := range r.components {
		out[i] = c
	}
	return out
}

func (r *PropertyRule[T, P]) DependentRules() []Rule {
	out := make([]Rule, len(r.dependents))
	for i, d := range r.dependents {
		out[i] = d
	}
	return out
}

func (r *PropertyRule[T, P]) HasCondition() bool      { return len(r.conditions) > 0 }
func (r *PropertyRule[T, P]) HasAsyncCondition() bool { return len(r.asyncConditions) > 0 }
func (r *PropertyRule[T, P]) IsCollection() bool      { return r.elements != nil }

// CascadeMode returns the rule's own mode, or the validator's rule-level mode when unset.
func (r *PropertyRule[T, P]) CascadeMode() CascadeMode {
	if r.cascade != nil {
		return *r.cascade
	}
	return r.owner.opts.RuleLevelCascadeMode
}

func (r *PropertyRule[T, P]) path(vc *Context[T]) string {
	return vc.chain.BuildPropertyName(r.propertyName)
}

func (r *PropertyRule[T, P]) addCondition(cond func(*Context[T]) bool) {
	r.conditions = append(r.conditions, cond)
}

func (r *PropertyRule[T, P]) addAsyncCondition(cond func(context.Context, *Context[T]) (bool, error)) {
	r.asyncConditions = append(r.asyncConditions, cond)
}

func (r *PropertyRule[T, P]) addRuleSets(names []string) {
	for _, n := range names {
		if !containsFold(r.ruleSets, n) {
			r.ruleSets = append(r.ruleSets, n)
		}
	}
}

func (r *PropertyRule[T, P]) addComponent(c *component[T, P]) {
	r.components = append(r.components, c)
}

// requiresAsync reports the first component that needs asynchronous evaluation.
// Nested validators are scanned against the values the run would hand them, so
// element paths and nil or cyclic values are treated as during execution.
func (r *PropertyRule[T, P]) requiresAsync(vc *Context[T], seen map[any]struct{}) (string, bool) {
	if len(r.asyncConditions) > 0 {
		return "condition on " + r.path(vc), true
	}
	nested := false
	for _, c := range r.components {
		if name, ok := c.requiresAsync(); ok {
			return name, true
		}
		nested = nested || c.nests()
	}
	if nested && r.syncConditionsHold(vc) {
		if name, ok := r.scanNested(vc, seen); ok {
			return name, true
		}
	}
	for _, d := range r.dependents {
		if !r.owner.selects(d, vc) {
			continue
		}
		if name, ok := d.requiresAsync(vc, seen); ok {
			return name, true
		}
	}
	return "", false
}

func (r *PropertyRule[T, P]) scanNested(vc *Context[T], seen map[any]struct{}) (string, bool) {
	base := vc.chain.AddPath(r.propertyName)
	if r.elements == nil {
		return r.scanValue(vc, base, r.value(vc.instance), false, seen)
	}
	items := r.elements(vc.instance)
	for i, item := range items {
		if r.filter != nil && !r.filter(item) {
			continue
		}
		if name, ok := r.scanValue(vc, r.elementChain(vc, base, items, item, i), item, true, seen); ok {
			return name, true
		}
	}
	return "", false
}

func (r *PropertyRule[T, P]) scanValue(vc *Context[T], chain PropertyChain, value P, collection bool, seen map[any]struct{}) (string, bool) {
	for _, c := range r.components {
		if !c.nests() || !c.syncConditionsHold(vc) {
			continue
		}
		if name, ok := c.source.requiresAsync(vc, chain, value, collection, seen); ok {
			return name, true
		}
	}
	return "", false
}

func (r *PropertyRule[T, P]) syncConditionsHold(vc *Context[T]) bool {
	for _, cond := range r.conditions {
		if !cond(vc) {
			return false
		}
	}
	return true
}

func (r *PropertyRule[T, P]) conditionsPass(ctx context.Context, vc *Context[T]) (bool, error) {
	for _, cond := range r.conditions {
		if !cond(vc) {
			return false, nil
		}
	}
	for _, cond := range r.asyncConditions {
		if !vc.isAsync {
			return false, r.owner.asyncError("condition on " + r.path(vc))
		}
		ok, err := cond(ctx, vc)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (r *PropertyRule[T, P]) validate(ctx context.Context, vc *Context[T]) ([]ValidationFailure, error) {
	ok, err := r.conditionsPass(ctx, vc)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.owner.opts.Logger.DebugContext(ctx, "rule skipped by condition",
			logger.Validator(r.owner.name),
			logger.Property(r.path(vc)),
		)
		return nil, nil
	}

	var failures []ValidationFailure
	if r.elements != nil {
		failures, err = r.validateElements(ctx, vc)
	} else {
		failures, err = r.runComponents(ctx, vc, vc.chain.AddPath(r.propertyName), r.value(vc.instance), -1)
	}
	if err != nil {
		return nil, err
	}

	if len(failures) > 0 && r.onAnyFailure != nil {
		r.onAnyFailure(vc.instance, failures)
	}
	if len(failures) == 0 {
		for _, d := range r.dependents {
			if !r.owner.selects(d, vc) {
				continue
			}
			df, err := d.validate(ctx, vc)
			if err != nil {
				return nil, err
			}
			failures = append(failures, df...)
		}
	}
	return failures, nil
}

func (r *PropertyRule[T, P]) validateElements(ctx context.Context, vc *Context[T]) ([]ValidationFailure, error) {
	items := r.elements(vc.instance)
	if len(items) == 0 {
		return nil, nil
	}

	base := vc.chain.AddPath(r.propertyName)
	var failures []ValidationFailure
	for i, item := range items {
		if r.filter != nil && !r.filter(item) {
			continue
		}
		f, err := r.runComponents(ctx, vc, r.elementChain(vc, base, items, item, i), item, i)
		if err != nil {
			return nil, err
		}
		failures = append(failures, f...)
	}
	return failures, nil
}

func (r *PropertyRule[T, P]) elementChain(vc *Context[T], base PropertyChain, items []P, item P, i int) PropertyChain {
	if r.indexBuilder != nil {
		return base.AddIndexer(r.indexBuilder(vc.instance, items, item, i), false)
	}
	return base.AddIndexer(i, true)
}

// runComponents evaluates the components in declaration order against one value,
// stopping after the first failing component when the rule cascade says so.
func (r *PropertyRule[T, P]) runComponents(ctx context.Context, vc *Context[T], chain PropertyChain, value P, index int) ([]ValidationFailure, error) {
	stop := r.CascadeMode() == CascadeStopOnFirstFailure
	var failures []ValidationFailure
	for _, c := range r.components {
		if vc.isAsync {
			if err := ctx.Err(); err != nil {
				return nil, errors.Join(ErrValidationCancelled, err)
			}
		}
		pc := r.propertyContext(vc, chain, value, index)
		f, err := r.invoke(ctx, vc, c, pc, value)
		if err != nil {
			return nil, err
		}
		if c.onFailure != nil {
			for _, failure := range f {
				c.onFailure(vc.instance, value, failure)
			}
		}
		failures = append(failures, f...)
		if stop && len(f) > 0 {
			break
		}
	}
	return failures, nil
}

func (r *PropertyRule[T, P]) invoke(ctx context.Context, vc *Context[T], c *component[T, P], pc *PropertyValidatorContext, value P) ([]ValidationFailure, error) {
	run, err := c.shouldRun(ctx, vc)
	if err != nil {
		return nil, r.wrapAsync(err, c)
	}
	if !run {
		return nil, nil
	}

	if c.source != nil {
		if c.source.asyncOnly() && !vc.isAsync {
			return nil, r.owner.asyncError(c.name)
		}
		f, err := c.source.collect(ctx, vc, pc, value)
		return f, r.wrapAsync(err, c)
	}

	valid, err := c.check(ctx, vc, pc, value)
	if err != nil {
		return nil, r.wrapAsync(err, c)
	}
	if valid {
		return nil, nil
	}
	return []ValidationFailure{r.createFailure(vc, c, pc, value)}, nil
}

func (r *PropertyRule[T, P]) wrapAsync(err error, c *component[T, P]) error {
	if errors.Is(err, errNeedsAsync) {
		return r.owner.asyncError(c.name)
	}
	return err
}

func (r *PropertyRule[T, P]) propertyContext(vc *Context[T], chain PropertyChain, value P, index int) *PropertyValidatorContext {
	pc := &PropertyValidatorContext{
		ValidationContext: vc,
		PropertyName:      chain.String(),
		DisplayName:       r.DisplayName(),
		PropertyValue:     value,
		MessageFormatter:  NewMessageFormatter(),
		path:              chain,
		rule:              r,
		collectionIndex:   index,
	}
	pc.MessageFormatter.AppendPropertyName(pc.DisplayName).AppendPropertyValue(value)
	if index >= 0 {
		pc.MessageFormatter.AppendArgument(PlaceholderCollectionIndex, index)
	}
	return pc
}

func (r *PropertyRule[T, P]) createFailure(vc *Context[T], c *component[T, P], pc *PropertyValidatorContext, value P) ValidationFailure {
	opts := r.owner.opts

	code := c.errorCode
	if code == "" {
		code = opts.ErrorCodeResolver(c.name)
	}

	var state any
	if c.stateProvider != nil {
		state = c.stateProvider(vc.instance, value)
	}

	return ValidationFailure{
		PropertyName:                      pc.PropertyName,
		ErrorMessage:                      pc.MessageFormatter.BuildMessage(c.template(vc, value, opts)),
		AttemptedValue:                    value,
		CustomState:                       state,
		Severity:                          c.severityFor(vc, value, opts.DefaultSeverity),
		ErrorCode:                         code,
		FormattedMessagePlaceholderValues: pc.MessageFormatter.PlaceholderValues(),
	}
}
