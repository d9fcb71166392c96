package validator

import "context"

// RuleBuilder declares the validators and modifiers of one rule.
type RuleBuilder[T, P any] struct {
	v    *Validator[T]
	rule *PropertyRule[T, P]
}

// RuleFor declares a rule for the property read by get. name is the member name used
// in property paths; "" targets the instance itself.
func RuleFor[T, P any](v *Validator[T], name string, get func(T) P) *RuleBuilder[T, P] {
	if v == nil {
		panic(configError("RuleFor(%q) on a nil validator", name))
	}
	if get == nil {
		panic(configError("RuleFor(%q) requires a property getter", name))
	}
	r := &PropertyRule[T, P]{owner: v, propertyName: name, value: get}
	v.addRule(r)
	return &RuleBuilder[T, P]{v: v, rule: r}
}

// RuleForAccessor declares a rule for a PropertyAccessor.
func RuleForAccessor[T, P any](v *Validator[T], acc PropertyAccessor[T, P]) *RuleBuilder[T, P] {
	return RuleFor(v, acc.Name, acc.Get)
}

// RuleForField declares a rule for an exported struct field resolved by reflection,
// e.g. RuleForField[string](v, "Address.City").
func RuleForField[P, T any](v *Validator[T], path string) *RuleBuilder[T, P] {
	return RuleForAccessor(v, Field[T, P](path))
}

// CollectionRuleBuilder declares a rule applied to each element of a collection.
type CollectionRuleBuilder[T, E any] struct {
	*RuleBuilder[T, E]
}

// RuleForEach declares a rule applied to every element returned by get.
// Element paths are rendered as name[index].
func RuleForEach[T, E any](v *Validator[T], name string, get func(T) []E) *CollectionRuleBuilder[T, E] {
	if v == nil {
		panic(configError("RuleForEach(%q) on a nil validator", name))
	}
	if get == nil {
		panic(configError("RuleForEach(%q) requires a collection getter", name))
	}
	r := &PropertyRule[T, E]{owner: v, propertyName: name, elements: get}
	v.addRule(r)
	return &CollectionRuleBuilder[T, E]{&RuleBuilder[T, E]{v: v, rule: r}}
}

// Where skips elements for which filter returns false.
func (b *CollectionRuleBuilder[T, E]) Where(filter func(E) bool) *CollectionRuleBuilder[T, E] {
	b.rule.filter = filter
	return b
}

// OverrideIndexer replaces the "[index]" suffix of element paths with the text returned by fn.
func (b *CollectionRuleBuilder[T, E]) OverrideIndexer(fn func(instance T, items []E, item E, index int) string) *CollectionRuleBuilder[T, E] {
	b.rule.indexBuilder = fn
	return b
}

// Rule returns the rule being built.
func (b *RuleBuilder[T, P]) Rule() *PropertyRule[T, P] { return b.rule }

// Add attaches a property validator.
func (b *RuleBuilder[T, P]) Add(pv PropertyValidator[P]) *RuleBuilder[T, P] {
	if pv == nil {
		panic(configError("Add on %q requires a validator", b.rule.propertyName))
	}
	b.rule.addComponent(newComponent[T](pv))
	return b
}

// AddAsync attaches an asynchronous property validator.
func (b *RuleBuilder[T, P]) AddAsync(av AsyncPropertyValidator[P]) *RuleBuilder[T, P] {
	if av == nil {
		panic(configError("AddAsync on %q requires a validator", b.rule.propertyName))
	}
	b.rule.addComponent(newAsyncComponent[T](av))
	return b
}

func (b *RuleBuilder[T, P]) NotNull() *RuleBuilder[T, P]  { return b.Add(NotNull[P]()) }
func (b *RuleBuilder[T, P]) Null() *RuleBuilder[T, P]     { return b.Add(Null[P]()) }
func (b *RuleBuilder[T, P]) NotEmpty() *RuleBuilder[T, P] { return b.Add(NotEmpty[P]()) }
func (b *RuleBuilder[T, P]) Empty() *RuleBuilder[T, P]    { return b.Add(Empty[P]()) }

// Must fails when pred returns false.
func (b *RuleBuilder[T, P]) Must(pred func(P) bool) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("Must on %q requires a predicate", b.rule.propertyName))
	}
	return b.Add(&PredicateValidator[P]{Predicate: func(_ *PropertyValidatorContext, v P) bool { return pred(v) }})
}

// MustWith is Must with access to the owning instance and the property context.
func (b *RuleBuilder[T, P]) MustWith(pred func(T, P, *PropertyValidatorContext) bool) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("MustWith on %q requires a predicate", b.rule.propertyName))
	}
	return b.Add(&PredicateValidator[P]{Predicate: func(pc *PropertyValidatorContext, v P) bool {
		return pred(instanceOf[T](pc), v, pc)
	}})
}

// MustAsync fails when pred returns false. Errors abort the run.
func (b *RuleBuilder[T, P]) MustAsync(pred func(context.Context, P) (bool, error)) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("MustAsync on %q requires a predicate", b.rule.propertyName))
	}
	return b.AddAsync(&AsyncPredicateValidator[P]{Predicate: func(ctx context.Context, _ *PropertyValidatorContext, v P) (bool, error) {
		return pred(ctx, v)
	}})
}

func (b *RuleBuilder[T, P]) MustWithAsync(pred func(context.Context, T, P, *PropertyValidatorContext) (bool, error)) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("MustWithAsync on %q requires a predicate", b.rule.propertyName))
	}
	return b.AddAsync(&AsyncPredicateValidator[P]{Predicate: func(ctx context.Context, pc *PropertyValidatorContext, v P) (bool, error) {
		return pred(ctx, instanceOf[T](pc), v, pc)
	}})
}

// Custom attaches a rule body that reports failures through the CustomContext.
func (b *RuleBuilder[T, P]) Custom(fn func(P, *CustomContext[T])) *RuleBuilder[T, P] {
	if fn == nil {
		panic(configError("Custom on %q requires a function", b.rule.propertyName))
	}
	return b.addCustom(&customSource[T, P]{owner: b.v, sync: fn})
}

func (b *RuleBuilder[T, P]) CustomAsync(fn func(context.Context, P, *CustomContext[T]) error) *RuleBuilder[T, P] {
	if fn == nil {
		panic(configError("CustomAsync on %q requires a function", b.rule.propertyName))
	}
	return b.addCustom(&customSource[T, P]{owner: b.v, async: fn})
}

func (b *RuleBuilder[T, P]) addCustom(src *customSource[T, P]) *RuleBuilder[T, P] {
	c := newSourceComponent[T, P](src)
	src.comp = c
	b.rule.addComponent(c)
	return b
}

// SetValidator validates the property value with a child validator.
func (b *RuleBuilder[T, P]) SetValidator(child ChildValidator[P]) *RuleBuilder[T, P] {
	if child == nil {
		panic(configError("SetValidator on %q requires a validator", b.rule.propertyName))
	}
	b.rule.addComponent(newSourceComponent[T, P](&childAdaptor[T, P]{child: child}))
	return b
}

// ChildRules declares an inline child validator for the property value.
func (b *RuleBuilder[T, P]) ChildRules(fn func(child *Validator[P])) *RuleBuilder[T, P] {
	if fn == nil {
		panic(configError("ChildRules on %q requires a function", b.rule.propertyName))
	}
	child := New[P](WithOptions(b.v.opts))
	fn(child)
	return b.SetValidator(child)
}

// SetInheritanceValidator validates the property with a PolymorphicValidator configured
// by fn, dispatching on the dynamic type of the value.
func (b *RuleBuilder[T, P]) SetInheritanceValidator(fn func(pv *PolymorphicValidator[P])) *RuleBuilder[T, P] {
	if fn == nil {
		panic(configError("SetInheritanceValidator on %q requires a function", b.rule.propertyName))
	}
	pv := Polymorphic[P]()
	fn(pv)
	return b.SetValidator(pv)
}

func (b *RuleBuilder[T, P]) current(modifier string) *component[T, P] {
	if len(b.rule.components) == 0 {
		panic(configError("%s on %q must follow a validator", modifier, b.rule.propertyName))
	}
	return b.rule.components[len(b.rule.components)-1]
}

// WithMessage overrides the message template of the last validator.
func (b *RuleBuilder[T, P]) WithMessage(message string) *RuleBuilder[T, P] {
	c := b.current("WithMessage")
	c.message, c.messageFunc = message, nil
	return b
}

// WithMessageFunc builds the message template of the last validator from the instance and value.
func (b *RuleBuilder[T, P]) WithMessageFunc(fn func(T, P) string) *RuleBuilder[T, P] {
	b.current("WithMessageFunc").messageFunc = fn
	return b
}

// WithErrorCode sets the error code of the last validator. The code is also tried
// first as a message template key.
func (b *RuleBuilder[T, P]) WithErrorCode(code string) *RuleBuilder[T, P] {
	b.current("WithErrorCode").errorCode = code
	return b
}

// WithState attaches custom state to failures of the last validator.
func (b *RuleBuilder[T, P]) WithState(fn func(T, P) any) *RuleBuilder[T, P] {
	b.current("WithState").stateProvider = fn
	return b
}

func (b *RuleBuilder[T, P]) WithSeverity(s Severity) *RuleBuilder[T, P] {
	c := b.current("WithSeverity")
	c.severity, c.severityFunc = &s, nil
	return b
}

func (b *RuleBuilder[T, P]) WithSeverityFunc(fn func(T, P) Severity) *RuleBuilder[T, P] {
	b.current("WithSeverityFunc").severityFunc = fn
	return b
}

// OnFailure calls fn for each failure produced by the last validator.
func (b *RuleBuilder[T, P]) OnFailure(fn func(instance T, value P, failure ValidationFailure)) *RuleBuilder[T, P] {
	b.current("OnFailure").onFailure = fn
	return b
}

// OnAnyFailure calls fn once per run with the failures of the whole rule, when there are any.
func (b *RuleBuilder[T, P]) OnAnyFailure(fn func(instance T, failures []ValidationFailure)) *RuleBuilder[T, P] {
	b.rule.onAnyFailure = fn
	return b
}

func (b *RuleBuilder[T, P]) applyCondition(name string, apply func(*component[T, P]), applyTo []ApplyConditionTo) {
	if len(applyTo) > 0 && applyTo[0] == CurrentValidator {
		apply(b.current(name))
		return
	}
	for _, c := range b.rule.components {
		apply(c)
	}
}

// When runs the validators declared so far (or only the last one, with CurrentValidator)
// only when pred returns true.
func (b *RuleBuilder[T, P]) When(pred func(T) bool, applyTo ...ApplyConditionTo) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("When on %q requires a predicate", b.rule.propertyName))
	}
	cond := func(vc *Context[T]) bool { return pred(vc.instance) }
	b.applyCondition("When", func(c *component[T, P]) {
		c.conditions = append(c.conditions, cond)
	}, applyTo)
	return b
}

func (b *RuleBuilder[T, P]) Unless(pred func(T) bool, applyTo ...ApplyConditionTo) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("Unless on %q requires a predicate", b.rule.propertyName))
	}
	return b.When(func(t T) bool { return !pred(t) }, applyTo...)
}

// WhenAsync is When with an asynchronous predicate. The affected validators can only
// run through the async entry points.
func (b *RuleBuilder[T, P]) WhenAsync(pred func(context.Context, T) (bool, error), applyTo ...ApplyConditionTo) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("WhenAsync on %q requires a predicate", b.rule.propertyName))
	}
	cond := func(ctx context.Context, vc *Context[T]) (bool, error) { return pred(ctx, vc.instance) }
	b.applyCondition("WhenAsync", func(c *component[T, P]) {
		c.asyncConditions = append(c.asyncConditions, cond)
	}, applyTo)
	return b
}

func (b *RuleBuilder[T, P]) UnlessAsync(pred func(context.Context, T) (bool, error), applyTo ...ApplyConditionTo) *RuleBuilder[T, P] {
	if pred == nil {
		panic(configError("UnlessAsync on %q requires a predicate", b.rule.propertyName))
	}
	return b.WhenAsync(func(ctx context.Context, t T) (bool, error) {
		ok, err := pred(ctx, t)
		return !ok, err
	}, applyTo...)
}

// WithName sets the display name used for {PropertyName}.
func (b *RuleBuilder[T, P]) WithName(name string) *RuleBuilder[T, P] {
	b.rule.displayName = name
	return b
}

// OverridePropertyName changes the member name used in property paths.
func (b *RuleBuilder[T, P]) OverridePropertyName(name string) *RuleBuilder[T, P] {
	b.rule.propertyName = name
	return b
}

// Cascade sets the rule's cascade mode.
func (b *RuleBuilder[T, P]) Cascade(m CascadeMode) *RuleBuilder[T, P] {
	b.rule.cascade = &m
	return b
}

// DependentRules declares rules that run only when this rule produced no failures.
func (b *RuleBuilder[T, P]) DependentRules(fn func()) *RuleBuilder[T, P] {
	if fn == nil {
		panic(configError("DependentRules on %q requires a function", b.rule.propertyName))
	}
	var deps []validationRule[T]
	prev := b.v.capture
	b.v.capture = &deps
	defer func() { b.v.capture = prev }()
	fn()
	b.rule.dependents = append(b.rule.dependents, deps...)
	return b
}

// Count checks the number of elements of a slice, array, map or string property.
func (b *RuleBuilder[T, P]) Count(minimum, maximum int) *RuleBuilder[T, P] {
	return b.Add(Count[P](minimum, maximum))
}

func (b *RuleBuilder[T, P]) MinCount(minimum int) *RuleBuilder[T, P] {
	return b.Add(MinCount[P](minimum))
}

func (b *RuleBuilder[T, P]) MaxCount(maximum int) *RuleBuilder[T, P] {
	return b.Add(MaxCount[P](maximum))
}
